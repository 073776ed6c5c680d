//go:build !linux

package daemon

import (
	"context"
	"errors"
)

// Run is only available on Linux, where the X11 backend lives.
func Run(ctx context.Context, opts Options) error {
	return errors.New("snaptile daemon requires Linux with an X11 display")
}
