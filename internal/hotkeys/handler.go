package hotkeys

import (
	"log"
	"sort"
	"sync"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Bindings maps binding names (such as "tile-accept") to actions. A set is
// enabled and disabled as a unit.
type Bindings map[string]func()

// Names returns the binding names in sorted order.
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

type grabKey struct {
	mods uint16
	code xproto.Keycode
}

// Registry grabs key sequences on the root window for enabled binding sets
// and dispatches key presses to their actions.
type Registry struct {
	xu   *xgbutil.XUtil
	root xproto.Window

	mu        sync.Mutex
	sequences map[string]string
	grabs     map[string][]grabKey
	actions   map[grabKey]func()
}

var ignoreModsOnce sync.Once

// NewRegistry creates a registry resolving binding names through sequences
// (name to key sequence, such as "Mod4-Left").
func NewRegistry(backend platform.Backend, sequences map[string]string) *Registry {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}

	r := &Registry{
		xu:        xu,
		root:      root,
		sequences: copySequences(sequences),
		grabs:     make(map[string][]grabKey),
		actions:   make(map[grabKey]func()),
	}
	if xu == nil {
		return r
	}

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		r.dispatch(ev.State, ev.Detail)
	}).Connect(xu, root)

	return r
}

// SetSequences replaces the name to key sequence map. Sets enabled before
// the change keep their old grabs until they are disabled.
func (r *Registry) SetSequences(sequences map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sequences = copySequences(sequences)
}

// Enable grabs the keys of every binding in b. Bindings without a
// configured sequence are skipped.
func (r *Registry) Enable(b Bindings) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range b.Names() {
		seq := r.sequences[name]
		if seq == "" || r.xu == nil {
			continue
		}
		if _, ok := r.grabs[name]; ok {
			continue
		}

		mods, codes, err := keybind.ParseString(r.xu, seq)
		if err != nil {
			log.Printf("Hotkeys: invalid sequence %q for %s: %v", seq, name, err)
			continue
		}

		var keys []grabKey
		for _, code := range codes {
			if err := keybind.GrabChecked(r.xu, r.root, mods, code); err != nil {
				log.Printf("Hotkeys: failed to grab %q for %s: %v", seq, name, err)
				continue
			}
			key := grabKey{mods: mods, code: code}
			r.actions[key] = b[name]
			keys = append(keys, key)
		}
		r.grabs[name] = keys
	}
}

// Disable releases the keys of every binding in b.
func (r *Registry) Disable(b Bindings) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range b.Names() {
		keys, ok := r.grabs[name]
		if !ok {
			continue
		}
		for _, key := range keys {
			keybind.Ungrab(r.xu, r.root, key.mods, key.code)
			delete(r.actions, key)
		}
		delete(r.grabs, name)
	}
}

// Enabled reports whether a binding currently holds grabs.
func (r *Registry) Enabled(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.grabs[name]
	return ok
}

func (r *Registry) dispatch(state uint16, code xproto.Keycode) {
	r.mu.Lock()
	action := r.actions[grabKey{mods: cleanMods(state), code: code}]
	r.mu.Unlock()

	if action != nil {
		action()
	}
}

// cleanMods strips pointer buttons and ignored lock modifiers from a key
// event state.
func cleanMods(state uint16) uint16 {
	mods := state & 0xff
	for _, ignored := range xevent.IgnoreMods {
		mods &^= ignored
	}
	return mods
}

func copySequences(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
