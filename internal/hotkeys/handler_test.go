package hotkeys

import (
	"reflect"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"
)

func TestCleanMods_StripsLocksAndButtons(t *testing.T) {
	saved := xevent.IgnoreMods
	defer func() { xevent.IgnoreMods = saved }()
	xevent.IgnoreMods = []uint16{0, xproto.ModMaskLock, xproto.ModMask2}

	state := uint16(xproto.ModMask4 | xproto.ModMaskLock | xproto.ModMask2 | xproto.KeyButMaskButton1)
	if got := cleanMods(state); got != xproto.ModMask4 {
		t.Fatalf("expected Mod4 only, got %#x", got)
	}
}

func TestBindingsNames_Sorted(t *testing.T) {
	b := Bindings{"tile-reject": nil, "tile-accept": nil, "focus-left": nil}
	want := []string{"focus-left", "tile-accept", "tile-reject"}
	if got := b.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRegistry_WithoutX11IsInert(t *testing.T) {
	r := NewRegistry(nil, map[string]string{"tile-accept": "Return"})
	called := false
	r.Enable(Bindings{"tile-accept": func() { called = true }})

	if r.Enabled("tile-accept") {
		t.Fatalf("expected no grabs without an X connection")
	}
	r.dispatch(0, 36)
	if called {
		t.Fatalf("expected no dispatch without grabs")
	}
	r.Disable(Bindings{"tile-accept": nil})
}
