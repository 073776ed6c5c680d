package platform

import "fmt"

// Signal names a change notification emitted by a window or actor.
type Signal int

const (
	SignalSizeChanged Signal = iota
	SignalPositionChanged
	SignalParentSet
)

func (s Signal) String() string {
	switch s {
	case SignalSizeChanged:
		return "size-changed"
	case SignalPositionChanged:
		return "position-changed"
	case SignalParentSet:
		return "parent-set"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}

// HandlerID identifies a connected signal handler. Zero is never issued.
type HandlerID uint64

// Emitter delivers signals to connected handlers.
type Emitter interface {
	Connect(sig Signal, fn func()) HandlerID
	Disconnect(id HandlerID)
}

// Actor is a node in the compositor's stacking tree.
type Actor interface {
	Emitter
	// Parent returns the container currently holding the actor.
	Parent() (Container, bool)
}

// Container holds child actors in stacking order.
type Container interface {
	AddChild(child Actor)
	RemoveChild(child Actor)
	// SetChildBelowSibling stacks child directly below sibling.
	SetChildBelowSibling(child, sibling Actor)
	// SetChildAboveSibling stacks child directly above sibling, or on top
	// of every other child when sibling is nil.
	SetChildAboveSibling(child, sibling Actor)
}

// WindowHandle is a managed top-level window as seen by the compositor.
type WindowHandle interface {
	Emitter
	ID() WindowID
	// FrameRect returns the window geometry including decorations.
	FrameRect() Rect
	// Actor returns the window's frame actor, if it has one.
	Actor() (Actor, bool)
}

// Overlay is a decoration actor that can be placed and shown.
type Overlay interface {
	Actor
	SetGeometry(r Rect)
	Show()
	Hide()
}

// Chrome registers overlays that must not take pointer input.
type Chrome interface {
	Track(o Overlay)
	Untrack(o Overlay)
}
