// Package widget implements the bottom-bar controls: a closed set of
// buttons and text labels sharing one record.
package widget

import "comix/internal/viewport"

// Kind selects how a widget draws.
type Kind int

const (
	Button Kind = iota
	Text
)

// State is the interaction state of a widget.
type State int

const (
	Disabled State = iota
	Idle
	Focused
	Active
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "disabled"
	case Idle:
		return "idle"
	case Focused:
		return "focused"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Widget is one control. Action names the command it fires.
type Widget struct {
	ID     ID
	Kind   Kind
	Label  string
	Action string
	Rect   viewport.Rect
	State  State
}

// Contains reports whether the point is on the widget.
func (w *Widget) Contains(x, y int) bool {
	return w.Rect.Contains(x, y)
}

// SetState moves an enabled widget to s. Disabled widgets stay disabled;
// use Enable.
func (w *Widget) SetState(s State) {
	if w.State == Disabled || s == Disabled {
		return
	}
	w.State = s
}

// Enable turns a disabled widget idle. Enabled widgets keep their state.
func (w *Widget) Enable() {
	if w.State == Disabled {
		w.State = Idle
	}
}

// Disable stops the widget from reacting.
func (w *Widget) Disable() {
	w.State = Disabled
}

// Trigger returns the widget's action, or false when it is disabled.
func (w *Widget) Trigger() (string, bool) {
	if w.State == Disabled || w.Action == "" {
		return "", false
	}
	return w.Action, true
}
