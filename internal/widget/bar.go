package widget

import "comix/internal/viewport"

// ID identifies a bar control. The order is the order on screen.
type ID int

const (
	ZoomOut ID = iota
	Percent
	ZoomIn
	RotateCCW
	RotateCW
	FlipX
	FlipY
	First
	Prev
	PageNum
	Next
	Last
	Count
)

// Bar geometry in pixels.
const (
	BarHeight   = 17
	ButtonWidth = 20
)

// Action names fired by the controls.
const (
	ActionZoomIn     = "zoom_in"
	ActionZoomOut    = "zoom_out"
	ActionResetImage = "reset_image"
	ActionRotateCCW  = "rotate_left"
	ActionRotateCW   = "rotate_right"
	ActionFlipX      = "flip_horizontal"
	ActionFlipY      = "flip_vertical"
	ActionFirst      = "first"
	ActionPrev       = "previous"
	ActionJumpFirst  = "jump_first"
	ActionNext       = "next"
	ActionLast       = "last"
)

// MeasureFunc returns the rendered width of a label.
type MeasureFunc func(label string) int

// Bar is the strip of controls below the canvas.
type Bar struct {
	widgets [Count]*Widget
	measure MeasureFunc
	winW    int
	y       int
}

// NewBar builds the twelve controls, all idle.
func NewBar(measure MeasureFunc) *Bar {
	b := &Bar{measure: measure}
	specs := [Count]struct {
		kind   Kind
		label  string
		action string
	}{
		ZoomOut:   {Button, "-", ActionZoomOut},
		Percent:   {Text, "---", ActionResetImage},
		ZoomIn:    {Button, "+", ActionZoomIn},
		RotateCCW: {Button, "L", ActionRotateCCW},
		RotateCW:  {Button, "R", ActionRotateCW},
		FlipX:     {Button, "↔", ActionFlipX},
		FlipY:     {Button, "↕", ActionFlipY},
		First:     {Button, "«", ActionFirst},
		Prev:      {Button, "‹", ActionPrev},
		PageNum:   {Text, "", ActionJumpFirst},
		Next:      {Button, "›", ActionNext},
		Last:      {Button, "»", ActionLast},
	}
	for id, s := range specs {
		b.widgets[id] = &Widget{
			ID:     ID(id),
			Kind:   s.kind,
			Label:  s.label,
			Action: s.action,
			State:  Idle,
		}
	}
	return b
}

// Widget returns the control with the given id.
func (b *Bar) Widget(id ID) *Widget { return b.widgets[id] }

// All returns the controls in screen order.
func (b *Bar) All() []*Widget { return b.widgets[:] }

// Y returns the top edge of the bar.
func (b *Bar) Y() int { return b.y }

// Layout positions the controls for a window of winW x winH.
func (b *Bar) Layout(winW, winH int) {
	b.winW = winW
	b.y = winH - BarHeight
	mid := winW / 2

	b.place(ZoomOut, 0)
	b.placeText(Percent, 26, 35)
	b.place(ZoomIn, 67)
	b.place(RotateCCW, mid-40)
	b.place(RotateCW, mid-20)
	b.place(FlipX, mid)
	b.place(FlipY, mid+20)
	b.place(First, winW-145)
	b.place(Prev, winW-125)
	b.placeText(PageNum, winW-99, 53)
	b.place(Next, winW-40)
	b.place(Last, winW-20)
}

func (b *Bar) place(id ID, x int) {
	b.widgets[id].Rect = viewport.Rect{X: x, Y: b.y, W: ButtonWidth, H: BarHeight}
}

// placeText centers a label inside a slot of the given width.
func (b *Bar) placeText(id ID, slotX, slotW int) {
	w := b.widgets[id]
	width := 0
	if b.measure != nil {
		width = b.measure(w.Label)
	}
	w.Rect = viewport.Rect{X: slotX + (slotW-width)/2, Y: b.y, W: width, H: BarHeight}
}

// SetText changes a text control and re-centers it in its slot.
func (b *Bar) SetText(id ID, label string) {
	w := b.widgets[id]
	if w.Label == label {
		return
	}
	w.Label = label
	switch id {
	case Percent:
		b.placeText(id, 26, 35)
	case PageNum:
		b.placeText(id, b.winW-99, 53)
	}
}

// Find returns the enabled control under (x, y), or nil.
func (b *Bar) Find(x, y int) *Widget {
	for _, w := range b.widgets {
		if w.State != Disabled && w.Contains(x, y) {
			return w
		}
	}
	return nil
}

// Reset returns every enabled control to idle.
func (b *Bar) Reset() {
	for _, w := range b.widgets {
		w.SetState(Idle)
	}
}

// SetEnabled enables or disables the controls in [from, to].
func (b *Bar) SetEnabled(from, to ID, enabled bool) {
	for id := from; id <= to; id++ {
		if enabled {
			b.widgets[id].Enable()
		} else {
			b.widgets[id].Disable()
		}
	}
}
