package control

import (
	"comix/internal/debug"
	"comix/internal/viewport"
	"comix/internal/widget"
)

// Wheel zooms one step per notch around the pointer, or around the canvas
// center when the pointer is off the image.
func (c *Controller) Wheel(dy float64, x, y int) {
	if dy == 0 || !c.canTransform() {
		return
	}
	focus := viewport.Point{X: x, Y: y}
	if !c.view.Rect().Contains(x, y) || y >= c.bar.Y() {
		focus = c.view.Center()
	}
	c.view.StepZoom(dy > 0, focus)
	c.updatePercent()
	c.updateCursor()
	c.dirty = true
	debug.Log(debug.INPUT, "wheel %.1f at (%d,%d) -> %s", dy, x, y, c.view.Percent())
}

// PointerDown handles a primary button press.
func (c *Controller) PointerDown(x, y int) {
	c.lastX, c.lastY = x, y
	c.pointerIn = true
	if w := c.bar.Find(x, y); w != nil {
		w.SetState(widget.Active)
		c.pressed = w
		c.dirty = true
		return
	}
	c.pressing = true
	c.moved = false
	c.dragging = y < c.bar.Y() && c.view.Overflows()
}

// PointerUp handles a primary button release: fires a pressed control, or
// treats a click beside the image as page navigation.
func (c *Controller) PointerUp(x, y int) {
	if w := c.pressed; w != nil {
		c.pressed = nil
		var action string
		var fire bool
		if w.Contains(x, y) {
			action, fire = w.Trigger()
		}
		if fire {
			c.Execute(action)
		}
		c.bar.Reset()
		if w.Contains(x, y) {
			w.SetState(widget.Focused)
		}
		c.dirty = true
		return
	}

	click := c.pressing && !c.moved
	c.pressing = false
	c.dragging = false
	if !click || y >= c.bar.Y() || c.view.Rect().Contains(x, y) {
		return
	}

	leftHalf := x < c.view.Canvas().W/2
	if leftHalf != c.opts.ReadRight {
		c.Execute(ActionPrevious)
	} else {
		c.Execute(ActionNext)
	}
}

// Motion handles pointer movement. held is the primary button state.
func (c *Controller) Motion(x, y int, held bool) {
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	c.pointerIn = true

	if held {
		if dx != 0 || dy != 0 {
			c.moved = true
		}
		if c.dragging && (dx != 0 || dy != 0) {
			c.view.Pan(dx, dy)
			c.dirty = true
		}
		return
	}

	before := c.focused()
	c.bar.Reset()
	if w := c.bar.Find(x, y); w != nil {
		w.SetState(widget.Focused)
	}
	if c.focused() != before {
		c.dirty = true
	}

	c.updateCursor()
}

func (c *Controller) focused() *widget.Widget {
	for _, w := range c.bar.All() {
		if w.State == widget.Focused || w.State == widget.Active {
			return w
		}
	}
	return nil
}

// updateCursor shows the move cursor while the pointer is above the bar and
// the image overflows the canvas. Zooms, resizes and image changes call it
// so the shape is right before the pointer moves again.
func (c *Controller) updateCursor() {
	if c.pointerIn && c.lastY < c.bar.Y() && c.view.Overflows() {
		c.setCursor(CursorMove)
	} else {
		c.setCursor(CursorDefault)
	}
}

func (c *Controller) setCursor(cur Cursor) {
	if cur == c.cursor {
		return
	}
	c.cursor = cur
	c.win.SetCursor(cur)
}
