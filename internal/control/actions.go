package control

import (
	"comix/internal/debug"
	"comix/internal/loader"
	"comix/internal/widget"
)

// Action names accepted by Execute. The bar controls fire the ones listed
// in the widget package.
const (
	ActionExit           = "exit"
	ActionNext           = widget.ActionNext
	ActionPrevious       = widget.ActionPrev
	ActionLeft           = "left"
	ActionRight          = "right"
	ActionFirst          = widget.ActionFirst
	ActionLast           = widget.ActionLast
	ActionJumpFirst      = widget.ActionJumpFirst
	ActionZoomIn         = widget.ActionZoomIn
	ActionZoomOut        = widget.ActionZoomOut
	ActionZoomReset      = "zoom_reset"
	ActionZoomFit        = "zoom_fit"
	ActionPanUp          = "pan_up"
	ActionPanDown        = "pan_down"
	ActionPanLeft        = "pan_left"
	ActionPanRight       = "pan_right"
	ActionPageUp         = "page_up"
	ActionPageDown       = "page_down"
	ActionPanTop         = "pan_top"
	ActionPanBottom      = "pan_bottom"
	ActionRotateLeft     = widget.ActionRotateCCW
	ActionRotateRight    = widget.ActionRotateCW
	ActionFlipHorizontal = widget.ActionFlipX
	ActionFlipVertical   = widget.ActionFlipY
	ActionResetImage     = widget.ActionResetImage
	ActionToggleInfo     = "toggle_info"
	ActionToggleHelp     = "help"
	ActionFullscreen     = "fullscreen"
)

// Execute runs a named action and reports whether the name is known.
func (c *Controller) Execute(action string) bool {
	debug.Log(debug.INPUT, "action %s", action)

	switch action {
	case ActionExit:
		c.quit = true

	case ActionNext:
		c.navigate(c.nav.Next)
	case ActionPrevious:
		c.navigate(c.nav.Prev)
	case ActionFirst:
		c.navigate(c.nav.First)
	case ActionLast:
		c.navigate(c.nav.Last)
	case ActionLeft:
		if c.opts.ReadRight {
			c.navigate(c.nav.Next)
		} else {
			c.navigate(c.nav.Prev)
		}
	case ActionRight:
		if c.opts.ReadRight {
			c.navigate(c.nav.Prev)
		} else {
			c.navigate(c.nav.Next)
		}
	case ActionJumpFirst:
		c.navigate(c.nav.First)

	case ActionZoomIn:
		c.zoom(func() { c.view.StepZoom(true, c.view.Center()) })
	case ActionZoomOut:
		c.zoom(func() { c.view.StepZoom(false, c.view.Center()) })
	case ActionZoomReset:
		c.zoom(func() { c.view.SetZoom(1, c.view.Center()) })
	case ActionZoomFit:
		c.zoom(c.view.Fit)

	case ActionPanUp:
		c.pan(0, c.scrollStep())
	case ActionPanDown:
		c.pan(0, -c.scrollStep())
	case ActionPanLeft:
		c.pan(c.scrollStep(), 0)
	case ActionPanRight:
		c.pan(-c.scrollStep(), 0)
	case ActionPageUp:
		c.pan(0, c.view.Canvas().H)
	case ActionPageDown:
		c.pan(0, -c.view.Canvas().H)
	case ActionPanTop:
		c.panTo(0)
	case ActionPanBottom:
		c.panTo(c.view.Canvas().H - c.view.Rect().H)

	case ActionRotateLeft:
		c.transform((*loader.Frame).RotateCCW)
	case ActionRotateRight:
		c.transform((*loader.Frame).RotateCW)
	case ActionFlipHorizontal:
		c.transform((*loader.Frame).FlipH)
	case ActionFlipVertical:
		c.transform((*loader.Frame).FlipV)
	case ActionResetImage:
		c.transform((*loader.Frame).Reset)

	case ActionToggleInfo:
		c.showInfo = !c.showInfo
		c.dirty = true
	case ActionToggleHelp:
		c.showHelp = !c.showHelp
		c.dirty = true
	case ActionFullscreen:
		c.win.ToggleFullscreen()
		c.dirty = true

	default:
		debug.Log(debug.INPUT, "unknown action %q", action)
		return false
	}
	return true
}

func (c *Controller) navigate(move func() int) {
	if !c.nav.Enabled() {
		return
	}
	move()
	c.beginLoad()
}

func (c *Controller) canTransform() bool {
	return c.hasImage && !c.loading
}

func (c *Controller) zoom(fn func()) {
	if !c.canTransform() {
		return
	}
	fn()
	c.updatePercent()
	c.updateCursor()
	c.dirty = true
}

func (c *Controller) scrollStep() int {
	step := c.view.Rect().H * c.opts.Scroll / 100
	if step < 1 {
		step = 1
	}
	return step
}

func (c *Controller) pan(dx, dy int) {
	if !c.canTransform() {
		return
	}
	c.view.Pan(dx, dy)
	c.dirty = true
}

func (c *Controller) panTo(y int) {
	if !c.canTransform() {
		return
	}
	c.view.PanTo(y)
	c.dirty = true
}

// transform edits the current frame in place and refits it.
func (c *Controller) transform(op func(f *loader.Frame)) {
	if !c.canTransform() {
		return
	}
	applied := false
	c.slot.TryWith(func(f *loader.Frame) {
		if f.Index != c.nav.Index() {
			return
		}
		op(f)
		w, h := f.Size()
		c.view.SetImage(w, h)
		applied = true
	})
	if !applied {
		return
	}
	c.view.Fit()
	c.updatePercent()
	c.updateCursor()
	c.dirty = true
}
