// Package control is the interaction dispatcher: it turns input events and
// named actions into viewport, navigation and widget changes, and tracks
// whether a redraw is due.
package control

import (
	"strconv"

	"comix/internal/debug"
	"comix/internal/loader"
	"comix/internal/navigation"
	"comix/internal/viewport"
	"comix/internal/widget"
)

// TitleSuffix follows the file name in the window title.
const TitleSuffix = " - Comix"

// Cursor is the pointer shape requested from the window.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorMove
)

// Window is the part of the platform window the dispatcher drives.
type Window interface {
	SetTitle(title string)
	SetCursor(c Cursor)
	ToggleFullscreen()
}

// Slot gives non-blocking access to the decoded frame.
type Slot interface {
	TryWith(fn func(f *loader.Frame)) bool
}

// Options are the settings the dispatcher honors.
type Options struct {
	ReadRight bool // right-to-left: Left and left-half clicks advance
	KeepZoom  bool // keep the absolute zoom across images
	Scroll    int  // pan step in percent of the image height
}

// Controller owns all UI-side state. It must only be used from the UI
// goroutine.
type Controller struct {
	view *viewport.Viewport
	nav  *navigation.Store
	slot Slot
	bar  *widget.Bar
	win  Window
	opts Options

	dirty    bool
	quit     bool
	showInfo bool
	showHelp bool
	loading  bool
	hasImage bool

	pressed  *widget.Widget
	pressing bool
	dragging bool
	moved    bool
	lastX    int
	lastY    int
	cursor   Cursor

	pointerIn bool
}

// New wires the dispatcher. Call Start once the window size is known.
func New(view *viewport.Viewport, nav *navigation.Store, slot Slot, bar *widget.Bar, win Window, opts Options) *Controller {
	if opts.Scroll <= 0 {
		opts.Scroll = 2
	}
	c := &Controller{
		view: view,
		nav:  nav,
		slot: slot,
		bar:  bar,
		win:  win,
		opts: opts,
	}
	if !nav.Enabled() {
		bar.SetEnabled(widget.First, widget.Last, false)
	}
	return c
}

// Start selects the initial image and requests its load.
func (c *Controller) Start(index int) {
	c.nav.Select(index)
	c.beginLoad()
}

// TakeDirty reports whether a redraw is due and clears the flag.
func (c *Controller) TakeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

// MarkDirty forces a redraw on the next frame.
func (c *Controller) MarkDirty() { c.dirty = true }

// Quit reports whether shutdown was requested.
func (c *Controller) Quit() bool { return c.quit }

// ShowInfo reports whether the info overlay is on.
func (c *Controller) ShowInfo() bool { return c.showInfo }

// ShowHelp reports whether the bindings overlay is on.
func (c *Controller) ShowHelp() bool { return c.showHelp }

// Loading reports whether the current index has no frame yet.
func (c *Controller) Loading() bool { return c.loading }

// Viewport returns the transform state used for drawing.
func (c *Controller) Viewport() *viewport.Viewport { return c.view }

// Navigation returns the listing.
func (c *Controller) Navigation() *navigation.Store { return c.nav }

// Bar returns the controls.
func (c *Controller) Bar() *widget.Bar { return c.bar }

// beginLoad updates the chrome for a freshly selected index.
func (c *Controller) beginLoad() {
	c.win.SetTitle(c.nav.Current().Name() + TitleSuffix)
	c.bar.SetText(widget.PageNum, strconv.Itoa(c.nav.Index()+1))
	c.bar.SetEnabled(widget.ZoomOut, widget.FlipY, false)
	c.bar.SetText(widget.Percent, "---")
	c.loading = true
	c.dirty = true
}

// ImageReady consumes a worker announcement. Results for an index that is no
// longer current are dropped.
func (c *Controller) ImageReady(res loader.Result) {
	if res.Index != c.nav.Index() {
		debug.Log(debug.LOAD, "dropping stale result [%d], current [%d]", res.Index+1, c.nav.Index()+1)
		return
	}

	keep := c.opts.KeepZoom && c.hasImage && !c.view.IsFit()
	zoom := c.view.Zoom()

	var current bool
	ok := c.slot.TryWith(func(f *loader.Frame) {
		if f.Index != c.nav.Index() {
			return
		}
		current = true
		w, h := f.Size()
		c.view.SetImage(w, h)
	})
	if !ok || !current {
		// A newer decode already owns the slot; its own announcement follows.
		return
	}

	c.loading = false
	c.hasImage = true
	c.bar.SetEnabled(widget.ZoomOut, widget.FlipY, true)
	c.view.Fit()
	if keep {
		c.view.SetZoom(zoom, c.view.Center())
	}
	c.updatePercent()
	c.updateCursor()
	c.dirty = true
}

func (c *Controller) updatePercent() {
	if c.loading {
		return
	}
	c.bar.SetText(widget.Percent, c.view.Percent())
}

// Resize handles a new window size, bar included.
func (c *Controller) Resize(winW, winH int) {
	c.bar.Layout(winW, winH)
	c.dirty = true
	if !c.view.SetCanvas(winW, winH-widget.BarHeight) {
		return
	}
	if c.hasImage {
		c.view.Refit()
		c.updatePercent()
		c.updateCursor()
	}
	debug.Log(debug.VIEW, "resize %dx%d", winW, winH)
}

// Leave resets the controls when the pointer leaves the window.
func (c *Controller) Leave() {
	c.pointerIn = false
	c.bar.Reset()
	c.pressed = nil
	c.pressing = false
	c.dragging = false
	c.setCursor(CursorDefault)
	c.dirty = true
}
