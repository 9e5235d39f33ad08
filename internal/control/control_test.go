package control

import (
	"fmt"
	"image"
	"testing"

	"comix/internal/loader"
	"comix/internal/navigation"
	"comix/internal/source"
	"comix/internal/viewport"
	"comix/internal/widget"
)

type fakeWindow struct {
	title      string
	cursor     Cursor
	fullscreen int
}

func (w *fakeWindow) SetTitle(title string) { w.title = title }
func (w *fakeWindow) SetCursor(c Cursor)    { w.cursor = c }
func (w *fakeWindow) ToggleFullscreen()     { w.fullscreen++ }

// fakeSlot stands in for the loader: every request immediately fills the
// slot with an image of the configured size.
type fakeSlot struct {
	frame    *loader.Frame
	busy     bool
	sizes    map[int]image.Point
	requests []int
}

func (s *fakeSlot) Request(index int, path source.ImagePath) {
	s.requests = append(s.requests, index)
	size, ok := s.sizes[index]
	if !ok {
		size = image.Pt(400, 300)
	}
	img := image.NewNRGBA(image.Rectangle{Max: size})
	s.frame = &loader.Frame{Index: index, Path: path, Original: img, Image: img}
}

func (s *fakeSlot) TryWith(fn func(f *loader.Frame)) bool {
	if s.busy || s.frame == nil {
		return false
	}
	fn(s.frame)
	return true
}

type harness struct {
	c    *Controller
	win  *fakeWindow
	slot *fakeSlot
	nav  *navigation.Store
}

func newHarness(t *testing.T, n int, sizes map[int]image.Point, opts Options) *harness {
	t.Helper()
	paths := make([]source.ImagePath, n)
	for i := range paths {
		paths[i] = source.ImagePath{Path: fmt.Sprintf("/pics/%02d.png", i)}
	}
	slot := &fakeSlot{sizes: sizes}
	nav, err := navigation.New(paths, slot)
	if err != nil {
		t.Fatal(err)
	}
	win := &fakeWindow{}
	bar := widget.NewBar(func(s string) int { return 7 * len(s) })
	c := New(viewport.New(), nav, slot, bar, win, opts)
	c.Resize(800, 600+widget.BarHeight)
	return &harness{c: c, win: win, slot: slot, nav: nav}
}

// ready delivers the announcement for the current index.
func (h *harness) ready() {
	h.c.ImageReady(loader.Result{Index: h.nav.Index(), Path: h.nav.Current()})
}

func TestStartShowsLoadingChrome(t *testing.T) {
	h := newHarness(t, 3, nil, Options{})
	h.c.Start(1)

	if h.win.title != "01.png - Comix" {
		t.Errorf("title = %q", h.win.title)
	}
	bar := h.c.Bar()
	if got := bar.Widget(widget.Percent).Label; got != "---" {
		t.Errorf("percent = %q, want ---", got)
	}
	if got := bar.Widget(widget.PageNum).Label; got != "2" {
		t.Errorf("page = %q, want 2", got)
	}
	for id := widget.ZoomOut; id <= widget.FlipY; id++ {
		if bar.Widget(id).State != widget.Disabled {
			t.Errorf("widget %d is %v while loading", id, bar.Widget(id).State)
		}
	}
	if !h.c.Loading() || !h.c.TakeDirty() {
		t.Error("expected loading and dirty")
	}
	if h.c.TakeDirty() {
		t.Error("TakeDirty did not clear the flag")
	}
}

func TestImageReadyFits(t *testing.T) {
	h := newHarness(t, 3, nil, Options{})
	h.c.Start(0)
	h.ready()

	if h.c.Loading() {
		t.Error("still loading after ready")
	}
	if r := h.c.Viewport().Rect(); r != (viewport.Rect{X: 200, Y: 150, W: 400, H: 300}) {
		t.Errorf("rect = %+v", r)
	}
	if got := h.c.Bar().Widget(widget.Percent).Label; got != "100%" {
		t.Errorf("percent = %q", got)
	}
	if h.c.Bar().Widget(widget.RotateCW).State == widget.Disabled {
		t.Error("image controls still disabled")
	}
}

func TestStaleResultIgnored(t *testing.T) {
	h := newHarness(t, 3, nil, Options{})
	h.c.Start(0)
	h.c.Execute(ActionNext)

	h.c.ImageReady(loader.Result{Index: 0})
	if !h.c.Loading() {
		t.Error("a stale result ended loading")
	}
	h.ready()
	if h.c.Loading() {
		t.Error("current result did not end loading")
	}
}

func TestBusySlotKeepsLoading(t *testing.T) {
	h := newHarness(t, 2, nil, Options{})
	h.c.Start(0)
	h.slot.busy = true
	h.ready()
	if !h.c.Loading() {
		t.Error("loading ended without access to the frame")
	}
}

func TestSingleImageDisablesNavigation(t *testing.T) {
	h := newHarness(t, 1, nil, Options{})
	h.c.Start(0)
	h.ready()

	for id := widget.First; id <= widget.Last; id++ {
		if h.c.Bar().Widget(id).State != widget.Disabled {
			t.Errorf("widget %d is %v, want disabled", id, h.c.Bar().Widget(id).State)
		}
	}
	for _, a := range []string{ActionNext, ActionPrevious, ActionFirst, ActionLast, ActionLeft, ActionRight, ActionJumpFirst} {
		h.c.Execute(a)
	}
	if len(h.slot.requests) != 1 {
		t.Errorf("requests = %v, want only the initial one", h.slot.requests)
	}
	if h.c.Loading() || h.c.Bar().Widget(widget.ZoomIn).State == widget.Disabled {
		t.Error("navigation on a single image restarted the load")
	}
}

func TestJumpFirst(t *testing.T) {
	h := newHarness(t, 5, nil, Options{})
	h.c.Start(3)
	h.ready()

	h.c.Execute(ActionJumpFirst)
	if h.nav.Index() != 0 || !h.c.Loading() {
		t.Errorf("index %d loading %v after jump, want 0 and true", h.nav.Index(), h.c.Loading())
	}
	if got := h.slot.requests; len(got) != 2 || got[1] != 0 {
		t.Errorf("requests = %v, want [3 0]", got)
	}
}

func TestReadingDirection(t *testing.T) {
	tests := []struct {
		readRight bool
		action    string
		want      int
	}{
		{false, ActionRight, 1},
		{false, ActionLeft, 4},
		{true, ActionRight, 4},
		{true, ActionLeft, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s readright=%v", tt.action, tt.readRight), func(t *testing.T) {
			h := newHarness(t, 5, nil, Options{ReadRight: tt.readRight})
			h.c.Start(0)
			h.c.Execute(tt.action)
			if h.nav.Index() != tt.want {
				t.Errorf("index = %d, want %d", h.nav.Index(), tt.want)
			}
		})
	}
}

func TestClickBesideImageNavigates(t *testing.T) {
	tests := []struct {
		name      string
		readRight bool
		x         int
		want      int
	}{
		{"Left half goes back", false, 50, 3},
		{"Right half goes forward", false, 750, 1},
		{"Left half advances right-to-left", true, 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 4, nil, Options{ReadRight: tt.readRight})
			h.c.Start(0)
			h.ready()

			h.c.PointerDown(tt.x, 300)
			h.c.PointerUp(tt.x, 300)
			if h.nav.Index() != tt.want {
				t.Errorf("index = %d, want %d", h.nav.Index(), tt.want)
			}
		})
	}

	t.Run("Click on image does nothing", func(t *testing.T) {
		h := newHarness(t, 4, nil, Options{})
		h.c.Start(0)
		h.ready()
		h.c.PointerDown(400, 300)
		h.c.PointerUp(400, 300)
		if h.nav.Index() != 0 {
			t.Errorf("index = %d, want 0", h.nav.Index())
		}
	})
}

func TestDragPans(t *testing.T) {
	h := newHarness(t, 2, map[int]image.Point{0: {1600, 1200}}, Options{})
	h.c.Start(0)
	h.ready()
	h.c.Execute(ActionZoomReset)
	before := h.c.Viewport().Rect()

	h.c.PointerDown(400, 300)
	h.c.Motion(350, 260, true)
	h.c.PointerUp(350, 260)

	after := h.c.Viewport().Rect()
	if after.X != before.X-50 || after.Y != before.Y-40 {
		t.Errorf("rect %+v -> %+v, want moved by (-50,-40)", before, after)
	}
	if h.nav.Index() != 0 {
		t.Error("a drag was treated as a click")
	}
}

func TestWheelFocusFallsBackToCenter(t *testing.T) {
	h := newHarness(t, 2, nil, Options{})
	h.c.Start(0)
	h.ready()

	h.c.Wheel(1, 10, 10)
	if got := h.c.Viewport().Focus(); got != h.c.Viewport().Center() {
		t.Errorf("focus = %+v, want center", got)
	}
	if got := h.c.Bar().Widget(widget.Percent).Label; got != "110%" {
		t.Errorf("percent = %q, want 110%%", got)
	}

	h.c.Wheel(1, 400, 300)
	if got := h.c.Viewport().Focus(); got != (viewport.Point{X: 400, Y: 300}) {
		t.Errorf("focus = %+v, want pointer", got)
	}
}

func TestCursorShape(t *testing.T) {
	h := newHarness(t, 2, map[int]image.Point{0: {1600, 1200}}, Options{})
	h.c.Start(0)
	h.ready()

	h.c.Motion(100, 100, false)
	if h.win.cursor != CursorDefault {
		t.Error("move cursor on a fitted image")
	}

	h.c.Execute(ActionZoomReset)
	h.c.Motion(120, 100, false)
	if h.win.cursor != CursorMove {
		t.Error("no move cursor over an overflowing image")
	}
	h.c.Motion(120, 605, false)
	if h.win.cursor != CursorDefault {
		t.Error("move cursor over the bar")
	}
}

func TestCursorFollowsZoomWithoutMotion(t *testing.T) {
	h := newHarness(t, 2, map[int]image.Point{0: {1600, 1200}}, Options{})
	h.c.Start(0)
	h.ready()

	h.c.Motion(400, 300, false)
	for i := 0; i < 5; i++ {
		h.c.Wheel(1, 400, 300)
	}
	if !h.c.Viewport().Overflows() {
		t.Fatal("image does not overflow after zooming in")
	}
	if h.win.cursor != CursorMove {
		t.Errorf("cursor = %v after wheel zoom, want move", h.win.cursor)
	}

	h.c.Execute(ActionZoomFit)
	if h.win.cursor != CursorDefault {
		t.Errorf("cursor = %v after fit, want default", h.win.cursor)
	}

	h.c.Execute(ActionZoomReset)
	if h.win.cursor != CursorMove {
		t.Errorf("cursor = %v after zoom to 100%%, want move", h.win.cursor)
	}
	h.c.Execute(ActionRotateRight)
	if h.win.cursor != CursorDefault {
		t.Errorf("cursor = %v after rotate refit, want default", h.win.cursor)
	}

	h.c.Execute(ActionZoomReset)
	h.c.Leave()
	h.c.Execute(ActionZoomIn)
	if h.win.cursor != CursorDefault {
		t.Errorf("cursor = %v with the pointer outside, want default", h.win.cursor)
	}
}

func TestBarButtonFires(t *testing.T) {
	h := newHarness(t, 3, nil, Options{})
	h.c.Start(0)
	h.ready()

	next := h.c.Bar().Widget(widget.Next).Rect
	x, y := next.X+5, next.Y+5

	h.c.PointerDown(x, y)
	if h.c.Bar().Widget(widget.Next).State != widget.Active {
		t.Errorf("pressed widget is %v", h.c.Bar().Widget(widget.Next).State)
	}
	h.c.PointerUp(x, y)
	if h.nav.Index() != 1 {
		t.Errorf("index = %d, want 1", h.nav.Index())
	}
	if h.c.Bar().Widget(widget.Next).State != widget.Focused {
		t.Errorf("released widget is %v", h.c.Bar().Widget(widget.Next).State)
	}

	// Releasing off the control cancels it.
	h.c.PointerDown(x, y)
	h.c.PointerUp(x, 100)
	if h.nav.Index() != 1 {
		t.Errorf("index = %d after cancelled press", h.nav.Index())
	}

	h.c.Leave()
	for _, w := range h.c.Bar().All() {
		if w.State == widget.Focused || w.State == widget.Active {
			t.Errorf("widget %d is %v after leave", w.ID, w.State)
		}
	}
}

func TestRotateRefits(t *testing.T) {
	h := newHarness(t, 2, map[int]image.Point{0: {300, 100}}, Options{})
	h.c.Start(0)
	h.ready()

	h.c.Execute(ActionRotateRight)
	if got := h.c.Viewport().Image(); got != (viewport.Size{W: 100, H: 300}) {
		t.Errorf("image size = %+v, want 100x300", got)
	}
	if r := h.c.Viewport().Rect(); r != (viewport.Rect{X: 350, Y: 150, W: 100, H: 300}) {
		t.Errorf("rect = %+v", r)
	}

	h.c.Execute(ActionResetImage)
	if got := h.c.Viewport().Image(); got != (viewport.Size{W: 300, H: 100}) {
		t.Errorf("image size after reset = %+v", got)
	}
}

func TestResizeRefits(t *testing.T) {
	h := newHarness(t, 2, map[int]image.Point{0: {1600, 1200}}, Options{})
	h.c.Start(0)
	h.ready()

	h.c.Resize(400, 300+widget.BarHeight)
	v := h.c.Viewport()
	if !v.IsFit() || v.Rect() != (viewport.Rect{W: 400, H: 300}) {
		t.Errorf("after resize zoom %v rect %+v", v.Zoom(), v.Rect())
	}
	if got := h.c.Bar().Widget(widget.Percent).Label; got != "25%" {
		t.Errorf("percent = %q", got)
	}

	h.c.Execute(ActionZoomReset)
	h.c.Resize(0, 0)
	if v.Zoom() != 1 {
		t.Errorf("zoom changed on a minimized window: %v", v.Zoom())
	}
}

func TestKeepZoom(t *testing.T) {
	sizes := map[int]image.Point{0: {1600, 1200}, 1: {1600, 1200}}
	h := newHarness(t, 2, sizes, Options{KeepZoom: true})
	h.c.Start(0)
	h.ready()
	h.c.Execute(ActionZoomReset)

	h.c.Execute(ActionNext)
	h.ready()
	if z := h.c.Viewport().Zoom(); z != 1 {
		t.Errorf("zoom = %v, want 1 kept", z)
	}

	h2 := newHarness(t, 2, sizes, Options{})
	h2.c.Start(0)
	h2.ready()
	h2.c.Execute(ActionZoomReset)
	h2.c.Execute(ActionNext)
	h2.ready()
	if !h2.c.Viewport().IsFit() {
		t.Errorf("zoom = %v, want fit without keepzoom", h2.c.Viewport().Zoom())
	}
}

func TestPanKeys(t *testing.T) {
	h := newHarness(t, 2, map[int]image.Point{0: {1600, 1200}}, Options{Scroll: 10})
	h.c.Start(0)
	h.ready()
	h.c.Execute(ActionZoomReset)

	h.c.Execute(ActionPanTop)
	if y := h.c.Viewport().Rect().Y; y != 0 {
		t.Errorf("pan_top Y = %d", y)
	}
	h.c.Execute(ActionPanDown)
	if y := h.c.Viewport().Rect().Y; y != -120 {
		t.Errorf("pan_down Y = %d, want -120", y)
	}
	h.c.Execute(ActionPanBottom)
	if y := h.c.Viewport().Rect().Y; y != 600-1200 {
		t.Errorf("pan_bottom Y = %d", y)
	}
	h.c.Execute(ActionPageUp)
	if y := h.c.Viewport().Rect().Y; y != 0 {
		t.Errorf("page_up Y = %d, want 0", y)
	}
}

func TestMiscActions(t *testing.T) {
	h := newHarness(t, 2, nil, Options{})
	h.c.Start(0)

	if h.c.Execute("no_such_action") {
		t.Error("unknown action accepted")
	}
	h.c.Execute(ActionToggleInfo)
	if !h.c.ShowInfo() {
		t.Error("info overlay not toggled")
	}
	h.c.Execute(ActionToggleHelp)
	if !h.c.ShowHelp() || !h.c.TakeDirty() {
		t.Error("help overlay not toggled")
	}
	h.c.Execute(ActionFullscreen)
	if h.win.fullscreen != 1 {
		t.Error("fullscreen not toggled")
	}
	h.c.Execute(ActionExit)
	if !h.c.Quit() {
		t.Error("exit did not request quit")
	}
}
