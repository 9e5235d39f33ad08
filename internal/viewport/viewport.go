// Package viewport maps image pixel space onto the canvas: zoom around a
// focus point, pan with edge clamping, and fit.
package viewport

import (
	"fmt"
	"math"

	"comix/internal/debug"
)

// MaxZoom is the largest scale factor the viewer allows.
const MaxZoom = 2.0

// Point is a position in canvas coordinates.
type Point struct {
	X, Y int
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H int
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is a destination rectangle in canvas coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y int) bool {
	return r.X <= x && x <= r.X+r.W && r.Y <= y && y <= r.Y+r.H
}

// Viewport holds the transform state for one image on one canvas.
// It is owned by the UI goroutine and is not safe for concurrent use.
type Viewport struct {
	zoom    float64
	minZoom float64
	rect    Rect
	canvas  Size
	image   Size
	focus   Point
	frozen  bool
}

// New returns a viewport at 100% with no image and no canvas.
func New() *Viewport {
	return &Viewport{zoom: 1, minZoom: 1}
}

// Zoom returns the current scale factor.
func (v *Viewport) Zoom() float64 { return v.zoom }

// MinZoom returns the scale at which the image fits the canvas.
func (v *Viewport) MinZoom() float64 { return v.minZoom }

// Rect returns the current destination rectangle.
func (v *Viewport) Rect() Rect { return v.rect }

// Canvas returns the drawable area size.
func (v *Viewport) Canvas() Size { return v.canvas }

// Image returns the native image size.
func (v *Viewport) Image() Size { return v.image }

// Focus returns the anchor used by the last zoom.
func (v *Viewport) Focus() Point { return v.focus }

// Center returns the middle of the canvas.
func (v *Viewport) Center() Point {
	return Point{X: v.canvas.W / 2, Y: v.canvas.H / 2}
}

// IsFit reports whether the viewport is in the fit terminal state.
func (v *Viewport) IsFit() bool {
	return v.zoom == v.minZoom
}

// Overflows reports whether the image is larger than the canvas on either axis.
func (v *Viewport) Overflows() bool {
	return v.rect.W > v.canvas.W || v.rect.H > v.canvas.H
}

// Percent formats the zoom as a rounded percentage, e.g. "150%".
func (v *Viewport) Percent() string {
	return fmt.Sprintf("%.0f%%", math.Round(v.zoom*100))
}

// SetCanvas updates the drawable area. A zero-sized canvas (minimized window)
// freezes the last valid transform until a usable size arrives; it returns
// false then.
func (v *Viewport) SetCanvas(w, h int) bool {
	size := Size{W: w, H: h}
	if size.Empty() {
		debug.Log(debug.VIEW, "freezing on empty canvas %dx%d", w, h)
		v.frozen = true
		return false
	}
	v.canvas = size
	v.frozen = false
	return true
}

// Frozen reports whether the last canvas update was empty.
func (v *Viewport) Frozen() bool { return v.frozen }

// SetImage replaces the native image size and recomputes the minimum zoom.
// The rectangle is left untouched until the next Zoom or Fit.
func (v *Viewport) SetImage(w, h int) {
	v.image = Size{W: w, H: h}
	v.UpdateMinZoom()
}

// UpdateMinZoom recomputes the fit scale from the canvas and image sizes.
// It is a no-op while either size is empty.
func (v *Viewport) UpdateMinZoom() {
	if v.frozen || v.canvas.Empty() || v.image.Empty() {
		return
	}
	sw := float64(v.canvas.W) / float64(v.image.W)
	sh := float64(v.canvas.H) / float64(v.image.H)
	v.minZoom = math.Min(math.Min(sw, sh), 1)
}

func (v *Viewport) ready() bool {
	return !v.frozen && !v.canvas.Empty() && !v.image.Empty()
}

// SetZoom scales the image to target (clamped to [MinZoom, MaxZoom]) keeping
// the image point under focus visually fixed. Reaching MinZoom re-centers.
func (v *Viewport) SetZoom(target float64, focus Point) {
	if !v.ready() {
		return
	}
	v.focus = focus
	v.zoom = clamp(target, v.minZoom, MaxZoom)

	x := float64(focus.X - v.rect.X)
	y := float64(focus.Y - v.rect.Y)
	oldW := float64(v.rect.W)
	oldH := float64(v.rect.H)

	v.rect.W = int(math.Round(float64(v.image.W) * v.zoom))
	v.rect.H = int(math.Round(float64(v.image.H) * v.zoom))

	if v.zoom > v.minZoom && oldW > 0 && oldH > 0 {
		dx := int(x - x*float64(v.rect.W)/oldW)
		dy := int(y - y*float64(v.rect.H)/oldH)

		// Pulling away from a far edge would uncover background; go the other way.
		if v.rect.X+v.rect.W < v.canvas.W {
			dx = -dx
		}
		if v.rect.Y+v.rect.H < v.canvas.H {
			dy = -dy
		}
		v.Pan(dx, dy)
	} else {
		v.center()
	}

	debug.Log(debug.VIEW, "zoom %.3f (min %.3f) rect %+v focus %+v", v.zoom, v.minZoom, v.rect, focus)
}

// Pan moves the rectangle by (dx, dy). Axes on which the image is not larger
// than the canvas stay centered; otherwise the image stops hard at the edge.
func (v *Viewport) Pan(dx, dy int) {
	if !v.ready() {
		return
	}
	v.rect.X = panAxis(v.rect.X, v.rect.W, v.canvas.W, dx)
	v.rect.Y = panAxis(v.rect.Y, v.rect.H, v.canvas.H, dy)
}

func panAxis(offset, size, canvas, delta int) int {
	if size <= canvas {
		return (canvas - size) / 2
	}
	next := offset + delta
	if next <= 0 && next+size >= canvas {
		return next
	}
	if delta > 0 {
		return 0
	}
	return canvas - size
}

// PanTo moves the top edge to y, subject to the same clamping as Pan.
func (v *Viewport) PanTo(y int) {
	v.Pan(0, y-v.rect.Y)
}

// Fit recomputes the minimum zoom and scales to it around the canvas center.
func (v *Viewport) Fit() {
	v.UpdateMinZoom()
	v.SetZoom(v.minZoom, v.Center())
}

// Refit re-derives MinZoom after a canvas change. In the fit state the image
// is fitted again; otherwise the absolute zoom is kept and re-clamped.
func (v *Viewport) Refit() {
	if v.IsFit() {
		v.Fit()
		return
	}
	origin := Point{X: v.rect.X, Y: v.rect.Y}
	v.UpdateMinZoom()
	v.SetZoom(v.zoom, origin)
}

func (v *Viewport) center() {
	v.rect.X = (v.canvas.W - v.rect.W) / 2
	v.rect.Y = (v.canvas.H - v.rect.H) / 2
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
