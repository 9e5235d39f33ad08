package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"comix/internal/control"
	"comix/internal/debug"
)

// ebitenWindow drives the real window for the controller
type ebitenWindow struct {
	savedW, savedH int
}

func (w *ebitenWindow) SetTitle(title string) {
	ebiten.SetWindowTitle(title)
}

func (w *ebitenWindow) SetCursor(c control.Cursor) {
	switch c {
	case control.CursorMove:
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// ToggleFullscreen switches modes, restoring the windowed size on the way back.
func (w *ebitenWindow) ToggleFullscreen() {
	if !ebiten.IsFullscreen() {
		w.savedW, w.savedH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
		debug.Log(debug.APP, "fullscreen on, saved %dx%d", w.savedW, w.savedH)
		return
	}
	ebiten.SetFullscreen(false)
	if w.savedW > 0 && w.savedH > 0 {
		ebiten.SetWindowSize(w.savedW, w.savedH)
	}
	debug.Log(debug.APP, "fullscreen off")
}

// geometry returns the windowed position and size, or the size saved before
// going fullscreen.
func (w *ebitenWindow) geometry() (x, y, width, height int) {
	x, y = ebiten.WindowPosition()
	width, height = ebiten.WindowSize()
	if ebiten.IsFullscreen() && w.savedW > 0 && w.savedH > 0 {
		width, height = w.savedW, w.savedH
	}
	return x, y, width, height
}
