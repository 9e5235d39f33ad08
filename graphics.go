package main

import (
	"bytes"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Global font source shared by the bar and the overlays
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// NewFace returns a face of the embedded font at size pixels
func NewFace(size float64) *text.GoTextFace {
	return &text.GoTextFace{
		Source: globalFontSource,
		Size:   size,
	}
}

// MeasureText returns the advance width of s in face, rounded up
func MeasureText(s string, face *text.GoTextFace) int {
	w, _ := text.Measure(s, face, 0)
	return int(math.Ceil(w))
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// DrawRectOutline draws a one pixel rectangle outline
func DrawRectOutline(screen *ebiten.Image, x, y, w, h float64, lineColor color.RGBA) {
	vector.StrokeRect(screen, float32(x)+0.5, float32(y)+0.5, float32(w)-1, float32(h)-1, 1, lineColor, false)
}
