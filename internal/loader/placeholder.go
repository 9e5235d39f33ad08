package loader

import (
	"image"
	"image/color"
	"log"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Placeholder size used when a decode fails.
const (
	PlaceholderWidth  = 400
	PlaceholderHeight = 300
)

var placeholderFace = sync.OnceValue(func() font.Face {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("Warning: placeholder font unavailable: %v", err)
		return nil
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    18,
		DPI:     72,
		Hinting: font.HintingFull,
	})
})

// Placeholder renders an error panel naming the file and the failure. It
// runs on the worker goroutine, so it draws on the CPU.
func Placeholder(width, height int, filename, reason string) *image.NRGBA {
	if width <= 0 || height <= 0 {
		width, height = PlaceholderWidth, PlaceholderHeight
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.RGBA{120, 30, 30, 255})
	dc.Clear()

	dc.SetColor(color.White)
	dc.SetLineWidth(3)
	dc.DrawRectangle(1.5, 1.5, float64(width)-3, float64(height)-3)
	dc.Stroke()

	if face := placeholderFace(); face != nil {
		dc.SetFontFace(face)
		maxWidth := float64(width - 20)
		dc.DrawString("ERROR", 10, 30)
		dc.DrawString(truncate(dc, "File: "+filepath.Base(filename), maxWidth), 10, 60)
		dc.DrawString(truncate(dc, "Reason: "+reason, maxWidth), 10, 90)
	}

	return imaging.Clone(dc.Image())
}

func truncate(dc *gg.Context, s string, maxWidth float64) string {
	if w, _ := dc.MeasureString(s); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			return candidate
		}
	}
	return ""
}
