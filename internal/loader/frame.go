package loader

import (
	"image"
	"sync/atomic"

	"github.com/disintegration/imaging"

	"comix/internal/source"
)

var generation atomic.Uint64

// Frame is the decoded image in the shared slot together with the
// orientation edits the user applied to it.
type Frame struct {
	Index    int
	Path     source.ImagePath
	Original image.Image  // As decoded; Reset returns to it
	Image    *image.NRGBA // What is drawn
	Err      error        // Decode failure; Image then holds a placeholder
	Gen      uint64       // Changes whenever Image does
	Info     *source.Info // Metadata read by the worker, nil when unavailable
}

func newFrame(req Request, img image.Image, info *source.Info, err error) *Frame {
	return &Frame{
		Index:    req.Index,
		Path:     req.Path,
		Original: img,
		Image:    imaging.Clone(img),
		Err:      err,
		Gen:      generation.Add(1),
		Info:     info,
	}
}

// Size returns the current (possibly rotated) pixel dimensions.
func (f *Frame) Size() (int, int) {
	b := f.Image.Bounds()
	return b.Dx(), b.Dy()
}

// RotateCW turns the image a quarter turn clockwise.
func (f *Frame) RotateCW() { f.set(imaging.Rotate270(f.Image)) }

// RotateCCW turns the image a quarter turn counter-clockwise.
func (f *Frame) RotateCCW() { f.set(imaging.Rotate90(f.Image)) }

// FlipH mirrors the image left to right.
func (f *Frame) FlipH() { f.set(imaging.FlipH(f.Image)) }

// FlipV mirrors the image top to bottom.
func (f *Frame) FlipV() { f.set(imaging.FlipV(f.Image)) }

// Reset drops all rotations and flips.
func (f *Frame) Reset() { f.set(imaging.Clone(f.Original)) }

func (f *Frame) set(img *image.NRGBA) {
	f.Image = img
	f.Gen = generation.Add(1)
}
