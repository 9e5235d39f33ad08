package viewport

import "math"

// ZoomStep is the increment used by the wheel and the zoom buttons.
const ZoomStep = 0.1

// stepEpsilon absorbs float noise such as 0.3*10 = 3.0000000000000004.
const stepEpsilon = 1e-6

// NextStep returns the zoom one step above or below current. A zoom that sits
// between two multiples of ZoomStep snaps to the neighbouring multiple first,
// so 1.37 goes to 1.4 (up) or 1.3 (down).
func NextStep(current float64, up bool) float64 {
	steps := current / ZoomStep
	lower := math.Floor(steps + stepEpsilon)

	if up {
		return (lower + 1) * ZoomStep
	}
	if steps-lower > stepEpsilon {
		return lower * ZoomStep
	}
	return (lower - 1) * ZoomStep
}

// StepZoom zooms one step in or out around focus.
func (v *Viewport) StepZoom(up bool, focus Point) {
	v.SetZoom(NextStep(v.zoom, up), focus)
}
