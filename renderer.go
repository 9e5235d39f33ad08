package main

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"comix/internal/control"
	"comix/internal/debug"
	"comix/internal/loader"
	"comix/internal/settings"
	"comix/internal/source"
	"comix/internal/widget"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorDisabled  = color.RGBA{120, 120, 120, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}

	colorBar        = color.RGBA{73, 73, 73, 255}
	colorBarFocused = color.RGBA{100, 100, 100, 255}
	colorBarActive  = color.RGBA{45, 45, 45, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
)

// barFontSize fits a label inside the bar height.
const barFontSize = 12

// RendererConfig carries what the renderer needs besides the UI state
type RendererConfig struct {
	Slot          control.Slot
	Background    color.RGBA
	FontSize      float64
	Keybindings   map[string][]string
	Mousebindings map[string][]string
	ConfigStatus  settings.LoadResult
}

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
	config      RendererConfig
	barFont     *text.GoTextFace
	overlayFont *text.GoTextFace

	texture  *ebiten.Image
	texIndex int
	texGen   uint64

	infoIndex int
	infoText  []string
}

// NewRenderer creates a new Renderer. InitGraphics must have been called.
func NewRenderer(renderState RenderState, config RendererConfig) *Renderer {
	return &Renderer{
		renderState: renderState,
		config:      config,
		barFont:     NewFace(barFontSize),
		overlayFont: NewFace(config.FontSize),
		texIndex:    -1,
		infoIndex:   -1,
	}
}

// newBarMeasure returns the widget.MeasureFunc for bar text controls.
// InitGraphics must have been called.
func newBarMeasure() widget.MeasureFunc {
	face := NewFace(barFontSize)
	return func(label string) int {
		return MeasureText(label, face)
	}
}

// Draw renders the whole window. It reports false when the frame slot was
// busy and the image could not be brought up to date, so the caller draws
// again on the next frame.
func (r *Renderer) Draw(screen *ebiten.Image) bool {
	screen.Fill(r.config.Background)

	view := r.renderState.Viewport()
	canvas := view.Canvas()
	area := screen.SubImage(image.Rect(0, 0, canvas.W, canvas.H)).(*ebiten.Image)

	complete := true
	if r.renderState.Loading() {
		r.drawStatus(area, "Loading…")
	} else {
		complete = r.syncTexture()
		if r.texture != nil && r.texIndex == r.renderState.Navigation().Index() {
			r.drawImage(area)
		} else {
			r.drawStatus(area, "Loading…")
		}
	}

	r.drawBar(screen)

	// While loading, ImageReady marks the frame dirty again.
	if r.renderState.ShowInfo() && !r.drawInfoDisplay(screen) && !r.renderState.Loading() {
		complete = false
	}
	if r.renderState.ShowHelp() {
		r.drawHelpOverlay(screen)
	}
	return complete
}

// syncTexture rebuilds the GPU texture when the frame slot holds a newer
// image for the current index. It never blocks on the worker.
func (r *Renderer) syncTexture() bool {
	current := r.renderState.Navigation().Index()
	return r.config.Slot.TryWith(func(f *loader.Frame) {
		if f.Index != current || (f.Index == r.texIndex && f.Gen == r.texGen) {
			return
		}
		old := r.texture
		r.texture = ebiten.NewImageFromImage(f.Image)
		r.texIndex = f.Index
		r.texGen = f.Gen
		if old != nil {
			old.Deallocate()
		}
		debug.Log(debug.VIEW, "texture for [%d] gen %d", f.Index+1, f.Gen)
	})
}

// Release frees the GPU texture.
func (r *Renderer) Release() {
	if r.texture != nil {
		r.texture.Deallocate()
		r.texture = nil
		r.texIndex = -1
	}
}

func (r *Renderer) drawImage(area *ebiten.Image) {
	rect := r.renderState.Viewport().Rect()
	tw, th := r.texture.Bounds().Dx(), r.texture.Bounds().Dy()
	if rect.W <= 0 || rect.H <= 0 || tw == 0 || th == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(float64(rect.W)/float64(tw), float64(rect.H)/float64(th))
	op.GeoM.Translate(float64(rect.X), float64(rect.Y))
	area.DrawImage(r.texture, op)
}

func (r *Renderer) drawStatus(area *ebiten.Image, message string) {
	w, h := text.Measure(message, r.overlayFont, 0)
	x := float64(area.Bounds().Dx())/2 - w/2
	y := float64(area.Bounds().Dy())/2 - h/2
	DrawText(area, message, r.overlayFont, x, y, colorGray)
}

func (r *Renderer) drawBar(screen *ebiten.Image) {
	bar := r.renderState.Bar()
	width := float64(screen.Bounds().Dx())
	DrawFilledRect(screen, 0, float64(bar.Y()), width, widget.BarHeight, colorBar)

	for _, w := range bar.All() {
		x, y := float64(w.Rect.X), float64(w.Rect.Y)
		rw, rh := float64(w.Rect.W), float64(w.Rect.H)

		labelColor := colorWhite
		switch w.State {
		case widget.Disabled:
			labelColor = colorDisabled
		case widget.Focused:
			DrawFilledRect(screen, x, y, rw, rh, colorBarFocused)
			DrawRectOutline(screen, x, y, rw, rh, colorGray)
		case widget.Active:
			DrawFilledRect(screen, x, y, rw, rh, colorBarActive)
			DrawRectOutline(screen, x, y, rw, rh, colorGray)
		}

		lw, lh := text.Measure(w.Label, r.barFont, 0)
		DrawText(screen, w.Label, r.barFont, x+(rw-lw)/2, y+(rh-lh)/2, labelColor)
	}
}

// infoLines builds the info overlay text, cached per index. The metadata
// comes from the frame in the slot; false means the slot was busy and the
// lines lack it for now.
func (r *Renderer) infoLines() ([]string, bool) {
	nav := r.renderState.Navigation()
	if r.infoIndex == nav.Index() && r.infoText != nil {
		return r.infoText, true
	}

	var info *source.Info
	current := false
	ok := r.config.Slot.TryWith(func(f *loader.Frame) {
		if f.Index == nav.Index() {
			info = f.Info
			current = true
		}
	})

	lines := infoText(nav.Current(), nav.Index(), nav.Len(), info, r.renderState.Viewport().Percent())
	if !ok || !current {
		return lines, false
	}
	r.infoIndex = nav.Index()
	r.infoText = lines
	return lines, true
}

// infoText lays out the overlay lines. The last line is the zoom.
func infoText(p source.ImagePath, index, count int, info *source.Info, zoom string) []string {
	lines := []string{
		p.Name(),
		fmt.Sprintf("%d / %d", index+1, count),
	}
	if p.InArchive() {
		lines = append(lines, "Archive: "+p.ArchivePath)
	}
	if info == nil {
		lines = append(lines, "No metadata")
	} else {
		lines = append(lines, fmt.Sprintf("%dx%d %s, %s", info.Width, info.Height, info.Format, formatSize(info.Size)))
		if info.Model != "" {
			lines = append(lines, "Camera: "+info.Model)
		}
		if info.Taken != "" {
			lines = append(lines, "Taken: "+info.Taken)
		}
	}
	return append(lines, "Zoom: "+zoom)
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image) bool {
	lines, complete := r.infoLines()
	// The zoom line is always live.
	lines[len(lines)-1] = "Zoom: " + r.renderState.Viewport().Percent()

	lineHeight := r.config.FontSize * 1.4
	maxWidth := 0.0
	for _, line := range lines {
		if w, _ := text.Measure(line, r.overlayFont, 0); w > maxWidth {
			maxWidth = w
		}
	}

	padding := 10.0
	bgPadding := 5.0
	DrawFilledRect(screen, padding-bgPadding, padding-bgPadding,
		maxWidth+bgPadding*2, lineHeight*float64(len(lines))+bgPadding*2, bgColorLight)

	y := padding
	for _, line := range lines {
		DrawText(screen, line, r.overlayFont, padding, y, colorWhite)
		y += lineHeight
	}
	return complete
}

// getActionsList returns a sorted list of all actions that have bindings
func (r *Renderer) getActionsList() []string {
	actionSet := make(map[string]bool)
	for action, keys := range r.config.Keybindings {
		if len(keys) > 0 {
			actionSet[action] = true
		}
	}
	for action, buttons := range r.config.Mousebindings {
		if len(buttons) > 0 {
			actionSet[action] = true
		}
	}

	actions := make([]string, 0, len(actionSet))
	for action := range actionSet {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return actions
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	padding := 20.0
	lineHeight := r.config.FontSize * 1.4
	descriptions := GetActionDescriptions()
	actions := r.getActionsList()

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, padding, padding, w-padding*2, h-padding*2, bgColorMedium)

	// Column positions from the widest entries
	maxActionWidth, maxInputWidth := 0.0, 0.0
	inputs := make(map[string]string, len(actions))
	for _, action := range actions {
		var parts []string
		if keys := r.config.Keybindings[action]; len(keys) > 0 {
			parts = append(parts, strings.Join(keys, ", "))
		}
		if buttons := r.config.Mousebindings[action]; len(buttons) > 0 {
			parts = append(parts, strings.Join(buttons, ", "))
		}
		inputs[action] = strings.Join(parts, " | ")

		if aw, _ := text.Measure(action, r.overlayFont, 0); aw > maxActionWidth {
			maxActionWidth = aw
		}
		if iw, _ := text.Measure(inputs[action], r.overlayFont, 0); iw > maxInputWidth {
			maxInputWidth = iw
		}
	}

	actionX := padding * 2
	inputX := actionX + maxActionWidth + 20
	descX := inputX + maxInputWidth + 20

	y := padding * 2
	DrawText(screen, "Controls (Keyboard | Mouse):", r.overlayFont, actionX, y, colorWhite)
	y += lineHeight * 1.5

	bottom := h - padding*2 - lineHeight*2
	for _, action := range actions {
		if y > bottom {
			DrawText(screen, "…", r.overlayFont, actionX, y, colorGray)
			y += lineHeight
			break
		}
		DrawText(screen, action, r.overlayFont, actionX, y, colorLightBlue)

		x := inputX
		if keys := r.config.Keybindings[action]; len(keys) > 0 {
			keyList := strings.Join(keys, ", ")
			DrawText(screen, keyList, r.overlayFont, x, y, colorYellow)
			kw, _ := text.Measure(keyList, r.overlayFont, 0)
			x += kw
			if len(r.config.Mousebindings[action]) > 0 {
				DrawText(screen, " | ", r.overlayFont, x, y, colorWhite)
				sw, _ := text.Measure(" | ", r.overlayFont, 0)
				x += sw
			}
		}
		if buttons := r.config.Mousebindings[action]; len(buttons) > 0 {
			DrawText(screen, strings.Join(buttons, ", "), r.overlayFont, x, y, colorCyan)
		}

		DrawText(screen, descriptions[action], r.overlayFont, descX, y, colorGray)
		y += lineHeight
	}

	status := r.config.ConfigStatus
	statusColor := colorGreen
	if status.Status == settings.StatusWarning {
		statusColor = colorOrange
	}
	DrawText(screen, "Config Status: "+status.Status, r.overlayFont, actionX, y+lineHeight/2, statusColor)
	if len(status.Warnings) > 0 {
		warning := status.Warnings[0]
		warning = truncateRunes(warning, 60)
		DrawText(screen, "• "+warning, r.overlayFont, actionX, y+lineHeight*1.5, colorLightRed)
	}
}

// truncateRunes shortens s to at most limit runes, ending in "...".
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
