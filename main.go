package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"comix/internal/control"
	"comix/internal/debug"
	"comix/internal/loader"
	"comix/internal/navigation"
	"comix/internal/settings"
	"comix/internal/source"
	"comix/internal/viewport"
	"comix/internal/widget"
)

// cacheSize is how many decoded images the loader keeps
const cacheSize = 4

type Game struct {
	controller *control.Controller
	pipeline   *loader.Pipeline
	renderer   *Renderer
	input      *InputHandler
	window     *ebitenWindow

	start        int
	started      bool
	needsDraw    bool
	lastSnapshot *RenderStateSnapshot
	screenW      int
	screenH      int
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	snapshot := &RenderStateSnapshot{
		WindowWidth:  g.screenW,
		WindowHeight: g.screenH,
		Fullscreen:   ebiten.IsFullscreen(),
	}
	if !snapshot.Equals(g.lastSnapshot) {
		g.controller.Resize(g.screenW, g.screenH)
		g.lastSnapshot = snapshot
	}

	if !g.started {
		g.controller.Start(g.start)
		g.started = true
	}

	for {
		res, ok := g.pipeline.Poll()
		if !ok {
			break
		}
		debug.Log(debug.LOAD, "ready [%d] %s err=%v", res.Index+1, res.Path.Name(), res.Err)
		g.controller.ImageReady(res)
	}

	g.input.HandleInput(g.screenW, g.screenH)

	if g.controller.TakeDirty() {
		g.needsDraw = true
	}
	if g.controller.Quit() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.needsDraw {
		return
	}
	g.needsDraw = !g.renderer.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-config file] <image | directory | archive>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", settings.DefaultPath(), "settings file")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	configResult := settings.Load(*configPath)
	cfg := configResult.Settings

	paths, start, err := source.Resolve(flag.Arg(0), cfg.Sort)
	if err != nil {
		switch {
		case source.IsNotExist(err):
			fmt.Fprintf(os.Stderr, "comix: %s: no such file or directory\n", flag.Arg(0))
		case errors.Is(err, source.ErrNoImages):
			fmt.Fprintf(os.Stderr, "comix: %s: no images found\n", flag.Arg(0))
		default:
			fmt.Fprintf(os.Stderr, "comix: %v\n", err)
		}
		usage()
		os.Exit(1)
	}
	debug.Log(debug.APP, "%d images, starting at [%d]", len(paths), start+1)

	keybindings, keyWarnings := buildKeybindings(cfg.Keys)
	mousebindings, mouseWarnings := buildMousebindings(cfg.Mouse)
	for _, w := range append(keyWarnings, mouseWarnings...) {
		log.Printf("Warning: %s", w)
		configResult.Warnings = append(configResult.Warnings, w)
		configResult.Status = settings.StatusWarning
	}

	if err := InitGraphics(); err != nil {
		log.Fatalf("Error: Failed to load font: %v", err)
	}

	pipeline := loader.New(source.FileDecoder{}, cacheSize)
	nav, err := navigation.New(paths, pipeline)
	if err != nil {
		log.Fatal(err)
	}

	window := &ebitenWindow{}
	bar := widget.NewBar(newBarMeasure())
	controller := control.New(viewport.New(), nav, pipeline, bar, window, control.Options{
		ReadRight: cfg.ReadRight,
		KeepZoom:  cfg.KeepZoom,
		Scroll:    cfg.Scroll,
	})
	renderer := NewRenderer(controller, RendererConfig{
		Slot:          pipeline,
		Background:    cfg.Background,
		FontSize:      float64(cfg.FontSize),
		Keybindings:   keybindings,
		Mousebindings: mousebindings,
		ConfigStatus:  configResult,
	})

	g := &Game{
		controller: controller,
		pipeline:   pipeline,
		renderer:   renderer,
		window:     window,
		start:      start,
		needsDraw:  true,
		input: NewInputHandler(controller,
			NewKeybindingManager(keybindings),
			NewMousebindingManager(mousebindings, GetDefaultMouseSettings())),
	}

	setupWindow(cfg)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetWindowClosingHandled(true)

	runErr := ebiten.RunGame(g)

	pipeline.Close()
	renderer.Release()

	x, y, w, h := window.geometry()
	if err := settings.SaveLastSize(*configPath, settings.Geometry{X: x, Y: y, W: w, H: h}); err != nil {
		log.Printf("Warning: Failed to save window size: %v", err)
	}

	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}

// setupWindow applies the startup window settings
func setupWindow(cfg settings.Settings) {
	ebiten.SetWindowTitle("Comix")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowDecorated(!cfg.Borderless)

	if g := cfg.LastSize; g != nil {
		ebiten.SetWindowSize(g.W, g.H)
		ebiten.SetWindowPosition(g.X, g.Y)
	} else {
		ebiten.SetWindowSize(settings.DefaultWidth, settings.DefaultHeight)
	}

	switch cfg.Mode {
	case settings.ModeFull:
		ebiten.SetFullscreen(true)
	case settings.ModeMax:
		ebiten.MaximizeWindow()
	}
}
