package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"comix/internal/control"
)

// InputHandler turns ebiten input state into controller events
type InputHandler struct {
	controller          *control.Controller
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	actions             []string

	lastX, lastY int
	inside       bool
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(controller *control.Controller, km *KeybindingManager, mm *MousebindingManager) *InputHandler {
	return &InputHandler{
		controller:          controller,
		keybindingManager:   km,
		mousebindingManager: mm,
		actions:             GetActionNames(),
		inside:              true,
	}
}

// HandleInput processes all input for the current frame. The screen size
// comes from the last Layout.
func (h *InputHandler) HandleInput(screenW, screenH int) {
	h.handleBindings()
	h.handlePointer(screenW, screenH)
}

// handleBindings runs every action whose key or mouse binding fired.
func (h *InputHandler) handleBindings() {
	h.mousebindingManager.BeginFrame()
	for _, action := range h.actions {
		if h.keybindingManager.ExecuteAction(action, h.controller) {
			continue
		}
		h.mousebindingManager.ExecuteAction(action, h.controller)
	}
}

// handlePointer feeds the primary button, motion and the wheel.
func (h *InputHandler) handlePointer(screenW, screenH int) {
	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < screenW && y < screenH && ebiten.IsFocused()

	if !inside {
		if h.inside {
			h.controller.Leave()
		}
		h.inside = false
		return
	}
	h.inside = true

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if modifiersMatch(false, false, false) {
			h.controller.PointerDown(x, y)
		}
	}

	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if x != h.lastX || y != h.lastY {
		h.controller.Motion(x, y, held)
		h.lastX, h.lastY = x, y
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.controller.PointerUp(x, y)
	}

	if _, dy := ebiten.Wheel(); dy != 0 && !h.mousebindingManager.WheelUsed() && modifiersMatch(false, false, false) {
		h.controller.Wheel(dy, x, y)
	}
}
