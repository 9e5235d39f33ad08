package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	DoubleClickTime int // milliseconds
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		DoubleClickTime: 300,
	}
}

// DoubleClickTracker tracks double-click state
type DoubleClickTracker struct {
	lastClickTime   time.Time
	lastClickButton ebiten.MouseButton
	clickCount      int
}

// MouseCombination represents a mouse action with optional modifiers
type MouseCombination struct {
	Button        ebiten.MouseButton
	IsWheel       bool
	WheelDeltaX   float64
	WheelDeltaY   float64
	IsDoubleClick bool
	Shift         bool
	Ctrl          bool
	Alt           bool
}

// reserved reports whether the combination is taken by the built-in pointer
// handling: the unmodified primary button drives the control bar, clicks
// beside the image and drag panning, and the unmodified wheel zooms.
func (c *MouseCombination) reserved() bool {
	if c.Shift || c.Ctrl || c.Alt {
		return false
	}
	return c.IsWheel || c.Button == ebiten.MouseButtonLeft
}

// MousebindingManager handles dynamic mouse binding processing
type MousebindingManager struct {
	mousebindings      map[string][]string
	mouseMapping       map[string]ebiten.MouseButton
	settings           MouseSettings
	doubleClickTracker DoubleClickTracker
	wheelUsed          bool
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	return &MousebindingManager{
		mousebindings: mousebindings,
		mouseMapping:  getMouseMapping(),
		settings:      settings,
		doubleClickTracker: DoubleClickTracker{
			lastClickTime: time.Now(),
		},
	}
}

// getMouseMapping returns a mapping from string mouse actions to Ebiten mouse buttons
func getMouseMapping() map[string]ebiten.MouseButton {
	return map[string]ebiten.MouseButton{
		"LeftClick":   ebiten.MouseButtonLeft,
		"RightClick":  ebiten.MouseButtonRight,
		"MiddleClick": ebiten.MouseButtonMiddle,
		"Back":        ebiten.MouseButton3, // Back button (side button)
		"Forward":     ebiten.MouseButton4, // Forward button (side button)
	}
}

// parseMouseString parses a mouse string like "Shift+LeftClick" or "WheelUp" into a MouseCombination
func (mm *MousebindingManager) parseMouseString(mouseStr string) (*MouseCombination, bool) {
	parts := strings.Split(mouseStr, "+")
	actionName := parts[len(parts)-1]
	combination := &MouseCombination{}

	switch {
	case strings.HasPrefix(actionName, "Wheel"):
		combination.IsWheel = true
		switch actionName {
		case "WheelUp":
			combination.WheelDeltaY = 1.0
		case "WheelDown":
			combination.WheelDeltaY = -1.0
		case "WheelLeft":
			combination.WheelDeltaX = -1.0
		case "WheelRight":
			combination.WheelDeltaX = 1.0
		default:
			return nil, false
		}
	case strings.HasPrefix(actionName, "Double"):
		combination.IsDoubleClick = true
		button, exists := mm.mouseMapping[strings.TrimPrefix(actionName, "Double")]
		if !exists {
			return nil, false
		}
		combination.Button = button
	default:
		button, exists := mm.mouseMapping[actionName]
		if !exists {
			return nil, false
		}
		combination.Button = button
	}

	if !parseModifiers(parts[:len(parts)-1], &combination.Shift, &combination.Ctrl, &combination.Alt) {
		return nil, false
	}
	return combination, true
}

// isMouseActionTriggered checks if a mouse combination is triggered this frame
func (mm *MousebindingManager) isMouseActionTriggered(combination *MouseCombination) bool {
	if combination.reserved() {
		return false
	}
	if !modifiersMatch(combination.Shift, combination.Ctrl, combination.Alt) {
		return false
	}

	if combination.IsWheel {
		wheelX, wheelY := ebiten.Wheel()
		if combination.WheelDeltaX != 0 {
			return combination.WheelDeltaX*wheelX > 0
		}
		return combination.WheelDeltaY*wheelY > 0
	}

	if combination.IsDoubleClick {
		return mm.checkDoubleClick(combination.Button)
	}

	return inpututil.IsMouseButtonJustPressed(combination.Button)
}

// checkDoubleClick checks if a double-click occurred for the given button
func (mm *MousebindingManager) checkDoubleClick(button ebiten.MouseButton) bool {
	if !inpututil.IsMouseButtonJustPressed(button) {
		return false
	}

	now := time.Now()
	elapsed := now.Sub(mm.doubleClickTracker.lastClickTime)
	mm.doubleClickTracker.lastClickTime = now

	if mm.doubleClickTracker.lastClickButton == button &&
		elapsed <= time.Duration(mm.settings.DoubleClickTime)*time.Millisecond {
		mm.doubleClickTracker.clickCount++
		if mm.doubleClickTracker.clickCount == 2 {
			mm.doubleClickTracker.clickCount = 0
			return true
		}
		return false
	}

	mm.doubleClickTracker.clickCount = 1
	mm.doubleClickTracker.lastClickButton = button
	return false
}

// BeginFrame clears per-frame state. Call it before checking any action.
func (mm *MousebindingManager) BeginFrame() {
	mm.wheelUsed = false
}

// WheelUsed reports whether a wheel binding fired since BeginFrame.
func (mm *MousebindingManager) WheelUsed() bool {
	return mm.wheelUsed
}

// CheckAction checks if any mouse binding for the given action is triggered
func (mm *MousebindingManager) CheckAction(action string) bool {
	for _, mouseStr := range mm.mousebindings[action] {
		combination, valid := mm.parseMouseString(mouseStr)
		if valid && mm.isMouseActionTriggered(combination) {
			if combination.IsWheel {
				mm.wheelUsed = true
			}
			return true
		}
	}
	return false
}

// ExecuteAction runs the action when one of its mouse bindings fired
func (mm *MousebindingManager) ExecuteAction(action string, executor ActionExecutor) bool {
	if !mm.CheckAction(action) {
		return false
	}
	return executor.Execute(action)
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// validateMousebindings validates mouse binding formats and detects conflicts
func validateMousebindings(mousebindings map[string][]string) error {
	mm := NewMousebindingManager(nil, GetDefaultMouseSettings())
	bindingToAction := make(map[string]string)

	actions := make([]string, 0, len(mousebindings))
	for action := range mousebindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		for _, mouseStr := range mousebindings[action] {
			combination, ok := mm.parseMouseString(mouseStr)
			if !ok {
				return fmt.Errorf("invalid mouse binding '%s' for action '%s'", mouseStr, action)
			}
			if combination.reserved() {
				return fmt.Errorf("mouse binding '%s' for action '%s' is reserved", mouseStr, action)
			}
			if existing, exists := bindingToAction[mouseStr]; exists {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", mouseStr, existing, action)
			}
			bindingToAction[mouseStr] = action
		}
	}
	return nil
}

// buildMousebindings merges overrides into the defaults, falling back to the
// defaults entirely when the result does not validate.
func buildMousebindings(overrides map[string][]string) (map[string][]string, []string) {
	merged, warnings := mergeBindings(GetDefaultMousebindings(), overrides)
	if err := validateMousebindings(merged); err != nil {
		warnings = append(warnings, fmt.Sprintf("Mouse binding errors: %v", err))
		return GetDefaultMousebindings(), warnings
	}
	return merged, warnings
}
