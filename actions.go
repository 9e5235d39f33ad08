package main

import "comix/internal/control"

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default keybindings, mouse bindings, and descriptions
var actionDefinitions = []ActionDefinition{
	{control.ActionExit, []string{"Ctrl+KeyW", "Escape", "KeyQ"}, []string{}, "Quit application"},
	{control.ActionToggleHelp, []string{"Shift+Slash"}, []string{}, "Show/hide help"},
	{control.ActionToggleInfo, []string{"KeyI"}, []string{"RightClick"}, "Show/hide image info"},
	{control.ActionFullscreen, []string{"Enter", "F11"}, []string{"MiddleClick"}, "Toggle fullscreen"},

	// Navigation
	{control.ActionNext, []string{"Space", "KeyN"}, []string{"Forward", "Shift+WheelDown"}, "Next image"},
	{control.ActionPrevious, []string{"Backspace", "KeyP"}, []string{"Back", "Shift+WheelUp"}, "Previous image"},
	{control.ActionLeft, []string{"ArrowLeft"}, []string{}, "Page left (follows reading direction)"},
	{control.ActionRight, []string{"ArrowRight"}, []string{}, "Page right (follows reading direction)"},
	{control.ActionFirst, []string{"Ctrl+Home", "Shift+Comma"}, []string{}, "First image"},
	{control.ActionLast, []string{"Ctrl+End", "Shift+Period"}, []string{}, "Last image"},
	{control.ActionJumpFirst, []string{}, []string{}, "Jump to the first image (page number click)"},

	// Zoom
	{control.ActionZoomIn, []string{"Ctrl+Equal", "Ctrl+Shift+Equal"}, []string{}, "Zoom in"},
	{control.ActionZoomOut, []string{"Ctrl+Minus"}, []string{}, "Zoom out"},
	{control.ActionZoomReset, []string{"Ctrl+Key0"}, []string{"Shift+MiddleClick"}, "Zoom to 100%"},
	{control.ActionZoomFit, []string{"Ctrl+Key1"}, []string{}, "Fit to window"},

	// Pan
	{control.ActionPanUp, []string{"ArrowUp"}, []string{}, "Pan up"},
	{control.ActionPanDown, []string{"ArrowDown"}, []string{}, "Pan down"},
	{control.ActionPanLeft, []string{"Shift+ArrowLeft"}, []string{}, "Pan left"},
	{control.ActionPanRight, []string{"Shift+ArrowRight"}, []string{}, "Pan right"},
	{control.ActionPageUp, []string{"PageUp"}, []string{}, "Pan up one screen"},
	{control.ActionPageDown, []string{"PageDown"}, []string{}, "Pan down one screen"},
	{control.ActionPanTop, []string{"Home"}, []string{}, "Pan to top"},
	{control.ActionPanBottom, []string{"End"}, []string{}, "Pan to bottom"},

	// Transformations
	{control.ActionRotateLeft, []string{"KeyL"}, []string{}, "Rotate left 90 degrees"},
	{control.ActionRotateRight, []string{"KeyR"}, []string{}, "Rotate right 90 degrees"},
	{control.ActionFlipHorizontal, []string{"KeyH"}, []string{}, "Flip horizontally"},
	{control.ActionFlipVertical, []string{"KeyV"}, []string{}, "Flip vertically"},
	{control.ActionResetImage, []string{"KeyO"}, []string{}, "Restore original orientation"},
}

// GetDefaultKeybindings generates default keybindings from action definitions
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string, len(actionDefinitions))
	for _, def := range actionDefinitions {
		if len(def.Keys) > 0 {
			keybindings[def.Name] = append([]string(nil), def.Keys...)
		}
	}
	return keybindings
}

// GetDefaultMousebindings generates default mouse bindings from action definitions
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string, len(actionDefinitions))
	for _, def := range actionDefinitions {
		if len(def.MouseActions) > 0 {
			mousebindings[def.Name] = append([]string(nil), def.MouseActions...)
		}
	}
	return mousebindings
}

// GetActionDescriptions generates action descriptions from action definitions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string, len(actionDefinitions))
	for _, def := range actionDefinitions {
		descriptions[def.Name] = def.Description
	}
	return descriptions
}

// GetActionNames returns all action names in definition order
func GetActionNames() []string {
	names := make([]string, len(actionDefinitions))
	for i, def := range actionDefinitions {
		names[i] = def.Name
	}
	return names
}

func isKnownAction(name string) bool {
	for _, def := range actionDefinitions {
		if def.Name == name {
			return true
		}
	}
	return false
}
