package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeybindingManager handles dynamic keybinding processing
type KeybindingManager struct {
	keybindings map[string][]string
	keyMapping  map[string]ebiten.Key
}

// NewKeybindingManager creates a new KeybindingManager
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	return &KeybindingManager{
		keybindings: keybindings,
		keyMapping:  getKeyMapping(),
	}
}

// getKeyMapping returns a mapping from string keys to Ebiten keys
func getKeyMapping() map[string]ebiten.Key {
	return map[string]ebiten.Key{
		// Letters
		"KeyA": ebiten.KeyA, "KeyB": ebiten.KeyB, "KeyC": ebiten.KeyC, "KeyD": ebiten.KeyD,
		"KeyE": ebiten.KeyE, "KeyF": ebiten.KeyF, "KeyG": ebiten.KeyG, "KeyH": ebiten.KeyH,
		"KeyI": ebiten.KeyI, "KeyJ": ebiten.KeyJ, "KeyK": ebiten.KeyK, "KeyL": ebiten.KeyL,
		"KeyM": ebiten.KeyM, "KeyN": ebiten.KeyN, "KeyO": ebiten.KeyO, "KeyP": ebiten.KeyP,
		"KeyQ": ebiten.KeyQ, "KeyR": ebiten.KeyR, "KeyS": ebiten.KeyS, "KeyT": ebiten.KeyT,
		"KeyU": ebiten.KeyU, "KeyV": ebiten.KeyV, "KeyW": ebiten.KeyW, "KeyX": ebiten.KeyX,
		"KeyY": ebiten.KeyY, "KeyZ": ebiten.KeyZ,

		// Numbers
		"Key0": ebiten.Key0, "Key1": ebiten.Key1, "Key2": ebiten.Key2, "Key3": ebiten.Key3,
		"Key4": ebiten.Key4, "Key5": ebiten.Key5, "Key6": ebiten.Key6, "Key7": ebiten.Key7,
		"Key8": ebiten.Key8, "Key9": ebiten.Key9,

		// Special keys
		"Space":      ebiten.KeySpace,
		"Backspace":  ebiten.KeyBackspace,
		"Enter":      ebiten.KeyEnter,
		"Escape":     ebiten.KeyEscape,
		"Tab":        ebiten.KeyTab,
		"Home":       ebiten.KeyHome,
		"End":        ebiten.KeyEnd,
		"PageUp":     ebiten.KeyPageUp,
		"PageDown":   ebiten.KeyPageDown,
		"ArrowUp":    ebiten.KeyArrowUp,
		"ArrowDown":  ebiten.KeyArrowDown,
		"ArrowLeft":  ebiten.KeyArrowLeft,
		"ArrowRight": ebiten.KeyArrowRight,
		"F11":        ebiten.KeyF11,

		// Punctuation
		"Comma":     ebiten.KeyComma,
		"Period":    ebiten.KeyPeriod,
		"Slash":     ebiten.KeySlash,
		"Semicolon": ebiten.KeySemicolon,
		"Quote":     ebiten.KeyQuote,
		"Minus":     ebiten.KeyMinus,
		"Equal":     ebiten.KeyEqual,

		// Numpad
		"Numpad0":     ebiten.KeyNumpad0,
		"Numpad1":     ebiten.KeyNumpad1,
		"Numpad2":     ebiten.KeyNumpad2,
		"Numpad3":     ebiten.KeyNumpad3,
		"Numpad4":     ebiten.KeyNumpad4,
		"Numpad5":     ebiten.KeyNumpad5,
		"Numpad6":     ebiten.KeyNumpad6,
		"Numpad7":     ebiten.KeyNumpad7,
		"Numpad8":     ebiten.KeyNumpad8,
		"Numpad9":     ebiten.KeyNumpad9,
		"NumpadAdd":   ebiten.KeyNumpadAdd,
		"NumpadEnter": ebiten.KeyNumpadEnter,
	}
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key   ebiten.Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

// parseModifiers sets the modifier flags named before the last '+'. It
// fails on an unknown modifier.
func parseModifiers(parts []string, shift, ctrl, alt *bool) bool {
	for _, part := range parts {
		switch strings.ToLower(part) {
		case "shift":
			*shift = true
		case "ctrl":
			*ctrl = true
		case "alt":
			*alt = true
		default:
			return false
		}
	}
	return true
}

// parseKeyString parses a key string like "Shift+KeyB" into a KeyCombination
func (km *KeybindingManager) parseKeyString(keyStr string) (*KeyCombination, bool) {
	parts := strings.Split(keyStr, "+")
	keyName := parts[len(parts)-1]
	key, exists := km.keyMapping[keyName]
	if !exists {
		return nil, false
	}

	combination := &KeyCombination{Key: key}
	if !parseModifiers(parts[:len(parts)-1], &combination.Shift, &combination.Ctrl, &combination.Alt) {
		return nil, false
	}
	return combination, true
}

// modifiersMatch checks that exactly the requested modifiers are held
func modifiersMatch(shift, ctrl, alt bool) bool {
	return shift == ebiten.IsKeyPressed(ebiten.KeyShift) &&
		ctrl == ebiten.IsKeyPressed(ebiten.KeyControl) &&
		alt == ebiten.IsKeyPressed(ebiten.KeyAlt)
}

// isKeyPressed checks if a key combination was pressed this frame
func (km *KeybindingManager) isKeyPressed(combination *KeyCombination) bool {
	if !inpututil.IsKeyJustPressed(combination.Key) {
		return false
	}
	return modifiersMatch(combination.Shift, combination.Ctrl, combination.Alt)
}

// CheckAction checks if any keybinding for the given action is pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	for _, keyStr := range km.keybindings[action] {
		combination, valid := km.parseKeyString(keyStr)
		if valid && km.isKeyPressed(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction runs the action when one of its keys was pressed
func (km *KeybindingManager) ExecuteAction(action string, executor ActionExecutor) bool {
	if !km.CheckAction(action) {
		return false
	}
	return executor.Execute(action)
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}

// validateKeybindings validates key formats and detects conflicts
func validateKeybindings(keybindings map[string][]string) error {
	km := NewKeybindingManager(nil)
	keyToAction := make(map[string]string)

	// Sorted for a stable first error.
	actions := make([]string, 0, len(keybindings))
	for action := range keybindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		for _, keyStr := range keybindings[action] {
			if _, ok := km.parseKeyString(keyStr); !ok {
				return fmt.Errorf("invalid key '%s' for action '%s'", keyStr, action)
			}
			if existing, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existing, action)
			}
			keyToAction[keyStr] = action
		}
	}
	return nil
}

// mergeBindings overlays per-action overrides on the defaults. Overrides for
// unknown actions are skipped with a warning.
func mergeBindings(defaults, overrides map[string][]string) (map[string][]string, []string) {
	merged := make(map[string][]string, len(defaults))
	for action, bindings := range defaults {
		merged[action] = bindings
	}

	var warnings []string
	names := make([]string, 0, len(overrides))
	for action := range overrides {
		names = append(names, action)
	}
	sort.Strings(names)
	for _, action := range names {
		if !isKnownAction(action) {
			warnings = append(warnings, fmt.Sprintf("binding for unknown action '%s' ignored", action))
			continue
		}
		merged[action] = overrides[action]
	}
	return merged, warnings
}

// buildKeybindings merges overrides into the defaults, falling back to the
// defaults entirely when the result does not validate.
func buildKeybindings(overrides map[string][]string) (map[string][]string, []string) {
	merged, warnings := mergeBindings(GetDefaultKeybindings(), overrides)
	if err := validateKeybindings(merged); err != nil {
		warnings = append(warnings, fmt.Sprintf("Keybinding errors: %v", err))
		return GetDefaultKeybindings(), warnings
	}
	return merged, warnings
}
