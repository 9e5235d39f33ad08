package main

import (
	"comix/internal/navigation"
	"comix/internal/viewport"
	"comix/internal/widget"
)

// ActionExecutor runs named actions; *control.Controller implements it
type ActionExecutor interface {
	Execute(action string) bool
}

// RenderState provides read-only access to UI state for the renderer
type RenderState interface {
	Viewport() *viewport.Viewport
	Navigation() *navigation.Store
	Bar() *widget.Bar
	Loading() bool
	ShowInfo() bool
	ShowHelp() bool
}

// RenderStateSnapshot captures the state that can change without input
type RenderStateSnapshot struct {
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
}

// Equals checks if two snapshots are equal
func (s *RenderStateSnapshot) Equals(other *RenderStateSnapshot) bool {
	if other == nil {
		return false
	}
	return *s == *other
}
