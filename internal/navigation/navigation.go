// Package navigation holds the ordered image listing and the current-index
// cursor.
package navigation

import (
	"errors"

	"comix/internal/debug"
	"comix/internal/source"
)

// ErrEmpty is returned when a store is built from an empty listing.
var ErrEmpty = errors.New("navigation: empty image list")

// Requester receives a load request every time the selection changes.
type Requester interface {
	Request(index int, path source.ImagePath)
}

// Store is the navigation state. It is owned by the UI goroutine.
type Store struct {
	paths []source.ImagePath
	index int
	req   Requester
}

// New builds a store over paths. req may be nil.
func New(paths []source.ImagePath, req Requester) (*Store, error) {
	if len(paths) == 0 {
		return nil, ErrEmpty
	}
	return &Store{paths: paths, req: req}, nil
}

// Len returns the number of images.
func (s *Store) Len() int { return len(s.paths) }

// Index returns the current selection.
func (s *Store) Index() int { return s.index }

// Current returns the path at the current selection.
func (s *Store) Current() source.ImagePath { return s.paths[s.index] }

// Path returns the path at i, or false when i is out of range.
func (s *Store) Path(i int) (source.ImagePath, bool) {
	if i < 0 || i >= len(s.paths) {
		return source.ImagePath{}, false
	}
	return s.paths[i], true
}

// Enabled reports whether next/prev/first/last do anything. A single-image
// listing disables them.
func (s *Store) Enabled() bool { return len(s.paths) > 1 }

// Select clamps i into range, makes it current and requests its load.
// It never blocks.
func (s *Store) Select(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= len(s.paths) {
		i = len(s.paths) - 1
	}
	s.index = i
	debug.Log(debug.NAV, "select [%d/%d] %s", i+1, len(s.paths), s.paths[i].Path)
	if s.req != nil {
		s.req.Request(i, s.paths[i])
	}
	return i
}

// Next wraps to the first image after the last one.
func (s *Store) Next() int {
	if !s.Enabled() {
		return s.index
	}
	return s.Select((s.index + 1) % len(s.paths))
}

// Prev wraps to the last image before the first one.
func (s *Store) Prev() int {
	if !s.Enabled() {
		return s.index
	}
	return s.Select((s.index - 1 + len(s.paths)) % len(s.paths))
}

// First jumps to index 0.
func (s *Store) First() int {
	if !s.Enabled() {
		return s.index
	}
	return s.Select(0)
}

// Last jumps to the final index.
func (s *Store) Last() int {
	if !s.Enabled() {
		return s.index
	}
	return s.Select(len(s.paths) - 1)
}
