package source

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"

	"comix/internal/debug"
)

// ListDir returns the images directly inside dir, unsorted. Archives found
// there contribute their image entries. Subdirectories are not entered.
func ListDir(dir string) ([]ImagePath, error) {
	dir = filepath.Clean(dir)
	debug.Log(debug.NAV, "ListDir: reading %q", dir)

	var (
		images   []ImagePath
		archives []string
		mu       sync.Mutex
	)

	conf := &fastwalk.Config{
		Follow: true,
	}
	err := fastwalk.Walk(conf, dir, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.NAV, "ListDir: walk error at %q: %v", fullPath, err)
			return nil
		}
		if fullPath == dir {
			return nil
		}
		if d.IsDir() {
			return fastwalk.SkipDir
		}
		// Nested entries can only show up through followed links.
		if filepath.Dir(fullPath) != dir {
			return nil
		}

		switch {
		case IsImage(d.Name()):
			mu.Lock()
			images = append(images, ImagePath{Path: fullPath})
			mu.Unlock()
		case IsArchive(d.Name()):
			mu.Lock()
			archives = append(archives, fullPath)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	for _, archive := range archives {
		entries, err := ListArchive(archive)
		if err != nil {
			log.Printf("Warning: Skipping problematic archive %s: %v", archive, err)
			continue
		}
		images = append(images, entries...)
	}
	return images, nil
}

// Resolve turns the command-line target into an ordered listing and the
// index to start at. A directory or archive starts at 0; an image file
// starts at its own position among its siblings.
func Resolve(target string, strategy SortStrategy) ([]ImagePath, int, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, 0, err
	}

	var (
		images []ImagePath
		start  string
	)
	switch {
	case info.IsDir():
		images, err = ListDir(target)
	case IsArchive(target):
		images, err = ListArchive(target)
	case IsImage(target):
		images, err = ListDir(filepath.Dir(target))
		start = filepath.Clean(target)
	default:
		return nil, 0, fmt.Errorf("%s: %w", target, ErrNotImage)
	}
	if err != nil {
		return nil, 0, err
	}
	if len(images) == 0 {
		return nil, 0, fmt.Errorf("%s: %w", target, ErrNoImages)
	}

	images = strategy.Sort(images)
	index := 0
	if start != "" {
		index = indexOf(images, start)
	}
	debug.Log(debug.NAV, "Resolve %q: %d images (%s order), start %d", target, len(images), strategy.Name(), index)
	return images, index, nil
}

func indexOf(images []ImagePath, path string) int {
	abs, _ := filepath.Abs(path)
	for i, img := range images {
		if img.InArchive() {
			continue
		}
		if img.Path == path {
			return i
		}
		if other, err := filepath.Abs(img.Path); err == nil && other == abs {
			return i
		}
	}
	return 0
}

// IsNotExist reports whether err came from a missing target.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
