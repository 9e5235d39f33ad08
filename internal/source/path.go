// Package source enumerates viewable images (plain files and archive entries)
// and decodes them.
package source

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrNotImage is returned for a target that is neither a directory, an
	// archive nor a recognized image file.
	ErrNotImage = errors.New("not a directory or a recognized image")
	// ErrNoImages is returned when a target yields an empty listing.
	ErrNoImages = errors.New("no images found")
	// ErrUnsupportedArchive is returned for archive extensions with no reader.
	ErrUnsupportedArchive = errors.New("unsupported archive format")
)

// ImagePath identifies one image, either a file on disk or an entry inside
// an archive.
type ImagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// InArchive reports whether p names an archive entry.
func (p ImagePath) InArchive() bool {
	return p.ArchivePath != ""
}

// Name returns the base name shown in the window title.
func (p ImagePath) Name() string {
	if p.InArchive() {
		return filepath.Base(filepath.FromSlash(p.EntryPath))
	}
	return filepath.Base(p.Path)
}

func entryPath(archive, entry string) ImagePath {
	return ImagePath{
		Path:        archive + ":" + entry,
		ArchivePath: archive,
		EntryPath:   entry,
	}
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var archiveExts = map[string]bool{
	".zip": true,
	".rar": true,
	".7z":  true,
}

// IsImage reports whether name has a supported image extension.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// IsArchive reports whether name has a supported archive extension.
func IsArchive(name string) bool {
	return archiveExts[strings.ToLower(filepath.Ext(name))]
}
