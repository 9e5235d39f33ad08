package source

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"

	"comix/internal/debug"
)

// ListArchive returns the image entries of a zip, rar or 7z archive in
// archive order.
func ListArchive(archivePath string) ([]ImagePath, error) {
	var (
		names []string
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(archivePath)); ext {
	case ".zip":
		names, err = zipEntries(archivePath)
	case ".rar":
		names, err = rarEntries(archivePath)
	case ".7z":
		names, err = sevenZipEntries(archivePath)
	default:
		return nil, fmt.Errorf("%s: %w", ext, ErrUnsupportedArchive)
	}
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", archivePath, err)
	}

	images := make([]ImagePath, 0, len(names))
	for _, name := range names {
		if IsImage(name) {
			images = append(images, entryPath(archivePath, name))
		}
	}
	debug.Log(debug.NAV, "archive %s: %d of %d entries are images", archivePath, len(images), len(names))
	return images, nil
}

// ReadEntry returns the bytes of one archive entry.
func ReadEntry(archivePath, entry string) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(archivePath)); ext {
	case ".zip":
		return readZipEntry(archivePath, entry)
	case ".rar":
		return readRarEntry(archivePath, entry)
	case ".7z":
		return read7zEntry(archivePath, entry)
	default:
		return nil, fmt.Errorf("%s: %w", ext, ErrUnsupportedArchive)
	}
}

func zipEntries(archivePath string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

func readZipEntry(archivePath, entry string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entry, archivePath)
}

func rarEntries(archivePath string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var names []string
	for {
		header, err := r.Next()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir {
			names = append(names, header.Name)
		}
	}
}

func readRarEntry(archivePath, entry string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entry {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entry, archivePath)
}

func sevenZipEntries(archivePath string) ([]string, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

func read7zEntry(archivePath, entry string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entry, archivePath)
}
