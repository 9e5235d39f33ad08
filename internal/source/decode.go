package source

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Decoder turns an ImagePath into pixels.
type Decoder interface {
	Decode(p ImagePath) (image.Image, error)
}

// InfoReader is implemented by decoders that can also report metadata.
type InfoReader interface {
	ReadInfo(p ImagePath) (*Info, error)
}

// FileDecoder decodes files and archive entries with imaging, applying the
// EXIF orientation tag.
type FileDecoder struct{}

// Decode implements Decoder.
func (FileDecoder) Decode(p ImagePath) (image.Image, error) {
	if !p.InArchive() {
		img, err := imaging.Open(p.Path, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", p.Path, err)
		}
		return img, nil
	}

	data, err := ReadEntry(p.ArchivePath, p.EntryPath)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", p.Path, err)
	}
	return img, nil
}

// ReadInfo implements InfoReader.
func (FileDecoder) ReadInfo(p ImagePath) (*Info, error) {
	return ReadInfo(p)
}

// Info holds what the info overlay shows about one image.
type Info struct {
	Width  int
	Height int
	Size   int64
	Format string
	Model  string // EXIF camera model, empty when absent
	Taken  string // EXIF capture time, empty when absent
}

// ReadInfo reads dimensions and metadata without decoding the pixels.
func ReadInfo(p ImagePath) (*Info, error) {
	var data []byte
	var err error
	if p.InArchive() {
		data, err = ReadEntry(p.ArchivePath, p.EntryPath)
	} else {
		data, err = os.ReadFile(p.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.Path, err)
	}

	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}

	info := &Info{
		Width:  config.Width,
		Height: config.Height,
		Size:   int64(len(data)),
		Format: format,
	}

	exifData, _ := exif.Decode(bytes.NewReader(data)) // EXIF might not be present
	if exifData != nil {
		if model, err := exifData.Get(exif.Model); err == nil {
			if s, err := model.StringVal(); err == nil {
				info.Model = s
			}
		}
		if taken, err := exifData.DateTime(); err == nil {
			info.Taken = taken.Format("2006-01-02 15:04")
		}
	}
	return info, nil
}
