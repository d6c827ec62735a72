// Package carrier locates the opaque header and the bit-carrying region of
// uncompressed carrier files.
package carrier

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
)

// ErrUnsupported is returned for files that are not a supported carrier.
var ErrUnsupported = errors.New("unsupported carrier")

type Format string

const (
	FormatBMP Format = "bmp"
	FormatWAV Format = "wav"
)

// Extension returns the file extension used for stego files of this format.
func (f Format) Extension() string {
	return "." + string(f)
}

// Layout describes where the hidden data lives inside a carrier.
type Layout struct {
	Format Format
	// HeaderSize bytes at the start of the file are copied unchanged.
	HeaderSize int64
	// Capacity is the number of bit-carrying bytes after the header.
	Capacity int64

	// Width and Height are set for BMP carriers.
	Width  int32
	Height int32
	// Audio is set for WAV carriers.
	Audio *audio.Format
}

// Inspect sniffs the carrier format and returns its layout. r is rewound to
// the start before returning.
func Inspect(r io.ReadSeeker) (Layout, error) {
	var magic [12]byte
	n, err := io.ReadFull(r, magic[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return Layout{}, fmt.Errorf("%w: empty file", ErrUnsupported)
		}
		return Layout{}, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Layout{}, err
	}

	switch {
	case n >= 2 && bytes.Equal(magic[:2], []byte("BM")):
		return InspectBMP(r)
	case n == 12 && bytes.Equal(magic[:4], []byte("RIFF")) && bytes.Equal(magic[8:12], []byte("WAVE")):
		return InspectWAV(r)
	default:
		return Layout{}, fmt.Errorf("%w: unrecognised file signature", ErrUnsupported)
	}
}

// FormatForName maps a file name to the carrier format its extension implies.
func FormatForName(ext string) (Format, bool) {
	switch ext {
	case ".bmp", ".BMP":
		return FormatBMP, true
	case ".wav", ".WAV":
		return FormatWAV, true
	}
	return "", false
}
