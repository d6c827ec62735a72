package stego

import (
	"bytes"
	"fmt"
)

// DefaultMagic marks a stream as produced by this package.
const DefaultMagic = "#*"

// maxExtnPrealloc caps the up-front buffer for a decoded extension; longer
// extensions still decode, the buffer just grows.
const maxExtnPrealloc = 64

// Header is the fixed-layout prefix hidden ahead of the payload.
type Header struct {
	Magic     string
	Extension string
}

// WriteHeader hides the marker, the extension length and the extension.
func WriteHeader(e *Embedder, h Header) error {
	if err := e.EmbedBytes([]byte(h.Magic)); err != nil {
		return fmt.Errorf("encode magic marker: %w", err)
	}
	if err := e.EmbedUint32(uint32(len(h.Extension))); err != nil {
		return fmt.Errorf("encode extension length: %w", err)
	}
	if err := e.EmbedBytes([]byte(h.Extension)); err != nil {
		return fmt.Errorf("encode extension: %w", err)
	}
	return nil
}

// ReadMagic recovers len(magic) bytes and compares them with magic.
func ReadMagic(x *Extractor, magic string) error {
	got := make([]byte, len(magic))
	for i := range got {
		b, err := x.ExtractByte()
		if err != nil {
			return fmt.Errorf("decode magic marker: %w", err)
		}
		got[i] = b
	}
	if !bytes.Equal(got, []byte(magic)) {
		return fmt.Errorf("%w: got %q, want %q", ErrMagicMismatch, got, magic)
	}
	return nil
}

// ReadExtension recovers the extension length and the extension bytes.
func ReadExtension(x *Extractor) (string, error) {
	n, err := x.ExtractUint32()
	if err != nil {
		return "", fmt.Errorf("decode extension length: %w", err)
	}
	extn := make([]byte, 0, int(min(n, maxExtnPrealloc)))
	for i := uint32(0); i < n; i++ {
		b, err := x.ExtractByte()
		if err != nil {
			return "", fmt.Errorf("decode extension: %w", err)
		}
		extn = append(extn, b)
	}
	return string(extn), nil
}

// ReadHeader verifies the marker and recovers the extension.
func ReadHeader(x *Extractor, magic string) (Header, error) {
	if err := ReadMagic(x, magic); err != nil {
		return Header{}, err
	}
	extn, err := ReadExtension(x)
	if err != nil {
		return Header{}, err
	}
	return Header{Magic: magic, Extension: extn}, nil
}
