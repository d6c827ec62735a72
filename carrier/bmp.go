package carrier

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/image/bmp"
)

const (
	// BMPHeaderSize is the file header plus a BITMAPINFOHEADER.
	BMPHeaderSize = 54

	bmpWidthOffset       = 18
	bmpHeightOffset      = 22
	bmpBitCountOffset    = 28
	bmpCompressionOffset = 30
	bmpBytesPerPixel     = 3
)

// InspectBMP reads the 54-byte header of an uncompressed 24-bit bitmap.
//
// Capacity is width × |height| × 3. Row padding is not accounted for, so the
// value is exact only when the row width in bytes is a multiple of 4.
func InspectBMP(r io.ReadSeeker) (Layout, error) {
	var hdr [BMPHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Layout{}, fmt.Errorf("%w: short bitmap header: %v", ErrUnsupported, err)
	}
	if hdr[0] != 'B' || hdr[1] != 'M' {
		return Layout{}, fmt.Errorf("%w: missing BM signature", ErrUnsupported)
	}

	width := int32(binary.LittleEndian.Uint32(hdr[bmpWidthOffset:]))
	height := int32(binary.LittleEndian.Uint32(hdr[bmpHeightOffset:]))
	bitCount := binary.LittleEndian.Uint16(hdr[bmpBitCountOffset:])
	compression := binary.LittleEndian.Uint32(hdr[bmpCompressionOffset:])

	if bitCount != 24 {
		return Layout{}, fmt.Errorf("%w: %d bits per pixel, only 24 is supported", ErrUnsupported, bitCount)
	}
	if compression != 0 {
		return Layout{}, fmt.Errorf("%w: compressed bitmap (method %d)", ErrUnsupported, compression)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Layout{}, err
	}
	if _, err := bmp.DecodeConfig(r); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Layout{}, err
	}

	rows := int64(height)
	if rows < 0 {
		rows = -rows
	}
	return Layout{
		Format:     FormatBMP,
		HeaderSize: BMPHeaderSize,
		Capacity:   int64(width) * rows * bmpBytesPerPixel,
		Width:      width,
		Height:     height,
	}, nil
}
