package carrier

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
	wavFormatPCM    = 1
)

// InspectWAV locates the PCM bytes of the data chunk of a WAV file. Every
// byte before them, and every chunk after them, is treated as opaque.
func InspectWAV(r io.ReadSeeker) (Layout, error) {
	d := wav.NewDecoder(r)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if d.NumChans < 1 || d.BitDepth < 8 {
		return Layout{}, fmt.Errorf("%w: not a valid WAV file", ErrUnsupported)
	}
	if d.WavAudioFormat != wavFormatPCM {
		return Layout{}, fmt.Errorf("%w: WAV audio format %d, only PCM is supported", ErrUnsupported, d.WavAudioFormat)
	}
	format := d.Format()

	offset, size, err := dataChunk(r)
	if err != nil {
		return Layout{}, err
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return Layout{}, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Layout{}, err
	}
	// Streamed WAVs may announce more data than the file holds.
	size = min(size, end-offset)

	return Layout{
		Format:     FormatWAV,
		HeaderSize: offset,
		Capacity:   size,
		Audio:      format,
	}, nil
}

// dataChunk walks the RIFF chunk list and returns the offset and announced
// size of the data chunk's payload.
func dataChunk(r io.ReadSeeker) (offset, size int64, err error) {
	pos, err := r.Seek(riffHeaderSize, io.SeekStart)
	if err != nil {
		return 0, 0, err
	}
	var hdr [chunkHeaderSize]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return 0, 0, fmt.Errorf("%w: no data chunk", ErrUnsupported)
			}
			return 0, 0, err
		}
		pos += chunkHeaderSize
		n := int64(binary.LittleEndian.Uint32(hdr[4:]))
		if string(hdr[:4]) == "data" {
			return pos, n, nil
		}
		// chunks are word aligned
		pos, err = r.Seek(n+n&1, io.SeekCurrent)
		if err != nil {
			return 0, 0, err
		}
	}
}
