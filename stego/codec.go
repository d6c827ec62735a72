package stego

import (
	"fmt"
	"io"

	"bmp-steganography/carrier"
)

// Secret is the file being hidden: its extension (with leading dot, may be
// empty) and its contents.
type Secret struct {
	Extension string
	Data      []byte
}

// Codec encodes and decodes secrets using a fixed magic marker.
type Codec struct {
	magic string
	stage func(string)
}

func NewCodec(magic string) *Codec {
	if magic == "" {
		magic = DefaultMagic
	}
	return &Codec{magic: magic}
}

func (c *Codec) Magic() string {
	return c.magic
}

// OnStage registers fn to be called as each pipeline stage starts.
func (c *Codec) OnStage(fn func(stage string)) {
	c.stage = fn
}

func (c *Codec) report(stage string) {
	if c.stage != nil {
		c.stage(stage)
	}
}

// EncodeReport summarises a finished encode.
type EncodeReport struct {
	Layout      carrier.Layout
	PayloadSize int64
	// UnitsUsed is the number of bit-carrying bytes that carry hidden bits.
	UnitsUsed int64
}

// Encode copies src to dst, hiding secret in the LSBs of the data region
// described by layout. The capacity check runs before anything is written.
func (c *Codec) Encode(src io.Reader, layout carrier.Layout, secret Secret, dst io.Writer) (*EncodeReport, error) {
	c.report("Checking capacity")
	if err := CheckCapacity(layout.Capacity, int64(len(c.magic)), int64(len(secret.Extension)), int64(len(secret.Data))); err != nil {
		return nil, err
	}

	e := NewEmbedder(src, dst)
	c.report("Copying carrier header")
	if err := e.PassThrough(layout.HeaderSize); err != nil {
		return nil, fmt.Errorf("copy carrier header: %w", err)
	}
	c.report("Encoding magic string and extension")
	if err := WriteHeader(e, Header{Magic: c.magic, Extension: secret.Extension}); err != nil {
		return nil, err
	}
	c.report("Encoding secret file data")
	if err := WritePayload(e, secret.Data); err != nil {
		return nil, err
	}
	c.report("Copying remaining carrier data")
	if err := e.CopyRemaining(); err != nil {
		return nil, fmt.Errorf("copy remaining carrier data: %w", err)
	}
	if err := e.Flush(); err != nil {
		return nil, fmt.Errorf("flush stego output: %w", err)
	}

	return &EncodeReport{
		Layout:      layout,
		PayloadSize: int64(len(secret.Data)),
		UnitsUsed:   e.Used(),
	}, nil
}

// OpenFunc creates the destination for a decoded payload once its extension
// is known.
type OpenFunc func(extension string) (io.WriteCloser, error)

// DecodeReport summarises a finished decode.
type DecodeReport struct {
	Extension   string
	PayloadSize int64
}

// Decode skips the carrier header, verifies the marker and recovers the
// extension before calling open, then streams the payload into the writer
// open returned. open is never called when the marker does not match.
func (c *Codec) Decode(src io.Reader, layout carrier.Layout, open OpenFunc) (report *DecodeReport, err error) {
	x := NewExtractor(src)
	if err := x.Skip(layout.HeaderSize); err != nil {
		return nil, fmt.Errorf("skip carrier header: %w", err)
	}
	c.report("Decoding magic string and extension")
	h, err := ReadHeader(x, c.magic)
	if err != nil {
		return nil, err
	}

	w, err := open(h.Extension)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			report, err = nil, fmt.Errorf("close decoded output: %w", cerr)
		}
	}()

	c.report("Decoding secret file data")
	n, err := ReadPayload(x, w)
	if err != nil {
		return nil, err
	}
	return &DecodeReport{Extension: h.Extension, PayloadSize: int64(n)}, nil
}
