package stego

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Embedder walks a carrier stream and an output stream in lock step. Every
// byte read from the carrier is written to the output exactly once, either
// unchanged or with its LSB replaced.
type Embedder struct {
	src   *bufio.Reader
	dst   *bufio.Writer
	units [UnitsPerUint32]byte
	used  int64
}

func NewEmbedder(carrier io.Reader, out io.Writer) *Embedder {
	return &Embedder{
		src: bufio.NewReader(carrier),
		dst: bufio.NewWriter(out),
	}
}

// Used returns the number of bit-carrying bytes consumed so far.
func (e *Embedder) Used() int64 {
	return e.used
}

// PassThrough copies n carrier bytes to the output unchanged.
func (e *Embedder) PassThrough(n int64) error {
	copied, err := io.CopyN(e.dst, e.src, n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: carrier ended after %d of %d header bytes", ErrInvalidCarrier, copied, n)
		}
		return err
	}
	return nil
}

// CopyRemaining copies every carrier byte left to the output unchanged.
func (e *Embedder) CopyRemaining() error {
	_, err := e.src.WriteTo(e.dst)
	return err
}

// Flush pushes buffered output to the underlying writer.
func (e *Embedder) Flush() error {
	return e.dst.Flush()
}

func (e *Embedder) next(n int) ([]byte, error) {
	units := e.units[:n]
	if _, err := io.ReadFull(e.src, units); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: carrier ended after %d bit-carrying bytes", ErrInsufficientCapacity, e.used)
		}
		return nil, err
	}
	return units, nil
}

func (e *Embedder) commit(units []byte) error {
	if _, err := e.dst.Write(units); err != nil {
		return err
	}
	e.used += int64(len(units))
	return nil
}

// EmbedByte hides b in the next eight carrier bytes.
func (e *Embedder) EmbedByte(b byte) error {
	units, err := e.next(UnitsPerByte)
	if err != nil {
		return err
	}
	PackByte(b, units)
	return e.commit(units)
}

// EmbedBytes hides each byte of p in order.
func (e *Embedder) EmbedBytes(p []byte) error {
	for _, b := range p {
		if err := e.EmbedByte(b); err != nil {
			return err
		}
	}
	return nil
}

// EmbedUint32 hides v in the next 32 carrier bytes.
func (e *Embedder) EmbedUint32(v uint32) error {
	units, err := e.next(UnitsPerUint32)
	if err != nil {
		return err
	}
	PackUint32(v, units)
	return e.commit(units)
}

// Extractor reads hidden values back out of a stego stream.
type Extractor struct {
	src   *bufio.Reader
	units [UnitsPerUint32]byte
	used  int64
}

func NewExtractor(stego io.Reader) *Extractor {
	return &Extractor{src: bufio.NewReader(stego)}
}

// Used returns the number of bit-carrying bytes consumed so far.
func (x *Extractor) Used() int64 {
	return x.used
}

// Skip discards n bytes without decoding them.
func (x *Extractor) Skip(n int64) error {
	skipped, err := x.src.Discard(int(n))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: stream ended after %d of %d header bytes", ErrInvalidCarrier, skipped, n)
		}
		return err
	}
	return nil
}

func (x *Extractor) next(n int) ([]byte, error) {
	units := x.units[:n]
	if _, err := io.ReadFull(x.src, units); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: stream ended after %d bit-carrying bytes", ErrTruncated, x.used)
		}
		return nil, err
	}
	x.used += int64(n)
	return units, nil
}

// ExtractByte recovers one byte from the next eight stego bytes.
func (x *Extractor) ExtractByte() (byte, error) {
	units, err := x.next(UnitsPerByte)
	if err != nil {
		return 0, err
	}
	return UnpackByte(units), nil
}

// ExtractUint32 recovers a 32-bit value from the next 32 stego bytes.
func (x *Extractor) ExtractUint32() (uint32, error) {
	units, err := x.next(UnitsPerUint32)
	if err != nil {
		return 0, err
	}
	return UnpackUint32(units), nil
}
