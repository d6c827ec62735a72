package stego

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

// WritePayload hides the payload length followed by the payload bytes.
func WritePayload(e *Embedder, payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("%w: payload of %d bytes exceeds the 32-bit length field", ErrInsufficientCapacity, len(payload))
	}
	if err := e.EmbedUint32(uint32(len(payload))); err != nil {
		return fmt.Errorf("encode payload length: %w", err)
	}
	if err := e.EmbedBytes(payload); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return nil
}

// ReadPayload recovers the payload length, then streams exactly that many
// recovered bytes to w. It returns the announced length.
func ReadPayload(x *Extractor, w io.Writer) (uint32, error) {
	n, err := x.ExtractUint32()
	if err != nil {
		return 0, fmt.Errorf("decode payload length: %w", err)
	}
	out := bufio.NewWriter(w)
	for i := uint32(0); i < n; i++ {
		b, err := x.ExtractByte()
		if err != nil {
			out.Flush()
			return n, fmt.Errorf("decode payload byte %d of %d: %w", i, n, err)
		}
		if err := out.WriteByte(b); err != nil {
			return n, fmt.Errorf("write payload: %w", err)
		}
	}
	if err := out.Flush(); err != nil {
		return n, fmt.Errorf("write payload: %w", err)
	}
	return n, nil
}
