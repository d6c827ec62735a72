package stego

import (
	"errors"
	"fmt"
)

var (
	// ErrFileOpen is returned when a carrier, secret or output file cannot be
	// opened in the required mode.
	ErrFileOpen = errors.New("unable to open file")

	// ErrInvalidCarrier is returned when the carrier does not look like a
	// supported uncompressed image/audio layout.
	ErrInvalidCarrier = errors.New("invalid carrier format")

	// ErrInsufficientCapacity is returned when the carrier does not have
	// enough bit-carrying bytes for the header and payload.
	ErrInsufficientCapacity = errors.New("insufficient carrier capacity")

	// ErrMagicMismatch is returned when the decoded marker does not match the
	// expected one.
	ErrMagicMismatch = errors.New("magic marker mismatch")

	// ErrTruncated is returned when a stego stream ends before the header or
	// payload it announces.
	ErrTruncated = errors.New("stego stream truncated")
)

// CapacityError reports how many bit-carrying bytes an encode needed.
type CapacityError struct {
	Required  int64
	Available int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: need more than %d bit-carrying bytes, carrier has %d", ErrInsufficientCapacity, e.Required, e.Available)
}

func (e *CapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}
