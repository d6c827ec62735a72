package stego

// RequiredBits returns the number of bit-carrying bytes an encode consumes
// for a marker of magicLen bytes, an extension of extnLen bytes and a
// payload of payloadLen bytes.
func RequiredBits(magicLen, extnLen, payloadLen int64) int64 {
	return UnitsPerByte*magicLen +
		UnitsPerUint32 +
		UnitsPerByte*extnLen +
		UnitsPerUint32 +
		UnitsPerByte*payloadLen
}

// CheckCapacity succeeds only when the pixel region strictly exceeds the
// required number of bit-carrying bytes.
func CheckCapacity(pixelRegionSize, magicLen, extnLen, payloadLen int64) error {
	required := RequiredBits(magicLen, extnLen, payloadLen)
	if pixelRegionSize > required {
		return nil
	}
	return &CapacityError{Required: required, Available: pixelRegionSize}
}

// Available returns the largest payload length that still passes
// CheckCapacity. ok is false when not even an empty payload fits.
func Available(pixelRegionSize, magicLen, extnLen int64) (n int64, ok bool) {
	spare := pixelRegionSize - 1 - RequiredBits(magicLen, extnLen, 0)
	if spare < 0 {
		return 0, false
	}
	return spare / UnitsPerByte, true
}
