// Package stego hides a secret file in the least significant bits of a
// carrier's data region and recovers it again.
package stego

const (
	// UnitsPerByte is the number of carrier bytes needed to hide one byte.
	UnitsPerByte = 8
	// UnitsPerUint32 is the number of carrier bytes needed to hide a length field.
	UnitsPerUint32 = 32
)

// PackByte writes the bits of value, most significant first, into the LSBs
// of units[0:8]. The upper seven bits of each unit are left untouched.
func PackByte(value byte, units []byte) {
	_ = units[UnitsPerByte-1]
	for i := 0; i < UnitsPerByte; i++ {
		bit := (value >> (UnitsPerByte - 1 - i)) & 1
		units[i] = (units[i] &^ 1) | bit
	}
}

// UnpackByte is the inverse of PackByte.
func UnpackByte(units []byte) byte {
	_ = units[UnitsPerByte-1]
	var value byte
	for i := 0; i < UnitsPerByte; i++ {
		value = (value << 1) | (units[i] & 1)
	}
	return value
}

// PackUint32 writes value into the LSBs of units[0:32], most significant bit
// first.
func PackUint32(value uint32, units []byte) {
	_ = units[UnitsPerUint32-1]
	for i := 0; i < UnitsPerUint32; i++ {
		bit := byte(value>>(UnitsPerUint32-1-i)) & 1
		units[i] = (units[i] &^ 1) | bit
	}
}

// UnpackUint32 is the inverse of PackUint32.
func UnpackUint32(units []byte) uint32 {
	_ = units[UnitsPerUint32-1]
	var value uint32
	for i := 0; i < UnitsPerUint32; i++ {
		value = (value << 1) | uint32(units[i]&1)
	}
	return value
}
