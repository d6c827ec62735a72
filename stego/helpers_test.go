package stego

import (
	"encoding/binary"
)

// testBMP assembles an uncompressed 24-bit bitmap with a deterministic pixel
// pattern, followed by trailing bytes that are not part of the pixel data.
func testBMP(width, height int, trailing []byte) []byte {
	pixels := width * height * 3
	buf := make([]byte, 54+pixels, 54+pixels+len(trailing))

	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:], uint32(len(buf)+len(trailing)))
	binary.LittleEndian.PutUint32(buf[10:], 54)
	binary.LittleEndian.PutUint32(buf[14:], 40)
	binary.LittleEndian.PutUint32(buf[18:], uint32(width))
	binary.LittleEndian.PutUint32(buf[22:], uint32(height))
	binary.LittleEndian.PutUint16(buf[26:], 1)
	binary.LittleEndian.PutUint16(buf[28:], 24)
	binary.LittleEndian.PutUint32(buf[34:], uint32(pixels))

	for i := 0; i < pixels; i++ {
		buf[54+i] = byte(i*7 + 3)
	}
	return append(buf, trailing...)
}
