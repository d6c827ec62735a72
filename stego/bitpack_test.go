package stego

import (
	"math"
	"testing"
)

func TestPackByteRoundTrip(t *testing.T) {
	seeds := [][UnitsPerByte]byte{
		{},
		{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0},
	}

	for _, seed := range seeds {
		for v := 0; v <= 255; v++ {
			units := seed
			PackByte(byte(v), units[:])
			if got := UnpackByte(units[:]); got != byte(v) {
				t.Fatalf("seed %x: UnpackByte(PackByte(%d)) = %d", seed, v, got)
			}
			for i := range units {
				if units[i]&^1 != seed[i]&^1 {
					t.Fatalf("seed %x: PackByte(%d) changed upper bits of unit %d", seed, v, i)
				}
			}
		}
	}
}

func TestPackByteBitOrder(t *testing.T) {
	units := make([]byte, UnitsPerByte)
	PackByte('#', units) // 0b00100011

	want := []byte{0, 0, 1, 0, 0, 0, 1, 1}
	for i, w := range want {
		if units[i]&1 != w {
			t.Errorf("unit %d LSB = %d, want %d", i, units[i]&1, w)
		}
	}
}

func TestPackUint32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 2, 4, 255, 256, 0x7FFFFFFF, 0x80000000, 0xDEADBEEF, math.MaxUint32}

	for _, v := range values {
		units := make([]byte, UnitsPerUint32)
		for i := range units {
			units[i] = byte(i * 37)
		}
		PackUint32(v, units)
		if got := UnpackUint32(units); got != v {
			t.Errorf("UnpackUint32(PackUint32(%#x)) = %#x", v, got)
		}
	}
}

func TestPackUint32MostSignificantFirst(t *testing.T) {
	units := make([]byte, UnitsPerUint32)
	PackUint32(0x80000001, units)

	if units[0]&1 != 1 {
		t.Error("sign bit should land in the first unit")
	}
	if units[31]&1 != 1 {
		t.Error("lowest bit should land in the last unit")
	}
	for i := 1; i < 31; i++ {
		if units[i]&1 != 0 {
			t.Errorf("unit %d LSB should be 0", i)
		}
	}
}
