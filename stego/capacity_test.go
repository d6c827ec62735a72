package stego

import (
	"errors"
	"testing"
)

func TestRequiredBits(t *testing.T) {
	// "#*" marker, ".txt" extension, "hi" payload
	if got := RequiredBits(2, 4, 2); got != 16+32+32+32+16 {
		t.Errorf("RequiredBits = %d, want 128", got)
	}
	if got := RequiredBits(0, 0, 0); got != 64 {
		t.Errorf("RequiredBits of empty header = %d, want 64", got)
	}
}

func TestCheckCapacityBoundary(t *testing.T) {
	required := RequiredBits(2, 4, 10)

	tests := []struct {
		name    string
		size    int64
		wantErr bool
	}{
		{name: "one short", size: required - 1, wantErr: true},
		{name: "exactly required", size: required, wantErr: true},
		{name: "one spare", size: required + 1, wantErr: false},
		{name: "plenty", size: required * 10, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCapacity(tt.size, 2, 4, 10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckCapacity(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInsufficientCapacity) {
				t.Errorf("error %v should wrap ErrInsufficientCapacity", err)
			}
			var capErr *CapacityError
			if !errors.As(err, &capErr) {
				t.Fatalf("error %v should be a *CapacityError", err)
			}
			if capErr.Required != required || capErr.Available != tt.size {
				t.Errorf("CapacityError = %+v", capErr)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	header := RequiredBits(2, 4, 0)

	tests := []struct {
		size   int64
		want   int64
		wantOK bool
	}{
		{size: header, want: 0, wantOK: false},
		{size: header + 1, want: 0, wantOK: true},
		{size: header + 8, want: 0, wantOK: true},
		{size: header + 9, want: 1, wantOK: true},
		{size: 300, want: (300 - 1 - header) / 8, wantOK: true},
	}

	for _, tt := range tests {
		got, ok := Available(tt.size, 2, 4)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Available(%d) = %d, %v; want %d, %v", tt.size, got, ok, tt.want, tt.wantOK)
		}
		if ok && CheckCapacity(tt.size, 2, 4, got) != nil {
			t.Errorf("Available(%d) = %d does not pass CheckCapacity", tt.size, got)
		}
		if ok && CheckCapacity(tt.size, 2, 4, got+1) == nil {
			t.Errorf("Available(%d) = %d is not the largest fitting payload", tt.size, got)
		}
	}
}
