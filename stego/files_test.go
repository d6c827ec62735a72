package stego

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		base, ext, want string
	}{
		{"decoded_output", ".txt", "decoded_output.txt"},
		{"out.bmp", ".c", "out.c"},
		{"notes.old.txt", ".sh", "notes.old.sh"},
		{filepath.Join("dir.v1", "out"), ".sh", filepath.Join("dir.v1", "out.sh")},
		{"plain", "", "plain"},
	}

	for _, tt := range tests {
		if got := OutputName(tt.base, tt.ext); got != tt.want {
			t.Errorf("OutputName(%q, %q) = %q, want %q", tt.base, tt.ext, got, tt.want)
		}
	}
}

func TestSecretExtension(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"secret.txt", ".txt"},
		{filepath.Join("some.dir", "script.sh"), ".sh"},
		{"archive.tar.gz", ".gz"},
		{filepath.Join("some.dir", "README"), ""},
	}

	for _, tt := range tests {
		if got := SecretExtension(tt.path); got != tt.want {
			t.Errorf("SecretExtension(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestEncodeDecodeFile(t *testing.T) {
	dir := t.TempDir()
	carrierPath := writeFile(t, filepath.Join(dir, "carrier.bmp"), testBMP(20, 20, nil))
	secret := []byte("#include <stdio.h>\nint main(void) { return 0; }\n")
	secretPath := writeFile(t, filepath.Join(dir, "prog.c"), secret)
	stegoPath := filepath.Join(dir, "stego.bmp")

	codec := NewCodec(DefaultMagic)
	report, err := codec.EncodeFile(carrierPath, secretPath, stegoPath)
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if report.PayloadSize != int64(len(secret)) {
		t.Errorf("PayloadSize = %d, want %d", report.PayloadSize, len(secret))
	}

	result, err := codec.DecodeFile(stegoPath, filepath.Join(dir, "recovered.bmp"))
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	wantPath := filepath.Join(dir, "recovered.c")
	if result.OutputPath != wantPath {
		t.Errorf("OutputPath = %q, want %q", result.OutputPath, wantPath)
	}
	if result.Extension != ".c" {
		t.Errorf("Extension = %q, want .c", result.Extension)
	}

	got, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("read decoded output: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Errorf("decoded output = %q, want %q", got, secret)
	}
}

func TestDecodeFileMagicMismatchCreatesNoOutput(t *testing.T) {
	dir := t.TempDir()
	carrierPath := writeFile(t, filepath.Join(dir, "carrier.bmp"), testBMP(10, 10, nil))

	_, err := NewCodec(DefaultMagic).DecodeFile(carrierPath, filepath.Join(dir, "out"))
	if !errors.Is(err, ErrMagicMismatch) {
		t.Fatalf("DecodeFile error = %v, want ErrMagicMismatch", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries after a failed decode, want only the carrier", len(entries))
	}
}

func TestEncodeFileErrors(t *testing.T) {
	dir := t.TempDir()
	carrierPath := writeFile(t, filepath.Join(dir, "carrier.bmp"), testBMP(10, 10, nil))
	smallPath := writeFile(t, filepath.Join(dir, "small.bmp"), testBMP(2, 2, nil))
	notBMP := writeFile(t, filepath.Join(dir, "fake.bmp"), []byte("definitely not a bitmap"))
	secretPath := writeFile(t, filepath.Join(dir, "secret.txt"), []byte("hi"))
	bigSecret := writeFile(t, filepath.Join(dir, "big.txt"), bytes.Repeat([]byte("x"), 100))

	tests := []struct {
		name    string
		carrier string
		secret  string
		out     string
		want    error
	}{
		{name: "missing carrier", carrier: filepath.Join(dir, "nope.bmp"), secret: secretPath, out: filepath.Join(dir, "a.bmp"), want: ErrFileOpen},
		{name: "missing secret", carrier: carrierPath, secret: filepath.Join(dir, "nope.txt"), out: filepath.Join(dir, "b.bmp"), want: ErrFileOpen},
		{name: "unwritable output", carrier: carrierPath, secret: secretPath, out: filepath.Join(dir, "missing", "c.bmp"), want: ErrFileOpen},
		{name: "not a bitmap", carrier: notBMP, secret: secretPath, out: filepath.Join(dir, "d.bmp"), want: ErrInvalidCarrier},
		{name: "carrier too small", carrier: smallPath, secret: secretPath, out: filepath.Join(dir, "e.bmp"), want: ErrInsufficientCapacity},
		{name: "secret too big", carrier: carrierPath, secret: bigSecret, out: filepath.Join(dir, "f.bmp"), want: ErrInsufficientCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec(DefaultMagic).EncodeFile(tt.carrier, tt.secret, tt.out)
			if !errors.Is(err, tt.want) {
				t.Fatalf("EncodeFile error = %v, want %v", err, tt.want)
			}
			if info, statErr := os.Stat(tt.out); statErr == nil && info.Size() != 0 {
				t.Errorf("%d bytes written to %s before failing", info.Size(), tt.out)
			}
		})
	}
}

func TestDecodeFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCodec("").DecodeFile(filepath.Join(dir, "nope.bmp"), filepath.Join(dir, "out"))
	if !errors.Is(err, ErrFileOpen) {
		t.Errorf("missing stego: error = %v, want ErrFileOpen", err)
	}

	notBMP := writeFile(t, filepath.Join(dir, "fake.bmp"), []byte("BMxx"))
	_, err = NewCodec("").DecodeFile(notBMP, filepath.Join(dir, "out"))
	if !errors.Is(err, ErrInvalidCarrier) {
		t.Errorf("short bitmap: error = %v, want ErrInvalidCarrier", err)
	}
}
