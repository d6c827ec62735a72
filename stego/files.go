package stego

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bmp-steganography/carrier"
)

// SecretExtension returns the extension recorded for a secret file: the
// suffix of its base name starting at the last dot, or "" when there is none.
func SecretExtension(path string) string {
	return filepath.Ext(filepath.Base(path))
}

// OutputName strips any extension from base and appends the decoded one.
func OutputName(base, extension string) string {
	return strings.TrimSuffix(base, filepath.Ext(base)) + extension
}

// InspectCarrier classifies a carrier, wrapping format failures in
// ErrInvalidCarrier.
func InspectCarrier(r io.ReadSeeker) (carrier.Layout, error) {
	layout, err := carrier.Inspect(r)
	if err != nil {
		if errors.Is(err, carrier.ErrUnsupported) {
			return carrier.Layout{}, fmt.Errorf("%w: %v", ErrInvalidCarrier, err)
		}
		return carrier.Layout{}, err
	}
	return layout, nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrFileOpen, path, err)
	}
	return f, nil
}

func createFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrFileOpen, path, err)
	}
	return f, nil
}

// EncodeFile hides the file at secretPath inside the carrier at carrierPath
// and writes the stego file to outPath. A failure after the output file was
// created leaves it behind, partially written.
func (c *Codec) EncodeFile(carrierPath, secretPath, outPath string) (report *EncodeReport, err error) {
	c.report("Opening files")
	src, err := openFile(carrierPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	secretFile, err := openFile(secretPath)
	if err != nil {
		return nil, err
	}
	defer secretFile.Close()

	out, err := createFile(outPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			report, err = nil, fmt.Errorf("close %s: %w", outPath, cerr)
		}
	}()

	layout, err := InspectCarrier(src)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(secretFile)
	if err != nil {
		return nil, fmt.Errorf("read secret file %s: %w", secretPath, err)
	}

	return c.Encode(src, layout, Secret{Extension: SecretExtension(secretPath), Data: data}, out)
}

// DecodeResult extends DecodeReport with the path the payload was written to.
type DecodeResult struct {
	DecodeReport
	OutputPath string
}

// DecodeFile recovers the secret hidden in stegoPath. The output file is
// named from outBase with its extension replaced by the decoded one, and is
// only created once the magic marker has been verified.
func (c *Codec) DecodeFile(stegoPath, outBase string) (*DecodeResult, error) {
	c.report("Opening files")
	src, err := openFile(stegoPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	layout, err := InspectCarrier(src)
	if err != nil {
		return nil, err
	}

	var outPath string
	report, err := c.Decode(src, layout, func(extension string) (io.WriteCloser, error) {
		outPath = OutputName(outBase, extension)
		return createFile(outPath)
	})
	if err != nil {
		return nil, err
	}
	return &DecodeResult{DecodeReport: *report, OutputPath: outPath}, nil
}
