// Package models contain needed models
package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"bmp-steganography/stego"
)

// StegoConfig represents configuration for steganography operations
type StegoConfig struct {
	Magic             string
	DefaultStegoName  string
	DefaultOutputBase string
	AllowedExtensions []string
	Verbose           bool
}

func DefaultStegoConfig() *StegoConfig {
	return &StegoConfig{
		Magic:             stego.DefaultMagic,
		DefaultStegoName:  "default.bmp",
		DefaultOutputBase: "decoded_output",
		AllowedExtensions: []string{".txt", ".c", ".sh"},
	}
}

// ParseExtensions splits a comma separated list such as ".txt,.c,sh",
// adding the leading dot where it is missing.
func ParseExtensions(list string) []string {
	var exts []string
	for _, ext := range strings.Split(list, ",") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

// ValidateSecretName checks the secret file's extension against the
// allow-list. An empty allow-list accepts everything.
func (c *StegoConfig) ValidateSecretName(name string) error {
	if len(c.AllowedExtensions) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range c.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("secret file must be one of %s, got %q", strings.Join(c.AllowedExtensions, ", "), name)
}

// EncodeResponse represents the response after a failed encode
type EncodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DecodeResponse represents the response after a failed decode
type DecodeResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SecretFilename string `json:"secret_filename,omitempty"`
}

// CapacityResponse reports how much a carrier can hold
type CapacityResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	Format        string `json:"format,omitempty"`
	CarrierBytes  int64  `json:"carrier_bytes"`
	MaxSecretSize int64  `json:"max_secret_bytes"`
	HumanReadable string `json:"human_readable,omitempty"`
}
