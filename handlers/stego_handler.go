// Package handlers is made to handle requests
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"bmp-steganography/carrier"
	"bmp-steganography/models"
	"bmp-steganography/stego"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxUploadSize bounds multipart uploads.
const MaxUploadSize = 32 << 20

const requestIDHeader = "X-Stego-Request-ID"

type StegoHandler struct {
	config *models.StegoConfig
}

func NewStegoHandler(config *models.StegoConfig) *StegoHandler {
	if config == nil {
		config = models.DefaultStegoConfig()
	}
	return &StegoHandler{config: config}
}

// RequestID tags every response with a fresh request ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Steganography API is running",
		"version": "1.0.0",
	})
}

func (h *StegoHandler) EncodeSecret(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(MaxUploadSize); err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	carrierData, carrierHeader, err := readFormFile(c, "carrier_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: "Carrier file is required",
		})
		return
	}

	secretData, secretHeader, err := readFormFile(c, "secret_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: "Secret file is required",
		})
		return
	}

	if err := h.config.ValidateSecretName(secretHeader.Filename); err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	layout, err := stego.InspectCarrier(bytes.NewReader(carrierData))
	if err != nil {
		c.JSON(statusFor(err), models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to inspect carrier: %v", err),
		})
		return
	}

	codec := stego.NewCodec(h.config.Magic)
	var out bytes.Buffer
	out.Grow(len(carrierData))
	report, err := codec.Encode(bytes.NewReader(carrierData), layout, stego.Secret{
		Extension: stego.SecretExtension(secretHeader.Filename),
		Data:      secretData,
	}, &out)
	if err != nil {
		c.JSON(statusFor(err), models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to embed secret data: %v", err),
		})
		return
	}

	psnr := carrier.CalculatePSNR(carrierData, out.Bytes())
	log.Printf("[%s] embedded %s into %s (%s carrier, PSNR %s dB)",
		c.GetString("request_id"), humanize.Bytes(uint64(report.PayloadSize)),
		carrierHeader.Filename, layout.Format, formatPSNR(psnr))

	baseFilename := strings.TrimSuffix(carrierHeader.Filename, filepath.Ext(carrierHeader.Filename))
	outputFilename := fmt.Sprintf("%s_stego%s", baseFilename, layout.Format.Extension())

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("X-Stego-PSNR", formatPSNR(psnr))
	c.Header("X-Stego-Capacity", fmt.Sprintf("%d", layout.Capacity))
	c.Header("X-Stego-Units-Used", fmt.Sprintf("%d", report.UnitsUsed))

	c.Data(http.StatusOK, contentType(layout.Format), out.Bytes())
}

func (h *StegoHandler) DecodeSecret(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(MaxUploadSize); err != nil {
		c.JSON(http.StatusBadRequest, models.DecodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	stegoData, _, err := readFormFile(c, "stego_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.DecodeResponse{
			Success: false,
			Message: "Stego file is required",
		})
		return
	}

	outputBase := c.PostForm("output_name")
	if outputBase == "" {
		outputBase = h.config.DefaultOutputBase
	}
	outputBase = filepath.Base(outputBase)

	layout, err := stego.InspectCarrier(bytes.NewReader(stegoData))
	if err != nil {
		c.JSON(statusFor(err), models.DecodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to inspect stego file: %v", err),
		})
		return
	}

	codec := stego.NewCodec(h.config.Magic)
	var secret bytes.Buffer
	report, err := codec.Decode(bytes.NewReader(stegoData), layout, func(string) (io.WriteCloser, error) {
		return nopCloser{&secret}, nil
	})
	if err != nil {
		c.JSON(statusFor(err), models.DecodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to extract secret data: %v", err),
		})
		return
	}

	secretFilename := stego.OutputName(outputBase, report.Extension)
	log.Printf("[%s] extracted %s as %s", c.GetString("request_id"),
		humanize.Bytes(uint64(report.PayloadSize)), secretFilename)

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", secretFilename))

	c.Data(http.StatusOK, "application/octet-stream", secret.Bytes())
}

func (h *StegoHandler) Capacity(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(MaxUploadSize); err != nil {
		c.JSON(http.StatusBadRequest, models.CapacityResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	carrierData, _, err := readFormFile(c, "carrier_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.CapacityResponse{
			Success: false,
			Message: "Carrier file is required",
		})
		return
	}

	layout, err := stego.InspectCarrier(bytes.NewReader(carrierData))
	if err != nil {
		c.JSON(statusFor(err), models.CapacityResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to inspect carrier: %v", err),
		})
		return
	}

	extension := c.PostForm("extension")
	maxSecret, ok := stego.Available(layout.Capacity, int64(len(h.config.Magic)), int64(len(extension)))
	if !ok {
		c.JSON(http.StatusOK, models.CapacityResponse{
			Success:      false,
			Message:      "Carrier is too small to hold even an empty secret",
			Format:       string(layout.Format),
			CarrierBytes: layout.Capacity,
		})
		return
	}

	c.JSON(http.StatusOK, models.CapacityResponse{
		Success:       true,
		Format:        string(layout.Format),
		CarrierBytes:  layout.Capacity,
		MaxSecretSize: maxSecret,
		HumanReadable: humanize.Bytes(uint64(maxSecret)),
	})
}

func readFormFile(c *gin.Context, field string) ([]byte, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}
	return data, header, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, stego.ErrInvalidCarrier), errors.Is(err, stego.ErrInsufficientCapacity):
		return http.StatusBadRequest
	case errors.Is(err, stego.ErrMagicMismatch), errors.Is(err, stego.ErrTruncated):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func contentType(format carrier.Format) string {
	switch format {
	case carrier.FormatWAV:
		return "audio/wav"
	default:
		return "image/bmp"
	}
}

func formatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", psnr)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
