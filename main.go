package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"bmp-steganography/carrier"
	"bmp-steganography/handlers"
	"bmp-steganography/models"
	"bmp-steganography/stego"

	"github.com/dustin/go-humanize"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"lukechampine.com/flagg"
)

const (
	exitOK = iota
	exitUsage
	exitFileOpen
	exitInvalidCarrier
	exitCapacity
	exitMagic
	exitTruncated
	exitIO
)

const rootUsage = `Usage: bmp-steganography [command] [args]

Commands:
    encode <carrier.bmp> <secret-file> [output.bmp]
    decode <stego.bmp> [output-base-name]
    capacity <carrier.bmp> [extension]
    serve
`

func main() {
	log.SetFlags(0)

	flagg.Root.Usage = flagg.SimpleUsage(flagg.Root, rootUsage)

	cmdEncode := flagg.New("encode", `Usage:
    bmp-steganography encode [flags] <carrier.bmp> <secret-file> [output.bmp]
      Hide secret-file in carrier.bmp, writing the stego image to output.bmp
      (default.bmp when omitted). WAV carriers are accepted too.
`)
	encMagic := cmdEncode.String("magic", stego.DefaultMagic, "magic marker written ahead of the header")
	encAllow := cmdEncode.String("allow", ".txt,.c,.sh", "comma separated secret file extensions; empty allows any")
	encVerbose := cmdEncode.Bool("v", false, "log every pipeline stage")

	cmdDecode := flagg.New("decode", `Usage:
    bmp-steganography decode [flags] <stego.bmp> [output-base-name]
      Recover the hidden file. Its extension replaces any extension on
      output-base-name (decoded_output when omitted).
`)
	decMagic := cmdDecode.String("magic", stego.DefaultMagic, "magic marker expected ahead of the header")
	decVerbose := cmdDecode.Bool("v", false, "log every pipeline stage")

	cmdCapacity := flagg.New("capacity", `Usage:
    bmp-steganography capacity [flags] <carrier.bmp> [extension]
      Report the largest secret carrier.bmp can hold.
`)
	capMagic := cmdCapacity.String("magic", stego.DefaultMagic, "magic marker the encode will use")

	cmdServe := flagg.New("serve", `Usage:
    bmp-steganography serve [flags]
      Serve encode/decode over HTTP.
`)
	serveAddr := cmdServe.String("addr", "", "listen address (default :$PORT or :8080)")
	serveOrigin := cmdServe.String("origin", "http://localhost:3000", "allowed CORS origin")

	cmd := flagg.Parse(flagg.Tree{
		Cmd: flagg.Root,
		Sub: []flagg.Tree{
			{Cmd: cmdEncode},
			{Cmd: cmdDecode},
			{Cmd: cmdCapacity},
			{Cmd: cmdServe},
		},
	})

	config := models.DefaultStegoConfig()

	switch cmd {
	case cmdEncode:
		if cmd.NArg() < 2 || cmd.NArg() > 3 {
			cmd.Usage()
			os.Exit(exitUsage)
		}
		config.Magic = *encMagic
		config.AllowedExtensions = models.ParseExtensions(*encAllow)
		config.Verbose = *encVerbose
		os.Exit(runEncode(config, cmd))

	case cmdDecode:
		if cmd.NArg() < 1 || cmd.NArg() > 2 {
			cmd.Usage()
			os.Exit(exitUsage)
		}
		config.Magic = *decMagic
		config.Verbose = *decVerbose
		os.Exit(runDecode(config, cmd))

	case cmdCapacity:
		if cmd.NArg() < 1 || cmd.NArg() > 2 {
			cmd.Usage()
			os.Exit(exitUsage)
		}
		config.Magic = *capMagic
		os.Exit(runCapacity(config, cmd))

	case cmdServe:
		runServe(config, *serveAddr, *serveOrigin)

	default:
		flagg.Root.Usage()
		os.Exit(exitUsage)
	}
}

func runEncode(config *models.StegoConfig, cmd *flag.FlagSet) int {
	carrierPath, secretPath := cmd.Arg(0), cmd.Arg(1)

	if _, ok := carrier.FormatForName(filepath.Ext(carrierPath)); !ok {
		log.Printf("ERROR: carrier %s must be a .bmp or .wav file", carrierPath)
		return exitUsage
	}
	if err := config.ValidateSecretName(secretPath); err != nil {
		log.Printf("ERROR: %v", err)
		return exitUsage
	}

	outPath := cmd.Arg(2)
	if outPath == "" {
		format, _ := carrier.FormatForName(filepath.Ext(carrierPath))
		outPath = config.DefaultStegoName
		if format != carrier.FormatBMP {
			outPath = stego.OutputName(outPath, format.Extension())
		}
	}
	if filepath.Ext(outPath) != filepath.Ext(carrierPath) {
		log.Printf("ERROR: output %s must use the carrier's %s extension", outPath, filepath.Ext(carrierPath))
		return exitUsage
	}

	codec := newCodec(config)
	report, err := codec.EncodeFile(carrierPath, secretPath, outPath)
	if err != nil {
		log.Printf("ERROR: %v", err)
		log.Printf("Encoding Failed.")
		return exitCode(err)
	}

	log.Printf("✓ Hid %s (%s) in %s, %s of %s bit-carrying bytes used",
		humanize.Bytes(uint64(report.PayloadSize)), stego.SecretExtension(secretPath), outPath,
		humanize.Comma(report.UnitsUsed), humanize.Comma(report.Layout.Capacity))
	if config.Verbose {
		logPSNR(carrierPath, outPath)
	}
	log.Printf("Encoding Successful.")
	return exitOK
}

func runDecode(config *models.StegoConfig, cmd *flag.FlagSet) int {
	outBase := cmd.Arg(1)
	if outBase == "" {
		outBase = config.DefaultOutputBase
	}

	codec := newCodec(config)
	result, err := codec.DecodeFile(cmd.Arg(0), outBase)
	if err != nil {
		log.Printf("ERROR: %v", err)
		log.Printf("Decoding Failed.")
		return exitCode(err)
	}

	log.Printf("✓ Recovered %s (extension %q) into %s",
		humanize.Bytes(uint64(result.PayloadSize)), result.Extension, result.OutputPath)
	log.Printf("Decoding Successful.")
	return exitOK
}

func runCapacity(config *models.StegoConfig, cmd *flag.FlagSet) int {
	path := cmd.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		log.Printf("ERROR: %v", err)
		return exitFileOpen
	}
	defer f.Close()

	layout, err := stego.InspectCarrier(f)
	if err != nil {
		log.Printf("ERROR: %v", err)
		return exitCode(err)
	}

	extension := cmd.Arg(1)
	maxSecret, ok := stego.Available(layout.Capacity, int64(len(config.Magic)), int64(len(extension)))
	if !ok {
		log.Printf("%s (%s) has %s bit-carrying bytes, too few for an empty secret",
			path, layout.Format, humanize.Comma(layout.Capacity))
		return exitCapacity
	}
	fmt.Printf("%s (%s) may hold a secret of %s bytes (~ %s)\n",
		path, layout.Format, humanize.Comma(maxSecret), humanize.Bytes(uint64(maxSecret)))
	return exitOK
}

func runServe(config *models.StegoConfig, addr, origin string) {
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		addr = ":" + port
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{"X-Stego-PSNR", "X-Stego-Capacity", "X-Stego-Request-ID", "Content-Disposition"}
	router.Use(cors.New(corsConfig))

	handlers.Register(router, handlers.NewStegoHandler(config))

	log.Printf("Server starting on %s", addr)
	log.Printf("API endpoints:")
	log.Printf("  POST /api/v1/stego/encode   - Hide a secret file in a BMP/WAV carrier")
	log.Printf("  POST /api/v1/stego/decode   - Recover the secret file from a stego file")
	log.Printf("  POST /api/v1/stego/capacity - Report how much a carrier can hold")
	log.Printf("  GET  /api/v1/health         - Health check")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newCodec(config *models.StegoConfig) *stego.Codec {
	codec := stego.NewCodec(config.Magic)
	if config.Verbose {
		codec.OnStage(func(stage string) {
			log.Printf("%s", stage)
		})
	}
	return codec
}

func logPSNR(carrierPath, stegoPath string) {
	original, err := os.ReadFile(carrierPath)
	if err != nil {
		return
	}
	stegoData, err := os.ReadFile(stegoPath)
	if err != nil {
		return
	}
	log.Printf("PSNR: %.2f dB", carrier.CalculatePSNR(original, stegoData))
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, stego.ErrFileOpen):
		return exitFileOpen
	case errors.Is(err, stego.ErrInvalidCarrier):
		return exitInvalidCarrier
	case errors.Is(err, stego.ErrInsufficientCapacity):
		return exitCapacity
	case errors.Is(err, stego.ErrMagicMismatch):
		return exitMagic
	case errors.Is(err, stego.ErrTruncated):
		return exitTruncated
	default:
		return exitIO
	}
}
