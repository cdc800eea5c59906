// Command waveform-encode encodes text as stacked waveforms and writes the
// rendered artifact.
//
// Usage:
//
//	waveform-encode                                   # demo text to waveform_demo.png
//	waveform-encode -o hello.png "Hello"
//	waveform-encode -format wav -rate 16000 -o hello.wav "Hello"
//	waveform-encode -format archive -compression lz4 -o hello.wfmx "Hello"
//	waveform-encode -dims 2 -ec=false "Hello"
//
// Flag defaults can be set with WAVEFORM_* environment variables or a .env
// file in the working directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	waveform "github.com/tphakala/go-waveform-encoder"
	"github.com/tphakala/go-waveform-encoder/render"
)

// Output formats
const (
	formatPNG      = "png"
	formatGradient = "gradient"
	formatWAV      = "wav"
	formatArchive  = "archive"
)

var errUnknownFormat = errors.New("unknown output format")

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := loadConfig()

	dims := flag.Int("dims", cfg.Dimensions, "Waveforms per character (1-4)")
	samples := flag.Int("samples", cfg.Samples, "Samples per waveform")
	ec := flag.Bool("ec", cfg.ErrorCorrection, "Append checksum, parity and smoothed rows")
	format := flag.String("format", cfg.Format, "Output format: png, gradient, wav, archive")
	output := flag.String("o", cfg.Output, "Output file")
	compression := flag.String("compression", cfg.Compression, "Archive compression: none, zstd, s2, lz4")
	rate := flag.Int("rate", cfg.SampleRate, "WAV sample rate in Hz (0 selects 8000)")
	parallel := flag.Bool("parallel", false, "Encode each argument concurrently and report row counts only")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if *verbose {
		waveform.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	renderer, err := buildRenderer(*format, *compression, *rate)
	if err != nil {
		return err
	}

	config := waveform.DefaultConfig()
	config.Dimensions = *dims
	config.Samples = *samples
	config.ErrorCorrection = *ec
	config.Renderer = renderer
	config.EnableParallel = *parallel

	enc, err := waveform.New(&config)
	if err != nil {
		return err
	}

	if *verbose {
		info := enc.Info()
		log.Printf("Dimensions: %d", info.Dimensions)
		log.Printf("Samples: %d", info.Samples)
		log.Printf("Redundancy rows: %d", info.RedundancyRows)
		log.Printf("Bytes per character: %d", info.BytesPerChar)
		log.Printf("SIMD: %s", info.SIMDType)
		log.Printf("Format: %s", *format)
	}

	args := flag.Args()
	if *parallel {
		return reportBatch(enc, args)
	}

	text := defaultText
	if len(args) > 0 {
		text = strings.Join(args, " ")
	}

	metrics, err := enc.VisualizeFile(text, *output)
	if err != nil {
		return err
	}

	fmt.Print(metrics)
	fmt.Printf("Output: %s\n", *output)
	return nil
}

// buildRenderer maps the format flags to a renderer.
func buildRenderer(format, compression string, rate int) (waveform.Renderer, error) {
	switch strings.ToLower(format) {
	case formatPNG:
		return render.NewPNG(render.DefaultStyle()), nil
	case formatGradient:
		return render.NewPNG(render.GradientStyle()), nil
	case formatWAV:
		return render.NewWAV(rate), nil
	case formatArchive:
		c, err := render.ParseCompression(compression)
		if err != nil {
			return nil, err
		}
		return render.NewArchive(c), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// reportBatch encodes every argument and prints its row count.
func reportBatch(enc *waveform.Encoder, texts []string) error {
	if len(texts) == 0 {
		return errors.New("-parallel needs at least one text argument")
	}

	matrices, err := enc.EncodeBatch(texts)
	if err != nil {
		return err
	}
	for i, m := range matrices {
		fmt.Printf("%q: %d rows × %d samples\n", texts[i], m.Len(), m.SampleCount)
	}
	return nil
}
