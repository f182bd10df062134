// mediaconv-convert converts one local file with the same strategies the
// server uses and writes the result next to it (or to --out).
//
//	mediaconv-convert --to audio/mpeg song.wav
//	mediaconv-convert --to image/jpeg --out - pic.png > pic.jpg
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/pflag"

	"github.com/bnema/mediaconv/internal/adapter/converter"
	"github.com/bnema/mediaconv/internal/adapter/converter/ffmpeg"
	"github.com/bnema/mediaconv/internal/adapter/converter/imagecodec"
	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/infrastructure/scratch"
	"github.com/bnema/mediaconv/internal/service"
)

// Exit codes by error kind, so scripts can tell a bad request from an
// encoder failure.
const (
	exitFailure     = 1
	exitUsage       = 2
	exitUnsupported = 3
	exitEncoding    = 4
	exitTimeout     = 5
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

type options struct {
	to          string
	from        string
	out         string
	ffmpegPath  string
	timeout     time.Duration
	quality     int
	maxPixels   int64
	passthrough bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("mediaconv-convert", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.to, "to", "t", "", "target MIME type (required), e.g. audio/mpeg")
	flagSet.StringVarP(&opts.from, "from", "f", "", "source MIME type (default: detected from content)")
	flagSet.StringVarP(&opts.out, "out", "o", "", "output path, or - for stdout (default: converted name next to the input)")
	flagSet.StringVar(&opts.ffmpegPath, "ffmpeg", "ffmpeg", "encoder binary")
	flagSet.DurationVar(&opts.timeout, "timeout", ffmpeg.DefaultTimeout, "encoder timeout")
	flagSet.IntVar(&opts.quality, "jpeg-quality", imagecodec.DefaultJPEGQuality, "JPEG quality (1-100)")
	flagSet.Int64Var(&opts.maxPixels, "image-max-pixels", imagecodec.DefaultMaxPixels, "largest image (width*height) accepted for decoding")
	flagSet.BoolVar(&opts.passthrough, "passthrough", false, "copy bytes unchanged when no strategy matches")

	if err := flagSet.Parse(args); err != nil {
		return usageError{err}
	}
	if flagSet.NArg() != 1 {
		return usageError{errors.New("expected exactly one input file")}
	}
	if opts.to == "" {
		return usageError{errors.New("--to is required")}
	}

	input := flagSet.Arg(0)
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	source := opts.from
	if source == "" {
		source = domain.NormalizeMIME(mimetype.Detect(data).String())
	}

	sm, err := scratch.NewManager("")
	if err != nil {
		return err
	}
	executor, err := ffmpeg.NewExecutor(opts.ffmpegPath, sm, ffmpeg.ExecutorOptions{Timeout: opts.timeout, MaxConcurrent: 1})
	if err != nil {
		return usageError{err}
	}
	router, err := service.NewRouter(converter.Strategies(executor, converter.Options{
		JPEGQuality:         opts.quality,
		ImageMaxPixels:      opts.maxPixels,
		MaxConcurrent:       1,
		PassthroughFallback: opts.passthrough,
	})...)
	if err != nil {
		return err
	}

	artifact, err := router.Convert(ctx, &domain.ConversionRequest{
		Data:       data,
		SourceMIME: source,
		Filename:   filepath.Base(input),
		TargetMIME: opts.to,
	})
	if err != nil {
		return err
	}

	if opts.out == "-" {
		_, err := stdout.Write(artifact.Data())
		return err
	}
	dest := opts.out
	if dest == "" {
		dest = filepath.Join(filepath.Dir(input), artifact.Name())
	}
	if err := os.WriteFile(dest, artifact.Data(), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(stderr, "%s (%s) -> %s (%s, %s)\n", input, source, dest, artifact.MIMEType(), humanize.Bytes(uint64(artifact.Size())))
	return nil
}

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var usage usageError
	switch {
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.As(err, &usage), errors.Is(err, domain.ErrInvalidInput):
		return exitUsage
	case errors.Is(err, domain.ErrUnsupportedConversion):
		return exitUnsupported
	case errors.Is(err, domain.ErrEncodingFailed):
		return exitEncoding
	case errors.Is(err, domain.ErrTimeout):
		return exitTimeout
	default:
		return exitFailure
	}
}
