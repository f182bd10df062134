package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/infrastructure/logger"
	"github.com/bnema/mediaconv/internal/infrastructure/scratch"
	"github.com/bnema/mediaconv/internal/port"
)

const (
	DefaultTimeout = 5 * time.Minute

	// defaultWaitDelay bounds how long Wait keeps draining output pipes after
	// the encoder exited or was killed, in case a child process inherited them.
	defaultWaitDelay = 5 * time.Second

	logOutputTail = 2048
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains null byte")
)

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return ErrInvalidPath
	}
	return nil
}

type ExecutorOptions struct {
	// Timeout applies to invocations that do not set their own.
	Timeout time.Duration
	// MaxConcurrent caps the number of encoder processes alive at once.
	MaxConcurrent int
}

// Executor runs the ffmpeg binary over a pair of scratch files.
type Executor struct {
	path      string
	scratch   *scratch.Manager
	gate      *semaphore.Weighted
	timeout   time.Duration
	waitDelay time.Duration
}

func NewExecutor(encoderPath string, sm *scratch.Manager, opts ExecutorOptions) (*Executor, error) {
	if err := validatePath(encoderPath); err != nil {
		return nil, fmt.Errorf("invalid encoder path: %w", err)
	}
	if sm == nil {
		return nil, errors.New("scratch manager is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = runtime.NumCPU()
	}
	return &Executor{
		path:      encoderPath,
		scratch:   sm,
		gate:      semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		timeout:   opts.Timeout,
		waitDelay: defaultWaitDelay,
	}, nil
}

// BuildCommand returns the encoder argument list (without the binary):
// -y -i <input> <args...> <output>.
func BuildCommand(inputPath, outputPath string, args []string) []string {
	cmd := make([]string, 0, len(args)+4)
	cmd = append(cmd, "-y", "-i", inputPath)
	cmd = append(cmd, args...)
	return append(cmd, outputPath)
}

// Run writes inv.Input to a scratch file, runs the encoder and returns the
// bytes it wrote. Both scratch files are removed before Run returns,
// whatever the outcome.
func (e *Executor) Run(ctx context.Context, inv port.Invocation) ([]byte, error) {
	if err := e.gate.Acquire(ctx, 1); err != nil {
		return nil, domain.NewConversionError(domain.ErrIOFailure, "wait for encoder slot", err)
	}
	defer e.gate.Release(1)

	in, err := e.scratch.Create("upload_", inv.InputExt)
	if err != nil {
		return nil, domain.NewConversionError(domain.ErrIOFailure, "create input file", err)
	}
	defer discard(in)

	out, err := e.scratch.Create("converted_", inv.OutputExt)
	if err != nil {
		return nil, domain.NewConversionError(domain.ErrIOFailure, "create output file", err)
	}
	defer discard(out)

	if err := in.Write(inv.Input); err != nil {
		return nil, domain.NewConversionError(domain.ErrIOFailure, "write input file", err)
	}

	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = e.timeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var output bytes.Buffer
	cmd := exec.CommandContext(runCtx, e.path, BuildCommand(in.Path(), out.Path(), inv.Args)...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = e.waitDelay

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if errors.Is(runErr, exec.ErrWaitDelay) && runCtx.Err() == nil {
		// The encoder exited 0; a leftover child kept the pipes open until
		// WaitDelay closed them. The output file is complete.
		logger.Warn.Printf("encoder exited cleanly but its output pipes stayed open for %s", e.waitDelay)
		runErr = nil
	}

	if runErr != nil {
		return nil, e.classify(ctx, runCtx, runErr, output.String(), timeout)
	}
	logger.Debug.Printf("encoder finished in %s: %s", elapsed.Round(time.Millisecond), logger.SanitizeForLog(strings.Join(inv.Args, " ")))

	data, err := out.ReadAll()
	if err != nil {
		return nil, domain.NewConversionError(domain.ErrIOFailure, "read output file", err)
	}
	if len(data) == 0 {
		cerr := domain.NewConversionError(domain.ErrEncodingFailed, "encode", errors.New("encoder produced no output"))
		cerr.ExitCode = 0
		cerr.Output = output.String()
		return nil, cerr
	}
	return data, nil
}

func (e *Executor) classify(parent, runCtx context.Context, runErr error, output string, timeout time.Duration) error {
	switch {
	case parent.Err() != nil:
		// The caller gave up, which is not the encoder's fault.
		cerr := domain.NewConversionError(domain.ErrIOFailure, "encode interrupted", parent.Err())
		cerr.Output = output
		return cerr
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		cerr := domain.NewConversionError(domain.ErrTimeout, "encode", fmt.Errorf("no result after %s, process killed", timeout))
		cerr.Output = output
		logger.Warn.Printf("encoder killed after %s; output: %s", timeout, logger.SanitizeForLog(logger.Tail(output, logOutputTail)))
		return cerr
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		cerr := domain.NewConversionError(domain.ErrEncodingFailed, "encode", nil)
		cerr.ExitCode = exitErr.ExitCode()
		cerr.Output = output
		logger.Warn.Printf("encoder exited with code %d; output: %s", cerr.ExitCode, logger.SanitizeForLog(logger.Tail(output, logOutputTail)))
		return cerr
	}

	op := "start encoder"
	if errors.Is(runErr, exec.ErrWaitDelay) {
		op = "drain encoder output"
	}
	cerr := domain.NewConversionError(domain.ErrIOFailure, op, runErr)
	cerr.Output = output
	return cerr
}

func discard(f *scratch.File) {
	if err := f.Remove(); err != nil {
		logger.Warn.Printf("scratch cleanup failed: %v", err)
	}
}

var _ port.EncoderRunner = (*Executor)(nil)
