package rembg

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// BackgroundRemover turns the image at inputPath into a base64 PNG with the
// background removed.
type BackgroundRemover interface {
	Remove(ctx context.Context, inputPath string) *Result
}

// Result of one removal. Err is nil exactly when Image holds base64 PNG data.
// Elapsed is set on every path.
type Result struct {
	Image   string
	Elapsed time.Duration
	Err     error
}

func (r *Result) OK() bool {
	return r != nil && r.Err == nil && r.Image != ""
}

// ProcessRemover runs `<interpreter> <script> <input>` and parses its output.
type ProcessRemover struct {
	interpreter string
	script      string
	timeout     time.Duration
	runner      Runner
	logger      *zap.Logger
}

type Option func(*ProcessRemover)

func WithRunner(r Runner) Option {
	return func(p *ProcessRemover) { p.runner = r }
}

// WithTimeout bounds each run. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(p *ProcessRemover) { p.timeout = d }
}

func NewProcessRemover(interpreter, script string, logger *zap.Logger, opts ...Option) *ProcessRemover {
	p := &ProcessRemover{
		interpreter: interpreter,
		script:      script,
		runner:      NewExecRunner(),
		logger:      logger.Named("rembg"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ProcessRemover) Remove(ctx context.Context, inputPath string) *Result {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := p.runner.Run(ctx, p.interpreter, p.script, inputPath)
	elapsed := time.Since(start)
	if res != nil && res.Elapsed > 0 {
		elapsed = res.Elapsed
	}
	if err != nil {
		p.logger.Warn("removal process did not run", zap.String("interpreter", p.interpreter), zap.Error(err))
		return &Result{Elapsed: elapsed, Err: err}
	}

	img, err := ParseOutput(res.Output)
	if err != nil {
		// Crashes and "no result" answers are not distinguished; keep some
		// output around for whoever reads the logs.
		p.logger.Warn("removal process failed",
			zap.Error(err),
			zap.Int("exit_code", res.ExitCode),
			zap.ByteString("output_head", head(res.Output, 256)))
		return &Result{Elapsed: elapsed, Err: err}
	}

	p.logger.Debug("removal process succeeded", zap.Duration("elapsed", elapsed), zap.Int("output_bytes", len(img)))
	return &Result{Image: img, Elapsed: elapsed}
}

func head(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
