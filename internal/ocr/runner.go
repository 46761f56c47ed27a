package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"time"
)

// Runner executes an external tool. Tests swap in a fake; stdin may be nil.
type Runner interface {
	Run(ctx context.Context, name string, stdin []byte, args ...string) (stdout, stderr []byte, err error)
}

const maxLoggedStderr = 8 << 10

type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, stdin []byte, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	log := r.logger.With("tool", name, "argc", len(args))
	log.Debug("exec.start", "args", args, "stdin_bytes", len(stdin))

	began := time.Now()
	err := cmd.Run()
	elapsed := time.Since(began).Milliseconds()

	switch {
	case ctx.Err() != nil:
		log.Warn("exec.cancelled", "elapsed_ms", elapsed, "error", ctx.Err())
	case err != nil:
		log.Error("exec.failed", "elapsed_ms", elapsed, "error", err,
			"stderr", truncate(stderr.String(), maxLoggedStderr))
	default:
		log.Debug("exec.ok", "elapsed_ms", elapsed,
			"stdout_bytes", stdout.Len(), "stderr_bytes", stderr.Len())
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// truncate caps s at n bytes for logs and error messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}
