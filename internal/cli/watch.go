package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/stayparse/internal/async"
	"github.com/joseph-ayodele/stayparse/internal/ingest"
)

var (
	watchOutDir   string
	watchDebounce time.Duration
	watchExisting bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Parse documents as they land in a directory",
	Long: `Watch parses every new or rewritten document under a directory until
interrupted. Each result is written to --out-dir as <name>.json (or .yaml),
or to standard output when --out-dir is empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchOutDir, "out-dir", "", "directory for per-file results")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "wait this long after the last write before parsing")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "also parse files already present")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchOutDir != "" {
		if err := os.MkdirAll(watchOutDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	events, errs, err := ingest.Watch(ctx, ingest.WatchConfig{
		Roots:       []string{args[0]},
		SkipHidden:  true,
		InitialScan: watchExisting,
		Debounce:    watchDebounce,
	}, current.logger)
	if err != nil {
		return err
	}

	proc := async.NewParseProcessor(current.parser, current.ingestor)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			current.logger.Warn("cli.watch.error", "error", err)
		case path, ok := <-events:
			if !ok {
				return nil
			}
			if err := watchOne(ctx, cmd, proc, path); err != nil {
				current.logger.Error("cli.watch.file_failed", "path", path, "error", err)
			}
		}
	}
}

func watchOne(ctx context.Context, cmd *cobra.Command, proc *async.ParseProcessor, path string) error {
	job := async.Job{FileID: uuid.New(), Path: path, Kind: ingest.GuessKind(path, current.ingestor.DefaultKind)}
	jobCtx, cancel := context.WithTimeout(ctx, current.cfg.Batch.FileTimeout)
	defer cancel()
	out := proc.Process(jobCtx, job)
	out.Job = job
	_, report := toEntry(out)

	if watchOutDir == "" {
		return render(cmd.OutOrStdout(), report)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "." + outputFormat
	dst, err := os.Create(filepath.Join(watchOutDir, name))
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer func() { _ = dst.Close() }()
	if err := render(dst, report); err != nil {
		return err
	}
	current.logger.Info("cli.watch.parsed", "path", path, "kind", string(job.Kind), "ok", out.Succeeded(), "result", dst.Name())
	return nil
}
