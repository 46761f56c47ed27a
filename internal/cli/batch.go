package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/stayparse/internal/async"
	"github.com/joseph-ayodele/stayparse/internal/export"
)

var (
	batchWorkers  int
	batchTimeout  time.Duration
	batchOut      string
	batchNoHidden bool
	batchQuiet    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Parse every document under a directory",
	Long: `Batch walks a directory, sniffs each pdf/png/jpg/jpeg/webp file, and parses
it on a pool of workers. The kind is guessed from the file name ("invite",
"rsvp", "wedding" ... mean invitation) and otherwise comes from
parse.default_kind.

Example:
  stayparse batch ./inbox --out results.xlsx
  stayparse batch ./inbox --workers 8 --timeout 2m -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent workers (default from batch.workers)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 0, "per-file timeout (default from batch.file_timeout)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write an XLSX workbook here (default from batch.output)")
	batchCmd.Flags().BoolVar(&batchNoHidden, "skip-hidden", true, "skip hidden files and directories")
	batchCmd.Flags().BoolVarP(&batchQuiet, "quiet", "q", false, "print only the summary, not every result")
	rootCmd.AddCommand(batchCmd)
}

// batchReport is what batch prints when not quiet.
type batchReport struct {
	Root    string       `json:"root" yaml:"root"`
	Files   []fileReport `json:"files" yaml:"files"`
	Failed  []string     `json:"failed,omitempty" yaml:"failed,omitempty"`
	Workers int          `json:"workers" yaml:"workers"`
}

type fileReport struct {
	File   string `json:"file" yaml:"file"`
	Kind   string `json:"kind" yaml:"kind"`
	Result any    `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	cfg := current.cfg.Batch
	if batchWorkers > 0 {
		cfg.Workers = batchWorkers
	}
	if batchTimeout > 0 {
		cfg.FileTimeout = batchTimeout
	}
	if batchOut != "" {
		cfg.Output = batchOut
	}
	ctx := cmdContext(cmd)

	files, stats, err := current.ingestor.ScanDirectory(ctx, root, batchNoHidden)
	if err != nil {
		return err
	}
	jobs := async.JobsFromFiles(files)
	current.logger.Info("cli.batch.start", "root", root, "jobs", len(jobs), "workers", cfg.Workers, "timeout", cfg.FileTimeout)

	outcomes := async.RunBatch(ctx, async.NewParseProcessor(current.parser, current.ingestor), current.logger, jobs,
		async.WithWorkers(cfg.Workers), async.WithProcessTimeout(cfg.FileTimeout))

	report := batchReport{Root: root, Workers: cfg.Workers}
	entries := make([]export.Entry, 0, len(outcomes))
	ok := 0
	for _, f := range files {
		if f.Err != "" {
			report.Failed = append(report.Failed, f.Path+": "+f.Err)
		}
	}
	for _, o := range outcomes {
		e, fr := toEntry(o)
		entries = append(entries, e)
		report.Files = append(report.Files, fr)
		if o.Succeeded() {
			ok++
		}
	}

	if cfg.Output != "" {
		b, err := export.NewService(current.logger).ExportXLSX(entries)
		if err != nil {
			return err
		}
		if dir := filepath.Dir(cfg.Output); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(cfg.Output, b, 0o644); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
	}

	if !batchQuiet {
		if err := render(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	}
	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "scanned %d, matched %d, parsed %d, failed %d\n",
		stats.Scanned, stats.Matched, ok, len(outcomes)-ok+int(stats.Failed))
	if cfg.Output != "" {
		fmt.Fprintf(errOut, "workbook: %s\n", cfg.Output)
	}
	return nil
}

func toEntry(o async.Outcome) (export.Entry, fileReport) {
	e := export.Entry{File: o.Job.Path, Kind: string(o.Job.Kind)}
	fr := fileReport{File: o.Job.Path, Kind: string(o.Job.Kind)}
	switch {
	case o.Err != nil:
		e.Error = o.Err.Error()
		fr.Error = e.Error
	case o.Contract != nil:
		fr.Result = o.Contract
		if o.Contract.Success {
			e.Contract = o.Contract.Data
		} else {
			e.Error = o.Contract.Error
		}
	case o.Invite != nil:
		fr.Result = o.Invite
		if o.Invite.Success {
			e.Invite = o.Invite.Data
		} else {
			e.Error = o.Invite.Error
		}
	}
	return e, fr
}
