package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/common"
	"github.com/joseph-ayodele/stayparse/internal/ingest"
	"github.com/joseph-ayodele/stayparse/internal/ocr"
	"github.com/joseph-ayodele/stayparse/internal/parser"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

var (
	cfgFile      string
	outputFormat string
	logLevel     string
)

// app holds what every subcommand needs; built once the config is loaded.
type app struct {
	cfg      *common.Config
	logger   *slog.Logger
	parser   *parser.Parser
	ingestor *ingest.FSIngestor
}

var current *app

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stayparse",
	Short: "Offline extraction of hotel contracts and event invitations",
	Long: `stayparse reads hotel group contracts and event invitations (PDF, PNG,
JPEG, WebP for invitations) and prints the structured data it finds: venue,
stay dates, room inventory, pricing, attrition rules, contacts, and for
invitations the event details and a theme palette.

Everything runs locally. Scanned documents go through tesseract.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stayparse %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); STAYPARSE_* env vars override it")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "output format: json|yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override: debug|info|warn|error")

	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	switch outputFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (want json|yaml)", outputFormat)
	}
	cfg, err := common.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cfg.Log.NewLogger()
	slog.SetDefault(logger)

	kind, _ := constants.ParseKind(cfg.Parse.DefaultKind)
	extractor := ocr.NewExtractor(ocr.ConfigFrom(cfg.OCR), logger)
	current = &app{
		cfg:      cfg,
		logger:   logger,
		parser:   parser.New(extractor, logger),
		ingestor: ingest.NewFSIngestor(kind, logger),
	}
	logger.Debug("cli.setup.ok", "command", cmd.Name(), "tesseract", cfg.OCR.Tesseract, "lang", cfg.OCR.Lang)
	return nil
}
