package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/stayparse/constants"
	"github.com/joseph-ayodele/stayparse/internal/common"
)

// ErrParseFailed is returned after a {success:false} result has been printed.
var ErrParseFailed = errors.New("parse failed")

var textKind string

var contractCmd = &cobra.Command{
	Use:   "contract <file>",
	Short: "Parse a hotel contract (PDF, PNG or JPEG)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return parseFile(cmd, args[0], constants.KindContract)
	},
}

var inviteCmd = &cobra.Command{
	Use:   "invite <file>",
	Short: "Parse an event invitation (PDF, PNG, JPEG or WebP)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return parseFile(cmd, args[0], constants.KindInvite)
	},
}

var textCmd = &cobra.Command{
	Use:   "text <file|->",
	Short: "Parse plain text that was extracted elsewhere",
	Long: `Parse plain text instead of a document. Use "-" to read standard input.

Example:
  pdftotext contract.pdf - | stayparse text - --kind contract`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	textCmd.Flags().StringVar(&textKind, "kind", "", "document kind: contract|invite (default from parse.default_kind)")
	rootCmd.AddCommand(contractCmd, inviteCmd, textCmd)
}

func parseFile(cmd *cobra.Command, path string, kind constants.DocumentKind) error {
	ctx := common.WithSource(cmdContext(cmd), path)
	f, payload, err := current.ingestor.Load(ctx, path)
	if err != nil {
		return err
	}
	if kind == constants.KindInvite {
		res := current.parser.ParseInvite(ctx, payload, f.MediaType)
		return emit(cmd, res, res.Success)
	}
	res := current.parser.ParseContract(ctx, payload, f.MediaType)
	return emit(cmd, res, res.Success)
}

func runText(cmd *cobra.Command, args []string) error {
	kind, ok := constants.ParseKind(current.cfg.Parse.DefaultKind)
	if textKind != "" {
		kind, ok = constants.ParseKind(textKind)
	}
	if !ok {
		return fmt.Errorf("unknown kind %q (want contract|invite)", textKind)
	}

	var (
		raw []byte
		err error
	)
	if args[0] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read text: %w", err)
	}

	ctx := common.WithSource(cmdContext(cmd), args[0])
	if kind == constants.KindInvite {
		res := current.parser.ParseInviteText(ctx, string(raw))
		return emit(cmd, res, res.Success)
	}
	res := current.parser.ParseContractText(ctx, string(raw))
	return emit(cmd, res, res.Success)
}

func emit(cmd *cobra.Command, v any, success bool) error {
	if err := render(cmd.OutOrStdout(), v); err != nil {
		return err
	}
	if !success {
		return ErrParseFailed
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
