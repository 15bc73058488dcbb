package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/xorcrack/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for xorcrack.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xorcrack",
		Short: "Recover single-byte XOR keys by letter frequency",
		Long: `xorcrack breaks single-byte XOR ciphertexts.

It guesses keys by assuming the most frequent ciphertext bytes encrypt
common English letters, scores every candidate decryption and keeps the
most English-like one. Given many ciphertexts, it finds the line that was
actually encrypted with a single-byte key.

Runs are stored in a history database so that repeated ciphertexts are
answered from the cache. Use --no-history to disable this.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewCrackCmd())
	cmd.AddCommand(NewEncryptCmd())
	cmd.AddCommand(NewCandidatesCmd())
	cmd.AddCommand(NewEncodeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the masking logger on the command's stderr and makes
// it the process default.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	logger := log.NewSecureLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)
	return logger
}
