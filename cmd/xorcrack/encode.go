package main

import (
	"fmt"

	"github.com/nao1215/xorcrack/internal/codec"
	"github.com/nao1215/xorcrack/internal/source"
	"github.com/spf13/cobra"
)

// NewEncodeCmd creates the encode command.
func NewEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [hex...]",
		Short: "Convert hex to base64",
		Long: `Encode converts hex strings to base64, one output line per input.

Without arguments, hex lines are read from standard input. The final group
of the output is padded with zero bits instead of "=".

Examples:
  xorcrack encode 49276d206b696c6c696e6720796f757220627261696e
  cat hex.txt | xorcrack encode`,
		Args: cobra.ArbitraryArgs,
		RunE: runEncodeCmd,
	}
}

// runEncodeCmd executes the encode command.
func runEncodeCmd(cmd *cobra.Command, args []string) error {
	inputs := args
	if len(inputs) == 0 {
		reader, err := source.NewReader(source.WithStdin(cmd.InOrStdin()))
		if err != nil {
			return err
		}
		lines, err := reader.ReadLines(cmd.Context(), source.Stdin)
		if err != nil {
			return err
		}
		inputs = source.Texts(lines)
	}

	for i, h := range inputs {
		b, err := codec.DecodeHex(h)
		if err != nil {
			return fmt.Errorf("input %d: %w", i+1, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), codec.EncodeBase64(b))
	}
	return nil
}
