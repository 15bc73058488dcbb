package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/nao1215/xorcrack/internal/codec"
	"github.com/nao1215/xorcrack/internal/config"
	"github.com/nao1215/xorcrack/internal/cracker"
	"github.com/nao1215/xorcrack/internal/freq"
	"github.com/nao1215/xorcrack/internal/model"
	"github.com/nao1215/xorcrack/internal/source"
	"github.com/spf13/cobra"
)

// candidateList is the ranked candidate table of one input.
type candidateList struct {
	Input      int                `json:"input"`
	Hex        string             `json:"hex"`
	Candidates []model.Decryption `json:"candidates"`
}

// candidatesOutput is the JSON form of the candidates command.
type candidatesOutput struct {
	Inputs []candidateList   `json:"inputs"`
	Best   *model.Decryption `json:"best,omitempty"`
}

// NewCandidatesCmd creates the candidates command.
func NewCandidatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates [hex...]",
		Short: "List every scored candidate key of a ciphertext",
		Long: `Candidates shows how a ciphertext is cracked: every candidate key guessed
from the most frequent ciphertext bytes, ranked by score. Candidates with
equal scores keep the order in which they were generated, so the first row
is the decryption crack would pick.

Without arguments, hex lines are read from standard input. Given several
inputs, the best decryption over all of them is printed as well.

Examples:
  xorcrack candidates 1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736
  xorcrack candidates -k 3 --letters etaoin <hex>`,
		Args: cobra.ArbitraryArgs,
		RunE: runCandidatesCmd,
	}

	cmd.Flags().IntP(config.KeyRankDepth, "k", config.DefaultRankDepth,
		"Number of ranked ciphertext bytes beyond the most frequent used as key sources")
	cmd.Flags().String("letters", string(freq.AssumedLetters()),
		"Plaintext letters assumed behind the most frequent ciphertext bytes")
	cmd.Flags().IntP(config.KeyConcurrency, "b", config.DefaultConcurrency,
		"Number of inputs cracked in parallel when picking the best")
	cmd.Flags().BoolP("json", "j", false, "Output JSON")

	return cmd
}

// runCandidatesCmd executes the candidates command.
func runCandidatesCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	depth, err := flags.GetInt(config.KeyRankDepth)
	if err != nil {
		return err
	}
	if depth < 0 {
		return fmt.Errorf("%s must not be negative, got %d", config.KeyRankDepth, depth)
	}
	letters, err := flags.GetString("letters")
	if err != nil {
		return err
	}
	if letters == "" {
		return errors.New("--letters must not be empty")
	}
	concurrency, err := flags.GetInt(config.KeyConcurrency)
	if err != nil {
		return err
	}
	jsonOutput, err := flags.GetBool("json")
	if err != nil {
		return err
	}

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
	if len(inputs) == 0 {
		return cracker.ErrNoCiphertext
	}

	c := cracker.New(
		cracker.WithRankDepth(depth),
		cracker.WithLetters([]byte(letters)),
		cracker.WithConcurrency(concurrency),
		cracker.WithLogger(setupLogger(cmd)),
	)

	var out candidatesOutput
	ciphers := make([][]byte, 0, len(inputs))
	for i, h := range inputs {
		cipher, err := codec.DecodeHex(h)
		if err != nil {
			return fmt.Errorf("input %d: %w", i+1, err)
		}
		candidates, err := c.Candidates(cipher)
		if err != nil {
			return fmt.Errorf("input %d: %w", i+1, err)
		}
		rankCandidates(candidates)

		ciphers = append(ciphers, cipher)
		out.Inputs = append(out.Inputs, candidateList{Input: i + 1, Hex: h, Candidates: candidates})
	}

	if len(ciphers) > 1 {
		best, err := c.CrackBestConcurrent(cmd.Context(), ciphers)
		if err != nil {
			return err
		}
		out.Best = &best
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	writeCandidates(cmd.OutOrStdout(), out)
	return nil
}

// rankCandidates orders candidates by score, highest first. The sort is
// stable, so ties stay in generation order.
func rankCandidates(candidates []model.Decryption) {
	slices.SortStableFunc(candidates, func(a, b model.Decryption) int {
		return b.Score - a.Score
	})
}

// writeCandidates prints one ranked table per input.
func writeCandidates(w io.Writer, out candidatesOutput) {
	for _, list := range out.Inputs {
		fmt.Fprintf(w, "Input %d (%d candidates):\n\n", list.Input, len(list.Candidates))
		fmt.Fprintf(w, "  %-3s  %-11s  %-6s  %-5s  %-6s  %s\n", "#", "Key", "Source", "Count", "Score", "Text")
		fmt.Fprintln(w, "  "+strings.Repeat("-", 72))
		for i, d := range list.Candidates {
			fmt.Fprintf(w, "  %-3d  %-11s  0x%02x    %5d  %6d  %q\n",
				i+1, formatKey(d.Key), d.SourceByte, d.SourceCount, d.Score, truncateText(d.Text, 40))
		}
		fmt.Fprintln(w)
	}

	if out.Best != nil {
		fmt.Fprintf(w, "Best: key %s, score %d: %q\n", formatKey(out.Best.Key), out.Best.Score, out.Best.Text)
	}
}

// formatKey renders a key byte as hex plus its printable character.
func formatKey(key byte) string {
	if key >= 0x20 && key < 0x7f {
		return fmt.Sprintf("0x%02x '%c'", key, key)
	}
	return fmt.Sprintf("0x%02x", key)
}
