package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/xorcrack/internal/config"
	"github.com/nao1215/xorcrack/internal/database"
	"github.com/spf13/cobra"
)

// shortIDLen is the length of run IDs in the history listing. GetRun
// accepts any unique prefix, so the short form can be passed to --show.
const shortIDLen = 8

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored crack runs",
		Long: `History lists the runs stored in the history database, newest first.

Use --show with a run ID (or a unique prefix of it) to print the full report
of a stored run in any of the report formats.

Examples:
  # List the last 20 runs
  xorcrack history

  # Show a stored run
  xorcrack history --show 3f2a9c1d

  # Show a stored run as Markdown
  xorcrack history --show 3f2a9c1d -m`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("show", "s", "", "Print the report of the run with this ID or ID prefix")
	cmd.Flags().IntP("limit", "l", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolP("json", "j", false, "Output JSON")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown (with --show)")
	cmd.Flags().String("db-dir", "", "History database directory (default: XDG data directory)")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	showID, err := flags.GetString("show")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	setupLogger(cmd)

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if showID != "" {
		rep, err := db.GetRun(ctx, showID)
		if err != nil {
			return err
		}

		cfg := config.NewConfig()
		cfg.JSONReport = jsonOutput
		cfg.MarkdownReport = markdownOutput
		cfg.Verbose = getVerboseFlag(cmd)
		_, err = newReportWriter(cfg, out).Write(rep)
		return err
	}

	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	writeRunList(out, runs)
	return nil
}

// writeRunList prints stored runs as a table.
func writeRunList(out io.Writer, runs []database.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs found in the history database.")
		fmt.Fprintln(out, "\nUse 'xorcrack crack' to crack ciphertexts and record a run.")
		return
	}

	fmt.Fprintf(out, "Stored runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-8s  %-19s  %-7s  %-6s  %s\n", "ID", "Date", "Lines", "Score", "Best")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 72))

	for _, run := range runs {
		score, best := "-", "no decryption"
		if run.Best != nil {
			score = strconv.Itoa(run.Best.Score)
			best = fmt.Sprintf("%s:%d %q", run.Best.Source, run.Best.Line, truncateText(run.Best.Text, 30))
		}
		fmt.Fprintf(out, "  %-8s  %-19s  %-7s  %-6s  %s\n",
			shortID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d/%d", run.Succeeded, run.Lines),
			score,
			best,
		)
	}

	fmt.Fprintln(out, "\nUse 'xorcrack history --show <id>' to see the full report of a run.")
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// truncateText shortens s to at most n runes.
func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
