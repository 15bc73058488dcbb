package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/xorcrack/internal/config"
	"github.com/nao1215/xorcrack/internal/cracker"
	"github.com/nao1215/xorcrack/internal/database"
	"github.com/nao1215/xorcrack/internal/model"
	"github.com/nao1215/xorcrack/internal/pipeline"
	"github.com/nao1215/xorcrack/internal/report"
	"github.com/nao1215/xorcrack/internal/source"
	"github.com/spf13/cobra"
)

// argSource is the source name of ciphertexts given with --hex.
const argSource = "arg"

// errNoDecryption is returned when no line of a run could be decrypted.
var errNoDecryption = errors.New("no line could be decrypted")

// NewCrackCmd creates the crack command.
func NewCrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crack [location...]",
		Short: "Crack hex-encoded single-byte XOR ciphertexts",
		Long: `Crack reads hex-encoded ciphertexts, one per line, recovers the single-byte
XOR key of every line and reports the most English-like decryption.

A location is one of:
- "-" for standard input
- a file path (gzip, bzip2 and xz files are decompressed automatically)
- a glob such as "data/**/*.txt"
- an http:// or https:// URL
- "@name" for a list of locations defined under aliases in .xorcrack

Examples:
  # Crack a single ciphertext
  xorcrack crack --hex 1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736

  # Find the encrypted line in a file
  xorcrack crack 4.txt

  # Read from standard input and stop at the first bad line
  cat ciphertexts.txt | xorcrack crack --strict -

  # Fetch through Tor and write a Markdown report
  xorcrack crack --proxy 127.0.0.1:9050 -m -o report.md https://example.com/4.txt

  # Try more key sources per line
  xorcrack crack -k 3 4.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrackCmd,
	}

	cmd.Flags().StringArrayP("hex", "x", nil,
		"Hex-encoded ciphertext to crack (repeatable)")

	cmd.Flags().IntP(config.KeyRankDepth, "k", config.DefaultRankDepth,
		"Number of ranked ciphertext bytes beyond the most frequent used as key sources")
	cmd.Flags().IntP(config.KeyConcurrency, "b", config.DefaultConcurrency,
		"Number of lines cracked in parallel")
	cmd.Flags().Bool(config.KeyStrict, false,
		"Stop at the first line that fails")
	cmd.Flags().IntP(config.KeyTop, "n", config.DefaultTop,
		"Number of lines in the ranked table (0 for all)")

	cmd.Flags().StringP(config.KeyProxy, "p", "",
		"SOCKS5 proxy for URL locations (e.g., 127.0.0.1:9050)")
	cmd.Flags().DurationP(config.KeyTimeout, "t", config.DefaultFetchTimeout,
		"Timeout for each URL location")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .xorcrack in current or home directory)")
	cmd.Flags().Bool(config.KeyNoHistory, false,
		"Do not read from or write to the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runCrackCmd executes the crack command.
func runCrackCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrackConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCrack(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
}

// buildCrackConfig creates a Config from flags and the config file.
// Flags given explicitly win over file defaults.
func buildCrackConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.HexLines, err = flags.GetStringArray("hex"); err != nil {
		return nil, err
	}
	if cfg.RankDepth, err = flags.GetInt(config.KeyRankDepth); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = flags.GetInt(config.KeyConcurrency); err != nil {
		return nil, err
	}
	if cfg.Strict, err = flags.GetBool(config.KeyStrict); err != nil {
		return nil, err
	}
	if cfg.Top, err = flags.GetInt(config.KeyTop); err != nil {
		return nil, err
	}
	if cfg.ProxyAddress, err = flags.GetString(config.KeyProxy); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = flags.GetDuration(config.KeyTimeout); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool(config.KeyNoHistory)
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noHistory

	if dbDir, err := flags.GetString("db-dir"); err != nil {
		return nil, err
	} else if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// A missing file is only an error when its path was given explicitly.
	configFile := &config.File{Aliases: map[string][]string{}}
	if configPath := config.FindConfigFile(cfg.ConfigFilePath); configPath != "" {
		if configFile, err = config.LoadConfigFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	configFile.Apply(cfg, flags.Changed)
	cfg.Sources = configFile.ExpandAliases(args)

	return cfg, nil
}

// runCrack reads every line, cracks it and writes the report.
// It returns errNoDecryption when nothing could be decrypted so the exit
// status reflects the run.
func runCrack(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	reader, err := source.NewReader(
		source.WithStdin(stdin),
		source.WithProxy(cfg.ProxyAddress),
		source.WithTimeout(cfg.FetchTimeout),
		source.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create reader: %w", err)
	}

	lines := hexArgLines(cfg.HexLines)
	if len(cfg.Sources) > 0 {
		read, err := reader.ReadLines(ctx, cfg.Sources...)
		if err != nil {
			return fmt.Errorf("failed to read ciphertexts: %w", err)
		}
		lines = append(lines, read...)
	}
	if len(lines) == 0 {
		return errors.New("no ciphertext found in the given locations")
	}

	var db *database.ResultDB
	var lookup pipeline.DecryptionLookup
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		lookup = db
		logger.Debug("database opened", "path", db.Path())
	}

	c := cracker.New(
		cracker.WithRankDepth(cfg.RankDepth),
		cracker.WithLogger(logger),
	)
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.NewCrackPipeline(c, lookup, logger)
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithStrict(cfg.Strict),
		pipeline.WithBatchLogger(logger),
	)

	rep := model.NewBatchReport(reportSources(cfg))
	rep.RankDepth = cfg.RankDepth
	rep.Strict = cfg.Strict

	logger.Info("starting crack",
		"lines", len(lines),
		"rank_depth", cfg.RankDepth,
		"concurrency", cfg.Concurrency,
		"history", cfg.SaveToDB,
	)

	results, batchErr := bp.ProcessBatch(ctx, lines)
	rep.Results = results
	rep.Finalize()

	if db != nil {
		// Partial runs are stored too, so an interrupted run still feeds the cache.
		if err := db.SaveRun(context.WithoutCancel(ctx), rep); err != nil {
			logger.Error("failed to save run", "run_id", rep.ID, "error", err)
		} else {
			logger.Info("run saved to database", "run_id", rep.ID)
		}
	}

	if err := outputReport(cfg, rep, stdout); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if batchErr != nil {
		return batchErr
	}
	if rep.Best == nil {
		return errNoDecryption
	}
	return nil
}

// hexArgLines turns --hex values into lines numbered by position.
func hexArgLines(hexLines []string) []source.Line {
	lines := make([]source.Line, 0, len(hexLines))
	for i, h := range hexLines {
		lines = append(lines, source.Line{Source: argSource, Number: i + 1, Text: h})
	}
	return lines
}

// reportSources lists the inputs of a run for the report header.
func reportSources(cfg *config.Config) []string {
	sources := make([]string, 0, len(cfg.Sources)+1)
	if len(cfg.HexLines) > 0 {
		sources = append(sources, argSource)
	}
	return append(sources, cfg.Sources...)
}

// newReportWriter returns the writer for the requested format.
func newReportWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewVersionedJSONWriter(out, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out, report.WithTop(cfg.Top), report.WithVerbose(cfg.Verbose))
	default:
		return report.NewSimpleWriter(out, report.WithTop(cfg.Top), report.WithVerbose(cfg.Verbose))
	}
}

// outputReport writes the report to stdout, or to cfg.ReportFile with a
// short text summary on stdout.
func outputReport(cfg *config.Config, rep *model.BatchReport, stdout io.Writer) error {
	if cfg.ReportFile == "" {
		_, err := newReportWriter(cfg, stdout).Write(rep)
		return err
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports hold recovered plaintext, so only the owner may read them.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := report.NewMultiWriter(
		newReportWriter(cfg, f),
		report.NewSimpleWriter(stdout, report.WithTop(1)),
	)
	if _, err := w.Write(rep); err != nil {
		return err
	}
	return f.Close()
}
