// Package cli implements the mesi command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/mesi/internal/adapters/logger"
	"github.com/baditaflorin/mesi/internal/adapters/progress"
	"github.com/baditaflorin/mesi/internal/adapters/table"
	"github.com/baditaflorin/mesi/internal/adapters/telemetry"
	"github.com/baditaflorin/mesi/internal/adapters/verify"
	"github.com/baditaflorin/mesi/internal/config"
	"github.com/baditaflorin/mesi/internal/core/domain"
	"github.com/baditaflorin/mesi/internal/core/metric"
	"github.com/baditaflorin/mesi/internal/ports"
	"github.com/baditaflorin/mesi/pkg/mesi"
)

// Version is printed by --version. It is set at build time with -ldflags.
var Version = "dev"

// Exit codes returned by Execute.
const (
	ExitOK               = 0
	ExitUnknownAlgorithm = 1
	ExitInvalidPaths     = 2
	ExitTooFewValid      = 3
	ExitTooFewFiles      = 4
	ExitBadConfig        = 5
	ExitComputeFailure   = 6
)

type flags struct {
	threshold        float64
	ignoreWhitespace bool
	ignoreInvalid    bool
	fullPaths        bool
	algorithm        string
	tableFormat      string
	stats            bool
	workers          int
	cacheSize        int
	noProgress       bool
	metricsFile      string
	listAlgorithms   bool
	envFile          string
}

// NewRootCommand builds the mesi command writing tables to stdout and
// diagnostics to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "mesi [flags] FILE...",
		Short: "Compare the contents of files pairwise with a string distance metric",
		Long: `mesi computes the distance between the contents of every pair of the given
files with a selectable string distance algorithm and shows the pairs within
a threshold, largest distance first.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	})

	fs := cmd.Flags()
	fs.Float64Var(&f.threshold, "threshold", defaults.Threshold, "Only show distances less than or equal to this value")
	fs.BoolVar(&f.ignoreWhitespace, "ignore-whitespace", false, "Remove all whitespace before comparing")
	fs.BoolVar(&f.ignoreInvalid, "ignore-invalid", false, "Skip paths that are not existing regular files")
	fs.BoolVar(&f.fullPaths, "full-paths", false, "Show full paths instead of only the parts that differ")
	fs.StringVarP(&f.algorithm, "algorithm", "a", defaults.Algorithm, "Distance algorithm (see --list-algorithms)")
	fs.StringVarP(&f.tableFormat, "table-format", "f", defaults.TableFormat, "Table format: one of "+joinFormats())
	fs.BoolVar(&f.stats, "stats", false, "Print the average distance of the shown pairs")
	fs.IntVarP(&f.workers, "workers", "w", defaults.Workers, "Number of pairs compared concurrently")
	fs.IntVar(&f.cacheSize, "cache-size", defaults.CacheSize, "Number of file contents kept in memory (0 disables)")
	fs.BoolVar(&f.noProgress, "no-progress", false, "Do not show the progress bar")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	fs.BoolVar(&f.listAlgorithms, "list-algorithms", false, "List the available algorithms and exit")
	fs.StringVar(&f.envFile, "env-file", config.DefaultEnvFile, "Read MESI_ variables from this dotenv file when it exists")

	return cmd
}

// Execute runs the command with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(stderr, text.FgRed.Sprintf("Error: %v", err))
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps an error returned by the command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrUnknownMetric):
		return ExitUnknownAlgorithm
	case errors.Is(err, domain.ErrInvalidInput):
		return ExitInvalidPaths
	case errors.Is(err, verify.ErrTooFewAfterIgnoring):
		return ExitTooFewValid
	case errors.Is(err, domain.ErrInsufficientInput):
		return ExitTooFewFiles
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, table.ErrUnknownFormat):
		return ExitBadConfig
	default:
		return ExitComputeFailure
	}
}

func run(cmd *cobra.Command, f *flags, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, f, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if f.listAlgorithms {
		return listAlgorithms(stdout, cfg.TableFormat)
	}

	// unknown algorithms fail before any path is touched
	if _, err := metric.Default().Lookup(cfg.Algorithm); err != nil {
		return err
	}

	files, err := verify.Files(args, f.ignoreInvalid)
	if err != nil {
		return err
	}

	log, err := newLogger(stderr, cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	var recorder *telemetry.Recorder
	opts := []mesi.Option{
		mesi.WithPortsLogger(log),
		mesi.WithAlgorithm(cfg.Algorithm),
		mesi.WithThreshold(cfg.Threshold),
		mesi.WithIgnoreWhitespace(f.ignoreWhitespace),
		mesi.WithWorkers(cfg.Workers),
		mesi.WithCacheSize(cfg.CacheSize),
		mesi.WithProgress(progress.New(stderr, cfg.Progress)),
	}
	if cfg.MetricsFile != "" {
		recorder = telemetry.NewRecorder()
		opts = append(opts, mesi.WithRecorder(recorder))
	}

	comparer, err := mesi.New(opts...)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	report, err := comparer.Compare(cmd.Context(), files)
	if recorder != nil {
		if werr := recorder.WriteFile(cfg.MetricsFile); werr != nil {
			log.Warn("Could not write metrics file", "path", cfg.MetricsFile, "error", werr)
		}
	}
	if err != nil {
		return err
	}

	if report.UsedFallback {
		fmt.Fprintln(stderr, text.FgRed.Sprintf("No distances below threshold of %s, showing all distances",
			table.FormatDistance(cfg.Threshold)))
	}

	return table.Render(stdout, toDomain(report.Selected), table.Options{
		Format:    cfg.TableFormat,
		FullPaths: f.fullPaths,
		Stats:     f.stats,
	})
}

// applyFlags lets explicitly set flags override the environment.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("algorithm") {
		cfg.Algorithm = f.algorithm
	}
	if changed("table-format") {
		cfg.TableFormat = f.tableFormat
	}
	if changed("threshold") {
		cfg.Threshold = f.threshold
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("cache-size") {
		cfg.CacheSize = f.cacheSize
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if f.noProgress {
		cfg.Progress = false
	}
}

func newLogger(stderr io.Writer, cfg config.Config) (ports.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	if level == logger.LevelOff {
		return logger.NewNopLogger(), nil
	}
	base, err := logger.NewWriterLogger(stderr, cfg.LogJSON)
	if err != nil {
		return nil, err
	}
	return logger.WithLevel(base, level), nil
}

func listAlgorithms(w io.Writer, format string) error {
	algos := mesi.Algorithms()
	rows := make([]table.AlgorithmRow, len(algos))
	for i, a := range algos {
		rows[i] = table.AlgorithmRow{Name: a.Name, Family: a.Family, Bounded: a.Bounded}
	}
	return table.RenderAlgorithms(w, rows, format)
}

func toDomain(results []mesi.Result) []domain.Result {
	out := make([]domain.Result, len(results))
	for i, r := range results {
		out[i] = domain.Result{Pair: domain.FilePair{First: r.First, Second: r.Second}, Distance: r.Distance}
	}
	return out
}

func joinFormats() string {
	return strings.Join(table.Formats(), ", ")
}
