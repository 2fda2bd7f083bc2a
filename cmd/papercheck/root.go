package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_text_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_text_similarity/internal/adapters/textfile"
	"github.com/baditaflorin/go_text_similarity/internal/config"
	"github.com/baditaflorin/go_text_similarity/pkg/similarity"
	"github.com/baditaflorin/l"
)

const (
	metricScore         = "score"
	metricComprehensive = "comprehensive"
)

type options struct {
	configPath string
	format     string
	precision  int
	metric     string
	segmenter  string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "papercheck <original> <comparison> <output>",
		Short:         "Estimate how much of a paper duplicates another",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cfg, opts, args[0], args[1], args[2])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	flags.StringVar(&opts.format, "format", "decimal", "Result format: 'decimal' or 'percent'")
	flags.IntVar(&opts.precision, "precision", 2, "Decimals written to the output file")
	flags.StringVar(&opts.metric, "metric", metricScore, "Metric: 'score' or 'comprehensive'")
	flags.StringVar(&opts.segmenter, "segmenter", "gse", "Word segmenter: 'gse' or 'whitespace'")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print the sub-score breakdown")

	return cmd
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("precision") {
		cfg.Output.Precision = opts.precision
	}
	if flags.Changed("segmenter") {
		cfg.Segmenter.Kind = opts.segmenter
	}
	if opts.metric != metricScore && opts.metric != metricComprehensive {
		return nil, fmt.Errorf("invalid metric %q: must be 'score' or 'comprehensive'", opts.metric)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(out io.Writer, cfg *config.Config, opts *options, originalPath, comparisonPath, outputPath string) error {
	lg, err := createLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer lg.Close()

	portsLogger := logger.FromExisting(lg)
	reader := textfile.NewReader(portsLogger)

	original, err := reader.Read(originalPath)
	if err != nil {
		return err
	}
	comparison, err := reader.Read(comparisonPath)
	if err != nil {
		return err
	}

	simOpts := append(similarity.OptionsFromConfig(cfg), similarity.WithLogger(lg))
	sim, err := similarity.New(simOpts...)
	if err != nil {
		return err
	}

	var score float64
	if opts.metric == metricComprehensive {
		score = sim.Comprehensive(original, comparison)
	} else {
		score = sim.Score(original, comparison)
	}

	format, err := textfile.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	writer := textfile.NewWriter(format, cfg.Output.Precision, portsLogger)
	if err := writer.Write(outputPath, score); err != nil {
		return err
	}

	fmt.Fprintf(out, "Similarity: %s\n", textfile.FormatScore(score, textfile.FormatPercent, 2))
	if opts.verbose {
		fmt.Fprintln(out, renderBreakdown(out, sim, original, comparison))
	}
	return nil
}

// createLogger logs to the configured file, or to stderr so that stdout only
// carries the result.
func createLogger(cfg config.Logging) (l.Logger, error) {
	var output io.Writer = os.Stderr
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  cfg.JSON,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB
		MaxFileSize: 10 * 1024 * 1024, // 10MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return lg, nil
}
