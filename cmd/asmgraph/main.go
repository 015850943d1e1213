package main

import (
	"fmt"
	"log/slog"
	"os"

	"asmgraph/internal/config"
	"asmgraph/internal/graph"
	"asmgraph/internal/logging"
	"asmgraph/internal/metrics"
	"asmgraph/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:                "asmgraph",
		Short:              "Assembly graph toolkit: import, inspect and spell de Bruijn graphs",
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: flushMetrics,
	}

	configPath string
	dbPath     string
	logLevel   string
	logFormat  string
	metricsOut string
	quiet      bool

	cfg        *config.Config
	logger     *slog.Logger
	runMetrics *metrics.Metrics
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "asmgraph.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the graph database (SQLite); overrides storage.db")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error; overrides log.level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "text or json; overrides log.format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Discard log output")
	rootCmd.PersistentFlags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics to this textfile after the command")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(neighborhoodCmd)
	rootCmd.AddCommand(contigsCmd)
	rootCmd.AddCommand(reportCmd)
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		c.Storage.DB = dbPath
	}
	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		c.Log.Format = logFormat
	}
	if err := c.Validate(); err != nil {
		return err
	}

	cfg = c
	if quiet {
		logger = logging.Discard()
	} else {
		logger = logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	}
	slog.SetDefault(logger)
	runMetrics = metrics.New()
	return nil
}

func flushMetrics(*cobra.Command, []string) error {
	if metricsOut == "" {
		return nil
	}
	if err := runMetrics.WriteTextfile(metricsOut); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// initStore opens the configured SQLite store.
func initStore() (*storage.SQLiteStore, error) {
	store, err := storage.NewSQLiteStore(cfg.Storage.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database %s: %w", cfg.Storage.DB, err)
	}
	return store, nil
}

// compressGraph merges every non-branching junction and records the count.
func compressGraph(g *graph.Graph) error {
	n, err := g.CompressAll()
	if err != nil {
		return fmt.Errorf("compression failed: %w", err)
	}
	runMetrics.Compressed(n)
	fmt.Printf("🗜️  Merged %d junctions.\n", n)
	return nil
}
