package main

import (
	"fmt"

	"asmgraph/internal/neighborhood"
	"asmgraph/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	seedSpecs []string
	drawDir   string

	outFile        string
	breakScaffolds bool
	minGap         int
	groupGenes     bool
	minEdgeLen     int
)

func init() {
	neighborhoodCmd.Flags().StringArrayVarP(&seedSpecs, "seed", "s", nil, "Seed edge as EDGE or EDGE:BACK:FWD (repeatable)")
	neighborhoodCmd.Flags().StringVar(&drawDir, "draw", "", "Write each component as a DOT file into this directory")
	_ = neighborhoodCmd.MarkFlagRequired("seed")

	contigsCmd.Flags().StringVarP(&outFile, "out", "o", "contigs.fasta", "Output FASTA file")
	contigsCmd.Flags().BoolVar(&breakScaffolds, "break", false, "Break scaffolds at long gaps")
	contigsCmd.Flags().IntVar(&minGap, "min-gap", 0, "Gap length that breaks a scaffold; overrides scaffold.min_gap")
	contigsCmd.Flags().BoolVar(&groupGenes, "genes", false, "Group transcripts into genes and suffix names with _g<gene>_i<isoform>")
	contigsCmd.Flags().IntVar(&minEdgeLen, "min-edge-len", 0, "Shared edge length that joins transcripts; overrides genes.min_edge_len")
}

var neighborhoodCmd = &cobra.Command{
	Use:   "neighborhood",
	Short: "Extract bounded components around seed edges",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		seeds, err := parseSeeds(seedSpecs)
		if err != nil {
			return err
		}

		store, err := initStore()
		if err != nil {
			return err
		}
		defer store.Close()

		g, err := store.LoadGraph(ctx)
		if err != nil {
			return fmt.Errorf("failed to load graph: %w", err)
		}

		nc := neighborhood.Config{
			Multiplier: cfg.Neighborhood.Multiplier,
			MinSize:    cfg.Neighborhood.MinSize,
			MaxSize:    cfg.Neighborhood.MaxSize,
		}
		stage := &pipeline.NeighborhoodStage{
			Graph:   g,
			Config:  nc,
			DrawDir: drawDir,
			Logger:  logger,
			Metrics: runMetrics,
		}
		results, err := stage.Run(ctx, seeds)
		if err != nil {
			return err
		}

		fmt.Printf("🔍 %d seeds, %d components\n", len(seeds), len(results))
		for _, r := range results {
			if r.Skipped {
				fmt.Printf("  -> leader %d: skipped (%s)\n", r.Leader, r.Verdict)
				continue
			}
			fmt.Printf("  -> leader %d: %d seeds, %d vertices, %d edges (%s)", r.Leader, len(r.Seeds), r.Vertices, r.Edges, r.Verdict)
			if r.DotFile != "" {
				fmt.Printf(" -> %s", r.DotFile)
			}
			fmt.Println()
		}
		return nil
	},
}

var contigsCmd = &cobra.Command{
	Use:   "contigs <paths.yaml>",
	Short: "Spell the paths of a paths document into contigs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := initStore()
		if err != nil {
			return err
		}
		defer store.Close()

		fmt.Println("🔄 Loading graph...")
		g, err := store.LoadGraph(ctx)
		if err != nil {
			return fmt.Errorf("failed to load graph: %w", err)
		}

		opts := pipeline.ContigOptions{
			PathsFile:      args[0],
			OutFile:        outFile,
			BreakScaffolds: breakScaffolds,
			MinGap:         cfg.Scaffold.MinGap,
			Genes:          groupGenes,
			MinEdgeLen:     cfg.Genes.MinEdgeLen,
			LineWidth:      cfg.Output.LineWidth,
			Workers:        cfg.Output.Workers,
		}
		if cmd.Flags().Changed("min-gap") {
			opts.MinGap = minGap
		}
		if cmd.Flags().Changed("min-edge-len") {
			opts.MinEdgeLen = minEdgeLen
		}

		stage := &pipeline.ContigStage{Graph: g, Store: store, Logger: logger, Metrics: runMetrics, Opts: opts}
		fmt.Println("🚀 Reconstructing contigs...")
		report, err := stage.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("✅ %d paths -> %d contigs in %v.\n", report.Paths, report.Contigs, report.Elapsed)
		if report.Truncated > 0 {
			fmt.Printf("⚠️  %d contigs were truncated by inconsistent trimming.\n", report.Truncated)
		}
		if report.Skipped > 0 {
			fmt.Printf("  -> %d empty paths skipped\n", report.Skipped)
		}
		if groupGenes {
			fmt.Printf("  -> %d genes\n", report.Genes)
		}
		fmt.Printf("🎉 Contigs written to %s\n", report.Output)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "List contigs recorded against the current snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := initStore()
		if err != nil {
			return err
		}
		defer store.Close()

		contigs, err := store.ListContigs(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list contigs: %w", err)
		}
		if len(contigs) == 0 {
			fmt.Println("✅ No contigs recorded.")
			return nil
		}
		for _, c := range contigs {
			flag := ""
			if c.Truncated {
				flag = " (truncated)"
			}
			fmt.Printf("%s\tlen=%d\tcov=%.2f%s\n", c.Name, c.Length, c.Coverage, flag)
		}
		return nil
	},
}
