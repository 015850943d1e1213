package main

import (
	"fmt"
	"time"

	"asmgraph/internal/index"

	"github.com/spf13/cobra"
)

var compressOnImport bool

func init() {
	importCmd.Flags().BoolVar(&compressOnImport, "compress", false, "Merge non-branching junctions before saving")
}

var importCmd = &cobra.Command{
	Use:   "import <edges.fasta|dir>",
	Short: "Build a graph from edge FASTA files and save it as the current snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fmt.Printf("📂 Reading edges from: %s\n", args[0])

		store, err := initStore()
		if err != nil {
			return err
		}
		defer store.Close()

		fmt.Println("🚀 Building assembly graph...")
		start := time.Now()
		g, labels, err := index.NewIndexer(cfg.Graph.K, logger).BuildGraph(args[0])
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		fmt.Printf("✅ Graph built in %v. %d edges from %d records.\n", time.Since(start), g.EdgeCount(), len(labels))

		if compressOnImport {
			if err := compressGraph(g); err != nil {
				return err
			}
		}

		fmt.Println("💾 Saving to local database...")
		id, err := store.SaveGraph(ctx, g)
		if err != nil {
			return fmt.Errorf("failed to save graph: %w", err)
		}
		fmt.Printf("🎉 Import complete! Snapshot %s in %s\n", id, cfg.Storage.DB)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the current snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := initStore()
		if err != nil {
			return err
		}
		defer store.Close()

		info, err := store.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		g, err := store.LoadGraph(ctx)
		if err != nil {
			return fmt.Errorf("failed to load graph: %w", err)
		}
		s := g.Stats()

		fmt.Printf("📊 Snapshot %s (k=%d, saved %s)\n", info.ID, info.K, info.SavedAt.Format(time.RFC3339))
		fmt.Printf("  -> %d vertices (%d with complex overlaps)\n", s.Vertices, s.ComplexVertices)
		fmt.Printf("  -> %d edges (%d self-conjugate)\n", s.Edges, s.SelfConjugate)
		fmt.Printf("  -> total length %d, longest %d, N50 %d\n", s.TotalLength, s.MaxLength, s.N50)
		return nil
	},
}

var compressCmd = &cobra.Command{
	Use:   "compress",
	Short: "Merge non-branching junctions of the current snapshot in place",
	Args:  cobra.NoArgs,
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
		if err := compressGraph(g); err != nil {
			return err
		}

		id, err := store.SaveGraph(ctx, g)
		if err != nil {
			return fmt.Errorf("failed to save graph: %w", err)
		}
		fmt.Printf("✅ Saved compressed graph as snapshot %s.\n", id)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <graph.json>",
	Short: "Write the current snapshot as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := initStore()
		if err != nil {
			return err
		}
		defer store.Close()

		g, err := store.LoadGraph(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load graph: %w", err)
		}
		if err := index.NewIndexer(g.K(), logger).SaveGraph(g, args[0]); err != nil {
			return err
		}
		fmt.Printf("✅ Exported %d edges to %s.\n", g.EdgeCount(), args[0])
		return nil
	},
}
