package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"asmgraph/internal/fasta"
	"asmgraph/internal/genes"
	"asmgraph/internal/graph"
	"asmgraph/internal/metrics"
	"asmgraph/internal/path"
	"asmgraph/internal/storage"

	"golang.org/x/sync/errgroup"
)

// ContigOptions configures one contig run.
type ContigOptions struct {
	PathsFile string
	OutFile   string

	// BreakScaffolds cuts paths at gaps larger than MinGap.
	BreakScaffolds bool
	MinGap         int

	// Genes appends _g<gene>_i<isoform> to contig names.
	Genes      bool
	MinEdgeLen int

	LineWidth int
	Workers   int
	GapFill   byte
}

// ContigReport summarizes a finished run.
type ContigReport struct {
	Paths     int
	Contigs   int
	Truncated int
	Skipped   int
	Genes     int
	Output    string
	Elapsed   time.Duration
}

// ContigStage turns a paths document over a loaded graph into a FASTA file.
type ContigStage struct {
	Graph   *graph.Graph
	Store   storage.ContigStore
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Opts    ContigOptions
}

type reconstructed struct {
	pair     path.Pair
	contig   path.Contig
	coverage float64
}

func (s *ContigStage) Run(ctx context.Context) (*ContigReport, error) {
	start := time.Now()
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	paths, err := s.loadPathsStage()
	if err != nil {
		return nil, err
	}
	report := &ContigReport{Paths: paths.Len(), Output: s.Opts.OutFile}

	paths = s.breakStage(paths)

	results, err := s.reconstructStage(ctx, paths)
	if err != nil {
		return nil, err
	}

	var isoforms []genes.Isoform
	if s.Opts.Genes {
		isoforms = s.geneStage(paths)
		report.Genes = countGenes(isoforms)
	}

	records, err := s.writeStage(results, isoforms, report)
	if err != nil {
		return nil, err
	}

	if s.Store != nil {
		if err := s.Store.SaveContigs(ctx, records); err != nil {
			return nil, fmt.Errorf("failed to record contigs: %w", err)
		}
	}

	report.Elapsed = time.Since(start)
	s.Logger.Info("contigs written",
		slog.String("output", report.Output),
		slog.Int("contigs", report.Contigs),
		slog.Int("truncated", report.Truncated),
		slog.Duration("elapsed", report.Elapsed))
	return report, nil
}

func (s *ContigStage) loadPathsStage() (*path.Container, error) {
	defer s.Metrics.Stage("load_paths")()

	doc, err := path.LoadDocument(s.Opts.PathsFile)
	if err != nil {
		return nil, err
	}
	c, names, err := doc.Build(s.Graph)
	if err != nil {
		return nil, fmt.Errorf("failed to build paths: %w", err)
	}
	s.Logger.Info("paths loaded", slog.String("file", s.Opts.PathsFile), slog.Int("paths", c.Len()))
	for i, name := range names {
		s.Logger.Debug("path", slog.Int("index", i), slog.String("name", name), slog.Int("edges", c.At(i).Path.Size()))
	}
	return c, nil
}

func (s *ContigStage) breakStage(c *path.Container) *path.Container {
	if !s.Opts.BreakScaffolds {
		c.SortByLength(s.Graph)
		return c
	}
	defer s.Metrics.Stage("break")()

	broken := path.Breaker{MinGap: s.Opts.MinGap}.Break(c, s.Graph)
	s.Logger.Info("scaffolds broken",
		slog.Int("min_gap", s.Opts.MinGap),
		slog.Int("before", c.Len()),
		slog.Int("after", broken.Len()))
	return broken
}

// reconstructStage spells every path concurrently. The graph is only read
// here, so workers share it without locking.
func (s *ContigStage) reconstructStage(ctx context.Context, c *path.Container) ([]reconstructed, error) {
	defer s.Metrics.Stage("reconstruct")()

	r := path.NewReconstructor(s.Graph)
	if s.Opts.GapFill != 0 {
		r = r.WithGapFill(s.Opts.GapFill)
	}

	results := make([]reconstructed, c.Len())
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(s.Opts.Workers, 1))

	for i, pair := range c.Pairs() {
		i, pair := i, pair
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			contig, err := r.Reconstruct(pair.Path)
			if err != nil {
				return fmt.Errorf("path %d: %w", i, err)
			}
			results[i] = reconstructed{
				pair:     pair,
				contig:   contig,
				coverage: path.Coverage(pair.Path, s.Graph),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("reconstruction failed: %w", err)
	}
	return results, nil
}

func (s *ContigStage) geneStage(c *path.Container) []genes.Isoform {
	defer s.Metrics.Stage("genes")()

	j := genes.NewJoiner(s.Opts.MinEdgeLen, s.Logger)
	j.Construct(c, s.Graph)
	return j.Isoforms()
}

func (s *ContigStage) writeStage(results []reconstructed, isoforms []genes.Isoform, report *ContigReport) ([]storage.ContigRecord, error) {
	defer s.Metrics.Stage("write")()

	f, err := os.Create(s.Opts.OutFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	w := fasta.NewWriter(f, s.Opts.LineWidth)
	var records []storage.ContigRecord
	n := 0
	for i, res := range results {
		if res.contig.Truncated {
			report.Truncated++
			s.Metrics.Truncated()
			s.Logger.Warn("reconstruction stopped early",
				slog.Int("path", i),
				slog.Int("consumed", res.contig.Consumed),
				slog.Int("size", res.pair.Path.Size()))
		}
		if len(res.contig.Sequence) == 0 {
			report.Skipped++
			continue
		}

		n++
		rec := storage.ContigRecord{
			Name:      path.ContigName(n, len(res.contig.Sequence), res.coverage),
			Length:    len(res.contig.Sequence),
			Coverage:  res.coverage,
			Truncated: res.contig.Truncated,
		}
		if isoforms != nil {
			rec.Gene, rec.Isoform = isoforms[i].Gene, isoforms[i].Isoform
			rec.Name += isoforms[i].Suffix()
		}
		if err := w.Write(rec.Name, res.contig.Sequence); err != nil {
			return nil, fmt.Errorf("failed to write contig %s: %w", rec.Name, err)
		}
		s.Metrics.ContigWritten(rec.Truncated)
		records = append(records, rec)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush output: %w", err)
	}
	report.Contigs = n
	return records, nil
}

func countGenes(isoforms []genes.Isoform) int {
	seen := make(map[int]struct{})
	for _, iso := range isoforms {
		seen[iso.Gene] = struct{}{}
	}
	return len(seen)
}
