package path

import "fmt"

// CoverageGraph is a Graph that also reports per-edge coverage.
type CoverageGraph interface {
	Graph
	Coverage(e EdgeID) float64
}

// Coverage is the length-weighted mean edge coverage of p.
func Coverage(p *Path, g CoverageGraph) float64 {
	var weighted float64
	total := 0
	for _, e := range p.edges {
		l := g.Length(e)
		if l <= 0 {
			continue
		}
		weighted += g.Coverage(e) * float64(l)
		total += l
	}
	if total == 0 {
		return 0
	}
	return weighted / float64(total)
}

// ContigName formats the conventional NODE_<n>_length_<len>_cov_<cov> header.
func ContigName(n, length int, coverage float64) string {
	return fmt.Sprintf("NODE_%d_length_%d_cov_%f", n, length, coverage)
}
