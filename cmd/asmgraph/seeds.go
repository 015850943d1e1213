package main

import (
	"fmt"
	"strconv"
	"strings"

	"asmgraph/internal/neighborhood"
)

// parseSeeds reads seeds written as EDGE or EDGE:BACK:FWD. Repeated edges
// keep the largest overhang on each side.
func parseSeeds(args []string) ([]neighborhood.Seed, error) {
	set := neighborhood.NewSeedSet()
	for _, arg := range args {
		s, err := parseSeed(arg)
		if err != nil {
			return nil, err
		}
		set.Observe(s.Edge, s.Backward, s.Forward)
	}
	return set.Seeds(), nil
}

func parseSeed(arg string) (neighborhood.Seed, error) {
	parts := strings.Split(strings.TrimSpace(arg), ":")
	if len(parts) != 1 && len(parts) != 3 {
		return neighborhood.Seed{}, fmt.Errorf("invalid seed %q: want EDGE or EDGE:BACK:FWD", arg)
	}

	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return neighborhood.Seed{}, fmt.Errorf("invalid seed %q: bad edge id: %w", arg, err)
	}
	s := neighborhood.Seed{Edge: neighborhood.EdgeID(id)}
	if len(parts) == 1 {
		return s, nil
	}

	if s.Backward, err = strconv.Atoi(parts[1]); err != nil || s.Backward < 0 {
		return neighborhood.Seed{}, fmt.Errorf("invalid seed %q: bad backward overhang", arg)
	}
	if s.Forward, err = strconv.Atoi(parts[2]); err != nil || s.Forward < 0 {
		return neighborhood.Seed{}, fmt.Errorf("invalid seed %q: bad forward overhang", arg)
	}
	return s, nil
}
