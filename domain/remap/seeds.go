package remap

import (
	"strconv"
	"strings"
)

// ParseSeeds decodes a seed line such as "seeds: 79 14 55 13". Anything up
// to and including the first colon is treated as the label and skipped.
func ParseSeeds(line string) ([]uint64, error) {
	body := line
	if _, after, ok := strings.Cut(line, ":"); ok {
		body = after
	}

	fields := strings.Fields(body)
	seeds := make([]uint64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, NewParseError(line, err)
		}
		seeds = append(seeds, n)
	}
	return seeds, nil
}
