// Package almanac decodes seed almanac documents into seeds and a stage chain.
package almanac

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/helixml/almanac/domain/remap"
)

// stageSuffix terminates a stage header line such as "seed-to-soil map:".
const stageSuffix = "map:"

// Errors returned while decoding a document.
var (
	ErrEmptyInput = errors.New("almanac: no input lines")
)

// Almanac is a decoded document: the seed values and the chain built from
// its stage blocks, in document order.
type Almanac struct {
	seeds  []uint64
	stages []string
	chain  *remap.Chain
}

// Seeds returns a copy of the seed values.
func (a Almanac) Seeds() []uint64 {
	out := make([]uint64, len(a.seeds))
	copy(out, a.seeds)
	return out
}

// StageNames returns the stage names in chain order. A stage without a
// header has an empty name.
func (a Almanac) StageNames() []string {
	out := make([]string, len(a.stages))
	copy(out, a.stages)
	return out
}

// Chain returns the stage chain.
func (a Almanac) Chain() *remap.Chain { return a.chain }

// ReadLines reads r and returns its lines trimmed, dropping empty ones.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

// Read decodes a document from r.
func Read(r io.Reader) (Almanac, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return Almanac{}, err
	}
	return Parse(lines)
}

// Parse decodes a document from trimmed, non-empty lines. The first line
// holds the seeds; every following line ending in "map:" opens a new stage
// and the lines after it are that stage's interval specifications.
func Parse(lines []string) (Almanac, error) {
	if len(lines) == 0 {
		return Almanac{}, ErrEmptyInput
	}

	seeds, err := remap.ParseSeeds(lines[0])
	if err != nil {
		return Almanac{}, fmt.Errorf("seeds: %w", err)
	}

	a := Almanac{seeds: seeds, chain: remap.NewChain()}

	var (
		name    string
		specs   []string
		pending bool
	)
	flush := func() error {
		if !pending {
			return nil
		}
		if err := a.chain.AddStage(specs); err != nil {
			if name == "" {
				return fmt.Errorf("stage %d: %w", len(a.stages)+1, err)
			}
			return fmt.Errorf("stage %q: %w", name, err)
		}
		a.stages = append(a.stages, name)
		specs = nil
		pending = false
		return nil
	}

	for _, line := range lines[1:] {
		if strings.HasSuffix(line, stageSuffix) {
			if err := flush(); err != nil {
				return Almanac{}, err
			}
			name = strings.TrimSpace(strings.TrimSuffix(line, stageSuffix))
			pending = true
			continue
		}
		specs = append(specs, line)
		pending = true
	}
	if err := flush(); err != nil {
		return Almanac{}, err
	}

	return a, nil
}
