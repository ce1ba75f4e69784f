package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/helixml/almanac"
	"github.com/helixml/almanac/application/service"
)

// outputFormat selects how results are printed.
type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case outputText, outputJSON, outputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

type partOutput struct {
	Value     uint64 `json:"value" yaml:"value"`
	Projected uint64 `json:"projected" yaml:"projected"`
	Elapsed   string `json:"elapsed" yaml:"elapsed"`
}

type solveOutput struct {
	RunID string      `json:"run_id" yaml:"run_id"`
	Part1 *partOutput `json:"part1,omitempty" yaml:"part1,omitempty"`
	Part2 *partOutput `json:"part2,omitempty" yaml:"part2,omitempty"`
}

func newPartOutput(a service.Answer) *partOutput {
	if !a.Solved {
		return nil
	}
	return &partOutput{
		Value:     a.Value,
		Projected: a.Projected,
		Elapsed:   a.Elapsed.Round(time.Microsecond).String(),
	}
}

// writeResult prints a solve result. Text output holds only the answers.
func writeResult(w io.Writer, format outputFormat, result service.Result) error {
	out := solveOutput{
		RunID: result.RunID,
		Part1: newPartOutput(result.Part1),
		Part2: newPartOutput(result.Part2),
	}
	if format != outputText {
		return encode(w, format, out)
	}
	if out.Part1 != nil {
		if _, err := fmt.Fprintf(w, "part 1: %d\n", out.Part1.Value); err != nil {
			return err
		}
	}
	if out.Part2 != nil {
		if _, err := fmt.Fprintf(w, "part 2: %d\n", out.Part2.Value); err != nil {
			return err
		}
	}
	return nil
}

type stageOutput struct {
	Stage    string `json:"stage" yaml:"stage"`
	Input    uint64 `json:"input" yaml:"input"`
	Output   uint64 `json:"output" yaml:"output"`
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`
}

type projectionOutput struct {
	Value  uint64        `json:"value" yaml:"value"`
	Result uint64        `json:"result" yaml:"result"`
	Stages []stageOutput `json:"stages" yaml:"stages"`
}

// writeProjections prints traced values.
func writeProjections(w io.Writer, format outputFormat, projections []almanac.Projection) error {
	out := make([]projectionOutput, len(projections))
	for i, p := range projections {
		po := projectionOutput{Value: p.Value, Result: p.Result, Stages: make([]stageOutput, len(p.Stages))}
		for j, s := range p.Stages {
			so := stageOutput{Stage: s.Stage, Input: s.Input, Output: s.Output}
			if s.Matched {
				so.Interval = s.Interval.String()
			}
			po.Stages[j] = so
		}
		out[i] = po
	}
	if format != outputText {
		return encode(w, format, out)
	}

	var b strings.Builder
	for _, p := range out {
		fmt.Fprintf(&b, "%d -> %d\n", p.Value, p.Result)
		for i, s := range p.Stages {
			name := s.Stage
			if name == "" {
				name = fmt.Sprintf("stage %d", i+1)
			}
			match := "identity"
			if s.Interval != "" {
				match = s.Interval
			}
			fmt.Fprintf(&b, "  %-24s %d -> %d  %s\n", name, s.Input, s.Output, match)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func encode(w io.Writer, format outputFormat, v any) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
