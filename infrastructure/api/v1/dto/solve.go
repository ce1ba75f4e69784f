// Package dto holds the JSON request and response bodies of the v1 API.
package dto

// SolveRequest is the JSON body of POST /api/v1/solve.
type SolveRequest struct {
	Input string `json:"input"`
	Parts []int  `json:"parts,omitempty"`
}

// AnswerResponse is one solved part.
type AnswerResponse struct {
	Value     uint64  `json:"value"`
	Projected uint64  `json:"projected"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

// SolveResponse is the body returned by POST /api/v1/solve.
type SolveResponse struct {
	RunID  string          `json:"run_id"`
	Part1  *AnswerResponse `json:"part1,omitempty"`
	Part2  *AnswerResponse `json:"part2,omitempty"`
	Cached bool            `json:"cached"`
}
