package dto

// ProjectRequest is the JSON body of POST /api/v1/project.
type ProjectRequest struct {
	Input  string   `json:"input"`
	Values []uint64 `json:"values"`
}

// IntervalResponse is the interval that matched in a stage.
type IntervalResponse struct {
	SourceStart      uint64 `json:"source_start"`
	SourceEnd        uint64 `json:"source_end"`
	DestinationStart uint64 `json:"destination_start"`
}

// StageResponse describes what one stage did to a value.
type StageResponse struct {
	Stage    string            `json:"stage"`
	Input    uint64            `json:"input"`
	Output   uint64            `json:"output"`
	Interval *IntervalResponse `json:"interval,omitempty"`
}

// ProjectionResponse is the path of one value through every stage.
type ProjectionResponse struct {
	Value  uint64          `json:"value"`
	Result uint64          `json:"result"`
	Stages []StageResponse `json:"stages"`
}

// ProjectResponse is the body returned by POST /api/v1/project.
type ProjectResponse struct {
	Data []ProjectionResponse `json:"data"`
}
