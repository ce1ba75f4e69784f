package v1

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/almanac"
	"github.com/helixml/almanac/infrastructure/api/middleware"
	"github.com/helixml/almanac/infrastructure/api/v1/dto"
)

// MaxProjectValues bounds the values traced by one project request.
const MaxProjectValues = 10000

// ProjectRouter handles projection API endpoints.
type ProjectRouter struct {
	client *almanac.Client
}

// NewProjectRouter creates a new ProjectRouter.
func NewProjectRouter(client *almanac.Client) *ProjectRouter {
	return &ProjectRouter{client: client}
}

// Routes returns the chi router for projection endpoints.
func (r *ProjectRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Project)

	return router
}

// Project handles POST /api/v1/project, tracing explicit values through
// the almanac's stages.
func (r *ProjectRouter) Project(w http.ResponseWriter, req *http.Request) {
	logger := r.client.Logger()

	var body dto.ProjectRequest
	if err := decodeJSON(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, logger)
		return
	}
	if len(body.Values) == 0 {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "values must not be empty", nil), logger)
		return
	}
	if len(body.Values) > MaxProjectValues {
		msg := fmt.Sprintf("at most %d values per request", MaxProjectValues)
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, msg, nil), logger)
		return
	}

	doc, err := r.client.ParseString(body.Input)
	if err != nil {
		middleware.WriteError(w, req, err, logger)
		return
	}

	projections := r.client.Project(doc, body.Values...)
	resp := dto.ProjectResponse{Data: make([]dto.ProjectionResponse, len(projections))}
	for i, p := range projections {
		resp.Data[i] = projectionResponse(p)
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

func projectionResponse(p almanac.Projection) dto.ProjectionResponse {
	out := dto.ProjectionResponse{
		Value:  p.Value,
		Result: p.Result,
		Stages: make([]dto.StageResponse, len(p.Stages)),
	}
	for i, s := range p.Stages {
		stage := dto.StageResponse{Stage: s.Stage, Input: s.Input, Output: s.Output}
		if s.Matched {
			stage.Interval = &dto.IntervalResponse{
				SourceStart:      s.Interval.SourceStart,
				SourceEnd:        s.Interval.SourceEnd,
				DestinationStart: s.Interval.DestinationStart,
			}
		}
		out.Stages[i] = stage
	}
	return out
}
