package v1

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/almanac"
	"github.com/helixml/almanac/application/service"
	"github.com/helixml/almanac/infrastructure/api/middleware"
	"github.com/helixml/almanac/infrastructure/api/v1/dto"
	"github.com/helixml/almanac/infrastructure/cache"
)

// SolveRouter handles solve API endpoints.
type SolveRouter struct {
	client *almanac.Client
	cache  *cache.Cache[service.Result]
}

// NewSolveRouter creates a new SolveRouter. Results are cached for ttl;
// zero disables the cache.
func NewSolveRouter(client *almanac.Client, ttl time.Duration) *SolveRouter {
	return &SolveRouter{
		client: client,
		cache:  cache.New[service.Result](ttl),
	}
}

// Routes returns the chi router for solve endpoints.
func (r *SolveRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Solve)

	return router
}

// Solve handles POST /api/v1/solve. The body is either the almanac as
// text/plain, with parts selected by ?part=, or a JSON dto.SolveRequest.
func (r *SolveRouter) Solve(w http.ResponseWriter, req *http.Request) {
	logger := r.client.Logger()

	var body dto.SolveRequest
	if isJSON(req) {
		if err := decodeJSON(w, req, &body); err != nil {
			middleware.WriteError(w, req, err, logger)
			return
		}
	} else {
		text, err := readText(w, req)
		if err != nil {
			middleware.WriteError(w, req, err, logger)
			return
		}
		body.Input = text
		if body.Parts, err = queryParts(req); err != nil {
			middleware.WriteError(w, req, err, logger)
			return
		}
	}

	parts, err := parseParts(body.Parts)
	if err != nil {
		middleware.WriteError(w, req, err, logger)
		return
	}

	key := cache.Key("solve", partsKey(parts), body.Input)
	if result, ok := r.cache.Get(key); ok {
		r.client.Metrics().CacheLookup(true)
		middleware.WriteJSON(w, http.StatusOK, solveResponse(result, true))
		return
	}
	if r.cache.Enabled() {
		r.client.Metrics().CacheLookup(false)
	}

	doc, err := r.client.ParseString(body.Input)
	if err != nil {
		middleware.WriteError(w, req, err, logger)
		return
	}

	result, err := r.client.Solve(req.Context(), doc, parts...)
	if err != nil {
		middleware.WriteError(w, req, err, logger)
		return
	}
	r.cache.Set(key, result)

	middleware.WriteJSON(w, http.StatusOK, solveResponse(result, false))
}

func solveResponse(result service.Result, cached bool) dto.SolveResponse {
	return dto.SolveResponse{
		RunID:  result.RunID,
		Part1:  answerResponse(result.Part1),
		Part2:  answerResponse(result.Part2),
		Cached: cached,
	}
}

func answerResponse(a service.Answer) *dto.AnswerResponse {
	if !a.Solved {
		return nil
	}
	return &dto.AnswerResponse{
		Value:     a.Value,
		Projected: a.Projected,
		ElapsedMS: float64(a.Elapsed.Microseconds()) / 1000,
	}
}
