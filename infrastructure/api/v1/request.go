// Package v1 implements the version 1 HTTP routes.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/helixml/almanac/application/service"
	"github.com/helixml/almanac/infrastructure/api/middleware"
)

// MaxInputBytes bounds the size of a request body.
const MaxInputBytes = 8 << 20

// isJSON reports whether the request body is JSON.
func isJSON(req *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// decodeJSON decodes a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, req *http.Request, dst any) error {
	body := http.MaxBytesReader(w, req.Body, MaxInputBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return middleware.NewAPIError(http.StatusBadRequest, "invalid JSON body", err)
	}
	return nil
}

// readText reads a bounded plain-text body.
func readText(w http.ResponseWriter, req *http.Request) (string, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, req.Body, MaxInputBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseParts validates part numbers; none means every part.
func parseParts(raw []int) ([]service.Part, error) {
	if len(raw) == 0 {
		return service.AllParts, nil
	}
	parts := make([]service.Part, 0, len(raw))
	seen := make(map[service.Part]bool, len(raw))
	for _, n := range raw {
		p := service.Part(n)
		if !p.Valid() {
			return nil, middleware.NewAPIError(http.StatusBadRequest, fmt.Sprintf("unknown part %d", n), nil)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		parts = append(parts, p)
	}
	return parts, nil
}

// queryParts reads part numbers from repeated or comma-separated "part"
// query parameters.
func queryParts(req *http.Request) ([]int, error) {
	var out []int
	for _, v := range req.URL.Query()["part"] {
		for _, field := range strings.Split(v, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, middleware.NewAPIError(http.StatusBadRequest, fmt.Sprintf("invalid part %q", field), err)
			}
			out = append(out, n)
		}
	}
	return out, nil
}

func partsKey(parts []service.Part) string {
	labels := make([]string, len(parts))
	for i, p := range parts {
		labels[i] = p.String()
	}
	return strings.Join(labels, ",")
}
