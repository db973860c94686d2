package shared

import (
	"net/http"
	"strconv"
)

// Pagination is the limit/offset window of a list endpoint.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads ?limit and ?offset. Malformed or out of range values
// fall back to the defaults instead of failing the request; limit is clamped
// to maxLimit when maxLimit is positive.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	q := r.URL.Query()
	page := Pagination{
		Limit:  queryInt(q.Get("limit"), 1, defaultLimit),
		Offset: queryInt(q.Get("offset"), 0, 0),
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page
}

func queryInt(raw string, floor, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < floor {
		return fallback
	}
	return v
}
