package validators

import (
	"net/http"
	"strconv"
	"strings"
)

// ParseOptionalInt reads an optional integer query parameter. Absent or
// unparseable values yield zero, matching the lenient coercion the search
// endpoint has always applied to its limit parameter.
func ParseOptionalInt(r *http.Request, key string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
