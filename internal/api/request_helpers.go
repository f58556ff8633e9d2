package api

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
)

// Paging defaults for list endpoints.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// queryInt reads an integer query parameter, returning def when it is absent.
// A present but non-numeric value is an error naming the parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: must be an integer", name)
	}
	return v, nil
}

// isFormRequest reports whether the body is a urlencoded form.
func isFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}
