package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// userIDParam extracts the {id} route parameter. A value that cannot be
// an id can never match a row, so callers treat a failure as not found.
func userIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
