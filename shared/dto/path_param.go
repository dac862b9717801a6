package dto

import (
	"giftlist/shared/failure"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// PathID reads a positive integer id from the named route parameter.
func PathID(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(request, name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.InvalidIDParam
	}

	return id, nil
}
