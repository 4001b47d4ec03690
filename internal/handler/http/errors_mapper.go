package http

import (
	"errors"
	"net/http"

	"github.com/fitkeeper/go-fit-keeper/internal/service"
	"github.com/fitkeeper/go-fit-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:      http.StatusBadRequest,
	service.ErrValidationNoUserID:       http.StatusBadRequest,
	service.ErrValidationUserIDMismatch: http.StatusBadRequest,

	store.ErrDocumentNotFound: http.StatusNotFound,
	store.ErrDocumentNotSaved: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrEncodingRecord:     http.StatusInternalServerError,
	store.ErrDecodingRecord:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
