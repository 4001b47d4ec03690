// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitkeeper/go-fit-keeper/internal/app"
	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/models"
)

// ping reports backend liveness.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("pong"))
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userID := chi.URLParam(r, "userID")

	doc, err := h.services.DocumentService.GetDocument(r.Context(), userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDocument").Msg("error fetching cloud document")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) patchDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userID := chi.URLParam(r, "userID")

	var doc models.CloudDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Err(err).Str("func", "*Handler.patchDocument").Msg(app.MsgInvalidJSONProvided)
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: app.MsgInvalidJSONProvided})
		return
	}

	if err := h.services.DocumentService.UpsertDocument(r.Context(), userID, doc); err != nil {
		log.Err(err).Str("func", "*Handler.patchDocument").Msg("error upserting cloud document")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFromError(err), models.ErrorResponse{Error: err.Error()})
}
