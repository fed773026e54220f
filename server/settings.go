package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/poiesic/jotpad/core"
	"github.com/poiesic/jotpad/storage"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.GetSettings(r.Context(), userFrom(r))
	if errors.Is(err, storage.ErrNotFound) {
		settings = core.DefaultSettings()
	} else if err != nil {
		s.logger.Error("get settings failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, settings.Normalized())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var in core.UserAISettings
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings := in.Normalized()
	userID := userFrom(r)
	if err := s.settings.PutSettings(r.Context(), userID, settings); err != nil {
		s.logger.Error("put settings failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	stored, err := s.settings.GetSettings(r.Context(), userID)
	if err != nil {
		s.logger.Error("reload settings failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, stored.Normalized())
}
