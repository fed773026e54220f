package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/poiesic/jotpad/core"
	"github.com/poiesic/jotpad/storage"
)

type dataRequest struct {
	Data json.RawMessage `json:"data"`
}

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (s *Server) kindFrom(w http.ResponseWriter, r *http.Request) (core.Kind, bool) {
	kind, err := core.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return kind, true
}

// decodeRecords reads a {"data": [...]} body and validates it against kind.
func (s *Server) decodeRecords(w http.ResponseWriter, r *http.Request, kind core.Kind) ([]storage.Record, bool) {
	var req dataRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	records, err := storage.RecordsFromJSON(kind, req.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %v", kind, err))
		return nil, false
	}
	return records, true
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindFrom(w, r)
	if !ok {
		return
	}

	records, err := s.collections.ListItems(r.Context(), userFrom(r), kind)
	if err != nil {
		s.logger.Error("list failed", "kind", kind, "err", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch %s", kind))
		return
	}

	data, err := storage.RecordsToJSON(records)
	if err != nil {
		s.logger.Error("encode failed", "kind", kind, "err", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch %s", kind))
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: data})
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindFrom(w, r)
	if !ok {
		return
	}
	records, ok := s.decodeRecords(w, r, kind)
	if !ok {
		return
	}

	if err := s.collections.ReplaceItems(r.Context(), userFrom(r), kind, records); err != nil {
		s.logger.Error("replace failed", "kind", kind, "count", len(records), "err", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save %s", kind))
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindFrom(w, r)
	if !ok {
		return
	}
	records, ok := s.decodeRecords(w, r, kind)
	if !ok {
		return
	}

	if len(records) > 0 {
		if err := s.collections.AppendItems(r.Context(), userFrom(r), kind, records); err != nil {
			level := s.logger.Error
			if errors.Is(err, storage.ErrDuplicateKey) {
				level = s.logger.Warn
			}
			level("migrate failed", "kind", kind, "count", len(records), "err", err)
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to migrate %s", kind))
			return
		}
	}
	s.logger.Info("migrated", "kind", kind, "count", len(records))
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
