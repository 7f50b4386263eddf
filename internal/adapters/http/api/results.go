package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/gradebook/internal/adapters/repository"
	"github.com/okian/gradebook/internal/domain/model"
	"github.com/okian/gradebook/internal/domain/paging"
	"github.com/okian/gradebook/internal/domain/types"
)

// duplicateResultMessage is returned on composite-key conflicts.
const duplicateResultMessage = "course result for this student in this academic year and semester already exists"

// pageParams reads page/limit query parameters. A missing or invalid
// limit comes back as 0, which the service replaces with its configured
// default.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

func paginationOf[T any](p paging.Page[T]) types.Pagination {
	return types.Pagination{Total: p.Total, Page: p.Page, Pages: p.Pages}
}

// handleSubmitResult handles POST /api/results.
func (s *Server) handleSubmitResult(w http.ResponseWriter, r *http.Request) {
	var in model.ScoreRecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, ErrBadRequest.Error())
		return
	}
	rec, err := s.deps.SubmitScore(r.Context(), in)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			writeMessage(w, http.StatusBadRequest, duplicateResultMessage)
			return
		}
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"result": rec})
}

// handleListResults handles GET /api/results.
func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	p, err := s.deps.ScoreRecords(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"results":    p.Items,
		"pagination": paginationOf(p),
	})
}

// handleGetResult handles GET /api/results/{id}.
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	rec, err := s.deps.ScoreRecord(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"result": rec})
}

// handleUpdateResult handles PUT /api/results/{id}. The composite key is
// re-checked against all other records before the update lands.
func (s *Server) handleUpdateResult(w http.ResponseWriter, r *http.Request) {
	var in model.ScoreRecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, ErrBadRequest.Error())
		return
	}
	rec, err := s.deps.UpdateScore(r.Context(), r.PathValue("id"), in)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			writeMessage(w, http.StatusBadRequest, duplicateResultMessage)
			return
		}
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"result": rec})
}

// handleDeleteResult handles DELETE /api/results/{id}.
func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.DeleteScore(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "result deleted successfully")
}
