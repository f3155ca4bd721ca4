package http

import (
	"encoding/json"
	"net/http"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
)

type categoryRequest struct {
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Kind  core.Kind `json:"kind"`
}

type categoryResponse struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Kind  core.Kind `json:"kind"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := core.Category{
		UserID: user,
		Name:   sanitizeInput(req.Name),
		Color:  sanitizeInput(req.Color),
		Kind:   req.Kind,
	}

	id, err := s.tracker.CreateCategory(r.Context(), c)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{
		ID: id, Name: c.Name, Color: c.Color, Kind: c.Kind,
	})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	cats, err := s.tracker.ListCategories(r.Context(), user)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{ID: c.ID, Name: c.Name, Color: c.Color, Kind: c.Kind})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": out,
		"count":      len(out),
	})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := s.tracker.DeleteCategory(r.Context(), user, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
