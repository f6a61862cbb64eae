package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func decodeCategoryRequest(r *http.Request) (categoryRequest, error) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, badRequestf("invalid request body: %v", err)
	}
	if req.Name == "" {
		return req, badRequestf("category name is required")
	}
	return req, nil
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	categories, err := s.categories.ListCategories(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Categories fetched successfully", categories)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	req, err := decodeCategoryRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := s.categories.CreateCategory(r.Context(), email, req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Category created successfully", category)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	id := chi.URLParam(r, "id")

	req, err := decodeCategoryRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := s.categories.UpdateCategory(r.Context(), email, id, req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Category updated successfully", category)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	id := chi.URLParam(r, "id")

	if err := s.categories.DeleteCategory(r.Context(), email, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Category deleted successfully", nil)
}
