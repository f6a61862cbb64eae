package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type userRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, badRequestf("invalid request body: %v", err))
		return
	}
	if req.Email == "" {
		writeError(w, badRequestf("email is required"))
		return
	}

	user, err := s.users.CreateUser(r.Context(), req.Email, req.FirstName, req.LastName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "User created successfully", user)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := s.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "User fetched successfully", user)
}

func (s *Server) getStatistics(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	stats, err := s.statistics.GetStatisticsForUser(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Statistics fetched successfully", stats)
}
