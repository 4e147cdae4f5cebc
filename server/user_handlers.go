package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jrsteele09/go-storefront-api/auth"
	apperrors "github.com/jrsteele09/go-storefront-api/internal/errors"
)

func (s *Server) recordAuth(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = apperrors.KindOf(err).String()
	}
	s.metrics.RecordAuthOutcome(operation, outcome)
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params auth.RegisterParameters
		if err := decodeJSON(w, r, &params); err != nil {
			writeError(w, r, err)
			return
		}

		user, err := s.accounts.Register(r.Context(), params)
		s.recordAuth("register", err)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, "user created", user)
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params auth.LoginParameters
		if err := decodeJSON(w, r, &params); err != nil {
			writeError(w, r, err)
			return
		}

		result, err := s.accounts.Login(r.Context(), params)
		s.recordAuth("login", err)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "login successful", result)
	}
}

// VerifyTokenHandler confirms the session subject still exists. ?refresh=true also
// returns a longer lived token.
func (s *Server) VerifyTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, r, apperrors.Authentication(unauthorizedMsg))
			return
		}
		refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

		result, err := s.accounts.VerifySession(r.Context(), claims, refresh)
		s.recordAuth("verify", err)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "token valid", result)
	}
}

// UpdateUserHandler applies a profile update. The caller is always recorded as updatedBy.
func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, r, apperrors.Authentication(unauthorizedMsg))
			return
		}

		var update auth.ProfileUpdate
		if err := decodeJSON(w, r, &update); err != nil {
			writeError(w, r, err)
			return
		}
		update.UpdatedBy = &claims.SubjectID

		user, err := s.accounts.UpdateProfile(r.Context(), chi.URLParam(r, "id"), update)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, "user updated", user)
	}
}
