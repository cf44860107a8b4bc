package server

import (
	"net/http"

	"github.com/bobmcallan/citypulse/internal/models"
)

// handleProfile handles GET and PATCH /api/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPatch) {
		return
	}
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if r.Method == http.MethodGet {
		user, err := s.app.AuthService.CurrentUser(ctx, uc.UserID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, user)
		return
	}

	var update models.ProfileUpdate
	if !DecodeJSON(w, r, &update) {
		return
	}
	if !s.validate(w, &update) {
		return
	}

	user, err := s.app.AuthService.UpdateProfile(ctx, uc.UserID, update)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// handleProfileSummary handles GET /api/profile/summary.
func (s *Server) handleProfileSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := s.app.ComplaintService.UserSummary(r.Context(), uc.UserID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}
