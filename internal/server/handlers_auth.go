package server

import (
	"net/http"
	"time"

	"github.com/bobmcallan/citypulse/internal/models"
)

// handleSendOTP handles POST /api/auth/otp.
func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.OTPRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !s.validate(w, &req) {
		return
	}

	if err := s.app.AuthService.SendOTP(r.Context(), req.Phone); err != nil {
		s.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":    "sent",
		"expiresIn": int(s.app.Config.OTP.GetTTL() / time.Second),
	})
}

// handleVerifyOTP handles POST /api/auth/otp/verify.
func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !s.validate(w, &req) {
		return
	}

	if err := s.app.AuthService.VerifyOTP(r.Context(), req.Phone, req.OTP); err != nil {
		s.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

// handleAuthLogin handles POST /api/auth/login.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !s.validate(w, &req) {
		return
	}

	result, err := s.app.AuthService.Login(r.Context(), req.Phone, req.OTP)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleAuthLogout handles POST /api/auth/logout.
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := s.app.AuthService.Logout(r.Context(), uc.SessionID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAuthMe handles GET /api/auth/me.
func (s *Server) handleAuthMe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := s.app.AuthService.CurrentUser(r.Context(), uc.UserID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}
