package server

import (
	"net/http"

	"github.com/bobmcallan/citypulse/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/api/auth/otp", s.handleSendOTP)
	mux.HandleFunc("/api/auth/otp/verify", s.handleVerifyOTP)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/logout", s.handleAuthLogout)
	mux.HandleFunc("/api/auth/me", s.handleAuthMe)

	// Profile
	mux.HandleFunc("/api/profile/summary", s.handleProfileSummary)
	mux.HandleFunc("/api/profile", s.handleProfile)

	// Catalog
	mux.HandleFunc("/api/departments/", s.handleDepartmentGet)
	mux.HandleFunc("/api/departments", s.handleDepartmentList)
	mux.HandleFunc("/api/emergency", s.handleEmergency)

	// Complaints
	mux.HandleFunc("/api/complaints/", s.handleComplaintGet)
	mux.HandleFunc("/api/complaints", s.handleComplaints)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/analytics", s.handleAnalytics)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
