package server

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/citypulse/internal/models"
)

// handleDepartmentList handles GET /api/departments?q=.
func (s *Server) handleDepartmentList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	departments := s.app.CatalogService.Search(q)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"departments": departments,
		"count":       len(departments),
	})
}

// handleDepartmentGet handles GET /api/departments/{id}.
func (s *Server) handleDepartmentGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := PathParam(r, "/api/departments/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "department id is required in path")
		return
	}

	dept, ok := s.app.CatalogService.Get(id)
	if !ok {
		WriteErrorWithCode(w, http.StatusNotFound, "department not found: "+id, "not_found")
		return
	}
	WriteJSON(w, http.StatusOK, dept)
}

// handleEmergency handles GET /api/emergency.
func (s *Server) handleEmergency(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, models.EmergencyDirectory{
		Contacts:   s.app.CatalogService.EmergencyContacts(),
		SafetyTips: s.app.CatalogService.SafetyTips(),
	})
}
