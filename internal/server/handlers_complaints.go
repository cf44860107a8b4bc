package server

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/citypulse/internal/models"
)

// handleComplaints handles GET and POST /api/complaints.
func (s *Server) handleComplaints(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleComplaintList(w, r)
	case http.MethodPost:
		s.handleComplaintFile(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleComplaintList runs ?q=&department=&status=&sort= through the query pipeline.
func (s *Server) handleComplaintList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := models.ComplaintQuery{
		SearchQuery:      strings.TrimSpace(q.Get("q")),
		DepartmentFilter: q.Get("department"),
		StatusFilter:     q.Get("status"),
		SortBy:           q.Get("sort"),
	}

	complaints, err := s.app.ComplaintService.List(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"complaints": complaints,
		"count":      len(complaints),
	})
}

func (s *Server) handleComplaintFile(w http.ResponseWriter, r *http.Request) {
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.NewComplaint
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !s.validate(w, &req) {
		return
	}

	c, err := s.app.ComplaintService.File(r.Context(), uc.UserID, uc.Name, req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/complaints/"+c.ID)
	WriteJSON(w, http.StatusCreated, c)
}

// handleComplaintGet handles GET /api/complaints/{id}.
func (s *Server) handleComplaintGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := PathParam(r, "/api/complaints/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "complaint id is required in path")
		return
	}

	c, err := s.app.ComplaintService.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// handleDashboard handles GET /api/dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	d, err := s.app.ComplaintService.Dashboard(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

// handleAnalytics handles GET /api/analytics.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	data, err := s.app.AnalyticsService.Analytics(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, data)
}
