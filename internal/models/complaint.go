// Package models defines data structures for CityPulse
package models

import "time"

// Department is a municipal department citizens can file complaints against.
// Departments are static reference data and never change after start-up.
type Department struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Icon           string `json:"icon" yaml:"icon"`
	Description    string `json:"description" yaml:"description"`
	HelplineNumber string `json:"helplineNumber" yaml:"helpline_number"`
	EmailID        string `json:"emailId,omitempty" yaml:"email_id,omitempty"`
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is where a complaint was raised.
type Location struct {
	Area        string       `json:"area"`
	Pincode     string       `json:"pincode"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Comment is a note attached to a complaint by a citizen or an official.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserRole  string    `json:"userRole"`
}

// Escalation records a complaint being pushed up the department hierarchy.
type Escalation struct {
	ID          string    `json:"id"`
	Reason      string    `json:"reason"`
	Level       int       `json:"level"`
	EscalatedTo string    `json:"escalatedTo"`
	EscalatedAt time.Time `json:"escalatedAt"`
}

// Complaint is a civic issue filed by a citizen.
// It holds its own copy of the Department and owns its comments and escalations.
// UpdatedAt is never before CreatedAt.
type Complaint struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Department  Department   `json:"department"`
	Location    Location     `json:"location"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	UserID      string       `json:"userId"`
	UserName    string       `json:"userName"`
	Upvotes     int          `json:"upvotes"`
	Images      []string     `json:"images"`
	AssignedTo  string       `json:"assignedTo,omitempty"`
	Priority    string       `json:"priority"`
	Comments    []Comment    `json:"comments"`
	Escalations []Escalation `json:"escalations,omitempty"`
}

// IsResolved reports whether the complaint counts as resolved for statistics:
// both resolved and closed complaints do.
func (c *Complaint) IsResolved() bool {
	return c.Status == ComplaintStatusResolved || c.Status == ComplaintStatusClosed
}

// Clone returns a deep copy so callers can hand out complaints without sharing slices.
func (c Complaint) Clone() Complaint {
	out := c
	if c.Location.Coordinates != nil {
		coords := *c.Location.Coordinates
		out.Location.Coordinates = &coords
	}
	if c.Images != nil {
		out.Images = append([]string(nil), c.Images...)
	}
	if c.Comments != nil {
		out.Comments = append([]Comment(nil), c.Comments...)
	}
	if c.Escalations != nil {
		out.Escalations = append([]Escalation(nil), c.Escalations...)
	}
	return out
}

// Complaint status constants.
const (
	ComplaintStatusPending    = "pending"
	ComplaintStatusAssigned   = "assigned"
	ComplaintStatusInProgress = "in-progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusClosed     = "closed"
)

// Complaint priority constants.
const (
	ComplaintPriorityLow    = "low"
	ComplaintPriorityMedium = "medium"
	ComplaintPriorityHigh   = "high"
	ComplaintPriorityUrgent = "urgent"
)

// Comment author roles.
const (
	RoleCitizen  = "citizen"
	RoleOfficial = "official"
	RoleAdmin    = "admin"
)

// ComplaintStatuses lists every status in display order.
var ComplaintStatuses = []string{
	ComplaintStatusPending,
	ComplaintStatusAssigned,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
	ComplaintStatusClosed,
}

// ComplaintPriorities lists every priority from lowest to highest.
var ComplaintPriorities = []string{
	ComplaintPriorityLow,
	ComplaintPriorityMedium,
	ComplaintPriorityHigh,
	ComplaintPriorityUrgent,
}

// ValidComplaintStatuses is the set of allowed status values.
var ValidComplaintStatuses = map[string]bool{
	ComplaintStatusPending:    true,
	ComplaintStatusAssigned:   true,
	ComplaintStatusInProgress: true,
	ComplaintStatusResolved:   true,
	ComplaintStatusClosed:     true,
}

// ValidComplaintPriorities is the set of allowed priority values.
var ValidComplaintPriorities = map[string]bool{
	ComplaintPriorityLow:    true,
	ComplaintPriorityMedium: true,
	ComplaintPriorityHigh:   true,
	ComplaintPriorityUrgent: true,
}

// Sort orders accepted by the complaint query.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortUpvotes  = "upvotes"
	SortComments = "comments"
)

// FilterAll disables a department or status filter.
const FilterAll = "all"

// ComplaintQuery selects and orders complaints. Empty filters behave like "all"
// and an empty or unknown SortBy behaves like "newest".
type ComplaintQuery struct {
	SearchQuery      string `json:"searchQuery"`
	DepartmentFilter string `json:"departmentFilter"`
	StatusFilter     string `json:"statusFilter"`
	SortBy           string `json:"sortBy"`
}

// NewComplaint is the citizen-supplied part of a complaint being filed.
type NewComplaint struct {
	DepartmentID string       `json:"department" validate:"required"`
	Title        string       `json:"title" validate:"required,min=5,max=120"`
	Description  string       `json:"description" validate:"required,min=10,max=2000"`
	Area         string       `json:"location" validate:"required"`
	Pincode      string       `json:"pincode" validate:"required,len=6,numeric"`
	Priority     string       `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	Images       []string     `json:"images,omitempty" validate:"omitempty,max=5,dive,url"`
}
