// Package catalog provides the municipal department catalog and emergency directory
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/models"
)

// Service serves static reference data. It is immutable after construction
// and safe for concurrent use.
type Service struct {
	departments []models.Department
	index       map[string]int
	emergency   []models.EmergencyCategory
	tips        []models.SafetyTip
}

// catalogFile is the YAML overlay layout. Sections left empty keep the built-in data.
type catalogFile struct {
	Departments []models.Department        `yaml:"departments"`
	Emergency   []models.EmergencyCategory `yaml:"emergency"`
	SafetyTips  []models.SafetyTip         `yaml:"safety_tips"`
}

// NewService returns the built-in catalog of nine departments.
func NewService() *Service {
	s, err := newService(builtinDepartments, emergencyContacts, safetyTips)
	if err != nil {
		panic(err) // built-in data is fixed
	}
	return s
}

// LoadService builds the catalog from the YAML file at path.
// An empty path returns the built-in catalog.
func LoadService(path string, logger *common.Logger) (*Service, error) {
	if path == "" {
		return NewService(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	departments := builtinDepartments
	if len(file.Departments) > 0 {
		departments = file.Departments
	}
	emergency := emergencyContacts
	if len(file.Emergency) > 0 {
		emergency = file.Emergency
	}
	tips := safetyTips
	if len(file.SafetyTips) > 0 {
		tips = file.SafetyTips
	}

	s, err := newService(departments, emergency, tips)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	if logger != nil {
		logger.Info().
			Str("path", path).
			Int("departments", len(s.departments)).
			Msg("Department catalog loaded")
	}
	return s, nil
}

func newService(departments []models.Department, emergency []models.EmergencyCategory, tips []models.SafetyTip) (*Service, error) {
	s := &Service{
		departments: append([]models.Department(nil), departments...),
		index:       make(map[string]int, len(departments)),
		emergency:   emergency,
		tips:        tips,
	}
	for i, d := range s.departments {
		if strings.TrimSpace(d.ID) == "" {
			return nil, fmt.Errorf("department %d has an empty id: %w", i, models.ErrInvalidInput)
		}
		if _, dup := s.index[d.ID]; dup {
			return nil, fmt.Errorf("duplicate department id %q: %w", d.ID, models.ErrInvalidInput)
		}
		s.index[d.ID] = i
	}
	return s, nil
}

// Departments returns the catalog in display order.
func (s *Service) Departments() []models.Department {
	return append([]models.Department(nil), s.departments...)
}

// Get looks up a department by id.
func (s *Service) Get(id string) (models.Department, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Department{}, false
	}
	return s.departments[i], true
}

// Search returns departments whose name or description contains q, ignoring case.
// An empty query returns the whole catalog.
func (s *Service) Search(q string) []models.Department {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return s.Departments()
	}
	out := []models.Department{}
	for _, d := range s.departments {
		if strings.Contains(strings.ToLower(d.Name), q) || strings.Contains(strings.ToLower(d.Description), q) {
			out = append(out, d)
		}
	}
	return out
}

// EmergencyContacts returns the emergency directory grouped by category.
func (s *Service) EmergencyContacts() []models.EmergencyCategory {
	out := make([]models.EmergencyCategory, len(s.emergency))
	for i, c := range s.emergency {
		out[i] = models.EmergencyCategory{
			Category: c.Category,
			Contacts: append([]models.EmergencyContact(nil), c.Contacts...),
		}
	}
	return out
}

// SafetyTips returns the safety advice topics.
func (s *Service) SafetyTips() []models.SafetyTip {
	out := make([]models.SafetyTip, len(s.tips))
	for i, t := range s.tips {
		out[i] = models.SafetyTip{Title: t.Title, Tips: append([]string(nil), t.Tips...)}
	}
	return out
}
