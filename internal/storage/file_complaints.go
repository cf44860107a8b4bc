package storage

import (
	"context"
	"fmt"

	"github.com/bobmcallan/citypulse/internal/interfaces"
	"github.com/bobmcallan/citypulse/internal/models"
)

// fileComplaintStore keeps one JSON file per complaint under complaints/.
type fileComplaintStore struct {
	fs *FileStore
}

func (s *fileComplaintStore) List(ctx context.Context) ([]models.Complaint, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	dir := s.fs.dir("complaints")
	keys, err := s.fs.listKeys(dir)
	if err != nil {
		return nil, err
	}

	out := make([]models.Complaint, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var c models.Complaint
		if err := s.fs.readJSON(dir, key, &c); err != nil {
			return nil, fmt.Errorf("failed to load complaint: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *fileComplaintStore) SaveAll(ctx context.Context, complaints []models.Complaint) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()

	dir := s.fs.dir("complaints")
	keep := make(map[string]bool, len(complaints))
	for i := range complaints {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.fs.writeJSON(dir, complaints[i].ID, &complaints[i]); err != nil {
			return fmt.Errorf("failed to save complaint %s: %w", complaints[i].ID, err)
		}
		keep[s.fs.sanitizeKey(complaints[i].ID)] = true
	}

	// drop complaints no longer in the collection
	keys, err := s.fs.listKeys(dir)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if !keep[key] {
			if err := s.fs.deleteJSON(dir, key); err != nil {
				return err
			}
		}
	}

	s.fs.logger.Debug().Int("count", len(complaints)).Msg("Complaints saved")
	return nil
}

func (s *fileComplaintStore) Create(ctx context.Context, complaint *models.Complaint) error {
	if complaint.ID == "" {
		return fmt.Errorf("complaint id is required: %w", models.ErrInvalidInput)
	}

	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()

	dir := s.fs.dir("complaints")
	if s.fs.exists(dir, complaint.ID) {
		return fmt.Errorf("complaint %s already exists: %w", complaint.ID, models.ErrInvalidInput)
	}
	if err := s.fs.writeJSON(dir, complaint.ID, complaint); err != nil {
		return fmt.Errorf("failed to create complaint %s: %w", complaint.ID, err)
	}
	return nil
}

var _ interfaces.ComplaintStore = (*fileComplaintStore)(nil)
