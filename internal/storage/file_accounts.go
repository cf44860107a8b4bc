package storage

import (
	"context"
	"fmt"

	"github.com/bobmcallan/citypulse/internal/interfaces"
	"github.com/bobmcallan/citypulse/internal/models"
)

type fileUserStore struct {
	fs *FileStore
}

func (s *fileUserStore) Get(_ context.Context, userID string) (*models.Citizen, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	var u models.Citizen
	if err := s.fs.readJSON(s.fs.dir("citizens"), userID, &u); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (s *fileUserStore) GetByPhone(ctx context.Context, phone string) (*models.Citizen, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	dir := s.fs.dir("citizens")
	keys, err := s.fs.listKeys(dir)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var u models.Citizen
		if err := s.fs.readJSON(dir, key, &u); err != nil {
			s.fs.logger.Warn().Err(err).Str("key", key).Msg("Skipping unreadable citizen record")
			continue
		}
		if u.Phone == phone {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with phone %s: %w", phone, models.ErrNotFound)
}

func (s *fileUserStore) Save(_ context.Context, user *models.Citizen) error {
	if user.ID == "" {
		return fmt.Errorf("user id is required: %w", models.ErrInvalidInput)
	}
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	return s.fs.writeJSON(s.fs.dir("citizens"), user.ID, user)
}

type fileSessionStore struct {
	fs *FileStore
}

func (s *fileSessionStore) Save(_ context.Context, session *models.Session) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	return s.fs.writeJSON(s.fs.dir("sessions"), session.ID, session)
}

func (s *fileSessionStore) Get(_ context.Context, sessionID string) (*models.Session, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	var sess models.Session
	if err := s.fs.readJSON(s.fs.dir("sessions"), sessionID, &sess); err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &sess, nil
}

func (s *fileSessionStore) Delete(_ context.Context, sessionID string) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	return s.fs.deleteJSON(s.fs.dir("sessions"), sessionID)
}

type fileOTPStore struct {
	fs *FileStore
}

func (s *fileOTPStore) Save(_ context.Context, record *models.OTPRecord) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	return s.fs.writeJSON(s.fs.dir("otp"), record.Phone, record)
}

func (s *fileOTPStore) Get(_ context.Context, phone string) (*models.OTPRecord, error) {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	var rec models.OTPRecord
	if err := s.fs.readJSON(s.fs.dir("otp"), phone, &rec); err != nil {
		return nil, fmt.Errorf("failed to get otp: %w", err)
	}
	return &rec, nil
}

func (s *fileOTPStore) Delete(_ context.Context, phone string) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	return s.fs.deleteJSON(s.fs.dir("otp"), phone)
}

var (
	_ interfaces.UserStore    = (*fileUserStore)(nil)
	_ interfaces.SessionStore = (*fileSessionStore)(nil)
	_ interfaces.OTPStore     = (*fileOTPStore)(nil)
)
