package storage

import (
	"fmt"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/interfaces"
)

// Manager implements interfaces.StorageManager on top of a FileStore.
type Manager struct {
	fs         *FileStore
	complaints *fileComplaintStore
	users      *fileUserStore
	sessions   *fileSessionStore
	otps       *fileOTPStore
	logger     *common.Logger
}

// NewFileManager creates a file-backed StorageManager rooted at path.
func NewFileManager(logger *common.Logger, path string) (*Manager, error) {
	fs, err := NewFileStore(logger, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}

	logger.Info().Str("path", path).Msg("File storage manager initialized")

	return &Manager{
		fs:         fs,
		complaints: &fileComplaintStore{fs: fs},
		users:      &fileUserStore{fs: fs},
		sessions:   &fileSessionStore{fs: fs},
		otps:       &fileOTPStore{fs: fs},
		logger:     logger,
	}, nil
}

func (m *Manager) ComplaintStore() interfaces.ComplaintStore {
	return m.complaints
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.users
}

func (m *Manager) SessionStore() interfaces.SessionStore {
	return m.sessions
}

func (m *Manager) OTPStore() interfaces.OTPStore {
	return m.otps
}

func (m *Manager) DataPath() string {
	return m.fs.basePath
}

func (m *Manager) Close() error {
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
