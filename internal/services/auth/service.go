// Package auth provides phone and OTP login with JWT-backed sessions
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/interfaces"
	"github.com/bobmcallan/citypulse/internal/models"
)

const (
	phoneLength = 10
	otpLength   = 6

	// DemoPhone logs in as the citizen who owns the generated complaints.
	DemoPhone  = "9876543210"
	DemoUserID = "user-123"
)

// Service implements AuthService.
type Service struct {
	users    interfaces.UserStore
	sessions interfaces.SessionStore
	otps     interfaces.OTPStore
	auth     common.AuthConfig
	otp      common.OTPConfig
	logger   *common.Logger

	now        func() time.Time // injectable clock for testing
	newCode    func() (string, error)
	bcryptCost int

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
}

// NewService creates a new auth service backed by the given storage.
func NewService(storage interfaces.StorageManager, config *common.Config, logger *common.Logger) *Service {
	return &Service{
		users:      storage.UserStore(),
		sessions:   storage.SessionStore(),
		otps:       storage.OTPStore(),
		auth:       config.Auth,
		otp:        config.OTP,
		logger:     logger,
		now:        time.Now,
		newCode:    randomCode,
		bcryptCost: bcrypt.DefaultCost,
		limiters:   make(map[string]*rate.Limiter),
	}
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// limiter returns the per-phone send limiter, creating it on first use.
func (s *Service) limiter(phone string) *rate.Limiter {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()

	l, ok := s.limiters[phone]
	if !ok {
		burst := s.otp.SendBurst
		if burst < 1 {
			burst = 1
		}
		l = rate.NewLimiter(rate.Limit(s.otp.SendRate), burst)
		s.limiters[phone] = l
	}
	return l
}

// SendOTP issues a one-time password for phone. Only its hash is stored.
func (s *Service) SendOTP(ctx context.Context, phone string) error {
	if !isDigits(phone, phoneLength) {
		return fmt.Errorf("phone must be %d digits: %w", phoneLength, models.ErrInvalidInput)
	}

	now := s.now()
	if !s.limiter(phone).AllowN(now, 1) {
		return models.ErrRateLimited
	}

	code, err := s.newCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash otp: %w", err)
	}

	rec := &models.OTPRecord{
		Phone:     phone,
		CodeHash:  string(hash),
		CreatedAt: now,
		ExpiresAt: now.Add(s.otp.GetTTL()),
	}
	if err := s.otps.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if s.otp.IsMock() {
		s.logger.Debug().Str("phone", phone).Str("otp", code).Msg("OTP issued (mock delivery)")
	} else {
		s.logger.Info().Str("phone", maskPhone(phone)).Msg("OTP issued")
	}
	return nil
}

// VerifyOTP checks otp for phone and consumes it on success.
// In mock mode any well-formed code is accepted.
func (s *Service) VerifyOTP(ctx context.Context, phone, otp string) error {
	if !isDigits(phone, phoneLength) {
		return fmt.Errorf("phone must be %d digits: %w", phoneLength, models.ErrInvalidInput)
	}
	if !isDigits(otp, otpLength) {
		return fmt.Errorf("otp must be %d digits: %w", otpLength, models.ErrInvalidInput)
	}

	if s.otp.IsMock() {
		if err := s.otps.Delete(ctx, phone); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to clear mock otp")
		}
		return nil
	}

	rec, err := s.otps.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrInvalidOTP
		}
		return err
	}

	if !s.now().Before(rec.ExpiresAt) {
		_ = s.otps.Delete(ctx, phone)
		return models.ErrOTPExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(otp)); err != nil {
		rec.Attempts++
		if rec.Attempts >= models.MaxOTPAttempts {
			_ = s.otps.Delete(ctx, phone)
		} else if err := s.otps.Save(ctx, rec); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to record otp attempt")
		}
		return models.ErrInvalidOTP
	}

	return s.otps.Delete(ctx, phone)
}

// Login verifies the OTP, finds or registers the citizen and opens a session.
func (s *Service) Login(ctx context.Context, phone, otp string) (*models.LoginResult, error) {
	if err := s.VerifyOTP(ctx, phone, otp); err != nil {
		return nil, err
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		user = s.newCitizen(phone)
		if err := s.users.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to register user: %w", err)
		}
		s.logger.Info().Str("user_id", user.ID).Msg("Citizen registered")
	}

	now := s.now()
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.auth.GetTokenExpiry()),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := signToken(user, session, []byte(s.auth.JWTSecret), now)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("session_id", session.ID).Msg("Citizen logged in")
	return &models.LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// newCitizen builds the profile for a first-time login.
func (s *Service) newCitizen(phone string) *models.Citizen {
	now := s.now()
	u := &models.Citizen{
		ID:             "user-" + uuid.New().String()[:8],
		Name:           "Citizen " + phone[len(phone)-4:],
		Phone:          phone,
		City:           models.DefaultCitizenCity,
		Area:           models.DefaultCitizenArea,
		Pincode:        models.DefaultCitizenPincode,
		AadharVerified: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if phone == DemoPhone {
		u.ID = DemoUserID
		u.Name = models.DefaultCitizenName
	}
	return u
}

// Authenticate validates a bearer token and that its session is still open.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Citizen, *models.Session, error) {
	claims, err := parseToken(token, []byte(s.auth.JWTSecret), s.now)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: session closed", models.ErrUnauthorized)
		}
		return nil, nil, err
	}
	if session.UserID != claims.UserID || session.Expired(s.now()) {
		return nil, nil, fmt.Errorf("%w: session expired", models.ErrUnauthorized)
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: unknown user", models.ErrUnauthorized)
		}
		return nil, nil, err
	}
	return user, session, nil
}

// Logout closes the session. Closing an unknown session is not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info().Str("session_id", sessionID).Msg("Citizen logged out")
	return nil
}

// CurrentUser returns the citizen's profile.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.Citizen, error) {
	return s.users.Get(ctx, userID)
}

// UpdateProfile applies the non-nil fields of update.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Citizen, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", models.ErrInvalidInput)
		}
		user.Name = name
	}
	if update.Email != nil {
		user.Email = strings.TrimSpace(*update.Email)
	}
	if update.Area != nil {
		user.Area = strings.TrimSpace(*update.Area)
	}
	if update.Pincode != nil {
		if !isDigits(*update.Pincode, 6) {
			return nil, fmt.Errorf("pincode must be 6 digits: %w", models.ErrInvalidInput)
		}
		user.Pincode = *update.Pincode
	}
	user.UpdatedAt = s.now()

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return user, nil
}

func maskPhone(phone string) string {
	if len(phone) < 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

var _ interfaces.AuthService = (*Service)(nil)
