package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/interfaces"
	"github.com/bobmcallan/citypulse/internal/models"
)

// citizenSelectFields aliases citizen_id to id for struct mapping.
const citizenSelectFields = `citizen_id as id, name, phone, email, city, area, pincode,
	aadhar_verified, created_at, updated_at`

type citizenRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	City           string    `json:"city"`
	Area           string    `json:"area"`
	Pincode        string    `json:"pincode"`
	AadharVerified bool      `json:"aadhar_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (r *citizenRecord) toModel() *models.Citizen {
	return &models.Citizen{
		ID:             r.ID,
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		City:           r.City,
		Area:           r.Area,
		Pincode:        r.Pincode,
		AadharVerified: r.AadharVerified,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// CitizenStore implements interfaces.UserStore using SurrealDB.
type CitizenStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewCitizenStore creates a new CitizenStore.
func NewCitizenStore(db *surrealdb.DB, logger *common.Logger) *CitizenStore {
	return &CitizenStore{db: db, logger: logger}
}

func (s *CitizenStore) Get(ctx context.Context, userID string) (*models.Citizen, error) {
	sql := "SELECT " + citizenSelectFields + " FROM $rid"
	vars := map[string]any{"rid": surrealmodels.NewRecordID("citizen", userID)}
	return s.selectOne(ctx, sql, vars, "user "+userID)
}

func (s *CitizenStore) GetByPhone(ctx context.Context, phone string) (*models.Citizen, error) {
	sql := "SELECT " + citizenSelectFields + " FROM citizen WHERE phone = $phone LIMIT 1"
	vars := map[string]any{"phone": phone}
	return s.selectOne(ctx, sql, vars, "user with phone "+phone)
}

func (s *CitizenStore) selectOne(ctx context.Context, sql string, vars map[string]any, what string) (*models.Citizen, error) {
	results, err := surrealdb.Query[[]citizenRecord](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("%s: %w", what, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("%s: %w", what, models.ErrNotFound)
	}
	return (*results)[0].Result[0].toModel(), nil
}

func (s *CitizenStore) Save(ctx context.Context, user *models.Citizen) error {
	if user.ID == "" {
		return fmt.Errorf("user id is required: %w", models.ErrInvalidInput)
	}

	sql := `UPSERT $rid SET
		citizen_id = $citizen_id, name = $name, phone = $phone, email = $email,
		city = $city, area = $area, pincode = $pincode, aadhar_verified = $aadhar_verified,
		created_at = $created_at, updated_at = $updated_at`
	vars := map[string]any{
		"rid":             surrealmodels.NewRecordID("citizen", user.ID),
		"citizen_id":      user.ID,
		"name":            user.Name,
		"phone":           user.Phone,
		"email":           user.Email,
		"city":            user.City,
		"area":            user.Area,
		"pincode":         user.Pincode,
		"aadhar_verified": user.AadharVerified,
		"created_at":      user.CreatedAt,
		"updated_at":      user.UpdatedAt,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[any](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save user after retries: %w", lastErr)
}

var _ interfaces.UserStore = (*CitizenStore)(nil)
