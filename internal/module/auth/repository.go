package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/acmlab/labsite/internal/domain"
)

type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed admin account repository.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return mapError(err)
}

func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if isDuplicateKeyError(err) {
		return domain.Validationf("username already exists")
	}
	return domain.NewAppError(domain.CodeInternal, "user query failed", err)
}

// isDuplicateKeyError detects unique constraint violations across the sqlite
// and postgres drivers.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
