package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/milangdev/moviefi-test-task/auth"

	"gorm.io/gorm"
)

// LoginAttemptModel tracks failed logins per email, including emails that
// never resolve to an account.
type LoginAttemptModel struct {
	Email       string `gorm:"primaryKey"`
	FailedCount int    `gorm:"not null;default:0"`
	JailedUntil *time.Time
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (LoginAttemptModel) TableName() string {
	return "login_attempts"
}

// LoginAttemptRepository implements auth.LoginAttemptRepository.
type LoginAttemptRepository struct {
	db *gorm.DB
}

// NewLoginAttemptRepository creates a new login attempt repository
func NewLoginAttemptRepository(db *gorm.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

// Get returns the attempt state for an email. Unknown emails yield a zero
// attempt, not an error.
func (r *LoginAttemptRepository) Get(ctx context.Context, email string) (auth.LoginAttempt, error) {
	var model LoginAttemptModel

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.LoginAttempt{}, nil
		}
		return auth.LoginAttempt{}, err
	}

	attempt := auth.LoginAttempt{FailedCount: model.FailedCount}
	if model.JailedUntil != nil {
		attempt.JailedUntil = *model.JailedUntil
	}
	return attempt, nil
}

// Save upserts the attempt state for an email.
func (r *LoginAttemptRepository) Save(ctx context.Context, email string, attempt auth.LoginAttempt) error {
	model := LoginAttemptModel{
		Email:       email,
		FailedCount: attempt.FailedCount,
	}
	if !attempt.JailedUntil.IsZero() {
		jailedUntil := attempt.JailedUntil
		model.JailedUntil = &jailedUntil
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

// Reset forgets the attempt state for an email.
func (r *LoginAttemptRepository) Reset(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&LoginAttemptModel{}).Error
}
