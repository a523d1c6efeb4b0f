package repository

import (
	"context"
	"errors"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// PasswordResetRepository хранит одноразовые коды сброса пароля
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	Latest(ctx context.Context, email string) (*domain.PasswordReset, error)
	RecordFailure(ctx context.Context, id int64) error
	DeleteByEmail(ctx context.Context, email string) error
}

type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository создаёт новый экземпляр репозитория
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

// Latest возвращает последний выданный для email код; nil без ошибки, если кода нет
func (r *passwordResetRepository) Latest(ctx context.Context, email string) (*domain.PasswordReset, error) {
	var reset domain.PasswordReset
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id DESC").First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reset, nil
}

// RecordFailure увеличивает счётчик неверных попыток ввода кода
func (r *passwordResetRepository) RecordFailure(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.PasswordReset{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *passwordResetRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&domain.PasswordReset{}).Error
}
