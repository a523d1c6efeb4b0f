package repository

import (
	"context"
	"errors"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// Patch - частичное обновление записи: колонка -> новое значение.
// Перезаписываются только присутствующие ключи, остальные поля сохраняют прежние значения.
type Patch map[string]any

// Set добавляет колонку в патч
func (p Patch) Set(column string, value any) Patch {
	p[column] = value
	return p
}

// Has сообщает, затрагивает ли патч колонку
func (p Patch) Has(column string) bool {
	_, ok := p[column]
	return ok
}

// crud - общая реализация операций хранилища для одной сущности
type crud[T any] struct {
	db     *gorm.DB
	entity string
}

func (r crud[T]) create(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r crud[T]) getByID(ctx context.Context, id int64) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(r.entity, id)
		}
		return nil, err
	}
	return &rec, nil
}

func (r crud[T]) update(ctx context.Context, id int64, patch Patch) (*T, error) {
	if _, err := r.getByID(ctx, id); err != nil {
		return nil, err
	}
	if len(patch) > 0 {
		err := r.db.WithContext(ctx).
			Model(new(T)).
			Where("id = ?", id).
			Updates(map[string]any(patch)).Error
		if err != nil {
			return nil, err
		}
	}
	return r.getByID(ctx, id)
}

func (r crud[T]) save(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r crud[T]) delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(r.entity, id)
	}
	return nil
}
