package domain

import (
	"errors"
	"fmt"
)

// Виды бизнес-ошибок. Проверяются через errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrReferenceNotFound  = errors.New("referenced record does not exist")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidField       = errors.New("invalid field value")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrDuplicate          = errors.New("already exists")
)

// Error - структурированная ошибка с указанием сущности, идентификатора и поля
type Error struct {
	Kind   error
	Entity string
	ID     int64
	Field  string
	Value  string
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Kind, ErrNotFound):
		return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
	case errors.Is(e.Kind, ErrReferenceNotFound):
		return fmt.Sprintf("%s %d referenced by %s does not exist", e.Entity, e.ID, e.Field)
	case errors.Is(e.Kind, ErrInvalidField):
		return fmt.Sprintf("invalid %s %s: %q", e.Entity, e.Field, e.Value)
	case errors.Is(e.Kind, ErrForbidden):
		if e.Entity == "" {
			return fmt.Sprintf("role %q is not permitted", e.Value)
		}
		return fmt.Sprintf("access to %s %d is not permitted", e.Entity, e.ID)
	case errors.Is(e.Kind, ErrDuplicate):
		return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound - запись с указанным id отсутствует
func NotFound(entity string, id int64) error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id}
}

// ReferenceNotFound - внешний ключ field указывает на несуществующую запись entity
func ReferenceNotFound(entity string, id int64, field string) error {
	return &Error{Kind: ErrReferenceNotFound, Entity: entity, ID: id, Field: field}
}

// InvalidField - значение поля вне допустимого множества
func InvalidField(entity, field, value string) error {
	return &Error{Kind: ErrInvalidField, Entity: entity, Field: field, Value: value}
}

// Duplicate - нарушение уникальности поля
func Duplicate(entity, field string) error {
	return &Error{Kind: ErrDuplicate, Entity: entity, Field: field}
}

// Forbidden - у вызывающего нет доступа к записи entity с указанным id
func Forbidden(entity string, id int64) error {
	return &Error{Kind: ErrForbidden, Entity: entity, ID: id}
}

// ForbiddenRole - роль не допущена к операции
func ForbiddenRole(role Role) error {
	return &Error{Kind: ErrForbidden, Field: "role", Value: string(role)}
}
