package auth

import (
	"context"

	"github.com/employee-management-api/internal/domain"
)

// Principal - аутентифицированный пользователь, от имени которого выполняется операция
type Principal struct {
	UserID     int64
	Username   string
	Role       domain.Role
	EmployeeID *int64
}

type principalKey struct{}

// WithPrincipal кладёт пользователя в контекст запроса
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext достаёт пользователя из контекста
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// Require проверяет, что роль вызывающего входит в allowed
func Require(ctx context.Context, allowed ...domain.Role) (Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return Principal{}, domain.ErrUnauthorized
	}
	if !domain.Authorize(p.Role, allowed...) {
		return p, domain.ForbiddenRole(p.Role)
	}
	return p, nil
}
