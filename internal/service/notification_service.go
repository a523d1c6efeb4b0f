package service

import (
	"context"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
)

// NotificationService отдаёт уведомления получателям
type NotificationService interface {
	ListMine(ctx context.Context) ([]domain.Notification, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Notification, error)
}

type notificationService struct {
	engine *Engine
}

// NewNotificationService создаёт новый экземпляр сервиса
func NewNotificationService(engine *Engine) NotificationService {
	return &notificationService{engine: engine}
}

// ListMine возвращает уведомления вызывающего. Пользователь, привязанный к сотруднику,
// получает уведомления по id сотрудника.
func (s *notificationService) ListMine(ctx context.Context) ([]domain.Notification, error) {
	p, err := auth.Require(ctx, domain.AnyRole...)
	if err != nil {
		return nil, err
	}
	return s.engine.repos.Notifications.ListByUser(ctx, recipientID(p))
}

func (s *notificationService) ListForUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	p, err := auth.Require(ctx, domain.AnyRole...)
	if err != nil {
		return nil, err
	}
	if recipientID(p) != userID && !domain.Authorize(p.Role, domain.Managers...) {
		return nil, domain.Forbidden("notifications of user", userID)
	}
	return s.engine.repos.Notifications.ListByUser(ctx, userID)
}

func recipientID(p auth.Principal) int64 {
	if p.EmployeeID != nil {
		return *p.EmployeeID
	}
	return p.UserID
}
