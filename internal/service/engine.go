package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/repository"
)

// Notifier - приёмник уведомлений.
// Ошибка доставки не отменяет уже применённое изменение.
type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification) error
}

// StoreNotifier сохраняет уведомления в хранилище
type StoreNotifier struct {
	repo repository.NotificationRepository
}

// NewStoreNotifier создаёт приёмник поверх репозитория уведомлений
func NewStoreNotifier(repo repository.NotificationRepository) *StoreNotifier {
	return &StoreNotifier{repo: repo}
}

// Notify записывает уведомление
func (n *StoreNotifier) Notify(ctx context.Context, notification *domain.Notification) error {
	return n.repo.Create(ctx, notification)
}

// Engine применяет изменения сущностей вместе с зависимыми правилами.
// Изменения выполняются по одному, каждое в своей транзакции;
// уведомления отправляются после фиксации.
type Engine struct {
	repos    *repository.Registry
	notifier Notifier
	adminID  int64
	logger   *slog.Logger
	now      func() time.Time

	mu sync.Mutex
}

// NewEngine создаёт движок. notifier может быть nil - тогда уведомления не отправляются.
func NewEngine(repos *repository.Registry, notifier Notifier, adminID int64, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		repos:    repos,
		notifier: notifier,
		adminID:  adminID,
		logger:   logger,
		now:      time.Now,
	}
}

// AdminRecipientID возвращает получателя административных уведомлений
func (e *Engine) AdminRecipientID() int64 {
	return e.adminID
}

// outbox копит уведомления до фиксации транзакции
type outbox struct {
	items []domain.Notification
}

type related func(n *domain.Notification)

func aboutTask(id int64) related {
	return func(n *domain.Notification) { n.RelatedTask = &id }
}

func aboutAttendance(id int64) related {
	return func(n *domain.Notification) { n.RelatedAttendance = &id }
}

func aboutLeave(id int64) related {
	return func(n *domain.Notification) { n.RelatedLeave = &id }
}

func (o *outbox) add(userID int64, kind, message string, opts ...related) {
	n := domain.Notification{UserID: userID, Type: kind, Message: message}
	for _, opt := range opts {
		opt(&n)
	}
	o.items = append(o.items, n)
}

// mutate выполняет fn в транзакции. Ошибка fn откатывает все изменения
// и отбрасывает накопленные уведомления.
func (e *Engine) mutate(ctx context.Context, fn func(tx *repository.Registry, out *outbox) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := &outbox{}
	err := e.repos.Transaction(ctx, func(tx *repository.Registry) error {
		return fn(tx, out)
	})
	if err != nil {
		return err
	}

	e.dispatch(ctx, out)
	return nil
}

func (e *Engine) dispatch(ctx context.Context, out *outbox) {
	if e.notifier == nil {
		return
	}
	for i := range out.items {
		n := &out.items[i]
		if err := e.notifier.Notify(ctx, n); err != nil {
			e.logger.Warn("failed to deliver notification",
				slog.Int64("user_id", n.UserID),
				slog.String("type", n.Type),
				slog.String("error", err.Error()),
			)
		}
	}
}

// findEmployee возвращает сотрудника или nil, если его нет
func findEmployee(ctx context.Context, repo repository.EmployeeRepository, id int64) (*domain.Employee, error) {
	emp, err := repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return emp, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// resolveDepartment проверяет ссылку на подразделение и возвращает его название
func resolveDepartment(ctx context.Context, repo repository.DepartmentRepository, entity string, id int64) (string, error) {
	dept, err := repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return "", domain.ReferenceNotFound("department", id, "department_id")
		}
		return "", fmt.Errorf("failed to resolve department for %s: %w", entity, err)
	}
	return dept.Name, nil
}

func setIf[T any](p repository.Patch, column string, v *T) {
	if v != nil {
		p.Set(column, *v)
	}
}
