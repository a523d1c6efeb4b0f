package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/database"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
	"github.com/employee-management-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAdminID = 1

type testEnv struct {
	db       *gorm.DB
	repos    *repository.Registry
	engine   *Engine
	services *Services
}

// recordingNotifier запоминает уведомления и при необходимости возвращает ошибку
type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, notification *domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, *notification)
	return nil
}

func newTestEnv(t *testing.T, notifier Notifier) *testEnv {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	blobs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	repos := repository.NewRegistry(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := NewEngine(repos, notifier, testAdminID, logger)
	engine.now = func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }

	return &testEnv{
		db:       db,
		repos:    repos,
		engine:   engine,
		services: New(engine, blobs, auth.NewTokenIssuer("test-secret", time.Hour), PasswordResetPolicy{}),
	}
}

// newStoredEnv использует хранилище уведомлений как приёмник
func newStoredEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t, nil)
	env.engine.notifier = NewStoreNotifier(env.repos.Notifications)
	return env
}

func asRole(role domain.Role) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{UserID: 100, Username: string(role), Role: role})
}

func asAdmin() context.Context    { return asRole(domain.RoleAdmin) }
func asManager() context.Context  { return asRole(domain.RoleManager) }
func asEmployee() context.Context { return asRole(domain.RoleEmployee) }

func strPtr(s string) *string     { return &s }
func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }

func (env *testEnv) notifications(t *testing.T) []domain.Notification {
	t.Helper()
	all, err := env.repos.Notifications.List(context.Background())
	require.NoError(t, err)
	return all
}

// captureLogs направляет журнал движка в буфер; logEntries разбирает его по строкам
func (env *testEnv) captureLogs() *bytes.Buffer {
	var buf bytes.Buffer
	env.engine.logger = slog.New(slog.NewJSONHandler(&buf, nil))
	return &buf
}

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		entries = append(entries, entry)
	}
	return entries
}

func (env *testEnv) createEmployee(t *testing.T, name string) *domain.Employee {
	t.Helper()
	emp, err := env.services.Employees.Create(asAdmin(), &dto.CreateEmployeeRequest{Name: name})
	require.NoError(t, err)
	return emp
}

func (env *testEnv) employee(t *testing.T, id int64) *domain.Employee {
	t.Helper()
	emp, err := env.repos.Employees.GetByID(context.Background(), id)
	require.NoError(t, err)
	return emp
}

func TestMutate_NotifierFailureDoesNotFailOperation(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("sink unavailable")}
	env := newTestEnv(t, notifier)

	att, err := env.services.Attendance.Create(asManager(), &dto.CreateAttendanceRequest{
		EmployeeID: 5, Date: "2024-06-01", Status: domain.AttendanceLate,
	})
	require.NoError(t, err)

	stored, err := env.repos.Attendance.GetByID(context.Background(), att.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceLate, stored.Status)
}

func TestMutate_NilNotifierIsNoop(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.services.Tasks.Create(asManager(), &dto.CreateTaskRequest{Title: "T", AssignedTo: 7})
	require.NoError(t, err)
	assert.Empty(t, env.notifications(t))
}

func TestMutate_FailedOperationEmitsNothing(t *testing.T) {
	notifier := &recordingNotifier{}
	env := newTestEnv(t, notifier)

	_, err := env.services.Tasks.Complete(asManager(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, notifier.sent)
}

func TestMutate_RollsBackOnRuleFailure(t *testing.T) {
	env := newStoredEnv(t)
	ctx := context.Background()

	err := env.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		task := &domain.Task{Title: "doomed", AssignedTo: 1, Status: domain.TaskStatusPending}
		if err := tx.Tasks.Create(ctx, task); err != nil {
			return err
		}
		out.add(1, domain.NotifyTaskAssigned, "doomed", aboutTask(task.ID))
		return domain.NotFound("employee", 1)
	})
	require.Error(t, err)

	tasks, err := env.repos.Tasks.List(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Empty(t, env.notifications(t))
}

func TestRoleGate_ForbiddenHasNoSideEffects(t *testing.T) {
	env := newStoredEnv(t)
	emp := env.createEmployee(t, "Alice")

	_, err := env.services.Tasks.Create(asEmployee(), &dto.CreateTaskRequest{Title: "T", AssignedTo: emp.ID})
	require.ErrorIs(t, err, domain.ErrForbidden)

	tasks, err := env.repos.Tasks.List(context.Background(), repository.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Empty(t, env.employee(t, emp.ID).Tasks)
	assert.Empty(t, env.notifications(t))
}

func TestRoleGate_MissingPrincipal(t *testing.T) {
	env := newStoredEnv(t)

	_, err := env.services.Employees.List(context.Background(), &dto.EmployeeQuery{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRoleGate_DeleteIsAdminOnly(t *testing.T) {
	env := newStoredEnv(t)
	emp := env.createEmployee(t, "Alice")

	err := env.services.Employees.Delete(asManager(), emp.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, env.services.Employees.Delete(asAdmin(), emp.ID))
	_, err = env.repos.Employees.GetByID(context.Background(), emp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
