package service

import (
	"context"
	"testing"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCreate_LinksAssigneeAndNotifies(t *testing.T) {
	env := newStoredEnv(t)
	emp := env.createEmployee(t, "Alice")

	task, err := env.services.Tasks.Create(asManager(), &dto.CreateTaskRequest{Title: "Write report", AssignedTo: emp.ID})
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Equal(t, []int64{task.ID}, env.employee(t, emp.ID).Tasks)

	notes := env.notifications(t)
	require.Len(t, notes, 1)
	assert.Equal(t, emp.ID, notes[0].UserID)
	assert.Equal(t, domain.NotifyTaskAssigned, notes[0].Type)
	require.NotNil(t, notes[0].RelatedTask)
	assert.Equal(t, task.ID, *notes[0].RelatedTask)
}

func TestTaskCreate_UnknownAssigneeStillCreates(t *testing.T) {
	env := newStoredEnv(t)

	task, err := env.services.Tasks.Create(asAdmin(), &dto.CreateTaskRequest{Title: "Orphan", AssignedTo: 99})
	require.NoError(t, err)
	assert.NotZero(t, task.ID)
}

func TestEmployeeCreate_AdoptsTasksAssignedBeforehand(t *testing.T) {
	env := newStoredEnv(t)
	alice := env.createEmployee(t, "Alice")
	nextID := alice.ID + 1

	early, err := env.services.Tasks.Create(asManager(), &dto.CreateTaskRequest{Title: "Early", AssignedTo: nextID})
	require.NoError(t, err)
	moved, err := env.services.Tasks.Create(asManager(), &dto.CreateTaskRequest{Title: "Moved", AssignedTo: alice.ID})
	require.NoError(t, err)
	_, err = env.services.Tasks.Update(asManager(), moved.ID, &dto.UpdateTaskRequest{AssignedTo: &nextID})
	require.NoError(t, err)

	bob := env.createEmployee(t, "Bob")
	require.Equal(t, nextID, bob.ID)

	assert.Equal(t, []int64{early.ID, moved.ID}, bob.Tasks)
	assert.Equal(t, []int64{early.ID, moved.ID}, env.employee(t, bob.ID).Tasks)
	assert.Empty(t, env.employee(t, alice.ID).Tasks)
}

func TestTaskUpdate_ReassignMovesTask(t *testing.T) {
	env := newStoredEnv(t)
	alice := env.createEmployee(t, "Alice")
	bob := env.createEmployee(t, "Bob")

	task, err := env.services.Tasks.Create(asManager(), &dto.CreateTaskRequest{Title: "T", AssignedTo: alice.ID})
	require.NoError(t, err)

	updated, err := env.services.Tasks.Update(asManager(), task.ID, &dto.UpdateTaskRequest{AssignedTo: &bob.ID})
	require.NoError(t, err)

	assert.Equal(t, bob.ID, updated.AssignedTo)
	assert.Equal(t, "T", updated.Title)
	assert.Empty(t, env.employee(t, alice.ID).Tasks)
	assert.Equal(t, []int64{task.ID}, env.employee(t, bob.ID).Tasks)
}

func TestTaskUpdate_ReassignToMissingEmployeeUnlinksOld(t *testing.T) {
	env := newStoredEnv(t)
	alice := env.createEmployee(t, "Alice")

	task, err := env.services.Tasks.Create(asManager(), &dto.CreateTaskRequest{Title: "T", AssignedTo: alice.ID})
	require.NoError(t, err)

	_, err = env.services.Tasks.Update(asManager(), task.ID, &dto.UpdateTaskRequest{AssignedTo: int64Ptr(404)})
	require.NoError(t, err)
	assert.Empty(t, env.employee(t, alice.ID).Tasks)
}

func TestTaskComplete_IsIdempotent(t *testing.T) {
	env := newStoredEnv(t)
	emp := env.createEmployee(t, "Alice")

	task, err := env.services.Tasks.Create(asManager(), &dto.CreateTaskRequest{Title: "T", AssignedTo: emp.ID})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		done, err := env.services.Tasks.Complete(asEmployee(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, done.Status)
	}

	assert.Equal(t, []int64{task.ID}, env.employee(t, emp.ID).Tasks)

	var completed []domain.Notification
	for _, n := range env.notifications(t) {
		if n.Type == domain.NotifyTaskCompleted {
			completed = append(completed, n)
		}
	}
	require.Len(t, completed, 4)
	assert.Equal(t, emp.ID, completed[0].UserID)
	assert.Equal(t, int64(testAdminID), completed[1].UserID)
}

func TestTaskReview_AppendsScoreAndNotes(t *testing.T) {
	env := newStoredEnv(t)
	emp := env.createEmployee(t, "Alice")

	task, err := env.services.Tasks.Create(asManager(), &dto.CreateTaskRequest{Title: "T", AssignedTo: emp.ID})
	require.NoError(t, err)

	reviewed, err := env.services.Tasks.Review(asManager(), task.ID, &dto.ReviewTaskRequest{Score: floatPtr(4.5), Notes: strPtr("good")})
	require.NoError(t, err)
	require.NotNil(t, reviewed.PerformanceScore)
	assert.Equal(t, 4.5, *reviewed.PerformanceScore)

	_, err = env.services.Tasks.Review(asManager(), task.ID, &dto.ReviewTaskRequest{Notes: strPtr("")})
	require.NoError(t, err)

	got := env.employee(t, emp.ID)
	assert.Equal(t, []float64{4.5}, got.PerformanceScores)
	assert.Equal(t, []string{"good"}, got.PerformanceNotes)

	reviews := 0
	for _, n := range env.notifications(t) {
		if n.Type == domain.NotifyTaskReviewed {
			reviews++
			assert.Equal(t, emp.ID, n.UserID)
		}
	}
	assert.Equal(t, 2, reviews)
}

func TestTaskDelete_RemovesFromEveryEmployee(t *testing.T) {
	env := newStoredEnv(t)
	ctx := context.Background()
	alice := env.createEmployee(t, "Alice")
	bob := env.createEmployee(t, "Bob")

	task, err := env.services.Tasks.Create(asManager(), &dto.CreateTaskRequest{Title: "T", AssignedTo: alice.ID})
	require.NoError(t, err)
	keep, err := env.services.Tasks.Create(asManager(), &dto.CreateTaskRequest{Title: "K", AssignedTo: alice.ID})
	require.NoError(t, err)

	// Ручная рассинхронизация: задача числится и за вторым сотрудником
	stale := env.employee(t, bob.ID)
	stale.AddTask(task.ID)
	require.NoError(t, env.repos.Employees.Save(ctx, stale))

	require.NoError(t, env.services.Tasks.Delete(asAdmin(), task.ID))

	assert.Equal(t, []int64{keep.ID}, env.employee(t, alice.ID).Tasks)
	assert.Empty(t, env.employee(t, bob.ID).Tasks)

	_, err = env.repos.Tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskDelete_MissingTask(t *testing.T) {
	env := newStoredEnv(t)

	err := env.services.Tasks.Delete(asAdmin(), 12)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
