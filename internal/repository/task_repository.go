package repository

import (
	"context"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// TaskFilter - параметры выборки задач
type TaskFilter struct {
	AssignedTo *int64
	Status     string
}

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, id int64, patch Patch) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskRepository struct {
	crud[domain.Task]
}

// NewTaskRepository создаёт новый экземпляр репозитория
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{crud[domain.Task]{db: db, entity: "task"}}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.create(ctx, task)
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return r.getByID(ctx, id)
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var tasks []domain.Task
	err := query.Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(ctx context.Context, id int64, patch Patch) (*domain.Task, error) {
	return r.update(ctx, id, patch)
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
