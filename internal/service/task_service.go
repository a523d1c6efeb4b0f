package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
)

// TaskService определяет интерфейс бизнес-логики для задач
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, query *dto.TaskQuery) ([]domain.Task, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTaskRequest) (*domain.Task, error)
	Complete(ctx context.Context, id int64) (*domain.Task, error)
	Review(ctx context.Context, id int64, req *dto.ReviewTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	engine *Engine
}

// NewTaskService создаёт новый экземпляр сервиса
func NewTaskService(engine *Engine) TaskService {
	return &taskService{engine: engine}
}

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*domain.Task, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Status:      domain.TaskStatusPending,
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		if err := tx.Tasks.Create(ctx, task); err != nil {
			return err
		}
		if err := linkTask(ctx, tx, task.AssignedTo, task.ID); err != nil {
			return err
		}
		out.add(task.AssignedTo, domain.NotifyTaskAssigned,
			fmt.Sprintf("New task assigned: %s", task.Title), aboutTask(task.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, query *dto.TaskQuery) ([]domain.Task, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Tasks.List(ctx, repository.TaskFilter{
		AssignedTo: query.AssignedTo,
		Status:     query.Status,
	})
}

func (s *taskService) Update(ctx context.Context, id int64, req *dto.UpdateTaskRequest) (*domain.Task, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	patch := repository.Patch{}
	if req.Title != nil {
		patch.Set("title", strings.TrimSpace(*req.Title))
	}
	setIf(patch, "description", req.Description)
	setIf(patch, "assigned_to", req.AssignedTo)
	setIf(patch, "due_date", req.DueDate)
	setIf(patch, "status", req.Status)

	var task *domain.Task
	err := s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		prev, err := tx.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		task, err = tx.Tasks.Update(ctx, id, patch)
		if err != nil {
			return err
		}
		if task.AssignedTo == prev.AssignedTo {
			return nil
		}
		// Переназначение: задача переезжает из списка прежнего исполнителя в список нового
		if err := unlinkTask(ctx, tx, prev.AssignedTo, id); err != nil {
			return err
		}
		return linkTask(ctx, tx, task.AssignedTo, id)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Complete(ctx context.Context, id int64) (*domain.Task, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}

	var task *domain.Task
	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		var err error
		task, err = tx.Tasks.Update(ctx, id, repository.Patch{"status": domain.TaskStatusCompleted})
		if err != nil {
			return err
		}
		message := fmt.Sprintf("Task '%s' marked as completed", task.Title)
		out.add(task.AssignedTo, domain.NotifyTaskCompleted, message, aboutTask(id))
		out.add(s.engine.adminID, domain.NotifyTaskCompleted, message, aboutTask(id))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Review(ctx context.Context, id int64, req *dto.ReviewTaskRequest) (*domain.Task, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	var task *domain.Task
	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		var err error
		task, err = tx.Tasks.Update(ctx, id, repository.Patch{
			"performance_score": req.Score,
			"review_notes":      req.Notes,
		})
		if err != nil {
			return err
		}

		emp, err := findEmployee(ctx, tx.Employees, task.AssignedTo)
		if err != nil {
			return err
		}
		if emp != nil {
			if req.Score != nil {
				emp.PerformanceScores = append(emp.PerformanceScores, *req.Score)
			}
			if req.Notes != nil && *req.Notes != "" {
				emp.PerformanceNotes = append(emp.PerformanceNotes, *req.Notes)
			}
			if err := tx.Employees.Save(ctx, emp); err != nil {
				return err
			}
		}

		out.add(task.AssignedTo, domain.NotifyTaskReviewed,
			fmt.Sprintf("Task '%s' has been reviewed", task.Title), aboutTask(id))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	if _, err := auth.Require(ctx, domain.AdminOnly...); err != nil {
		return err
	}

	return s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		if err := tx.Tasks.Delete(ctx, id); err != nil {
			return err
		}
		employees, err := tx.Employees.List(ctx, repository.EmployeeFilter{})
		if err != nil {
			return err
		}
		for i := range employees {
			if !employees[i].RemoveTask(id) {
				continue
			}
			if err := tx.Employees.Save(ctx, &employees[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// linkTask добавляет задачу в список сотрудника, если сотрудник существует
func linkTask(ctx context.Context, tx *repository.Registry, employeeID, taskID int64) error {
	emp, err := findEmployee(ctx, tx.Employees, employeeID)
	if err != nil || emp == nil {
		return err
	}
	if !emp.AddTask(taskID) {
		return nil
	}
	return tx.Employees.Save(ctx, emp)
}

// unlinkTask убирает задачу из списка сотрудника, если сотрудник существует
func unlinkTask(ctx context.Context, tx *repository.Registry, employeeID, taskID int64) error {
	emp, err := findEmployee(ctx, tx.Employees, employeeID)
	if err != nil || emp == nil {
		return err
	}
	if !emp.RemoveTask(taskID) {
		return nil
	}
	return tx.Employees.Save(ctx, emp)
}
