package service

import (
	"context"
	"fmt"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
)

// LeaveService определяет интерфейс бизнес-логики для отпусков
type LeaveService interface {
	Apply(ctx context.Context, req *dto.CreateLeaveRequest) (*domain.Leave, error)
	GetByID(ctx context.Context, id int64) (*domain.Leave, error)
	List(ctx context.Context, query *dto.LeaveQuery) ([]domain.Leave, error)
	Update(ctx context.Context, id int64, req *dto.UpdateLeaveRequest) (*domain.Leave, error)
	Delete(ctx context.Context, id int64) error
}

type leaveService struct {
	engine *Engine
}

// NewLeaveService создаёт новый экземпляр сервиса
func NewLeaveService(engine *Engine) LeaveService {
	return &leaveService{engine: engine}
}

func (s *leaveService) Apply(ctx context.Context, req *dto.CreateLeaveRequest) (*domain.Leave, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}

	leave := &domain.Leave{
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Type:       req.Type,
		Reason:     req.Reason,
		Status:     domain.StatusPending,
	}
	if req.Status != nil {
		leave.Status = *req.Status
	}

	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		if err := tx.Leaves.Create(ctx, leave); err != nil {
			return err
		}
		message := fmt.Sprintf("Leave applied by employee %d from %s to %s", leave.EmployeeID, leave.StartDate, leave.EndDate)
		out.add(leave.EmployeeID, domain.NotifyLeaveApplied, message, aboutLeave(leave.ID))
		out.add(s.engine.adminID, domain.NotifyLeaveApplied, message, aboutLeave(leave.ID))
		s.notifyDecision(out, leave)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return leave, nil
}

func (s *leaveService) GetByID(ctx context.Context, id int64) (*domain.Leave, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Leaves.GetByID(ctx, id)
}

func (s *leaveService) List(ctx context.Context, query *dto.LeaveQuery) ([]domain.Leave, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Leaves.List(ctx, repository.LeaveFilter{
		EmployeeID: query.EmployeeID,
		Status:     query.Status,
	})
}

func (s *leaveService) Update(ctx context.Context, id int64, req *dto.UpdateLeaveRequest) (*domain.Leave, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	patch := repository.Patch{}
	setIf(patch, "start_date", req.StartDate)
	setIf(patch, "end_date", req.EndDate)
	setIf(patch, "type", req.Type)
	setIf(patch, "reason", req.Reason)
	setIf(patch, "status", req.Status)

	var leave *domain.Leave
	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		var err error
		leave, err = tx.Leaves.Update(ctx, id, patch)
		if err != nil {
			return err
		}
		if req.Status != nil {
			s.notifyDecision(out, leave)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return leave, nil
}

func (s *leaveService) Delete(ctx context.Context, id int64) error {
	if _, err := auth.Require(ctx, domain.AdminOnly...); err != nil {
		return err
	}

	return s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		return tx.Leaves.Delete(ctx, id)
	})
}

func (s *leaveService) notifyDecision(out *outbox, leave *domain.Leave) {
	var kind string
	switch leave.Status {
	case domain.StatusApproved:
		kind = domain.NotifyLeaveApproved
	case domain.StatusRejected:
		kind = domain.NotifyLeaveRejected
	default:
		return
	}
	message := fmt.Sprintf("Leave request %d for employee %d was %s", leave.ID, leave.EmployeeID, leave.Status)
	out.add(leave.EmployeeID, kind, message, aboutLeave(leave.ID))
	out.add(s.engine.adminID, kind, message, aboutLeave(leave.ID))
}
