package service

import (
	"context"
	"fmt"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
)

// CorrectionService определяет интерфейс работы с запросами на исправление посещаемости
type CorrectionService interface {
	Submit(ctx context.Context, req *dto.CreateCorrectionRequest) (*domain.CorrectionRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.CorrectionRequest, error)
	List(ctx context.Context, status string) ([]domain.CorrectionRequest, error)
	Decide(ctx context.Context, id int64, req *dto.UpdateCorrectionRequest) (*domain.CorrectionRequest, error)
}

type correctionService struct {
	engine *Engine
}

// NewCorrectionService создаёт новый экземпляр сервиса
func NewCorrectionService(engine *Engine) CorrectionService {
	return &correctionService{engine: engine}
}

func (s *correctionService) Submit(ctx context.Context, req *dto.CreateCorrectionRequest) (*domain.CorrectionRequest, error) {
	if _, err := auth.Require(ctx, domain.EmployeesOnly...); err != nil {
		return nil, err
	}

	correction := &domain.CorrectionRequest{
		AttendanceID:    req.AttendanceID,
		EmployeeID:      req.EmployeeID,
		RequestedStatus: req.RequestedStatus,
		Reason:          req.Reason,
		Status:          domain.StatusPending,
	}
	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		if err := tx.Corrections.Create(ctx, correction); err != nil {
			return err
		}
		message := fmt.Sprintf("Attendance correction requested for record %d", correction.AttendanceID)
		out.add(s.engine.adminID, domain.NotifyCorrectionRequested, message, aboutAttendance(correction.AttendanceID))
		out.add(correction.EmployeeID, domain.NotifyCorrectionRequested, message, aboutAttendance(correction.AttendanceID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return correction, nil
}

func (s *correctionService) GetByID(ctx context.Context, id int64) (*domain.CorrectionRequest, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Corrections.GetByID(ctx, id)
}

func (s *correctionService) List(ctx context.Context, status string) ([]domain.CorrectionRequest, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}
	return s.engine.repos.Corrections.List(ctx, repository.CorrectionFilter{Status: status})
}

// Decide фиксирует решение по запросу. Одобрение переписывает статус исходной отметки.
func (s *correctionService) Decide(ctx context.Context, id int64, req *dto.UpdateCorrectionRequest) (*domain.CorrectionRequest, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	patch := repository.Patch{}
	setIf(patch, "status", req.Status)
	setIf(patch, "manager_notes", req.ManagerNotes)

	var correction *domain.CorrectionRequest
	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		var err error
		correction, err = tx.Corrections.Update(ctx, id, patch)
		if err != nil {
			return err
		}
		if req.Status == nil {
			return nil
		}

		related := aboutAttendance(correction.AttendanceID)
		switch *req.Status {
		case domain.StatusApproved:
			_, err := tx.Attendance.Update(ctx, correction.AttendanceID, repository.Patch{"status": correction.RequestedStatus})
			if err != nil && !isNotFound(err) {
				return err
			}
			out.add(correction.EmployeeID, domain.NotifyCorrectionApproved,
				fmt.Sprintf("Your attendance correction for record %d was approved", correction.AttendanceID), related)
		case domain.StatusRejected:
			out.add(correction.EmployeeID, domain.NotifyCorrectionRejected,
				fmt.Sprintf("Your attendance correction for record %d was rejected", correction.AttendanceID), related)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return correction, nil
}
