package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
)

// AttendanceService определяет интерфейс бизнес-логики для посещаемости
type AttendanceService interface {
	Create(ctx context.Context, req *dto.CreateAttendanceRequest) (*domain.Attendance, error)
	GetByID(ctx context.Context, id int64) (*domain.Attendance, error)
	List(ctx context.Context, query *dto.AttendanceQuery) ([]domain.Attendance, error)
	Update(ctx context.Context, id int64, req *dto.UpdateAttendanceRequest) (*domain.Attendance, error)
	Delete(ctx context.Context, id int64) error
	BulkImport(ctx context.Context, r io.Reader) (int, error)

	Summary(ctx context.Context, query *dto.AttendanceQuery) (*dto.AttendanceSummary, error)
	Trend(ctx context.Context, query *dto.TrendQuery) (map[string]dto.AttendanceSummary, error)
	KPI(ctx context.Context, date string) (*dto.AttendanceKPI, error)
	Status(ctx context.Context, employeeID int64) (*dto.AttendanceStatusResponse, error)
	Export(ctx context.Context, query *dto.AttendanceQuery) ([]domain.Attendance, error)
}

type attendanceService struct {
	engine *Engine
}

// NewAttendanceService создаёт новый экземпляр сервиса
func NewAttendanceService(engine *Engine) AttendanceService {
	return &attendanceService{engine: engine}
}

func (s *attendanceService) Create(ctx context.Context, req *dto.CreateAttendanceRequest) (*domain.Attendance, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	att := &domain.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     req.Status,
		Notes:      req.Notes,
	}
	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		if err := tx.Attendance.Create(ctx, att); err != nil {
			return err
		}
		s.notifyIrregular(out, att)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return att, nil
}

func (s *attendanceService) GetByID(ctx context.Context, id int64) (*domain.Attendance, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Attendance.GetByID(ctx, id)
}

func (s *attendanceService) List(ctx context.Context, query *dto.AttendanceQuery) ([]domain.Attendance, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.list(ctx, query)
}

func (s *attendanceService) Update(ctx context.Context, id int64, req *dto.UpdateAttendanceRequest) (*domain.Attendance, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	patch := repository.Patch{}
	setIf(patch, "status", req.Status)
	setIf(patch, "notes", req.Notes)

	var att *domain.Attendance
	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		var err error
		att, err = tx.Attendance.Update(ctx, id, patch)
		if err != nil {
			return err
		}
		if req.Status != nil {
			s.notifyIrregular(out, att)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return att, nil
}

func (s *attendanceService) Delete(ctx context.Context, id int64) error {
	if _, err := auth.Require(ctx, domain.AdminOnly...); err != nil {
		return err
	}

	return s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		return tx.Attendance.Delete(ctx, id)
	})
}

// BulkImport загружает отметки из CSV с колонками employee_id, date, status, notes.
// Строки, которые не удалось разобрать, пропускаются.
func (s *attendanceService) BulkImport(ctx context.Context, r io.Reader) (int, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return 0, err
	}

	records, skipped, err := parseAttendanceCSV(r)
	if err != nil {
		return 0, err
	}
	if skipped > 0 {
		s.engine.logger.Info("attendance import skipped rows", slog.Int("skipped", skipped))
	}

	err = s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		for i := range records {
			if err := tx.Attendance.Create(ctx, &records[i]); err != nil {
				return err
			}
			s.notifyIrregular(out, &records[i])
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *attendanceService) Status(ctx context.Context, employeeID int64) (*dto.AttendanceStatusResponse, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}

	att, err := s.engine.repos.Attendance.Latest(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return &dto.AttendanceStatusResponse{
		EmployeeID: att.EmployeeID,
		Date:       att.Date,
		Status:     att.Status,
		Notes:      att.Notes,
	}, nil
}

// notifyIrregular уведомляет сотрудника и администратора об опоздании или отсутствии
func (s *attendanceService) notifyIrregular(out *outbox, att *domain.Attendance) {
	var kind string
	switch att.Status {
	case domain.AttendanceLate:
		kind = domain.NotifyAttendanceLate
	case domain.AttendanceAbsent:
		kind = domain.NotifyAttendanceAbsent
	default:
		return
	}
	message := fmt.Sprintf("Employee %d marked %s on %s", att.EmployeeID, att.Status, att.Date)
	out.add(att.EmployeeID, kind, message, aboutAttendance(att.ID))
	out.add(s.engine.adminID, kind, message, aboutAttendance(att.ID))
}

// list применяет фильтры запроса; фильтр по подразделению разворачивается в набор сотрудников
func (s *attendanceService) list(ctx context.Context, query *dto.AttendanceQuery) ([]domain.Attendance, error) {
	filter := repository.AttendanceFilter{
		EmployeeID: query.EmployeeID,
		Status:     query.Status,
		StartDate:  query.StartDate,
		EndDate:    query.EndDate,
	}
	if query.Department != "" {
		ids, err := s.engine.repos.Employees.ListIDsByDepartmentName(ctx, query.Department)
		if err != nil {
			return nil, err
		}
		filter.EmployeeIDs = ids
	}
	return s.engine.repos.Attendance.List(ctx, filter)
}
