package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
)

const dateLayout = "2006-01-02"

func (s *attendanceService) Summary(ctx context.Context, query *dto.AttendanceQuery) (*dto.AttendanceSummary, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	records, err := s.list(ctx, query)
	if err != nil {
		return nil, err
	}
	summary := summarize(records)
	return &summary, nil
}

// Trend группирует отметки по ISO неделям (YYYY-Www) или месяцам (YYYY-MM)
func (s *attendanceService) Trend(ctx context.Context, query *dto.TrendQuery) (map[string]dto.AttendanceSummary, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	records, err := s.list(ctx, &query.AttendanceQuery)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]domain.Attendance)
	for _, rec := range records {
		day, err := time.Parse(dateLayout, rec.Date)
		if err != nil {
			continue
		}
		key := periodKey(day, query.Period)
		buckets[key] = append(buckets[key], rec)
	}

	trend := make(map[string]dto.AttendanceSummary, len(buckets))
	for key, recs := range buckets {
		trend[key] = summarize(recs)
	}
	return trend, nil
}

func (s *attendanceService) KPI(ctx context.Context, date string) (*dto.AttendanceKPI, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	if date == "" {
		date = s.engine.now().Format(dateLayout)
	}
	records, err := s.engine.repos.Attendance.List(ctx, repository.AttendanceFilter{Date: date})
	if err != nil {
		return nil, err
	}
	summary := summarize(records)
	return &dto.AttendanceKPI{
		Date:    date,
		Present: summary.Present,
		Late:    summary.Late,
		Absent:  summary.Absent,
	}, nil
}

func (s *attendanceService) Export(ctx context.Context, query *dto.AttendanceQuery) ([]domain.Attendance, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}
	return s.list(ctx, query)
}

func summarize(records []domain.Attendance) dto.AttendanceSummary {
	var summary dto.AttendanceSummary
	for _, rec := range records {
		switch rec.Status {
		case domain.AttendancePresent:
			summary.Present++
		case domain.AttendanceLate:
			summary.Late++
		case domain.AttendanceAbsent:
			summary.Absent++
		}
	}
	summary.Total = len(records)
	return summary
}

func periodKey(day time.Time, period string) string {
	if period == "monthly" {
		return day.Format("2006-01")
	}
	year, week := day.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// parseAttendanceCSV читает отметки из CSV с заголовком.
// Возвращает разобранные записи и число пропущенных строк.
func parseAttendanceCSV(r io.Reader) ([]domain.Attendance, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, domain.InvalidField("attendance import", "header", "")
		}
		return nil, 0, domain.InvalidField("attendance import", "header", err.Error())
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"employee_id", "date", "status"} {
		if _, ok := columns[required]; !ok {
			return nil, 0, domain.InvalidField("attendance import", "header", required)
		}
	}

	field := func(row []string, name string) (string, bool) {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var (
		records []domain.Attendance
		skipped int
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		rawID, _ := field(row, "employee_id")
		employeeID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || employeeID <= 0 {
			skipped++
			continue
		}
		date, _ := field(row, "date")
		if _, err := time.Parse(dateLayout, date); err != nil {
			skipped++
			continue
		}
		status, _ := field(row, "status")
		if status == "" {
			skipped++
			continue
		}

		rec := domain.Attendance{EmployeeID: employeeID, Date: date, Status: status}
		if notes, ok := field(row, "notes"); ok && notes != "" {
			rec.Notes = &notes
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}
