// Package export формирует файлы отчётов (CSV, XLSX)
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/employee-management-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Format - формат выгрузки
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// ErrUnsupportedFormat - формат не поддерживается
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ContentType возвращает MIME тип формата
func (f Format) ContentType() string {
	switch f {
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// Extension возвращает расширение файла
func (f Format) Extension() string {
	if f == FormatExcel {
		return "xlsx"
	}
	return "csv"
}

// Table - данные отчёта: заголовок и строки
type Table struct {
	Header []string
	Rows   [][]string
}

// Write выводит таблицу в w в указанном формате
func Write(w io.Writer, format Format, t Table) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, t)
	case FormatExcel:
		return writeExcel(w, t)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func writeExcel(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := writeExcelRow(f, sheet, 1, t.Header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeExcelRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func writeExcelRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

// AttendanceTable строит отчёт по посещаемости
func AttendanceTable(records []domain.Attendance) Table {
	t := Table{Header: []string{"id", "employee_id", "date", "status", "notes"}}
	for _, a := range records {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(a.ID, 10),
			strconv.FormatInt(a.EmployeeID, 10),
			a.Date,
			a.Status,
			deref(a.Notes),
		})
	}
	return t
}

// EmployeeTable строит справочник сотрудников
func EmployeeTable(employees []domain.Employee) Table {
	t := Table{Header: []string{"id", "name", "department", "tasks", "performance_scores", "performance_notes"}}
	for _, e := range employees {
		tasks := make([]string, len(e.Tasks))
		for i, id := range e.Tasks {
			tasks[i] = strconv.FormatInt(id, 10)
		}
		scores := make([]string, len(e.PerformanceScores))
		for i, s := range e.PerformanceScores {
			scores[i] = strconv.FormatFloat(s, 'f', -1, 64)
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			deref(e.Department),
			strings.Join(tasks, ","),
			strings.Join(scores, ","),
			strings.Join(e.PerformanceNotes, ","),
		})
	}
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
