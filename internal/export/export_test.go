package export

import (
	"bytes"
	"testing"

	"github.com/employee-management-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteCSV_Attendance(t *testing.T) {
	notes := "traffic"
	records := []domain.Attendance{
		{ID: 1, EmployeeID: 5, Date: "2024-06-01", Status: "late", Notes: &notes},
		{ID: 2, EmployeeID: 6, Date: "2024-06-01", Status: "present"},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, AttendanceTable(records)))

	expected := "id,employee_id,date,status,notes\n" +
		"1,5,2024-06-01,late,traffic\n" +
		"2,6,2024-06-01,present,\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSV_Employees(t *testing.T) {
	dept := "Eng"
	employees := []domain.Employee{
		{ID: 1, Name: "A", Department: &dept, Tasks: []int64{3, 4}, PerformanceScores: []float64{4.5}, PerformanceNotes: []string{"good"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, EmployeeTable(employees)))

	assert.Contains(t, buf.String(), `1,A,Eng,"3,4",4.5,good`)
}

func TestWriteExcel(t *testing.T) {
	records := []domain.Attendance{{ID: 1, EmployeeID: 5, Date: "2024-06-01", Status: "absent"}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatExcel, AttendanceTable(records)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Sheet1", "D2")
	require.NoError(t, err)
	assert.Equal(t, "absent", v)
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("pdf"), Table{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
