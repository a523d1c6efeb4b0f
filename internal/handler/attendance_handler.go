package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/export"
	"github.com/employee-management-api/internal/service"
)

const maxUploadSize = 10 << 20

// AttendanceHandler обслуживает /attendance, включая запросы на исправление и отчёты
type AttendanceHandler struct {
	base
	attService        service.AttendanceService
	correctionService service.CorrectionService
}

func NewAttendanceHandler(attService service.AttendanceService, correctionService service.CorrectionService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		base:              newBase(logger),
		attService:        attService,
		correctionService: correctionService,
	}
}

func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAttendanceRequest
	if !h.decode(w, r, &req) {
		return
	}

	att, err := h.attService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, att)
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	records, err := h.attService.List(r.Context(), &query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, records)
}

func (h *AttendanceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	att, err := h.attService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, att)
}

func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateAttendanceRequest
	if !h.decode(w, r, &req) {
		return
	}

	att, err := h.attService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, att)
}

func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.attService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "Attendance deleted"})
}

// BulkUpload принимает CSV как multipart поле file или как тело запроса
func (h *AttendanceHandler) BulkUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "file is required", err.Error())
			return
		}
		defer file.Close()
		src = file
	}

	inserted, err := h.attService.BulkImport(r.Context(), src)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.BulkUploadResponse{Inserted: inserted})
}

func (h *AttendanceHandler) Status(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.pathID(w, r, "employee_id")
	if !ok {
		return
	}

	status, err := h.attService.Status(r.Context(), employeeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, status)
}

func (h *AttendanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.attService.Summary(r.Context(), &query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, summary)
}

func (h *AttendanceHandler) Trend(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	trendQuery := dto.TrendQuery{AttendanceQuery: query, Period: r.URL.Query().Get("period")}
	if trendQuery.Period == "" {
		trendQuery.Period = "weekly"
	}
	if !h.validate(w, &trendQuery) {
		return
	}

	trend, err := h.attService.Trend(r.Context(), &trendQuery)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, trend)
}

func (h *AttendanceHandler) KPI(w http.ResponseWriter, r *http.Request) {
	query := dto.KPIQuery{Date: r.URL.Query().Get("date")}
	if !h.validate(w, &query) {
		return
	}

	kpi, err := h.attService.KPI(r.Context(), query.Date)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, kpi)
}

func (h *AttendanceHandler) Export(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	exportQuery := dto.ExportQuery{AttendanceQuery: query, Format: r.URL.Query().Get("format")}
	if exportQuery.Format == "" {
		exportQuery.Format = string(export.FormatCSV)
	}
	if !h.validate(w, &exportQuery) {
		return
	}

	records, err := h.attService.Export(r.Context(), &query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondFile(w, "attendance_report", export.Format(exportQuery.Format), export.AttendanceTable(records))
}

func (h *AttendanceHandler) SubmitCorrection(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCorrectionRequest
	if !h.decode(w, r, &req) {
		return
	}

	correction, err := h.correctionService.Submit(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, correction)
}

func (h *AttendanceHandler) ListCorrections(w http.ResponseWriter, r *http.Request) {
	corrections, err := h.correctionService.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, corrections)
}

func (h *AttendanceHandler) GetCorrection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	correction, err := h.correctionService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, correction)
}

func (h *AttendanceHandler) DecideCorrection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateCorrectionRequest
	if !h.decode(w, r, &req) {
		return
	}

	correction, err := h.correctionService.Decide(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, correction)
}

func (h *AttendanceHandler) parseQuery(w http.ResponseWriter, r *http.Request) (dto.AttendanceQuery, bool) {
	employeeID, ok := h.queryInt64(w, r, "employee_id")
	if !ok {
		return dto.AttendanceQuery{}, false
	}
	query := dto.AttendanceQuery{
		EmployeeID: employeeID,
		Department: r.URL.Query().Get("department"),
		Status:     r.URL.Query().Get("status"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}
	if !h.validate(w, &query) {
		return dto.AttendanceQuery{}, false
	}
	return query, true
}
