package handler

import (
	"log/slog"
	"net/http"

	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/export"
	"github.com/employee-management-api/internal/service"
)

// EmployeeHandler обслуживает /employees
type EmployeeHandler struct {
	base
	empService service.EmployeeService
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{base: newBase(logger), empService: empService}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, emp)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	query := dto.EmployeeQuery{
		Department: r.URL.Query().Get("department"),
		Search:     r.URL.Query().Get("search"),
	}
	var ok bool
	if query.Page, ok = h.queryInt(w, r, "page", 1); !ok {
		return
	}
	if query.PageSize, ok = h.queryInt(w, r, "page_size", 10); !ok {
		return
	}
	if !h.validate(w, &query) {
		return
	}

	employees, err := h.empService.List(r.Context(), &query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, emp)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, emp)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "Employee deleted"})
}

func (h *EmployeeHandler) Export(w http.ResponseWriter, r *http.Request) {
	table, err := h.empService.Export(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondFile(w, "employees", export.FormatCSV, table)
}
