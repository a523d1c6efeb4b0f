package handler

import (
	"log/slog"
	"net/http"

	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/service"
)

// PayrollHandler обслуживает /payroll
type PayrollHandler struct {
	base
	payrollService service.PayrollService
}

func NewPayrollHandler(payrollService service.PayrollService, logger *slog.Logger) *PayrollHandler {
	return &PayrollHandler{base: newBase(logger), payrollService: payrollService}
}

func (h *PayrollHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePayrollRequest
	if !h.decode(w, r, &req) {
		return
	}

	payroll, err := h.payrollService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, payroll)
}

func (h *PayrollHandler) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.queryInt64(w, r, "employee_id")
	if !ok {
		return
	}

	payrolls, err := h.payrollService.List(r.Context(), &dto.PayrollQuery{
		EmployeeID: employeeID,
		Period:     r.URL.Query().Get("period"),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payrolls)
}

func (h *PayrollHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	payroll, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payroll)
}

func (h *PayrollHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdatePayrollRequest
	if !h.decode(w, r, &req) {
		return
	}

	payroll, err := h.payrollService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, payroll)
}

func (h *PayrollHandler) Process(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.pathID(w, r, "employee_id")
	if !ok {
		return
	}

	var req dto.ProcessPayrollRequest
	if !h.decode(w, r, &req) {
		return
	}

	payroll, err := h.payrollService.Process(r.Context(), employeeID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, payroll)
}

func (h *PayrollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.payrollService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "Payroll deleted"})
}
