package handler

import (
	"log/slog"
	"net/http"

	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/service"
)

// LeaveHandler обслуживает /leave
type LeaveHandler struct {
	base
	leaveService service.LeaveService
}

func NewLeaveHandler(leaveService service.LeaveService, logger *slog.Logger) *LeaveHandler {
	return &LeaveHandler{base: newBase(logger), leaveService: leaveService}
}

func (h *LeaveHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLeaveRequest
	if !h.decode(w, r, &req) {
		return
	}

	leave, err := h.leaveService.Apply(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, leave)
}

func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.queryInt64(w, r, "employee_id")
	if !ok {
		return
	}

	leaves, err := h.leaveService.List(r.Context(), &dto.LeaveQuery{
		EmployeeID: employeeID,
		Status:     r.URL.Query().Get("status"),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, leaves)
}

func (h *LeaveHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	leave, err := h.leaveService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, leave)
}

func (h *LeaveHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateLeaveRequest
	if !h.decode(w, r, &req) {
		return
	}

	leave, err := h.leaveService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, leave)
}

func (h *LeaveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.leaveService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "Leave deleted"})
}
