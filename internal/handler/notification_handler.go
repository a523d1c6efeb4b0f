package handler

import (
	"log/slog"
	"net/http"

	"github.com/employee-management-api/internal/service"
)

// NotificationHandler обслуживает /notifications
type NotificationHandler struct {
	base
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{base: newBase(logger), notificationService: notificationService}
}

func (h *NotificationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notificationService.ListMine(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, notes)
}

func (h *NotificationHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "user_id")
	if !ok {
		return
	}

	notes, err := h.notificationService.ListForUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, notes)
}
