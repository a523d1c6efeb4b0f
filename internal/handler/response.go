package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/export"
	"github.com/employee-management-api/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// base - общие помощники обработчиков: разбор запроса, ответы, ошибки
type base struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newBase(logger *slog.Logger) base {
	return base{validator: validator.New(), logger: logger}
}

// decode читает JSON тело и проверяет его. При ошибке ответ уже записан.
func (h base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return h.validate(w, dst)
}

func (h base) validate(w http.ResponseWriter, v any) bool {
	if err := h.validator.Struct(v); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return false
	}
	return true
}

// pathID разбирает числовой параметр маршрута
func (h base) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid "+name, chi.URLParam(r, name))
		return 0, false
	}
	return id, true
}

// queryInt64 разбирает необязательный числовой параметр строки запроса
func (h base) queryInt64(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid "+name, raw)
		return nil, false
	}
	return &v, true
}

func (h base) queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid "+name, raw)
		return 0, false
	}
	return v, true
}

func (h base) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, storage.ErrBlobNotFound):
		h.respondError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrReferenceNotFound), errors.Is(err, domain.ErrInvalidField):
		h.respondError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, export.ErrUnsupportedFormat):
		h.respondError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrForbidden):
		h.respondError(w, http.StatusForbidden, "operation not permitted", "")
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, "incorrect username or password", "")
	case errors.Is(err, domain.ErrUnauthorized):
		h.respondError(w, http.StatusUnauthorized, "not authenticated", "")
	case errors.Is(err, domain.ErrDuplicate):
		h.respondError(w, http.StatusConflict, err.Error(), "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h base) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h base) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// respondFile отдаёт таблицу как файл выгрузки
func (h base) respondFile(w http.ResponseWriter, name string, format export.Format, table export.Table) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+name+"."+format.Extension())
	w.WriteHeader(http.StatusOK)
	if err := export.Write(w, format, table); err != nil {
		h.logger.Error("failed to write export", slog.Any("error", err))
	}
}
