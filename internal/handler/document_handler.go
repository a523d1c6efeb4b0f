package handler

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/service"
)

// DocumentHandler обслуживает /documents
type DocumentHandler struct {
	base
	docService service.DocumentService
}

func NewDocumentHandler(docService service.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{base: newBase(logger), docService: docService}
}

// Upload принимает multipart форму: file, employee_id, category, access_level, expiry_date, notes
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "file is required", err.Error())
		return
	}
	defer file.Close()

	employeeID, err := strconv.ParseInt(r.FormValue("employee_id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee_id", r.FormValue("employee_id"))
		return
	}

	req := dto.UploadDocumentRequest{
		EmployeeID:  employeeID,
		Category:    r.FormValue("category"),
		AccessLevel: r.FormValue("access_level"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}
	if v := r.FormValue("expiry_date"); v != "" {
		req.ExpiryDate = &v
	}
	if v := r.FormValue("notes"); v != "" {
		req.Notes = &v
	}
	if !h.validate(w, &req) {
		return
	}

	doc, err := h.docService.Upload(r.Context(), &req, file)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.queryInt64(w, r, "employee_id")
	if !ok {
		return
	}

	docs, err := h.docService.List(r.Context(), &dto.DocumentQuery{
		EmployeeID: employeeID,
		Category:   r.URL.Query().Get("category"),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.docService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	doc, content, err := h.docService.Open(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	defer content.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, content); err != nil {
		h.logger.Error("failed to stream document", slog.Int64("id", id), slog.Any("error", err))
	}
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.docService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "Document deleted"})
}

func (h *DocumentHandler) ExpiryAlerts(w http.ResponseWriter, r *http.Request) {
	days, ok := h.queryInt(w, r, "days", 30)
	if !ok {
		return
	}

	docs, err := h.docService.ExpiryAlerts(r.Context(), days)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, docs)
}
