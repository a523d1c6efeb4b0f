package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
)

// BlobStore хранит содержимое документов
type BlobStore interface {
	Put(r io.Reader) (string, error)
	Open(key string) (io.ReadCloser, error)
	Remove(key string) error
}

// DocumentService определяет интерфейс работы с документами сотрудников
type DocumentService interface {
	Upload(ctx context.Context, req *dto.UploadDocumentRequest, content io.Reader) (*domain.Document, error)
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	Open(ctx context.Context, id int64) (*domain.Document, io.ReadCloser, error)
	List(ctx context.Context, query *dto.DocumentQuery) ([]domain.Document, error)
	Delete(ctx context.Context, id int64) error
	ExpiryAlerts(ctx context.Context, days int) ([]domain.Document, error)
}

type documentService struct {
	engine *Engine
	blobs  BlobStore
}

// NewDocumentService создаёт новый экземпляр сервиса
func NewDocumentService(engine *Engine, blobs BlobStore) DocumentService {
	return &documentService{engine: engine, blobs: blobs}
}

func (s *documentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest, content io.Reader) (*domain.Document, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}
	if !domain.ValidDocumentCategory(req.Category) {
		return nil, domain.InvalidField("document", "category", req.Category)
	}
	if !domain.ValidDocumentAccessLevel(req.AccessLevel) {
		return nil, domain.InvalidField("document", "access_level", req.AccessLevel)
	}
	if req.ExpiryDate != nil {
		if _, ok := parseExpiry(*req.ExpiryDate); !ok {
			return nil, domain.InvalidField("document", "expiry_date", *req.ExpiryDate)
		}
	}

	key, err := s.blobs.Put(content)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		EmployeeID:  req.EmployeeID,
		Category:    req.Category,
		AccessLevel: req.AccessLevel,
		ExpiryDate:  req.ExpiryDate,
		Notes:       req.Notes,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		StorageKey:  key,
	}
	err = s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		return tx.Documents.Create(ctx, doc)
	})
	if err != nil {
		s.removeBlob(key)
		return nil, err
	}
	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	p, err := auth.Require(ctx, domain.AnyRole...)
	if err != nil {
		return nil, err
	}

	doc, err := s.engine.repos.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccess(p.Role, doc.AccessLevel) {
		return nil, domain.Forbidden("document", id)
	}
	return doc, nil
}

// Open возвращает метаданные и содержимое документа. Вызывающий закрывает reader.
func (s *documentService) Open(ctx context.Context, id int64) (*domain.Document, io.ReadCloser, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Open(doc.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

func (s *documentService) List(ctx context.Context, query *dto.DocumentQuery) ([]domain.Document, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}
	return s.engine.repos.Documents.List(ctx, repository.DocumentFilter{
		EmployeeID: query.EmployeeID,
		Category:   query.Category,
	})
}

func (s *documentService) Delete(ctx context.Context, id int64) error {
	if _, err := auth.Require(ctx, domain.AdminOnly...); err != nil {
		return err
	}

	var key string
	err := s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		doc, err := tx.Documents.GetByID(ctx, id)
		if err != nil {
			return err
		}
		key = doc.StorageKey
		return tx.Documents.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.removeBlob(key)
	return nil
}

// ExpiryAlerts возвращает документы, срок действия которых истекает в ближайшие days дней
// или уже истёк
func (s *documentService) ExpiryAlerts(ctx context.Context, days int) ([]domain.Document, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	docs, err := s.engine.repos.Documents.List(ctx, repository.DocumentFilter{WithExpiry: true})
	if err != nil {
		return nil, err
	}

	deadline := s.engine.now().UTC().AddDate(0, 0, days)
	alerts := []domain.Document{}
	for _, doc := range docs {
		expiry, ok := parseExpiry(*doc.ExpiryDate)
		if !ok {
			continue
		}
		if !expiry.After(deadline) {
			alerts = append(alerts, doc)
		}
	}
	return alerts, nil
}

func (s *documentService) removeBlob(key string) {
	if err := s.blobs.Remove(key); err != nil {
		s.engine.logger.Warn("failed to remove document blob",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// canAccess сравнивает роль с уровнем доступа документа: admin > manager > employee
func canAccess(role domain.Role, level string) bool {
	rank := map[string]int{
		string(domain.RoleEmployee): 1,
		string(domain.RoleManager):  2,
		string(domain.RoleAdmin):    3,
	}
	return rank[string(role)] >= rank[level]
}

func parseExpiry(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{dateLayout, "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
