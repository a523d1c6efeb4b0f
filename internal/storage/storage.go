// Package storage хранит содержимое загруженных документов на файловой системе
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrBlobNotFound - содержимое по ключу отсутствует
var ErrBlobNotFound = errors.New("blob not found")

// FileStore сохраняет файлы в каталоге под случайными uuid ключами
type FileStore struct {
	dir string
}

// NewFileStore создаёт каталог при необходимости
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Put записывает содержимое r и возвращает ключ
func (s *FileStore) Put(r io.Reader) (string, error) {
	key := uuid.NewString()
	f, err := os.OpenFile(s.path(key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(s.path(key))
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close blob: %w", err)
	}
	return key, nil
}

// Open открывает содержимое по ключу
func (s *FileStore) Open(key string) (io.ReadCloser, error) {
	if _, err := uuid.Parse(key); err != nil {
		return nil, ErrBlobNotFound
	}
	f, err := os.Open(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return f, nil
}

// Remove удаляет содержимое; отсутствие файла ошибкой не считается
func (s *FileStore) Remove(key string) error {
	if _, err := uuid.Parse(key); err != nil {
		return nil
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}
