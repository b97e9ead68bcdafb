package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryDocumentStorage keeps documents in memory. Used in tests and for
// local development without an object store.
type MemoryDocumentStorage struct {
	mu            sync.RWMutex
	objects       map[string]memoryObject
	maxUploadSize int64

	// BaseURL is the prefix for generated download URLs
	BaseURL string
}

// NewMemoryDocumentStorage creates an in-memory document store.
// maxUploadSize of 0 disables the size check.
func NewMemoryDocumentStorage(maxUploadSize int64) *MemoryDocumentStorage {
	return &MemoryDocumentStorage{
		objects:       make(map[string]memoryObject),
		maxUploadSize: maxUploadSize,
		BaseURL:       "https://storage.invalid",
	}
}

func (s *MemoryDocumentStorage) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	if s.maxUploadSize > 0 && int64(len(data)) > s.maxUploadSize {
		return ErrDocumentTooLarge
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	s.objects[key] = memoryObject{data: stored, contentType: contentType}
	s.mu.Unlock()
	return nil
}

func (s *MemoryDocumentStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", time.Time{}, fmt.Errorf("document %q not found", key)
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/" + key + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

func (s *MemoryDocumentStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryDocumentStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	return ok, nil
}

// Get returns a stored document. Test helper.
func (s *MemoryDocumentStorage) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	object, ok := s.objects[key]
	return object.data, object.contentType, ok
}
