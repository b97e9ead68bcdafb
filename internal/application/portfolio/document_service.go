package portfolio

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
)

// DocumentStorage abstracts the object store resident documents live in
type DocumentStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, key string) error
	ObjectExists(ctx context.Context, key string) (bool, error)
}

// downloadURLTTL is how long a presigned document link stays valid
const downloadURLTTL = 15 * time.Minute

// DocumentService handles resident document uploads and download links
type DocumentService struct {
	storage      DocumentStorage
	residentRepo portfolio.ResidentRepository
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(storage DocumentStorage, residentRepo portfolio.ResidentRepository, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		storage:      storage,
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// Upload stores a document against a resident. Admin only.
func (s *DocumentService) Upload(ctx context.Context, actor identity.Role, residentID uuid.UUID, fileName, contentType string, data []byte) (*DocumentResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	if _, err := s.residentRepo.FindByID(ctx, residentID); err != nil {
		return nil, err
	}

	name := sanitizeFileName(fileName)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "File name is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := documentKey(residentID, name)
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	s.logger.Info("Document uploaded",
		zap.String("resident_id", residentID.String()),
		zap.String("key", key),
		zap.Int("size", len(data)))

	return &DocumentResponse{
		Key:         key,
		FileName:    name,
		ContentType: contentType,
		Size:        len(data),
		UploadedAt:  time.Now(),
	}, nil
}

// DownloadURL returns a short-lived presigned link for a resident document
func (s *DocumentService) DownloadURL(ctx context.Context, residentID uuid.UUID, fileName string) (*DocumentURLResponse, error) {
	key := documentKey(residentID, sanitizeFileName(fileName))

	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, downloadURLTTL)
	if err != nil {
		return nil, err
	}
	return &DocumentURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// Delete removes a resident document. Admin only.
func (s *DocumentService) Delete(ctx context.Context, actor identity.Role, residentID uuid.UUID, fileName string) error {
	if !actor.CanEditResident() {
		return shared.ErrForbidden
	}

	key := documentKey(residentID, sanitizeFileName(fileName))
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return s.storage.DeleteObject(ctx, key)
}

func documentKey(residentID uuid.UUID, fileName string) string {
	return fmt.Sprintf("residents/%s/%s", residentID, fileName)
}

// sanitizeFileName strips any path components so keys stay inside the
// resident's prefix
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
