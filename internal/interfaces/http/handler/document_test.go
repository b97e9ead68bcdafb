package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	portfolioapp "github.com/circlepe/backend/internal/application/portfolio"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/infrastructure/storage"
	"github.com/circlepe/backend/internal/interfaces/http/dto"
)

const testMaxUpload = 1 << 20

func newDocumentTestEngine(role string) (*gin.Engine, *MockResidentRepository, *storage.MemoryDocumentStorage) {
	residentRepo := new(MockResidentRepository)
	store := storage.NewMemoryDocumentStorage(testMaxUpload)
	service := portfolioapp.NewDocumentService(store, residentRepo, zap.NewNop())
	engine := newTestEngine(role, uuid.New(), NewDocumentHandler(service, testMaxUpload))
	return engine, residentRepo, store
}

func multipartBody(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestDocumentHandler_Upload(t *testing.T) {
	engine, residentRepo, _ := newDocumentTestEngine("admin")

	resident, err := portfolio.NewResident("Priya Sharma", "priya@example.com", "", decimal.NewFromInt(45000))
	require.NoError(t, err)
	residentRepo.On("FindByID", mock.Anything, resident.ID).Return(resident, nil)

	body, contentType := multipartBody(t, "lease.pdf", []byte("%PDF-1.7 lease agreement"))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/residents/"+resident.ID.String()+"/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := perform(engine, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w.Body)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "lease.pdf", data["file_name"])
	assert.Equal(t, "residents/"+resident.ID.String()+"/lease.pdf", data["key"])
}

func TestDocumentHandler_Upload_ViewerRejectedAtEdge(t *testing.T) {
	engine, residentRepo, _ := newDocumentTestEngine("viewer")

	body, contentType := multipartBody(t, "lease.pdf", []byte("content"))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/residents/"+uuid.NewString()+"/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := perform(engine, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	residentRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Upload_OversizedBodyRejected(t *testing.T) {
	engine, _, _ := newDocumentTestEngine("admin")

	body, contentType := multipartBody(t, "scan.pdf", bytes.Repeat([]byte("a"), testMaxUpload+1))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/residents/"+uuid.NewString()+"/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := perform(engine, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	resp := decodeResponse(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeRequestTooLarge, resp.Error.Code)
}

func TestDocumentHandler_DownloadURL_Missing(t *testing.T) {
	engine, _, _ := newDocumentTestEngine("viewer")

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/residents/"+uuid.NewString()+"/documents/lease.pdf", nil)
	w := perform(engine, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentHandler_UploadThenDownloadURL(t *testing.T) {
	engine, residentRepo, _ := newDocumentTestEngine("admin")

	resident, err := portfolio.NewResident("Priya Sharma", "priya@example.com", "", decimal.NewFromInt(45000))
	require.NoError(t, err)
	residentRepo.On("FindByID", mock.Anything, resident.ID).Return(resident, nil)

	body, contentType := multipartBody(t, "lease.pdf", []byte("%PDF-1.7"))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/residents/"+resident.ID.String()+"/documents", body)
	req.Header.Set("Content-Type", contentType)
	require.Equal(t, http.StatusCreated, perform(engine, req).Code)

	req, _ = http.NewRequest(http.MethodGet, "/api/v1/residents/"+resident.ID.String()+"/documents/lease.pdf", nil)
	w := perform(engine, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w.Body)
	data := resp.Data.(map[string]interface{})
	assert.Contains(t, data["url"], "lease.pdf")
	assert.NotEmpty(t, data["expires_at"])
}
