package handler

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/circlepe/backend/internal/application/identity"
	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/circlepe/backend/internal/infrastructure/auth"
	"github.com/circlepe/backend/internal/infrastructure/config"
	"github.com/circlepe/backend/internal/interfaces/http/dto"
)

// MockUserRepository implements identity.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newAuthTestEngine(t *testing.T) (*gin.Engine, *MockUserRepository) {
	t.Helper()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-0123456789abcdef",
		RefreshSecret:          "test-refresh-secret-0123456789abcdef",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "accounts-dashboard-test",
	})

	userRepo := new(MockUserRepository)
	service := identityapp.NewAuthService(
		userRepo,
		jwtService,
		auth.NewInMemoryRevocationList(),
		identityapp.DefaultAuthServiceConfig(),
		zap.NewNop(),
	)

	engine := newTestEngine("viewer", uuid.New(), NewAuthHandler(service))
	return engine, userRepo
}

func TestAuthHandler_Login(t *testing.T) {
	engine, userRepo := newAuthTestEngine(t)

	user, err := identity.NewUser("ops@circlepe.in", "correct-horse-battery", identity.RoleAdmin)
	require.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "ops@circlepe.in").Return(user, nil)
	userRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	body := `{"email":"ops@circlepe.in","password":"correct-horse-battery"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := perform(engine, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w.Body)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])
	assert.Equal(t, "admin", data["user"].(map[string]interface{})["role"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	engine, userRepo := newAuthTestEngine(t)

	user, err := identity.NewUser("ops@circlepe.in", "correct-horse-battery", identity.RoleAdmin)
	require.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "ops@circlepe.in").Return(user, nil)
	userRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	body := `{"email":"ops@circlepe.in","password":"wrong-password-entirely"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := perform(engine, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	resp := decodeResponse(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidCredentials, resp.Error.Code)
}

func TestAuthHandler_Login_ShortPasswordFailsBinding(t *testing.T) {
	engine, userRepo := newAuthTestEngine(t)

	body := `{"email":"ops@circlepe.in","password":"short"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := perform(engine, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthHandler_RefreshRoundTrip(t *testing.T) {
	engine, userRepo := newAuthTestEngine(t)

	user, err := identity.NewUser("ops@circlepe.in", "correct-horse-battery", identity.RoleAdmin)
	require.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "ops@circlepe.in").Return(user, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	body := `{"email":"ops@circlepe.in","password":"correct-horse-battery"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := perform(engine, req)
	require.Equal(t, http.StatusOK, w.Code)

	login := decodeResponse(t, w.Body)
	refreshToken := login.Data.(map[string]interface{})["refresh_token"].(string)

	req, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewBufferString(`{"refresh_token":"`+refreshToken+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w = perform(engine, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w.Body)
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
}
