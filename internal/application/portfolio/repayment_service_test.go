package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/circlepe/backend/internal/infrastructure/cache"
)

func newRepaymentTestService(repaymentRepo *MockRepaymentRepository, residentRepo *MockResidentRepository) (*RepaymentService, *cache.InMemoryQueryCache) {
	queryCache := cache.NewInMemoryQueryCache()
	service := NewRepaymentService(repaymentRepo, residentRepo, queryCache, zap.NewNop())
	return service, queryCache
}

func TestRepaymentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("viewer is rejected", func(t *testing.T) {
		repaymentRepo := new(MockRepaymentRepository)
		residentRepo := new(MockResidentRepository)
		service, _ := newRepaymentTestService(repaymentRepo, residentRepo)

		_, err := service.Create(ctx, identity.RoleViewer, CreateRepaymentRequest{
			ResidentID:  uuid.New(),
			Month:       "April 2025",
			DueDate:     time.Now(),
			RentAmount:  decimal.NewFromInt(45000),
			PaymentMode: "NACH",
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		residentRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown resident is rejected", func(t *testing.T) {
		repaymentRepo := new(MockRepaymentRepository)
		residentRepo := new(MockResidentRepository)
		service, _ := newRepaymentTestService(repaymentRepo, residentRepo)

		residentID := uuid.New()
		residentRepo.On("FindByID", mock.Anything, residentID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, identity.RoleAdmin, CreateRepaymentRequest{
			ResidentID:  residentID,
			Month:       "April 2025",
			DueDate:     time.Now(),
			RentAmount:  decimal.NewFromInt(45000),
			PaymentMode: "NACH",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repaymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("admin schedules a row and invalidates roll-ups", func(t *testing.T) {
		repaymentRepo := new(MockRepaymentRepository)
		residentRepo := new(MockResidentRepository)
		service, queryCache := newRepaymentTestService(repaymentRepo, residentRepo)

		require.NoError(t, queryCache.Set(ctx, cache.KeyDashboardStats, []byte(`{}`), 0))

		resident := newMockResident(t, "Priya Sharma", "priya@example.com")
		residentRepo.On("FindByID", mock.Anything, resident.ID).Return(resident, nil)
		repaymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*portfolio.Repayment")).Return(nil)

		response, err := service.Create(ctx, identity.RoleAdmin, CreateRepaymentRequest{
			ResidentID:  resident.ID,
			Month:       "April 2025",
			DueDate:     time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
			RentAmount:  decimal.NewFromInt(45000),
			PaymentMode: "Manual",
		})

		require.NoError(t, err)
		assert.Equal(t, "April 2025", response.Month)
		assert.Equal(t, string(portfolio.PaymentStatusPending), response.Status)
		assert.Equal(t, "Manual", response.PaymentMode)

		_, found, err := queryCache.Get(ctx, cache.KeyDashboardStats)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestRepaymentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	newScheduledRow := func(t *testing.T) *portfolio.Repayment {
		t.Helper()
		repayment, err := portfolio.NewRepayment(uuid.New(), "April 2025",
			time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(45000), portfolio.PaymentModeNACH)
		require.NoError(t, err)
		return repayment
	}

	t.Run("paid transition records amount and date", func(t *testing.T) {
		repaymentRepo := new(MockRepaymentRepository)
		residentRepo := new(MockResidentRepository)
		service, _ := newRepaymentTestService(repaymentRepo, residentRepo)

		repayment := newScheduledRow(t)
		repaymentRepo.On("FindByID", mock.Anything, repayment.ID).Return(repayment, nil)
		repaymentRepo.On("Save", mock.Anything, repayment).Return(nil)

		amount := decimal.NewFromInt(45000)
		paidOn := time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)
		response, err := service.UpdateStatus(ctx, identity.RoleAdmin, repayment.ID, TransitionRepaymentRequest{
			Status:            "paid",
			AmountPaid:        &amount,
			ActualPaymentDate: &paidOn,
		})

		require.NoError(t, err)
		assert.Equal(t, "paid", response.Status)
		assert.True(t, response.AmountPaid.Equal(amount))
		require.NotNil(t, response.ActualPaymentDate)
		assert.True(t, paidOn.Equal(*response.ActualPaymentDate))
	})

	t.Run("pending transition resets the settlement fields", func(t *testing.T) {
		repaymentRepo := new(MockRepaymentRepository)
		residentRepo := new(MockResidentRepository)
		service, _ := newRepaymentTestService(repaymentRepo, residentRepo)

		repayment := newScheduledRow(t)
		require.NoError(t, repayment.MarkPaid(decimal.NewFromInt(45000), time.Now()))
		repaymentRepo.On("FindByID", mock.Anything, repayment.ID).Return(repayment, nil)
		repaymentRepo.On("Save", mock.Anything, repayment).Return(nil)

		response, err := service.UpdateStatus(ctx, identity.RoleAdmin, repayment.ID, TransitionRepaymentRequest{Status: "pending"})

		require.NoError(t, err)
		assert.Equal(t, "pending", response.Status)
		assert.True(t, response.AmountPaid.IsZero())
		assert.Nil(t, response.ActualPaymentDate)
	})

	t.Run("viewer cannot transition", func(t *testing.T) {
		repaymentRepo := new(MockRepaymentRepository)
		service, _ := newRepaymentTestService(repaymentRepo, new(MockResidentRepository))

		_, err := service.UpdateStatus(ctx, identity.RoleViewer, uuid.New(), TransitionRepaymentRequest{Status: "paid"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		repaymentRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestDisbursementService(t *testing.T) {
	ctx := context.Background()

	t.Run("create preserves the stored advance snapshot", func(t *testing.T) {
		disbursementRepo := new(MockDisbursementRepository)
		residentRepo := new(MockResidentRepository)
		queryCache := cache.NewInMemoryQueryCache()
		service := NewDisbursementService(disbursementRepo, residentRepo, queryCache, zap.NewNop())

		resident := newMockResident(t, "Priya Sharma", "priya@example.com")
		residentRepo.On("FindByID", mock.Anything, resident.ID).Return(resident, nil)
		disbursementRepo.On("Save", mock.Anything, mock.AnythingOfType("*portfolio.Disbursement")).Return(nil)

		response, err := service.Create(ctx, identity.RoleAdmin, CreateDisbursementRequest{
			ResidentID: resident.ID,
			Date:       time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
			Amount:     decimal.NewFromInt(100000),
			UTRNumber:  "UTR2025040501",
			Type:       string(portfolio.TrancheFirst),
		})

		require.NoError(t, err)
		assert.Equal(t, string(portfolio.TrancheFirst), response.Type)
		assert.Equal(t, "UTR2025040501", response.UTRNumber)
		residentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("viewer cannot record a tranche", func(t *testing.T) {
		disbursementRepo := new(MockDisbursementRepository)
		residentRepo := new(MockResidentRepository)
		service := NewDisbursementService(disbursementRepo, residentRepo, cache.NewInMemoryQueryCache(), zap.NewNop())

		_, err := service.Create(ctx, identity.RoleViewer, CreateDisbursementRequest{
			ResidentID: uuid.New(),
			Date:       time.Now(),
			Amount:     decimal.NewFromInt(100000),
			Type:       string(portfolio.TrancheFirst),
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		disbursementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("delete invalidates roll-ups", func(t *testing.T) {
		disbursementRepo := new(MockDisbursementRepository)
		residentRepo := new(MockResidentRepository)
		queryCache := cache.NewInMemoryQueryCache()
		service := NewDisbursementService(disbursementRepo, residentRepo, queryCache, zap.NewNop())

		require.NoError(t, queryCache.Set(ctx, cache.KeyRosterEntries, []byte(`[]`), 0))

		id := uuid.New()
		disbursementRepo.On("Delete", mock.Anything, id).Return(nil)

		require.NoError(t, service.Delete(ctx, identity.RoleAdmin, id))

		_, found, err := queryCache.Get(ctx, cache.KeyRosterEntries)
		require.NoError(t, err)
		assert.False(t, found)
	})
}
