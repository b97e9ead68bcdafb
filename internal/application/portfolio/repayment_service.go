package portfolio

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/circlepe/backend/internal/infrastructure/cache"
)

// RepaymentService handles rent repayment schedule rows
type RepaymentService struct {
	repaymentRepo portfolio.RepaymentRepository
	residentRepo  portfolio.ResidentRepository
	queryCache    cache.QueryCache
	logger        *zap.Logger
}

// NewRepaymentService creates a new RepaymentService
func NewRepaymentService(
	repaymentRepo portfolio.RepaymentRepository,
	residentRepo portfolio.ResidentRepository,
	queryCache cache.QueryCache,
	logger *zap.Logger,
) *RepaymentService {
	return &RepaymentService{
		repaymentRepo: repaymentRepo,
		residentRepo:  residentRepo,
		queryCache:    queryCache,
		logger:        logger,
	}
}

// Create adds a schedule row for a resident. Admin only.
func (s *RepaymentService) Create(ctx context.Context, actor identity.Role, req CreateRepaymentRequest) (*RepaymentResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	if _, err := s.residentRepo.FindByID(ctx, req.ResidentID); err != nil {
		return nil, err
	}

	repayment, err := portfolio.NewRepayment(req.ResidentID, req.Month, req.DueDate, req.RentAmount, portfolio.PaymentMode(req.PaymentMode))
	if err != nil {
		return nil, err
	}

	if err := s.repaymentRepo.Save(ctx, repayment); err != nil {
		return nil, err
	}
	s.invalidateRollups(ctx)

	s.logger.Info("Repayment scheduled",
		zap.String("repayment_id", repayment.ID.String()),
		zap.String("resident_id", req.ResidentID.String()),
		zap.String("month", req.Month))

	response := ToRepaymentResponse(repayment)
	return &response, nil
}

// Update updates a schedule row. Admin only.
func (s *RepaymentService) Update(ctx context.Context, actor identity.Role, id uuid.UUID, req UpdateRepaymentRequest) (*RepaymentResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	repayment, err := s.repaymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	month := repayment.Month
	if req.Month != nil {
		month = *req.Month
	}
	dueDate := repayment.DueDate
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}
	rentAmount := repayment.RentAmount
	if req.RentAmount != nil {
		rentAmount = *req.RentAmount
	}
	mode := repayment.PaymentMode
	if req.PaymentMode != nil {
		mode = portfolio.PaymentMode(*req.PaymentMode)
	}
	if err := repayment.Update(month, dueDate, rentAmount, mode); err != nil {
		return nil, err
	}

	if err := s.repaymentRepo.Save(ctx, repayment); err != nil {
		return nil, err
	}
	s.invalidateRollups(ctx)

	response := ToRepaymentResponse(repayment)
	return &response, nil
}

// UpdateStatus transitions a schedule row to a new payment status.
// Admin only. Paid and advance transitions record the amount and date;
// pending and failed reset them.
func (s *RepaymentService) UpdateStatus(ctx context.Context, actor identity.Role, id uuid.UUID, req TransitionRepaymentRequest) (*RepaymentResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	repayment, err := s.repaymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	amountPaid := decimal.Zero
	if req.AmountPaid != nil {
		amountPaid = *req.AmountPaid
	}
	if err := repayment.TransitionStatus(portfolio.PaymentStatus(req.Status), amountPaid, req.ActualPaymentDate); err != nil {
		return nil, err
	}

	if err := s.repaymentRepo.Save(ctx, repayment); err != nil {
		return nil, err
	}
	s.invalidateRollups(ctx)

	s.logger.Info("Repayment status updated",
		zap.String("repayment_id", repayment.ID.String()),
		zap.String("status", req.Status))

	response := ToRepaymentResponse(repayment)
	return &response, nil
}

// Delete removes a schedule row. Admin only.
func (s *RepaymentService) Delete(ctx context.Context, actor identity.Role, id uuid.UUID) error {
	if !actor.CanEditResident() {
		return shared.ErrForbidden
	}
	if err := s.repaymentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateRollups(ctx)
	return nil
}

// ListByResident returns a resident's schedule ordered by due date
func (s *RepaymentService) ListByResident(ctx context.Context, residentID uuid.UUID) ([]RepaymentResponse, error) {
	repayments, err := s.repaymentRepo.FindByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}
	responses := make([]RepaymentResponse, len(repayments))
	for i := range repayments {
		responses[i] = ToRepaymentResponse(&repayments[i])
	}
	return responses, nil
}

func (s *RepaymentService) invalidateRollups(ctx context.Context) {
	if s.queryCache == nil {
		return
	}
	err := s.queryCache.Invalidate(ctx, cache.KeyDashboardStats, cache.KeyRosterEntries)
	if err != nil {
		s.logger.Warn("Failed to invalidate query cache", zap.Error(err))
	}
}
