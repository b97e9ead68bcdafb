package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/circlepe/backend/internal/infrastructure/cache"
)

// DisbursementService handles tranche disbursements. Writes never touch
// the resident's stored advance snapshot; the statement reports the live
// sum alongside it.
type DisbursementService struct {
	disbursementRepo portfolio.DisbursementRepository
	residentRepo     portfolio.ResidentRepository
	queryCache       cache.QueryCache
	logger           *zap.Logger
}

// NewDisbursementService creates a new DisbursementService
func NewDisbursementService(
	disbursementRepo portfolio.DisbursementRepository,
	residentRepo portfolio.ResidentRepository,
	queryCache cache.QueryCache,
	logger *zap.Logger,
) *DisbursementService {
	return &DisbursementService{
		disbursementRepo: disbursementRepo,
		residentRepo:     residentRepo,
		queryCache:       queryCache,
		logger:           logger,
	}
}

// Create records a tranche for a resident. Admin only.
func (s *DisbursementService) Create(ctx context.Context, actor identity.Role, req CreateDisbursementRequest) (*DisbursementResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	if _, err := s.residentRepo.FindByID(ctx, req.ResidentID); err != nil {
		return nil, err
	}

	disbursement, err := portfolio.NewDisbursement(req.ResidentID, req.Date, req.Amount, portfolio.TrancheType(req.Type))
	if err != nil {
		return nil, err
	}
	if req.UTRNumber != "" {
		if err := disbursement.SetUTRNumber(req.UTRNumber); err != nil {
			return nil, err
		}
	}

	if err := s.disbursementRepo.Save(ctx, disbursement); err != nil {
		return nil, err
	}
	s.invalidateRollups(ctx)

	s.logger.Info("Disbursement recorded",
		zap.String("disbursement_id", disbursement.ID.String()),
		zap.String("resident_id", req.ResidentID.String()),
		zap.String("type", req.Type))

	response := ToDisbursementResponse(disbursement)
	return &response, nil
}

// Update updates a tranche. Admin only.
func (s *DisbursementService) Update(ctx context.Context, actor identity.Role, id uuid.UUID, req UpdateDisbursementRequest) (*DisbursementResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	disbursement, err := s.disbursementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	date := disbursement.Date
	if req.Date != nil {
		date = *req.Date
	}
	amount := disbursement.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	trancheType := disbursement.Type
	if req.Type != nil {
		trancheType = portfolio.TrancheType(*req.Type)
	}
	if err := disbursement.Update(date, amount, trancheType); err != nil {
		return nil, err
	}
	if req.UTRNumber != nil {
		if err := disbursement.SetUTRNumber(*req.UTRNumber); err != nil {
			return nil, err
		}
	}

	if err := s.disbursementRepo.Save(ctx, disbursement); err != nil {
		return nil, err
	}
	s.invalidateRollups(ctx)

	response := ToDisbursementResponse(disbursement)
	return &response, nil
}

// Delete removes a tranche. Admin only.
func (s *DisbursementService) Delete(ctx context.Context, actor identity.Role, id uuid.UUID) error {
	if !actor.CanEditResident() {
		return shared.ErrForbidden
	}
	if err := s.disbursementRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateRollups(ctx)
	return nil
}

// ListByResident returns a resident's tranches, oldest first
func (s *DisbursementService) ListByResident(ctx context.Context, residentID uuid.UUID) ([]DisbursementResponse, error) {
	disbursements, err := s.disbursementRepo.FindByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}
	responses := make([]DisbursementResponse, len(disbursements))
	for i := range disbursements {
		responses[i] = ToDisbursementResponse(&disbursements[i])
	}
	return responses, nil
}

func (s *DisbursementService) invalidateRollups(ctx context.Context) {
	if s.queryCache == nil {
		return
	}
	err := s.queryCache.Invalidate(ctx, cache.KeyDashboardStats, cache.KeyRosterEntries)
	if err != nil {
		s.logger.Warn("Failed to invalidate query cache", zap.Error(err))
	}
}
