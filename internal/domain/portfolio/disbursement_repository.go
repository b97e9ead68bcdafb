package portfolio

import (
	"context"

	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DisbursementRepository defines the interface for disbursement persistence
type DisbursementRepository interface {
	// FindByID finds a disbursement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Disbursement, error)

	// FindByResident finds all disbursements for a resident, oldest first
	FindByResident(ctx context.Context, residentID uuid.UUID) ([]Disbursement, error)

	// FindAll finds all disbursements matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Disbursement, error)

	// Save creates or updates a disbursement
	Save(ctx context.Context, disbursement *Disbursement) error

	// Delete deletes a disbursement
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts disbursements matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
