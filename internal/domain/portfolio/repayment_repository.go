package portfolio

import (
	"context"

	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RepaymentRepository defines the interface for repayment persistence
type RepaymentRepository interface {
	// FindByID finds a repayment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Repayment, error)

	// FindByResident finds all repayments for a resident ordered by due date
	FindByResident(ctx context.Context, residentID uuid.UUID) ([]Repayment, error)

	// FindAll finds all repayments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Repayment, error)

	// ListAll loads every repayment, used by the portfolio roll-up
	ListAll(ctx context.Context) ([]Repayment, error)

	// Save creates or updates a repayment
	Save(ctx context.Context, repayment *Repayment) error

	// Delete deletes a repayment
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts repayments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
