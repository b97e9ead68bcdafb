package portfolio

import (
	"context"

	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ResidentRepository defines the interface for resident persistence
type ResidentRepository interface {
	// FindByID finds a resident by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Resident, error)

	// FindByEmail finds a resident by email
	FindByEmail(ctx context.Context, email string) (*Resident, error)

	// FindAll finds all residents matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Resident, error)

	// FindStatement loads a resident joined with its property and both
	// child collections in one round trip
	FindStatement(ctx context.Context, id uuid.UUID) (*StatementOfAccount, error)

	// FindRosterEntries loads every resident with the property attributes
	// the roster filters on
	FindRosterEntries(ctx context.Context) ([]RosterEntry, error)

	// FindByProperty finds residents assigned to a property
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Resident, error)

	// Save creates or updates a resident
	Save(ctx context.Context, resident *Resident) error

	// Delete deletes a resident
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts residents matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByEmail checks if a resident with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
