package portfolio

import (
	"context"

	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByID finds a property by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindByName finds a property by its exact name
	FindByName(ctx context.Context, name string) (*Property, error)

	// FindAll finds all properties matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Property, error)

	// DistinctCities returns the distinct city values across all properties
	DistinctCities(ctx context.Context) ([]string, error)

	// DistinctNames returns the distinct property names
	DistinctNames(ctx context.Context) ([]string, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error

	// Delete deletes a property
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts properties matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a property with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}
