package engagement

import (
	"context"

	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TicketRepository defines the interface for ticket persistence
type TicketRepository interface {
	// FindByID finds a ticket with its comments by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// FindByResident finds all tickets for a resident, newest first
	FindByResident(ctx context.Context, residentID uuid.UUID) ([]Ticket, error)

	// FindAll finds all tickets matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Ticket, error)

	// Save creates or updates a ticket together with its comments
	Save(ctx context.Context, ticket *Ticket) error

	// Delete deletes a ticket and its comments
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts tickets matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// NoteRepository defines the interface for note persistence
type NoteRepository interface {
	// FindByID finds a note by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Note, error)

	// FindByResident finds all notes for a resident, newest first
	FindByResident(ctx context.Context, residentID uuid.UUID) ([]Note, error)

	// Save creates or updates a note
	Save(ctx context.Context, note *Note) error

	// Delete deletes a note
	Delete(ctx context.Context, id uuid.UUID) error
}
