package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circlepe/backend/internal/domain/engagement"
	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
)

// TicketService handles support tickets and their comment threads
type TicketService struct {
	ticketRepo   engagement.TicketRepository
	residentRepo portfolio.ResidentRepository
	logger       *zap.Logger
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo engagement.TicketRepository, residentRepo portfolio.ResidentRepository, logger *zap.Logger) *TicketService {
	return &TicketService{
		ticketRepo:   ticketRepo,
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// Create raises a ticket against a resident. Admin only.
func (s *TicketService) Create(ctx context.Context, actor identity.Role, actorID uuid.UUID, req CreateTicketRequest) (*TicketResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	if _, err := s.residentRepo.FindByID(ctx, req.ResidentID); err != nil {
		return nil, err
	}

	ticket, err := engagement.NewTicket(req.ResidentID, actorID, req.Title, req.Description, req.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("Ticket created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("resident_id", req.ResidentID.String()))

	response := ToTicketResponse(ticket, time.Now())
	return &response, nil
}

// Update updates a ticket's title, description or due date. Admin only.
func (s *TicketService) Update(ctx context.Context, actor identity.Role, id uuid.UUID, req UpdateTicketRequest) (*TicketResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := ticket.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := ticket.Description
	if req.Description != nil {
		description = *req.Description
	}
	dueDate := ticket.DueDate
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}
	if err := ticket.Update(title, description, dueDate); err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket, time.Now())
	return &response, nil
}

// Resolve marks a ticket resolved. Resolution is sticky: a resolved
// ticket never lapses. Admin only.
func (s *TicketService) Resolve(ctx context.Context, actor identity.Role, id uuid.UUID) (*TicketResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ticket.Resolve(time.Now()); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("Ticket resolved", zap.String("ticket_id", ticket.ID.String()))

	response := ToTicketResponse(ticket, time.Now())
	return &response, nil
}

// AddComment appends a comment to a ticket's thread. Admin only.
func (s *TicketService) AddComment(ctx context.Context, actor identity.Role, actorID uuid.UUID, ticketID uuid.UUID, req AddCommentRequest) (*TicketResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if _, err := ticket.AddComment(actorID, req.Content); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket, time.Now())
	return &response, nil
}

// Delete removes a ticket and its comments. Admin only.
func (s *TicketService) Delete(ctx context.Context, actor identity.Role, id uuid.UUID) error {
	if !actor.CanEditResident() {
		return shared.ErrForbidden
	}
	return s.ticketRepo.Delete(ctx, id)
}

// Get returns a single ticket with its thread
func (s *TicketService) Get(ctx context.Context, id uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTicketResponse(ticket, time.Now())
	return &response, nil
}

// ListByResident returns a resident's tickets, newest first, with the
// presentation status derived at read time
func (s *TicketService) ListByResident(ctx context.Context, residentID uuid.UUID) ([]TicketResponse, error) {
	tickets, err := s.ticketRepo.FindByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	responses := make([]TicketResponse, len(tickets))
	for i := range tickets {
		responses[i] = ToTicketResponse(&tickets[i], now)
	}
	return responses, nil
}
