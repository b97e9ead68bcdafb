package engagement

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circlepe/backend/internal/domain/engagement"
	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
)

// NoteService handles free-form notes attached to residents
type NoteService struct {
	noteRepo     engagement.NoteRepository
	residentRepo portfolio.ResidentRepository
	logger       *zap.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo engagement.NoteRepository, residentRepo portfolio.ResidentRepository, logger *zap.Logger) *NoteService {
	return &NoteService{
		noteRepo:     noteRepo,
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// Create attaches a note to a resident. Admin only.
func (s *NoteService) Create(ctx context.Context, actor identity.Role, req CreateNoteRequest) (*NoteResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	if _, err := s.residentRepo.FindByID(ctx, req.ResidentID); err != nil {
		return nil, err
	}

	note, err := engagement.NewNote(req.ResidentID, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("Note created",
		zap.String("note_id", note.ID.String()),
		zap.String("resident_id", req.ResidentID.String()))

	response := ToNoteResponse(note)
	return &response, nil
}

// Update rewrites a note's content. Admin only.
func (s *NoteService) Update(ctx context.Context, actor identity.Role, id uuid.UUID, req UpdateNoteRequest) (*NoteResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := note.Update(req.Content); err != nil {
		return nil, err
	}
	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	response := ToNoteResponse(note)
	return &response, nil
}

// Delete removes a note. Admin only.
func (s *NoteService) Delete(ctx context.Context, actor identity.Role, id uuid.UUID) error {
	if !actor.CanEditResident() {
		return shared.ErrForbidden
	}
	return s.noteRepo.Delete(ctx, id)
}

// ListByResident returns a resident's notes, newest first
func (s *NoteService) ListByResident(ctx context.Context, residentID uuid.UUID) ([]NoteResponse, error) {
	notes, err := s.noteRepo.FindByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}
	responses := make([]NoteResponse, len(notes))
	for i := range notes {
		responses[i] = ToNoteResponse(&notes[i])
	}
	return responses, nil
}
