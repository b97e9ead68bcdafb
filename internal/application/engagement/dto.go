package engagement

import (
	"time"

	"github.com/google/uuid"

	"github.com/circlepe/backend/internal/domain/engagement"
)

// CreateTicketRequest represents a request to raise a ticket
type CreateTicketRequest struct {
	ResidentID  uuid.UUID `json:"resident_id"`
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}

// UpdateTicketRequest represents a request to update a ticket
type UpdateTicketRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
}

// AddCommentRequest appends a comment to a ticket's thread
type AddCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentResponse represents a ticket comment in API responses
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	TicketID  uuid.UUID `json:"ticket_id"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketResponse represents a ticket in API responses. Status carries the
// stored state, DerivedStatus the presentation state computed against the
// due date at read time.
type TicketResponse struct {
	ID            uuid.UUID         `json:"id"`
	ResidentID    uuid.UUID         `json:"resident_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Status        string            `json:"status"`
	DerivedStatus string            `json:"derived_status"`
	DueDate       time.Time         `json:"due_date"`
	CreatedBy     uuid.UUID         `json:"created_by"`
	ResolvedAt    *time.Time        `json:"resolved_at,omitempty"`
	Comments      []CommentResponse `json:"comments"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ToTicketResponse maps a domain ticket to its API shape, deriving the
// presentation status at the given instant
func ToTicketResponse(t *engagement.Ticket, now time.Time) TicketResponse {
	comments := make([]CommentResponse, len(t.Comments))
	for i := range t.Comments {
		comments[i] = ToCommentResponse(&t.Comments[i])
	}
	return TicketResponse{
		ID:            t.ID,
		ResidentID:    t.ResidentID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        string(t.Status),
		DerivedStatus: string(t.DeriveStatus(now)),
		DueDate:       t.DueDate,
		CreatedBy:     t.CreatedBy,
		ResolvedAt:    t.ResolvedAt,
		Comments:      comments,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToCommentResponse maps a domain comment to its API shape
func ToCommentResponse(c *engagement.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TicketID:  c.TicketID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		CreatedAt: c.CreatedAt,
	}
}

// CreateNoteRequest represents a request to attach a note to a resident
type CreateNoteRequest struct {
	ResidentID uuid.UUID `json:"resident_id"`
	Content    string    `json:"content" binding:"required,min=1,max=5000"`
}

// UpdateNoteRequest represents a request to rewrite a note
type UpdateNoteRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID         uuid.UUID `json:"id"`
	ResidentID uuid.UUID `json:"resident_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToNoteResponse maps a domain note to its API shape
func ToNoteResponse(n *engagement.Note) NoteResponse {
	return NoteResponse{
		ID:         n.ID,
		ResidentID: n.ResidentID,
		Content:    n.Content,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
