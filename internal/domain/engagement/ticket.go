package engagement

import (
	"time"

	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TicketStatus is the stored ticket state. "lapsed" is never stored; it is
// derived from the due date at evaluation time.
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusResolved TicketStatus = "resolved"
)

// DerivedTicketStatus is the presentation status computed from the stored
// state and the due date
type DerivedTicketStatus string

const (
	DerivedStatusPending  DerivedTicketStatus = "pending"
	DerivedStatusLapsed   DerivedTicketStatus = "lapsed"
	DerivedStatusResolved DerivedTicketStatus = "resolved"
)

// Ticket is a support request raised against a resident. Comments are
// append-only.
type Ticket struct {
	shared.BaseAggregateRoot
	ResidentID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	Title       string       `gorm:"type:varchar(200);not null"`
	Description string       `gorm:"type:text"`
	Status      TicketStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	DueDate     time.Time    `gorm:"type:date;not null"`
	CreatedBy   uuid.UUID    `gorm:"type:uuid;not null"`
	ResolvedAt  *time.Time
	Comments    []Comment `gorm:"foreignKey:TicketID"`
}

// TableName returns the table name for GORM
func (Ticket) TableName() string {
	return "tickets"
}

// Comment is one append-only entry in a ticket's thread
type Comment struct {
	shared.BaseEntity
	TicketID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content  string    `gorm:"type:text;not null"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Comment) TableName() string {
	return "ticket_comments"
}

// NewTicket creates a new pending ticket for a resident
func NewTicket(residentID, createdBy uuid.UUID, title, description string, dueDate time.Time) (*Ticket, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Ticket must reference a resident")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Ticket must record its creator")
	}
	if err := validateTicketTitle(title); err != nil {
		return nil, err
	}

	return &Ticket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ResidentID:        residentID,
		Title:             title,
		Description:       description,
		Status:            TicketStatusPending,
		DueDate:           dueDate,
		CreatedBy:         createdBy,
	}, nil
}

// Update edits the ticket's title, description, and due date
func (t *Ticket) Update(title, description string, dueDate time.Time) error {
	if err := validateTicketTitle(title); err != nil {
		return err
	}

	t.Title = title
	t.Description = description
	t.DueDate = dueDate
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Resolve marks the ticket resolved. Resolution is terminal.
func (t *Ticket) Resolve(now time.Time) error {
	if t.Status == TicketStatusResolved {
		return shared.NewDomainError("ALREADY_RESOLVED", "Ticket is already resolved")
	}

	t.Status = TicketStatusResolved
	t.ResolvedAt = &now
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// AddComment appends a comment to the ticket's thread
func (t *Ticket) AddComment(authorID uuid.UUID, content string) (*Comment, error) {
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Comment must record its author")
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Comment content cannot be empty")
	}

	comment := &Comment{
		BaseEntity: shared.NewBaseEntity(),
		TicketID:   t.ID,
		Content:    content,
		AuthorID:   authorID,
	}
	t.Comments = append(t.Comments, *comment)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return comment, nil
}

// DeriveStatus computes the presentation status at the given time.
// Resolved is sticky: a resolved ticket never reclassifies as lapsed even
// if it was resolved late. Otherwise the ticket is lapsed once its due
// date is strictly before today (date-only comparison, due today is still
// pending).
func (t *Ticket) DeriveStatus(now time.Time) DerivedTicketStatus {
	if t.Status == TicketStatusResolved {
		return DerivedStatusResolved
	}
	due := dateOnly(t.DueDate)
	today := dateOnly(now)
	if due.Before(today) {
		return DerivedStatusLapsed
	}
	return DerivedStatusPending
}

// IsResolved returns true if the ticket's stored status is resolved
func (t *Ticket) IsResolved() bool {
	return t.Status == TicketStatusResolved
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func validateTicketTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Ticket title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Ticket title cannot exceed 200 characters")
	}
	return nil
}
