package engagement

import (
	"time"

	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Note is a free-text annotation on a resident
type Note struct {
	shared.BaseAggregateRoot
	ResidentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Note) TableName() string {
	return "notes"
}

// NewNote creates a new note for a resident
func NewNote(residentID uuid.UUID, content string) (*Note, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Note must reference a resident")
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Note content cannot be empty")
	}

	return &Note{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ResidentID:        residentID,
		Content:           content,
	}, nil
}

// Update replaces the note content
func (n *Note) Update(content string) error {
	if content == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Note content cannot be empty")
	}

	n.Content = content
	n.UpdatedAt = time.Now()
	n.IncrementVersion()

	return nil
}
