package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/circlepe/backend/internal/domain/engagement"
	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
)

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByResident(ctx context.Context, residentID uuid.UUID) ([]engagement.Ticket, error) {
	args := m.Called(ctx, residentID)
	return args.Get(0).([]engagement.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]engagement.Ticket, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]engagement.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Save(ctx context.Context, ticket *engagement.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockNoteRepository is a mock implementation of NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.Note), args.Error(1)
}

func (m *MockNoteRepository) FindByResident(ctx context.Context, residentID uuid.UUID) ([]engagement.Note, error) {
	args := m.Called(ctx, residentID)
	return args.Get(0).([]engagement.Note), args.Error(1)
}

func (m *MockNoteRepository) Save(ctx context.Context, note *engagement.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockResidentRepository stubs the resident lookup the engagement
// services use for existence checks
type MockResidentRepository struct {
	mock.Mock
}

func (m *MockResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindByEmail(ctx context.Context, email string) (*portfolio.Resident, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Resident, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindStatement(ctx context.Context, id uuid.UUID) (*portfolio.StatementOfAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.StatementOfAccount), args.Error(1)
}

func (m *MockResidentRepository) FindRosterEntries(ctx context.Context) ([]portfolio.RosterEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]portfolio.RosterEntry), args.Error(1)
}

func (m *MockResidentRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]portfolio.Resident, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).([]portfolio.Resident), args.Error(1)
}

func (m *MockResidentRepository) Save(ctx context.Context, resident *portfolio.Resident) error {
	args := m.Called(ctx, resident)
	return args.Error(0)
}

func (m *MockResidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResidentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResidentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestResident(t *testing.T) *portfolio.Resident {
	t.Helper()
	resident, err := portfolio.NewResident("Priya Sharma", "priya@example.com", "+91-9800000000", decimal.NewFromInt(45000))
	require.NoError(t, err)
	return resident
}

func TestTicketService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("viewer cannot raise a ticket", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		residentRepo := new(MockResidentRepository)
		service := NewTicketService(ticketRepo, residentRepo, zap.NewNop())

		_, err := service.Create(ctx, identity.RoleViewer, uuid.New(), CreateTicketRequest{
			ResidentID: uuid.New(), Title: "AC not working", DueDate: time.Now(),
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		residentRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("admin raises a pending ticket", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		residentRepo := new(MockResidentRepository)
		service := NewTicketService(ticketRepo, residentRepo, zap.NewNop())

		resident := newTestResident(t)
		creator := uuid.New()
		residentRepo.On("FindByID", mock.Anything, resident.ID).Return(resident, nil)
		ticketRepo.On("Save", mock.Anything, mock.AnythingOfType("*engagement.Ticket")).Return(nil)

		dueDate := time.Now().AddDate(0, 0, 7)
		response, err := service.Create(ctx, identity.RoleAdmin, creator, CreateTicketRequest{
			ResidentID:  resident.ID,
			Title:       "AC not working",
			Description: "Bedroom unit leaking",
			DueDate:     dueDate,
		})

		require.NoError(t, err)
		assert.Equal(t, "AC not working", response.Title)
		assert.Equal(t, string(engagement.TicketStatusPending), response.Status)
		assert.Equal(t, string(engagement.DerivedStatusPending), response.DerivedStatus)
		assert.Equal(t, creator, response.CreatedBy)
		assert.Empty(t, response.Comments)
	})

	t.Run("unknown resident is rejected", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		residentRepo := new(MockResidentRepository)
		service := NewTicketService(ticketRepo, residentRepo, zap.NewNop())

		residentID := uuid.New()
		residentRepo.On("FindByID", mock.Anything, residentID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, identity.RoleAdmin, uuid.New(), CreateTicketRequest{
			ResidentID: residentID, Title: "AC not working", DueDate: time.Now(),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		ticketRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTicketService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	newPendingTicket := func(t *testing.T, dueDate time.Time) *engagement.Ticket {
		t.Helper()
		ticket, err := engagement.NewTicket(uuid.New(), uuid.New(), "AC not working", "", dueDate)
		require.NoError(t, err)
		return ticket
	}

	t.Run("overdue ticket is reported lapsed until resolved", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		service := NewTicketService(ticketRepo, new(MockResidentRepository), zap.NewNop())

		ticket := newPendingTicket(t, time.Now().AddDate(0, 0, -3))
		ticketRepo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)
		ticketRepo.On("Save", mock.Anything, ticket).Return(nil)

		before, err := service.Get(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, string(engagement.DerivedStatusLapsed), before.DerivedStatus)

		after, err := service.Resolve(ctx, identity.RoleAdmin, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, string(engagement.DerivedStatusResolved), after.DerivedStatus)
		require.NotNil(t, after.ResolvedAt)
	})

	t.Run("comments accumulate in order", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		service := NewTicketService(ticketRepo, new(MockResidentRepository), zap.NewNop())

		ticket := newPendingTicket(t, time.Now().AddDate(0, 0, 7))
		ticketRepo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)
		ticketRepo.On("Save", mock.Anything, ticket).Return(nil)

		author := uuid.New()
		_, err := service.AddComment(ctx, identity.RoleAdmin, author, ticket.ID, AddCommentRequest{Content: "Technician scheduled"})
		require.NoError(t, err)
		response, err := service.AddComment(ctx, identity.RoleAdmin, author, ticket.ID, AddCommentRequest{Content: "Resolved on site"})
		require.NoError(t, err)

		require.Len(t, response.Comments, 2)
		assert.Equal(t, "Technician scheduled", response.Comments[0].Content)
		assert.Equal(t, "Resolved on site", response.Comments[1].Content)
		assert.Equal(t, author, response.Comments[1].AuthorID)
	})

	t.Run("viewer cannot resolve or comment", func(t *testing.T) {
		ticketRepo := new(MockTicketRepository)
		service := NewTicketService(ticketRepo, new(MockResidentRepository), zap.NewNop())

		_, err := service.Resolve(ctx, identity.RoleViewer, uuid.New())
		assert.ErrorIs(t, err, shared.ErrForbidden)
		_, err = service.AddComment(ctx, identity.RoleViewer, uuid.New(), uuid.New(), AddCommentRequest{Content: "x"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		ticketRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestNoteService(t *testing.T) {
	ctx := context.Background()

	t.Run("viewer cannot create a note", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		residentRepo := new(MockResidentRepository)
		service := NewNoteService(noteRepo, residentRepo, zap.NewNop())

		_, err := service.Create(ctx, identity.RoleViewer, CreateNoteRequest{ResidentID: uuid.New(), Content: "x"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		residentRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("admin creates and rewrites a note", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		residentRepo := new(MockResidentRepository)
		service := NewNoteService(noteRepo, residentRepo, zap.NewNop())

		resident := newTestResident(t)
		residentRepo.On("FindByID", mock.Anything, resident.ID).Return(resident, nil)
		noteRepo.On("Save", mock.Anything, mock.AnythingOfType("*engagement.Note")).Return(nil)

		created, err := service.Create(ctx, identity.RoleAdmin, CreateNoteRequest{
			ResidentID: resident.ID, Content: "Prefers evening calls",
		})
		require.NoError(t, err)
		assert.Equal(t, "Prefers evening calls", created.Content)

		note, err := engagement.NewNote(resident.ID, "Prefers evening calls")
		require.NoError(t, err)
		noteRepo.On("FindByID", mock.Anything, note.ID).Return(note, nil)

		updated, err := service.Update(ctx, identity.RoleAdmin, note.ID, UpdateNoteRequest{Content: "Moved to morning calls"})
		require.NoError(t, err)
		assert.Equal(t, "Moved to morning calls", updated.Content)
	})

	t.Run("list maps newest first from the repository", func(t *testing.T) {
		noteRepo := new(MockNoteRepository)
		service := NewNoteService(noteRepo, new(MockResidentRepository), zap.NewNop())

		residentID := uuid.New()
		newer, err := engagement.NewNote(residentID, "newer")
		require.NoError(t, err)
		older, err := engagement.NewNote(residentID, "older")
		require.NoError(t, err)
		noteRepo.On("FindByResident", mock.Anything, residentID).Return([]engagement.Note{*newer, *older}, nil)

		notes, err := service.ListByResident(ctx, residentID)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "newer", notes[0].Content)
	})
}
