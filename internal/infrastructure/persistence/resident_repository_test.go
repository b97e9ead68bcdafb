package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/circlepe/backend/internal/domain/engagement"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
)

func setupResidentTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&portfolio.Property{},
		&portfolio.Resident{},
		&portfolio.Disbursement{},
		&portfolio.Repayment{},
		&engagement.Ticket{},
		&engagement.Comment{},
	)
	require.NoError(t, err)

	return db
}

func newTestResident(t *testing.T, name, email string) *portfolio.Resident {
	t.Helper()
	resident, err := portfolio.NewResident(name, email, "+91 98000 00000", decimal.NewFromInt(25000))
	require.NoError(t, err)
	return resident
}

func TestGormResidentRepository_SaveAndFind(t *testing.T) {
	db := setupResidentTestDB(t)
	repo := NewGormResidentRepository(db)
	ctx := context.Background()

	t.Run("saves and finds by ID", func(t *testing.T) {
		resident := newTestResident(t, "Asha Verma", "asha@example.com")
		require.NoError(t, repo.Save(ctx, resident))

		found, err := repo.FindByID(ctx, resident.ID)
		require.NoError(t, err)
		assert.Equal(t, "Asha Verma", found.Name)
		assert.Equal(t, "asha@example.com", found.Email)
	})

	t.Run("finds by email case-insensitively", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "ASHA@EXAMPLE.COM")
		require.NoError(t, err)
		assert.Equal(t, "Asha Verma", found.Name)
	})

	t.Run("returns ErrNotFound for missing resident", func(t *testing.T) {
		_, err := repo.FindByID(ctx, newTestResident(t, "Nobody", "nobody@example.com").ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("reports existence by email", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "asha@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormResidentRepository_FindAll(t *testing.T) {
	db := setupResidentTestDB(t)
	repo := NewGormResidentRepository(db)
	ctx := context.Background()

	a := newTestResident(t, "Asha Verma", "asha@example.com")
	b := newTestResident(t, "Rahul Nair", "rahul@example.com")
	require.NoError(t, b.SetRepaymentStanding(portfolio.RepaymentStandingOverdue))
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	t.Run("search matches name", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "Rahul"
		residents, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, residents, 1)
		assert.Equal(t, "Rahul Nair", residents[0].Name)
	})

	t.Run("filters by repayment status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"repayment_status": string(portfolio.RepaymentStandingOverdue)}
		residents, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, residents, 1)
		assert.Equal(t, "Rahul Nair", residents[0].Name)
	})

	t.Run("counts with filter", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("rejects unknown sort column", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "password_hash; DROP TABLE residents"
		residents, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, residents, 2)
	})
}

func TestGormResidentRepository_FindStatement(t *testing.T) {
	db := setupResidentTestDB(t)
	residentRepo := NewGormResidentRepository(db)
	propertyRepo := NewGormPropertyRepository(db)
	disbursementRepo := NewGormDisbursementRepository(db)
	repaymentRepo := NewGormRepaymentRepository(db)
	ctx := context.Background()

	property, err := portfolio.NewProperty("Sunrise Heights", "12 MG Road", "Bengaluru", 40)
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Save(ctx, property))

	resident := newTestResident(t, "Asha Verma", "asha@example.com")
	require.NoError(t, resident.AssignProperty(property.ID, "A-201"))
	require.NoError(t, residentRepo.Save(ctx, resident))

	first, err := portfolio.NewDisbursement(resident.ID,
		time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(150000), portfolio.TrancheFirst)
	require.NoError(t, err)
	second, err := portfolio.NewDisbursement(resident.ID,
		time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(100000), portfolio.TrancheSecond)
	require.NoError(t, err)
	require.NoError(t, disbursementRepo.Save(ctx, second))
	require.NoError(t, disbursementRepo.Save(ctx, first))

	repayment, err := portfolio.NewRepayment(resident.ID, "January 2025",
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(25000), portfolio.PaymentModeNACH)
	require.NoError(t, err)
	require.NoError(t, repaymentRepo.Save(ctx, repayment))

	t.Run("loads resident with related records", func(t *testing.T) {
		statement, err := residentRepo.FindStatement(ctx, resident.ID)
		require.NoError(t, err)

		assert.Equal(t, resident.ID, statement.Resident.ID)
		require.NotNil(t, statement.Property)
		assert.Equal(t, "Sunrise Heights", statement.Property.Name)

		require.Len(t, statement.Disbursements, 2)
		assert.True(t, statement.Disbursements[0].Date.Before(statement.Disbursements[1].Date))

		require.Len(t, statement.Repayments, 1)
		assert.True(t, statement.TotalDisbursed().Equal(decimal.NewFromInt(250000)))
	})

	t.Run("statement without property", func(t *testing.T) {
		orphan := newTestResident(t, "Rahul Nair", "rahul@example.com")
		require.NoError(t, residentRepo.Save(ctx, orphan))

		statement, err := residentRepo.FindStatement(ctx, orphan.ID)
		require.NoError(t, err)
		assert.Nil(t, statement.Property)
		assert.Empty(t, statement.Disbursements)
	})

	t.Run("missing resident yields ErrNotFound", func(t *testing.T) {
		ghost := newTestResident(t, "Ghost", "ghost@example.com")
		_, err := residentRepo.FindStatement(ctx, ghost.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormResidentRepository_FindRosterEntries(t *testing.T) {
	db := setupResidentTestDB(t)
	residentRepo := NewGormResidentRepository(db)
	propertyRepo := NewGormPropertyRepository(db)
	ctx := context.Background()

	property, err := portfolio.NewProperty("Sunrise Heights", "12 MG Road", "Bengaluru", 40)
	require.NoError(t, err)
	require.NoError(t, propertyRepo.Save(ctx, property))

	assigned := newTestResident(t, "Asha Verma", "asha@example.com")
	require.NoError(t, assigned.AssignProperty(property.ID, "A-201"))
	unassigned := newTestResident(t, "Rahul Nair", "rahul@example.com")
	require.NoError(t, residentRepo.Save(ctx, assigned))
	require.NoError(t, residentRepo.Save(ctx, unassigned))

	entries, err := residentRepo.FindRosterEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byEmail := make(map[string]portfolio.RosterEntry, len(entries))
	for _, entry := range entries {
		byEmail[entry.Resident.Email] = entry
	}

	assert.Equal(t, "Sunrise Heights", byEmail["asha@example.com"].PropertyName)
	assert.Equal(t, "Bengaluru", byEmail["asha@example.com"].City)
	assert.Empty(t, byEmail["rahul@example.com"].PropertyName)
	assert.Empty(t, byEmail["rahul@example.com"].City)
}

func TestGormResidentRepository_Delete(t *testing.T) {
	db := setupResidentTestDB(t)
	residentRepo := NewGormResidentRepository(db)
	disbursementRepo := NewGormDisbursementRepository(db)
	ctx := context.Background()

	resident := newTestResident(t, "Asha Verma", "asha@example.com")
	require.NoError(t, residentRepo.Save(ctx, resident))

	disbursement, err := portfolio.NewDisbursement(resident.ID,
		time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(150000), portfolio.TrancheFirst)
	require.NoError(t, err)
	require.NoError(t, disbursementRepo.Save(ctx, disbursement))

	t.Run("removes resident and dependents", func(t *testing.T) {
		require.NoError(t, residentRepo.Delete(ctx, resident.ID))

		_, err := residentRepo.FindByID(ctx, resident.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		remaining, err := disbursementRepo.FindByResident(ctx, resident.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("deleting twice yields ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, residentRepo.Delete(ctx, resident.ID), shared.ErrNotFound)
	})
}
