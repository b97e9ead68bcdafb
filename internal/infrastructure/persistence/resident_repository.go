package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/circlepe/backend/internal/domain/engagement"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
)

// GormResidentRepository implements ResidentRepository using GORM
type GormResidentRepository struct {
	db *gorm.DB
}

// NewGormResidentRepository creates a new GormResidentRepository
func NewGormResidentRepository(db *gorm.DB) *GormResidentRepository {
	return &GormResidentRepository{db: db}
}

// FindByID finds a resident by its ID
func (r *GormResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Resident, error) {
	var resident portfolio.Resident
	if err := r.db.WithContext(ctx).First(&resident, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &resident, nil
}

// FindByEmail finds a resident by email
func (r *GormResidentRepository) FindByEmail(ctx context.Context, email string) (*portfolio.Resident, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var resident portfolio.Resident
	if err := r.db.WithContext(ctx).
		First(&resident, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &resident, nil
}

// FindAll finds all residents matching the filter
func (r *GormResidentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Resident, error) {
	var residents []portfolio.Resident
	query := r.applyFilter(r.db.WithContext(ctx).Model(&portfolio.Resident{}), filter)
	if err := query.Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// FindStatement loads a resident together with its property, disbursement
// tranches and repayment schedule.
func (r *GormResidentRepository) FindStatement(ctx context.Context, id uuid.UUID) (*portfolio.StatementOfAccount, error) {
	var resident portfolio.Resident
	if err := r.db.WithContext(ctx).First(&resident, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	statement := &portfolio.StatementOfAccount{Resident: resident}

	if resident.PropertyID != nil {
		var property portfolio.Property
		err := r.db.WithContext(ctx).First(&property, "id = ?", *resident.PropertyID).Error
		if err == nil {
			statement.Property = &property
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := r.db.WithContext(ctx).
		Where("resident_id = ?", id).
		Order("date ASC, created_at ASC").
		Find(&statement.Disbursements).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("resident_id = ?", id).
		Order("due_date ASC, created_at ASC").
		Find(&statement.Repayments).Error; err != nil {
		return nil, err
	}

	return statement, nil
}

// FindRosterEntries loads every resident with its property name and city
// for in-memory roster filtering.
func (r *GormResidentRepository) FindRosterEntries(ctx context.Context) ([]portfolio.RosterEntry, error) {
	var residents []portfolio.Resident
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&residents).Error; err != nil {
		return nil, err
	}

	propertyIDs := make([]uuid.UUID, 0, len(residents))
	seen := make(map[uuid.UUID]bool, len(residents))
	for _, resident := range residents {
		if resident.PropertyID != nil && !seen[*resident.PropertyID] {
			seen[*resident.PropertyID] = true
			propertyIDs = append(propertyIDs, *resident.PropertyID)
		}
	}

	properties := make(map[uuid.UUID]portfolio.Property, len(propertyIDs))
	if len(propertyIDs) > 0 {
		var rows []portfolio.Property
		if err := r.db.WithContext(ctx).
			Where("id IN ?", propertyIDs).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, property := range rows {
			properties[property.ID] = property
		}
	}

	entries := make([]portfolio.RosterEntry, len(residents))
	for i, resident := range residents {
		entry := portfolio.RosterEntry{Resident: resident}
		if resident.PropertyID != nil {
			if property, ok := properties[*resident.PropertyID]; ok {
				entry.PropertyName = property.Name
				entry.City = property.City
			}
		}
		entries[i] = entry
	}
	return entries, nil
}

// FindByProperty finds all residents assigned to a property
func (r *GormResidentRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]portfolio.Resident, error) {
	var residents []portfolio.Resident
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&portfolio.Resident{}).Where("property_id = ?", propertyID),
		filter,
	)
	if err := query.Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// Save creates or updates a resident
func (r *GormResidentRepository) Save(ctx context.Context, resident *portfolio.Resident) error {
	return r.db.WithContext(ctx).Save(resident).Error
}

// Delete deletes a resident and its dependent records
func (r *GormResidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&portfolio.Disbursement{}, "resident_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&portfolio.Repayment{}, "resident_id = ?", id).Error; err != nil {
			return err
		}
		// Ticket comments cascade from tickets, notes cascade from the
		// resident; tickets themselves carry no cascade and must go first.
		if err := tx.Delete(&engagement.Ticket{}, "resident_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&portfolio.Resident{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts residents matching the filter
func (r *GormResidentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&portfolio.Resident{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByEmail checks whether a resident with the given email exists
func (r *GormResidentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&portfolio.Resident{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormResidentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ResidentSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormResidentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "property_id":
			query = query.Where("property_id = ?", value)
		case "repayment_status":
			query = query.Where("repayment_status = ?", value)
		case "current_status":
			query = query.Where("current_status = ?", value)
		case "disbursement_status":
			query = query.Where("disbursement_status = ?", value)
		}
	}

	return query
}

var _ portfolio.ResidentRepository = (*GormResidentRepository)(nil)
