package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
)

// GormDisbursementRepository implements DisbursementRepository using GORM
type GormDisbursementRepository struct {
	db *gorm.DB
}

// NewGormDisbursementRepository creates a new GormDisbursementRepository
func NewGormDisbursementRepository(db *gorm.DB) *GormDisbursementRepository {
	return &GormDisbursementRepository{db: db}
}

// FindByID finds a disbursement by its ID
func (r *GormDisbursementRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Disbursement, error) {
	var disbursement portfolio.Disbursement
	if err := r.db.WithContext(ctx).First(&disbursement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &disbursement, nil
}

// FindByResident finds all disbursements for a resident, oldest first
func (r *GormDisbursementRepository) FindByResident(ctx context.Context, residentID uuid.UUID) ([]portfolio.Disbursement, error) {
	var disbursements []portfolio.Disbursement
	err := r.db.WithContext(ctx).
		Where("resident_id = ?", residentID).
		Order("date ASC, created_at ASC").
		Find(&disbursements).Error
	if err != nil {
		return nil, err
	}
	return disbursements, nil
}

// FindAll finds all disbursements matching the filter
func (r *GormDisbursementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Disbursement, error) {
	var disbursements []portfolio.Disbursement
	query := r.db.WithContext(ctx).Model(&portfolio.Disbursement{})

	for key, value := range filter.Filters {
		switch key {
		case "resident_id":
			query = query.Where("resident_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, DisbursementSortFields, "date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&disbursements).Error; err != nil {
		return nil, err
	}
	return disbursements, nil
}

// Save creates or updates a disbursement
func (r *GormDisbursementRepository) Save(ctx context.Context, disbursement *portfolio.Disbursement) error {
	return r.db.WithContext(ctx).Save(disbursement).Error
}

// Delete deletes a disbursement
func (r *GormDisbursementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&portfolio.Disbursement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts disbursements matching the filter
func (r *GormDisbursementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&portfolio.Disbursement{})
	for key, value := range filter.Filters {
		switch key {
		case "resident_id":
			query = query.Where("resident_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		}
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ portfolio.DisbursementRepository = (*GormDisbursementRepository)(nil)
