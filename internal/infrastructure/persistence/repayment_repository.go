package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
)

// GormRepaymentRepository implements RepaymentRepository using GORM
type GormRepaymentRepository struct {
	db *gorm.DB
}

// NewGormRepaymentRepository creates a new GormRepaymentRepository
func NewGormRepaymentRepository(db *gorm.DB) *GormRepaymentRepository {
	return &GormRepaymentRepository{db: db}
}

// FindByID finds a repayment by its ID
func (r *GormRepaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Repayment, error) {
	var repayment portfolio.Repayment
	if err := r.db.WithContext(ctx).First(&repayment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &repayment, nil
}

// FindByResident finds all repayments for a resident, earliest due first
func (r *GormRepaymentRepository) FindByResident(ctx context.Context, residentID uuid.UUID) ([]portfolio.Repayment, error) {
	var repayments []portfolio.Repayment
	err := r.db.WithContext(ctx).
		Where("resident_id = ?", residentID).
		Order("due_date ASC, created_at ASC").
		Find(&repayments).Error
	if err != nil {
		return nil, err
	}
	return repayments, nil
}

// FindAll finds all repayments matching the filter
func (r *GormRepaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Repayment, error) {
	var repayments []portfolio.Repayment
	query := r.db.WithContext(ctx).Model(&portfolio.Repayment{})

	for key, value := range filter.Filters {
		switch key {
		case "resident_id":
			query = query.Where("resident_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "payment_mode":
			query = query.Where("payment_mode = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, RepaymentSortFields, "due_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&repayments).Error; err != nil {
		return nil, err
	}
	return repayments, nil
}

// ListAll loads every repayment. Used by the dashboard roll-up.
func (r *GormRepaymentRepository) ListAll(ctx context.Context) ([]portfolio.Repayment, error) {
	var repayments []portfolio.Repayment
	if err := r.db.WithContext(ctx).Find(&repayments).Error; err != nil {
		return nil, err
	}
	return repayments, nil
}

// Save creates or updates a repayment
func (r *GormRepaymentRepository) Save(ctx context.Context, repayment *portfolio.Repayment) error {
	return r.db.WithContext(ctx).Save(repayment).Error
}

// Delete deletes a repayment
func (r *GormRepaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&portfolio.Repayment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts repayments matching the filter
func (r *GormRepaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&portfolio.Repayment{})
	for key, value := range filter.Filters {
		switch key {
		case "resident_id":
			query = query.Where("resident_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ portfolio.RepaymentRepository = (*GormRepaymentRepository)(nil)
