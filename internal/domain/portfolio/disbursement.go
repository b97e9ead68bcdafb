package portfolio

import (
	"time"

	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrancheType labels which installment of the advance a disbursement is
type TrancheType string

const (
	TrancheFirst  TrancheType = "1st Tranche"
	TrancheSecond TrancheType = "2nd Tranche"
	TrancheFinal  TrancheType = "Final"
)

// Disbursement is one advance installment paid out for a resident
type Disbursement struct {
	shared.BaseAggregateRoot
	ResidentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date       time.Time       `gorm:"type:date;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UTRNumber  string          `gorm:"type:varchar(50)"`
	Type       TrancheType     `gorm:"type:varchar(30);not null"`
}

// TableName returns the table name for GORM
func (Disbursement) TableName() string {
	return "disbursements"
}

// NewDisbursement creates a new disbursement tranche for a resident
func NewDisbursement(residentID uuid.UUID, date time.Time, amount decimal.Decimal, trancheType TrancheType) (*Disbursement, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Disbursement must reference a resident")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Disbursement amount cannot be negative")
	}
	if err := validateTrancheType(trancheType); err != nil {
		return nil, err
	}

	return &Disbursement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ResidentID:        residentID,
		Date:              date,
		Amount:            amount,
		Type:              trancheType,
	}, nil
}

// Update edits the tranche details
func (d *Disbursement) Update(date time.Time, amount decimal.Decimal, trancheType TrancheType) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Disbursement amount cannot be negative")
	}
	if err := validateTrancheType(trancheType); err != nil {
		return err
	}

	d.Date = date
	d.Amount = amount
	d.Type = trancheType
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetUTRNumber records the bank settlement reference for the transfer
func (d *Disbursement) SetUTRNumber(utr string) error {
	if len(utr) > 50 {
		return shared.NewDomainError("INVALID_UTR", "UTR number cannot exceed 50 characters")
	}

	d.UTRNumber = utr
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

func validateTrancheType(t TrancheType) error {
	switch t {
	case TrancheFirst, TrancheSecond, TrancheFinal:
		return nil
	default:
		return shared.NewDomainError("INVALID_TRANCHE_TYPE", "Tranche type must be '1st Tranche', '2nd Tranche', or 'Final'")
	}
}
