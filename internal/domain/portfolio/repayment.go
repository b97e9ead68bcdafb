package portfolio

import (
	"time"

	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMode is how a repayment is collected
type PaymentMode string

const (
	PaymentModeManual PaymentMode = "Manual"
	PaymentModeNACH   PaymentMode = "NACH"
)

// PaymentStatus is the settlement state of a single repayment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusAdvance PaymentStatus = "advance"
)

// Repayment is one expected billing period in a resident's rent schedule
type Repayment struct {
	shared.BaseAggregateRoot
	ResidentID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Month             string          `gorm:"type:varchar(50);not null"`
	DueDate           time.Time       `gorm:"type:date;not null"`
	RentAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMode       PaymentMode     `gorm:"type:varchar(20);not null;default:'Manual'"`
	Status            PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
	ActualPaymentDate *time.Time      `gorm:"type:date"`
	AmountPaid        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Repayment) TableName() string {
	return "repayments"
}

// NewRepayment creates a new scheduled repayment for a resident
func NewRepayment(residentID uuid.UUID, month string, dueDate time.Time, rentAmount decimal.Decimal, mode PaymentMode) (*Repayment, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Repayment must reference a resident")
	}
	if month == "" {
		return nil, shared.NewDomainError("INVALID_MONTH", "Repayment month label cannot be empty")
	}
	if rentAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Rent amount cannot be negative")
	}
	if err := validatePaymentMode(mode); err != nil {
		return nil, err
	}

	return &Repayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ResidentID:        residentID,
		Month:             month,
		DueDate:           dueDate,
		RentAmount:        rentAmount,
		PaymentMode:       mode,
		Status:            PaymentStatusPending,
		AmountPaid:        decimal.Zero,
	}, nil
}

// Update edits the schedule entry
func (r *Repayment) Update(month string, dueDate time.Time, rentAmount decimal.Decimal, mode PaymentMode) error {
	if month == "" {
		return shared.NewDomainError("INVALID_MONTH", "Repayment month label cannot be empty")
	}
	if rentAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Rent amount cannot be negative")
	}
	if err := validatePaymentMode(mode); err != nil {
		return err
	}

	r.Month = month
	r.DueDate = dueDate
	r.RentAmount = rentAmount
	r.PaymentMode = mode
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// TransitionStatus moves the repayment to a new settlement state, recording
// the amount received and when it was received
func (r *Repayment) TransitionStatus(status PaymentStatus, amountPaid decimal.Decimal, actualPaymentDate *time.Time) error {
	if err := validatePaymentStatus(status); err != nil {
		return err
	}
	if amountPaid.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount paid cannot be negative")
	}

	r.Status = status
	r.AmountPaid = amountPaid
	r.ActualPaymentDate = actualPaymentDate
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// MarkPaid marks the repayment as settled for the given amount on the given date
func (r *Repayment) MarkPaid(amountPaid decimal.Decimal, paidOn time.Time) error {
	return r.TransitionStatus(PaymentStatusPaid, amountPaid, &paidOn)
}

// MarkFailed marks the collection attempt as failed
func (r *Repayment) MarkFailed() error {
	return r.TransitionStatus(PaymentStatusFailed, r.AmountPaid, r.ActualPaymentDate)
}

// MarkAdvance marks the repayment as paid ahead of schedule
func (r *Repayment) MarkAdvance(amountPaid decimal.Decimal, paidOn time.Time) error {
	return r.TransitionStatus(PaymentStatusAdvance, amountPaid, &paidOn)
}

// IsCollected reports whether the repayment counts toward collected totals
func (r *Repayment) IsCollected() bool {
	return r.Status == PaymentStatusPaid || r.Status == PaymentStatusAdvance
}

// IsOutstanding reports whether the repayment counts toward outstanding totals
func (r *Repayment) IsOutstanding() bool {
	return r.Status == PaymentStatusPending || r.Status == PaymentStatusFailed
}

func validatePaymentMode(m PaymentMode) error {
	switch m {
	case PaymentModeManual, PaymentModeNACH:
		return nil
	default:
		return shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode must be 'Manual' or 'NACH'")
	}
}

func validatePaymentStatus(s PaymentStatus) error {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusAdvance:
		return nil
	default:
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Payment status must be 'pending', 'paid', 'failed', or 'advance'")
	}
}
