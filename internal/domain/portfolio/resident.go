package portfolio

import (
	"time"

	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DisbursementStatus tracks how much of the advance has been paid out.
// Stored on the resident by operators, not computed from the tranches.
type DisbursementStatus string

const (
	DisbursementStatusFull    DisbursementStatus = "fully_disbursed"
	DisbursementStatusPartial DisbursementStatus = "partial"
)

// RepaymentStanding is the operator-set repayment health of a resident
type RepaymentStanding string

const (
	RepaymentStandingOnTime      RepaymentStanding = "on_time"
	RepaymentStandingOverdue     RepaymentStanding = "overdue"
	RepaymentStandingAdvancePaid RepaymentStanding = "advance_paid"
)

// OccupancyStatus tracks the resident's tenancy lifecycle
type OccupancyStatus string

const (
	OccupancyStatusActive       OccupancyStatus = "active"
	OccupancyStatusMoveOut      OccupancyStatus = "move_out"
	OccupancyStatusEarlyMoveOut OccupancyStatus = "early_move_out"
	OccupancyStatusExtended     OccupancyStatus = "extended"
)

// Resident is the aggregate root for a financed tenancy. It carries the
// lease and financing terms and owns the disbursement and repayment
// collections.
type Resident struct {
	shared.BaseAggregateRoot
	Name                  string             `gorm:"type:varchar(200);not null"`
	Email                 string             `gorm:"type:varchar(200);index"`
	Phone                 string             `gorm:"type:varchar(50);index"`
	PropertyID            *uuid.UUID         `gorm:"type:uuid;index"`
	RoomNumber            string             `gorm:"type:varchar(50)"`
	RelationshipManager   string             `gorm:"type:varchar(100)"`
	RMContact             string             `gorm:"type:varchar(50)"`
	LeaseStartDate        *time.Time         `gorm:"type:date"`
	LeaseEndDate          *time.Time         `gorm:"type:date"`
	LockInMonths          int                `gorm:"not null;default:0"`
	MonthlyRent           decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	SecurityDeposit       decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAdvanceDisbursed decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	DisbursementStatus    DisbursementStatus `gorm:"type:varchar(30);not null;default:'partial'"`
	RepaymentStatus       RepaymentStanding  `gorm:"type:varchar(30);not null;default:'on_time';index"`
	CurrentStatus         OccupancyStatus    `gorm:"type:varchar(30);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Resident) TableName() string {
	return "residents"
}

// NewResident creates a new resident with required fields
func NewResident(name, email, phone string, monthlyRent decimal.Decimal) (*Resident, error) {
	if err := validateResidentName(name); err != nil {
		return nil, err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	if phone != "" {
		if err := validateContactNumber(phone); err != nil {
			return nil, err
		}
	}
	if monthlyRent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent cannot be negative")
	}

	return &Resident{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		Name:                  name,
		Email:                 email,
		Phone:                 phone,
		MonthlyRent:           monthlyRent,
		SecurityDeposit:       decimal.Zero,
		TotalAdvanceDisbursed: decimal.Zero,
		DisbursementStatus:    DisbursementStatusPartial,
		RepaymentStatus:       RepaymentStandingOnTime,
		CurrentStatus:         OccupancyStatusActive,
	}, nil
}

// Update updates the resident's identity and contact information
func (r *Resident) Update(name, email, phone string) error {
	if err := validateResidentName(name); err != nil {
		return err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := validateContactNumber(phone); err != nil {
			return err
		}
	}

	r.Name = name
	r.Email = email
	r.Phone = phone
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// AssignProperty places the resident in a property room
func (r *Resident) AssignProperty(propertyID uuid.UUID, roomNumber string) error {
	if roomNumber != "" && len(roomNumber) > 50 {
		return shared.NewDomainError("INVALID_ROOM", "Room number cannot exceed 50 characters")
	}

	r.PropertyID = &propertyID
	r.RoomNumber = roomNumber
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// ClearProperty detaches the resident from its property
func (r *Resident) ClearProperty() {
	r.PropertyID = nil
	r.RoomNumber = ""
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// SetRelationshipManager sets the RM contact pair
func (r *Resident) SetRelationshipManager(name, contact string) error {
	if name != "" && len(name) > 100 {
		return shared.NewDomainError("INVALID_RM_NAME", "Relationship manager name cannot exceed 100 characters")
	}
	if contact != "" {
		if err := validateContactNumber(contact); err != nil {
			return err
		}
	}

	r.RelationshipManager = name
	r.RMContact = contact
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetLeaseTerms sets lease dates and the lock-in period
func (r *Resident) SetLeaseTerms(start, end *time.Time, lockInMonths int) error {
	if lockInMonths < 0 {
		return shared.NewDomainError("INVALID_LOCK_IN", "Lock-in period cannot be negative")
	}
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_LEASE_DATES", "Lease end date cannot precede start date")
	}

	r.LeaseStartDate = start
	r.LeaseEndDate = end
	r.LockInMonths = lockInMonths
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetFinancials sets rent and deposit amounts
func (r *Resident) SetFinancials(monthlyRent, securityDeposit decimal.Decimal) error {
	if monthlyRent.IsNegative() {
		return shared.NewDomainError("INVALID_RENT", "Monthly rent cannot be negative")
	}
	if securityDeposit.IsNegative() {
		return shared.NewDomainError("INVALID_DEPOSIT", "Security deposit cannot be negative")
	}

	r.MonthlyRent = monthlyRent
	r.SecurityDeposit = securityDeposit
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetAdvanceSnapshot sets the stored total-advance-disbursed figure.
// This is an operator-maintained snapshot and is allowed to diverge from
// the live sum over the disbursement tranches.
func (r *Resident) SetAdvanceSnapshot(total decimal.Decimal, status DisbursementStatus) error {
	if total.IsNegative() {
		return shared.NewDomainError("INVALID_ADVANCE", "Total advance disbursed cannot be negative")
	}
	if err := validateDisbursementStatus(status); err != nil {
		return err
	}

	r.TotalAdvanceDisbursed = total
	r.DisbursementStatus = status
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetRepaymentStanding sets the operator-assessed repayment standing
func (r *Resident) SetRepaymentStanding(standing RepaymentStanding) error {
	if err := validateRepaymentStanding(standing); err != nil {
		return err
	}

	r.RepaymentStatus = standing
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetOccupancyStatus sets the tenancy lifecycle status
func (r *Resident) SetOccupancyStatus(status OccupancyStatus) error {
	if err := validateOccupancyStatus(status); err != nil {
		return err
	}

	r.CurrentStatus = status
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// IsLeaseActive reports whether the lease is active at the given time.
// A resident with no lease end date counts as inactive.
func (r *Resident) IsLeaseActive(now time.Time) bool {
	if r.LeaseEndDate == nil {
		return false
	}
	end := dateOnly(*r.LeaseEndDate)
	return !end.Before(dateOnly(now))
}

// IsOverdue returns true if the stored standing is overdue
func (r *Resident) IsOverdue() bool {
	return r.RepaymentStatus == RepaymentStandingOverdue
}

// HasPaidInAdvance returns true if the stored standing is advance_paid
func (r *Resident) HasPaidInAdvance() bool {
	return r.RepaymentStatus == RepaymentStandingAdvancePaid
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Validation functions

func validateResidentName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Resident name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Resident name cannot exceed 200 characters")
	}
	return nil
}

func validateDisbursementStatus(s DisbursementStatus) error {
	switch s {
	case DisbursementStatusFull, DisbursementStatusPartial:
		return nil
	default:
		return shared.NewDomainError("INVALID_DISBURSEMENT_STATUS", "Disbursement status must be 'fully_disbursed' or 'partial'")
	}
}

func validateRepaymentStanding(s RepaymentStanding) error {
	switch s {
	case RepaymentStandingOnTime, RepaymentStandingOverdue, RepaymentStandingAdvancePaid:
		return nil
	default:
		return shared.NewDomainError("INVALID_REPAYMENT_STATUS", "Repayment status must be 'on_time', 'overdue', or 'advance_paid'")
	}
}

func validateOccupancyStatus(s OccupancyStatus) error {
	switch s {
	case OccupancyStatusActive, OccupancyStatusMoveOut, OccupancyStatusEarlyMoveOut, OccupancyStatusExtended:
		return nil
	default:
		return shared.NewDomainError("INVALID_CURRENT_STATUS", "Invalid occupancy status")
	}
}
