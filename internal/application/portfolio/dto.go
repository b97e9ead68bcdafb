package portfolio

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/circlepe/backend/internal/domain/portfolio"
)

// =============================================================================
// Property DTOs
// =============================================================================

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=200"`
	Address        string `json:"address" binding:"required,max=500"`
	City           string `json:"city" binding:"required,max=100"`
	UnitCount      int    `json:"unit_count" binding:"min=0"`
	ManagerName    string `json:"manager_name" binding:"max=100"`
	ManagerContact string `json:"manager_contact" binding:"max=50"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address        *string `json:"address" binding:"omitempty,max=500"`
	City           *string `json:"city" binding:"omitempty,max=100"`
	UnitCount      *int    `json:"unit_count" binding:"omitempty,min=0"`
	ManagerName    *string `json:"manager_name" binding:"omitempty,max=100"`
	ManagerContact *string `json:"manager_contact" binding:"omitempty,max=50"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	UnitCount      int       `json:"unit_count"`
	ManagerName    string    `json:"manager_name"`
	ManagerContact string    `json:"manager_contact"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToPropertyResponse maps a domain property to its API shape
func ToPropertyResponse(p *portfolio.Property) PropertyResponse {
	return PropertyResponse{
		ID:             p.ID,
		Name:           p.Name,
		Address:        p.Address,
		City:           p.City,
		UnitCount:      p.UnitCount,
		ManagerName:    p.ManagerName,
		ManagerContact: p.ManagerContact,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// =============================================================================
// Resident DTOs
// =============================================================================

// CreateResidentRequest represents a request to create a resident
type CreateResidentRequest struct {
	Name                string           `json:"name" binding:"required,min=1,max=200"`
	Email               string           `json:"email" binding:"required,email,max=200"`
	Phone               string           `json:"phone" binding:"max=50"`
	MonthlyRent         decimal.Decimal  `json:"monthly_rent" binding:"required"`
	SecurityDeposit     *decimal.Decimal `json:"security_deposit"`
	PropertyID          *uuid.UUID       `json:"property_id"`
	RoomNumber          string           `json:"room_number" binding:"max=50"`
	RelationshipManager string           `json:"relationship_manager" binding:"max=100"`
	RMContact           string           `json:"rm_contact" binding:"max=50"`
	LeaseStartDate      *time.Time       `json:"lease_start_date"`
	LeaseEndDate        *time.Time       `json:"lease_end_date"`
	LockInMonths        int              `json:"lock_in_months" binding:"min=0"`
}

// UpdateResidentRequest represents a request to update a resident
type UpdateResidentRequest struct {
	Name                *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email               *string          `json:"email" binding:"omitempty,email,max=200"`
	Phone               *string          `json:"phone" binding:"omitempty,max=50"`
	MonthlyRent         *decimal.Decimal `json:"monthly_rent"`
	SecurityDeposit     *decimal.Decimal `json:"security_deposit"`
	PropertyID          *uuid.UUID       `json:"property_id"`
	RoomNumber          *string          `json:"room_number" binding:"omitempty,max=50"`
	RelationshipManager *string          `json:"relationship_manager" binding:"omitempty,max=100"`
	RMContact           *string          `json:"rm_contact" binding:"omitempty,max=50"`
	LeaseStartDate      *time.Time       `json:"lease_start_date"`
	LeaseEndDate        *time.Time       `json:"lease_end_date"`
	LockInMonths        *int             `json:"lock_in_months" binding:"omitempty,min=0"`
	CurrentStatus       *string          `json:"current_status" binding:"omitempty,oneof=active move_out early_move_out extended"`
}

// ResidentResponse represents a resident in API responses
type ResidentResponse struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	Email                 string          `json:"email"`
	Phone                 string          `json:"phone"`
	PropertyID            *uuid.UUID      `json:"property_id,omitempty"`
	PropertyName          string          `json:"property_name,omitempty"`
	City                  string          `json:"city,omitempty"`
	RoomNumber            string          `json:"room_number"`
	RelationshipManager   string          `json:"relationship_manager"`
	RMContact             string          `json:"rm_contact"`
	LeaseStartDate        *time.Time      `json:"lease_start_date,omitempty"`
	LeaseEndDate          *time.Time      `json:"lease_end_date,omitempty"`
	LockInMonths          int             `json:"lock_in_months"`
	MonthlyRent           decimal.Decimal `json:"monthly_rent"`
	SecurityDeposit       decimal.Decimal `json:"security_deposit"`
	TotalAdvanceDisbursed decimal.Decimal `json:"total_advance_disbursed"`
	DisbursementStatus    string          `json:"disbursement_status"`
	RepaymentStatus       string          `json:"repayment_status"`
	CurrentStatus         string          `json:"current_status"`
	LeaseActive           bool            `json:"lease_active"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ToResidentResponse maps a domain resident to its API shape
func ToResidentResponse(r *portfolio.Resident) ResidentResponse {
	return ResidentResponse{
		ID:                    r.ID,
		Name:                  r.Name,
		Email:                 r.Email,
		Phone:                 r.Phone,
		PropertyID:            r.PropertyID,
		RoomNumber:            r.RoomNumber,
		RelationshipManager:   r.RelationshipManager,
		RMContact:             r.RMContact,
		LeaseStartDate:        r.LeaseStartDate,
		LeaseEndDate:          r.LeaseEndDate,
		LockInMonths:          r.LockInMonths,
		MonthlyRent:           r.MonthlyRent,
		SecurityDeposit:       r.SecurityDeposit,
		TotalAdvanceDisbursed: r.TotalAdvanceDisbursed,
		DisbursementStatus:    string(r.DisbursementStatus),
		RepaymentStatus:       string(r.RepaymentStatus),
		CurrentStatus:         string(r.CurrentStatus),
		LeaseActive:           r.IsLeaseActive(time.Now()),
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

// ToRosterResidentResponse maps a roster entry, including its property
// projection, to the resident API shape
func ToRosterResidentResponse(entry portfolio.RosterEntry) ResidentResponse {
	response := ToResidentResponse(&entry.Resident)
	response.PropertyName = entry.PropertyName
	response.City = entry.City
	return response
}

// =============================================================================
// Roster DTOs
// =============================================================================

// RosterRequest carries roster filter, sort and pagination parameters
type RosterRequest struct {
	Search          string `form:"search" binding:"max=200"`
	City            string `form:"city" binding:"max=100"`
	PropertyName    string `form:"property_name" binding:"max=200"`
	RepaymentStatus string `form:"repayment_status" binding:"omitempty,oneof=on_time overdue advance_paid"`
	SortBy          string `form:"sort_by" binding:"omitempty,oneof=name monthly_rent lease_start_date lease_end_date repayment_status"`
	SortDir         string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size"`
}

// RosterResponse is one page of the resident roster
type RosterResponse struct {
	Entries  []ResidentResponse `json:"entries"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// =============================================================================
// Disbursement DTOs
// =============================================================================

// CreateDisbursementRequest represents a request to record a tranche
type CreateDisbursementRequest struct {
	ResidentID uuid.UUID       `json:"resident_id"`
	Date       time.Time       `json:"date" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	UTRNumber  string          `json:"utr_number" binding:"max=100"`
	Type       string          `json:"type" binding:"required,oneof='1st Tranche' '2nd Tranche' Final"`
}

// UpdateDisbursementRequest represents a request to update a tranche
type UpdateDisbursementRequest struct {
	Date      *time.Time       `json:"date"`
	Amount    *decimal.Decimal `json:"amount"`
	UTRNumber *string          `json:"utr_number" binding:"omitempty,max=100"`
	Type      *string          `json:"type" binding:"omitempty,oneof='1st Tranche' '2nd Tranche' Final"`
}

// DisbursementResponse represents a tranche in API responses
type DisbursementResponse struct {
	ID         uuid.UUID       `json:"id"`
	ResidentID uuid.UUID       `json:"resident_id"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	UTRNumber  string          `json:"utr_number"`
	Type       string          `json:"type"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToDisbursementResponse maps a domain disbursement to its API shape
func ToDisbursementResponse(d *portfolio.Disbursement) DisbursementResponse {
	return DisbursementResponse{
		ID:         d.ID,
		ResidentID: d.ResidentID,
		Date:       d.Date,
		Amount:     d.Amount,
		UTRNumber:  d.UTRNumber,
		Type:       string(d.Type),
		CreatedAt:  d.CreatedAt,
	}
}

// =============================================================================
// Repayment DTOs
// =============================================================================

// CreateRepaymentRequest represents a request to add a schedule row
type CreateRepaymentRequest struct {
	ResidentID  uuid.UUID       `json:"resident_id"`
	Month       string          `json:"month" binding:"required,max=50"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
	RentAmount  decimal.Decimal `json:"rent_amount" binding:"required"`
	PaymentMode string          `json:"payment_mode" binding:"required,oneof=Manual NACH"`
}

// UpdateRepaymentRequest represents a request to update a schedule row
type UpdateRepaymentRequest struct {
	Month       *string          `json:"month" binding:"omitempty,max=50"`
	DueDate     *time.Time       `json:"due_date"`
	RentAmount  *decimal.Decimal `json:"rent_amount"`
	PaymentMode *string          `json:"payment_mode" binding:"omitempty,oneof=Manual NACH"`
}

// TransitionRepaymentRequest moves a schedule row to a new payment status
type TransitionRepaymentRequest struct {
	Status            string           `json:"status" binding:"required,oneof=pending paid failed advance"`
	AmountPaid        *decimal.Decimal `json:"amount_paid"`
	ActualPaymentDate *time.Time       `json:"actual_payment_date"`
}

// RepaymentResponse represents a schedule row in API responses
type RepaymentResponse struct {
	ID                uuid.UUID       `json:"id"`
	ResidentID        uuid.UUID       `json:"resident_id"`
	Month             string          `json:"month"`
	DueDate           time.Time       `json:"due_date"`
	RentAmount        decimal.Decimal `json:"rent_amount"`
	PaymentMode       string          `json:"payment_mode"`
	Status            string          `json:"status"`
	ActualPaymentDate *time.Time      `json:"actual_payment_date,omitempty"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToRepaymentResponse maps a domain repayment to its API shape
func ToRepaymentResponse(r *portfolio.Repayment) RepaymentResponse {
	return RepaymentResponse{
		ID:                r.ID,
		ResidentID:        r.ResidentID,
		Month:             r.Month,
		DueDate:           r.DueDate,
		RentAmount:        r.RentAmount,
		PaymentMode:       string(r.PaymentMode),
		Status:            string(r.Status),
		ActualPaymentDate: r.ActualPaymentDate,
		AmountPaid:        r.AmountPaid,
		CreatedAt:         r.CreatedAt,
	}
}

// =============================================================================
// Statement DTOs
// =============================================================================

// StatementResponse is the relational statement of account for a resident
type StatementResponse struct {
	Resident      ResidentResponse       `json:"resident"`
	Property      *PropertyResponse      `json:"property,omitempty"`
	Disbursements []DisbursementResponse `json:"disbursements"`
	Repayments    []RepaymentResponse    `json:"repayments"`
	Totals        StatementTotals        `json:"totals"`
}

// StatementTotals carries the statement roll-up figures
type StatementTotals struct {
	TotalDisbursed         decimal.Decimal `json:"total_disbursed"`
	StoredTotalDisbursed   decimal.Decimal `json:"stored_total_disbursed"`
	TotalCollected         decimal.Decimal `json:"total_collected"`
	TotalOutstanding       decimal.Decimal `json:"total_outstanding"`
	PendingVsPackage       decimal.Decimal `json:"pending_vs_package"`
	OutstandingVsCollected decimal.Decimal `json:"outstanding_vs_collected"`
	DisbursedVsCollected   decimal.Decimal `json:"disbursed_vs_collected"`
}

// ToStatementResponse maps a domain statement to its API shape
func ToStatementResponse(s *portfolio.StatementOfAccount) StatementResponse {
	response := StatementResponse{
		Resident:      ToResidentResponse(&s.Resident),
		Disbursements: make([]DisbursementResponse, len(s.Disbursements)),
		Repayments:    make([]RepaymentResponse, len(s.Repayments)),
		Totals: StatementTotals{
			TotalDisbursed:         s.TotalDisbursed(),
			StoredTotalDisbursed:   s.StoredTotalDisbursed(),
			TotalCollected:         s.TotalCollected(),
			TotalOutstanding:       s.TotalOutstanding(),
			PendingVsPackage:       s.PendingVsPackage(),
			OutstandingVsCollected: s.OutstandingVsCollected(),
			DisbursedVsCollected:   s.DisbursedVsCollected(),
		},
	}
	if s.Property != nil {
		property := ToPropertyResponse(s.Property)
		response.Property = &property
		response.Resident.PropertyName = s.Property.Name
		response.Resident.City = s.Property.City
	}
	for i := range s.Disbursements {
		response.Disbursements[i] = ToDisbursementResponse(&s.Disbursements[i])
	}
	for i := range s.Repayments {
		response.Repayments[i] = ToRepaymentResponse(&s.Repayments[i])
	}
	return response
}

// =============================================================================
// Document DTOs
// =============================================================================

// DocumentResponse describes a stored resident document
type DocumentResponse struct {
	Key         string    `json:"key"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// DocumentURLResponse carries a presigned download URL
type DocumentURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
