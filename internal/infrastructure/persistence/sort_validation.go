package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns "DESC" if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// columns. Returns defaultField if the input is empty or not allowed.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// PropertySortFields contains allowed sort columns for properties
var PropertySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"city":       true,
	"unit_count": true,
	"status":     true,
}

// ResidentSortFields contains allowed sort columns for residents
var ResidentSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"email":            true,
	"monthly_rent":     true,
	"lease_start_date": true,
	"lease_end_date":   true,
	"repayment_status": true,
	"current_status":   true,
}

// DisbursementSortFields contains allowed sort columns for disbursements
var DisbursementSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"date":       true,
	"amount":     true,
	"type":       true,
}

// RepaymentSortFields contains allowed sort columns for repayments
var RepaymentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"month":       true,
	"due_date":    true,
	"rent_amount": true,
	"status":      true,
}

// TicketSortFields contains allowed sort columns for tickets
var TicketSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"due_date":   true,
	"status":     true,
	"title":      true,
}

// UserSortFields contains allowed sort columns for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"display_name":  true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}
