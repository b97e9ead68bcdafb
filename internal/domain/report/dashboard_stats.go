package report

import (
	"time"

	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/shopspring/decimal"
)

// DashboardStats is the portfolio-wide roll-up shown on the dashboard
type DashboardStats struct {
	TotalDisbursed   decimal.Decimal `json:"total_disbursed"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	OverdueCount     int             `json:"overdue_count"`
	AdvanceCount     int             `json:"advance_count"`
	OnTimeCount      int             `json:"on_time_count"`
	ActiveCount      int             `json:"active_count"`
	InactiveCount    int             `json:"inactive_count"`
	TotalResidents   int             `json:"total_residents"`
}

// ZeroStats returns a stats record with every field zero-valued. A failed
// portfolio fetch degrades to this rather than an error.
func ZeroStats() DashboardStats {
	return DashboardStats{
		TotalDisbursed:   decimal.Zero,
		TotalCollected:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}
}

// ComputeDashboardStats aggregates the resident list and the full repayment
// set into the dashboard roll-up.
//
// The disbursed total sums the stored per-resident snapshots, not the live
// tranche sums. Residents partition into exactly three repayment buckets:
// on-time is the arithmetic complement of overdue and advance, so an
// unrecognized standing counts as on-time. Active/inactive partition by the
// lease-active rule and are complementary by construction.
func ComputeDashboardStats(residents []portfolio.Resident, repayments []portfolio.Repayment, now time.Time) DashboardStats {
	stats := ZeroStats()
	stats.TotalResidents = len(residents)

	for _, r := range residents {
		stats.TotalDisbursed = stats.TotalDisbursed.Add(r.TotalAdvanceDisbursed)

		switch r.RepaymentStatus {
		case portfolio.RepaymentStandingOverdue:
			stats.OverdueCount++
		case portfolio.RepaymentStandingAdvancePaid:
			stats.AdvanceCount++
		}

		if r.IsLeaseActive(now) {
			stats.ActiveCount++
		}
	}

	stats.OnTimeCount = stats.TotalResidents - stats.OverdueCount - stats.AdvanceCount
	stats.InactiveCount = stats.TotalResidents - stats.ActiveCount

	for _, rp := range repayments {
		if rp.IsCollected() {
			stats.TotalCollected = stats.TotalCollected.Add(rp.AmountPaid)
		}
		if rp.IsOutstanding() {
			stats.TotalOutstanding = stats.TotalOutstanding.Add(rp.RentAmount)
		}
	}

	return stats
}
