package portfolio

import (
	"github.com/shopspring/decimal"
)

// StatementOfAccount is the derived ledger view for one resident: the
// resident joined with its property and both child collections.
//
// Two representations of the disbursed total coexist. The stored snapshot
// on the resident is operator-maintained and the live sum is computed from
// the tranches; they are allowed to diverge and neither is reconciled to
// the other.
type StatementOfAccount struct {
	Resident      Resident
	Property      *Property
	Disbursements []Disbursement
	Repayments    []Repayment
}

// TotalDisbursed returns the live sum over all disbursement tranches
func (s *StatementOfAccount) TotalDisbursed() decimal.Decimal {
	total := decimal.Zero
	for _, d := range s.Disbursements {
		total = total.Add(d.Amount)
	}
	return total
}

// StoredTotalDisbursed returns the snapshot figure stored on the resident
func (s *StatementOfAccount) StoredTotalDisbursed() decimal.Decimal {
	return s.Resident.TotalAdvanceDisbursed
}

// TotalCollected returns the sum of amounts received over repayments in a
// collected state (paid or advance)
func (s *StatementOfAccount) TotalCollected() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Repayments {
		if r.IsCollected() {
			total = total.Add(r.AmountPaid)
		}
	}
	return total
}

// TotalOutstanding returns the sum of rent amounts over repayments still
// pending or failed
func (s *StatementOfAccount) TotalOutstanding() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Repayments {
		if r.IsOutstanding() {
			total = total.Add(r.RentAmount)
		}
	}
	return total
}

// PendingVsPackage returns the package amount minus the live disbursed sum.
// The monthly rent stands in for the package figure.
func (s *StatementOfAccount) PendingVsPackage() decimal.Decimal {
	return s.Resident.MonthlyRent.Sub(s.TotalDisbursed())
}

// OutstandingVsCollected returns the stored disbursed snapshot minus the
// collected sum
func (s *StatementOfAccount) OutstandingVsCollected() decimal.Decimal {
	return s.StoredTotalDisbursed().Sub(s.TotalCollected())
}

// DisbursedVsCollected returns the live disbursed sum minus the collected sum
func (s *StatementOfAccount) DisbursedVsCollected() decimal.Decimal {
	return s.TotalDisbursed().Sub(s.TotalCollected())
}
