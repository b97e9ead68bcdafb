package portfolio

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField identifies a sortable roster column
type SortField string

const (
	SortByName            SortField = "name"
	SortByMonthlyRent     SortField = "monthly_rent"
	SortByLeaseStartDate  SortField = "lease_start_date"
	SortByLeaseEndDate    SortField = "lease_end_date"
	SortByRepaymentStatus SortField = "repayment_status"
)

// SortDirection is the active sort direction
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// RosterPageSizes are the page sizes the roster offers
var RosterPageSizes = []int{25, 50, 100, 200, 500}

// DefaultRosterPageSize is used when the requested size is not offered
const DefaultRosterPageSize = 25

// RosterEntry is one resident row enriched with the property attributes the
// roster filters on
type RosterEntry struct {
	Resident     Resident
	PropertyName string
	City         string
}

// RosterQuery is the filter/sort/pagination state for the resident roster.
// Filters are individually optional and conjunctive; an unset filter means
// no constraint.
type RosterQuery struct {
	Search          string
	City            string
	PropertyName    string
	RepaymentStatus RepaymentStanding
	SortField       SortField
	SortDir         SortDirection
	Page            int
	PageSize        int
}

// NewRosterQuery returns an unconstrained query sorted by name ascending
func NewRosterQuery() RosterQuery {
	return RosterQuery{
		SortField: SortByName,
		SortDir:   SortAsc,
		Page:      1,
		PageSize:  DefaultRosterPageSize,
	}
}

// Toggle selects a sort field. Selecting the active field flips the
// direction; selecting a new field resets to ascending.
func (q RosterQuery) Toggle(field SortField) RosterQuery {
	if q.SortField == field {
		if q.SortDir == SortAsc {
			q.SortDir = SortDesc
		} else {
			q.SortDir = SortAsc
		}
		return q
	}
	q.SortField = field
	q.SortDir = SortAsc
	return q
}

// WithPage moves to the given 1-indexed page
func (q RosterQuery) WithPage(page int) RosterQuery {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}

// WithPageSize selects a page size and resets to the first page. Sizes
// outside the offered set fall back to the default.
func (q RosterQuery) WithPageSize(size int) RosterQuery {
	q.PageSize = DefaultRosterPageSize
	for _, s := range RosterPageSizes {
		if s == size {
			q.PageSize = size
			break
		}
	}
	q.Page = 1
	return q
}

// RosterPage is one rendered slice of the roster
type RosterPage struct {
	Entries  []RosterEntry
	Total    int
	Page     int
	PageSize int
}

// Apply filters, sorts, and paginates the entries. The input slice is not
// modified. With no filters set the full list passes through in input
// order before sorting.
func (q RosterQuery) Apply(entries []RosterEntry) RosterPage {
	filtered := make([]RosterEntry, 0, len(entries))
	for _, e := range entries {
		if q.matches(e) {
			filtered = append(filtered, e)
		}
	}

	q.sortEntries(filtered)

	total := len(filtered)
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultRosterPageSize
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return RosterPage{
		Entries:  filtered[start:end],
		Total:    total,
		Page:     page,
		PageSize: size,
	}
}

func (q RosterQuery) matches(e RosterEntry) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(e.Resident.Name), needle) &&
			!strings.Contains(strings.ToLower(e.Resident.ID.String()), needle) &&
			!strings.Contains(strings.ToLower(e.PropertyName), needle) {
			return false
		}
	}
	if q.City != "" && e.City != q.City {
		return false
	}
	if q.PropertyName != "" && e.PropertyName != q.PropertyName {
		return false
	}
	if q.RepaymentStatus != "" && e.Resident.RepaymentStatus != q.RepaymentStatus {
		return false
	}
	return true
}

func (q RosterQuery) sortEntries(entries []RosterEntry) {
	var less func(a, b RosterEntry) bool

	switch q.SortField {
	case SortByMonthlyRent:
		less = func(a, b RosterEntry) bool {
			return a.Resident.MonthlyRent.LessThan(b.Resident.MonthlyRent)
		}
	case SortByLeaseStartDate:
		less = func(a, b RosterEntry) bool {
			return sortableDate(a.Resident.LeaseStartDate).Before(sortableDate(b.Resident.LeaseStartDate))
		}
	case SortByLeaseEndDate:
		less = func(a, b RosterEntry) bool {
			return sortableDate(a.Resident.LeaseEndDate).Before(sortableDate(b.Resident.LeaseEndDate))
		}
	case SortByRepaymentStatus:
		less = func(a, b RosterEntry) bool {
			return a.Resident.RepaymentStatus < b.Resident.RepaymentStatus
		}
	case SortByName:
		fallthrough
	default:
		coll := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b RosterEntry) bool {
			return coll.CompareString(a.Resident.Name, b.Resident.Name) < 0
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if q.SortDir == SortDesc {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
}

// sortableDate treats a missing date as the epoch so the comparator stays
// total over rows with absent leases
func sortableDate(t *time.Time) time.Time {
	if t == nil {
		return time.Unix(0, 0).UTC()
	}
	return *t
}
