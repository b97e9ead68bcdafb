package portfolio

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/circlepe/backend/internal/infrastructure/cache"
)

// rosterCacheTTL bounds staleness of the roster snapshot when an
// invalidation is missed.
const rosterCacheTTL = 5 * time.Minute

// ResidentService handles resident lifecycle, roster and statement operations
type ResidentService struct {
	residentRepo portfolio.ResidentRepository
	propertyRepo portfolio.PropertyRepository
	queryCache   cache.QueryCache
	logger       *zap.Logger
}

// NewResidentService creates a new ResidentService
func NewResidentService(
	residentRepo portfolio.ResidentRepository,
	propertyRepo portfolio.PropertyRepository,
	queryCache cache.QueryCache,
	logger *zap.Logger,
) *ResidentService {
	return &ResidentService{
		residentRepo: residentRepo,
		propertyRepo: propertyRepo,
		queryCache:   queryCache,
		logger:       logger,
	}
}

// Create creates a new resident. Admin only.
func (s *ResidentService) Create(ctx context.Context, actor identity.Role, req CreateResidentRequest) (*ResidentResponse, error) {
	if !actor.CanCreateResident() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.residentRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Resident with this email already exists")
	}

	resident, err := portfolio.NewResident(req.Name, req.Email, req.Phone, req.MonthlyRent)
	if err != nil {
		return nil, err
	}

	if req.PropertyID != nil {
		if _, err := s.propertyRepo.FindByID(ctx, *req.PropertyID); err != nil {
			return nil, err
		}
		if err := resident.AssignProperty(*req.PropertyID, req.RoomNumber); err != nil {
			return nil, err
		}
	}
	if req.RelationshipManager != "" || req.RMContact != "" {
		if err := resident.SetRelationshipManager(req.RelationshipManager, req.RMContact); err != nil {
			return nil, err
		}
	}
	if req.LeaseStartDate != nil || req.LeaseEndDate != nil || req.LockInMonths > 0 {
		if err := resident.SetLeaseTerms(req.LeaseStartDate, req.LeaseEndDate, req.LockInMonths); err != nil {
			return nil, err
		}
	}
	if req.SecurityDeposit != nil {
		if err := resident.SetFinancials(req.MonthlyRent, *req.SecurityDeposit); err != nil {
			return nil, err
		}
	}

	if err := s.residentRepo.Save(ctx, resident); err != nil {
		return nil, err
	}
	s.invalidateRollups(ctx)

	s.logger.Info("Resident created",
		zap.String("resident_id", resident.ID.String()),
		zap.String("email", resident.Email))

	response := ToResidentResponse(resident)
	return &response, nil
}

// Update updates a resident. Admin only. A property_id equal to the nil
// UUID detaches the resident from its property.
func (s *ResidentService) Update(ctx context.Context, actor identity.Role, id uuid.UUID, req UpdateResidentRequest) (*ResidentResponse, error) {
	if !actor.CanEditResident() {
		return nil, shared.ErrForbidden
	}

	resident, err := s.residentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := resident.Name
	if req.Name != nil {
		name = *req.Name
	}
	email := resident.Email
	if req.Email != nil {
		email = *req.Email
	}
	phone := resident.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	if email != resident.Email {
		exists, err := s.residentRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Resident with this email already exists")
		}
	}
	if err := resident.Update(name, email, phone); err != nil {
		return nil, err
	}

	if req.PropertyID != nil {
		if *req.PropertyID == uuid.Nil {
			resident.ClearProperty()
		} else {
			if _, err := s.propertyRepo.FindByID(ctx, *req.PropertyID); err != nil {
				return nil, err
			}
			roomNumber := resident.RoomNumber
			if req.RoomNumber != nil {
				roomNumber = *req.RoomNumber
			}
			if err := resident.AssignProperty(*req.PropertyID, roomNumber); err != nil {
				return nil, err
			}
		}
	} else if req.RoomNumber != nil && resident.PropertyID != nil {
		if err := resident.AssignProperty(*resident.PropertyID, *req.RoomNumber); err != nil {
			return nil, err
		}
	}

	if req.RelationshipManager != nil || req.RMContact != nil {
		managerName := resident.RelationshipManager
		if req.RelationshipManager != nil {
			managerName = *req.RelationshipManager
		}
		managerContact := resident.RMContact
		if req.RMContact != nil {
			managerContact = *req.RMContact
		}
		if err := resident.SetRelationshipManager(managerName, managerContact); err != nil {
			return nil, err
		}
	}

	if req.LeaseStartDate != nil || req.LeaseEndDate != nil || req.LockInMonths != nil {
		start := resident.LeaseStartDate
		if req.LeaseStartDate != nil {
			start = req.LeaseStartDate
		}
		end := resident.LeaseEndDate
		if req.LeaseEndDate != nil {
			end = req.LeaseEndDate
		}
		lockIn := resident.LockInMonths
		if req.LockInMonths != nil {
			lockIn = *req.LockInMonths
		}
		if err := resident.SetLeaseTerms(start, end, lockIn); err != nil {
			return nil, err
		}
	}

	if req.MonthlyRent != nil || req.SecurityDeposit != nil {
		rent := resident.MonthlyRent
		if req.MonthlyRent != nil {
			rent = *req.MonthlyRent
		}
		deposit := resident.SecurityDeposit
		if req.SecurityDeposit != nil {
			deposit = *req.SecurityDeposit
		}
		if err := resident.SetFinancials(rent, deposit); err != nil {
			return nil, err
		}
	}

	if req.CurrentStatus != nil {
		if err := resident.SetOccupancyStatus(portfolio.OccupancyStatus(*req.CurrentStatus)); err != nil {
			return nil, err
		}
	}

	if err := s.residentRepo.Save(ctx, resident); err != nil {
		return nil, err
	}
	s.invalidateRollups(ctx)

	response := ToResidentResponse(resident)
	return &response, nil
}

// Delete removes a resident along with its disbursements and repayments.
// Admin only.
func (s *ResidentService) Delete(ctx context.Context, actor identity.Role, id uuid.UUID) error {
	if !actor.CanDeleteResident() {
		return shared.ErrForbidden
	}
	if err := s.residentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateRollups(ctx)

	s.logger.Info("Resident deleted", zap.String("resident_id", id.String()))
	return nil
}

// Get returns a single resident
func (s *ResidentService) Get(ctx context.Context, id uuid.UUID) (*ResidentResponse, error) {
	resident, err := s.residentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToResidentResponse(resident)
	return &response, nil
}

// List returns residents matching the filter
func (s *ResidentService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ResidentResponse], error) {
	residents, err := s.residentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.residentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ResidentResponse, len(residents))
	for i := range residents {
		responses[i] = ToResidentResponse(&residents[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Statement returns a resident's relational statement of account
func (s *ResidentService) Statement(ctx context.Context, id uuid.UUID) (*StatementResponse, error) {
	statement, err := s.residentRepo.FindStatement(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToStatementResponse(statement)
	return &response, nil
}

// Roster filters, sorts and paginates the resident roster in memory over
// a cached snapshot of every resident
func (s *ResidentService) Roster(ctx context.Context, req RosterRequest) (*RosterResponse, error) {
	entries, err := s.loadRosterEntries(ctx)
	if err != nil {
		return nil, err
	}

	query := portfolio.NewRosterQuery()
	query.Search = req.Search
	query.City = req.City
	query.PropertyName = req.PropertyName
	query.RepaymentStatus = portfolio.RepaymentStanding(req.RepaymentStatus)
	if req.SortBy != "" {
		query.SortField = portfolio.SortField(req.SortBy)
	}
	if req.SortDir != "" {
		query.SortDir = portfolio.SortDirection(req.SortDir)
	}
	if req.Page > 0 {
		query = query.WithPage(req.Page)
	}
	if req.PageSize > 0 {
		page := query.Page
		query = query.WithPageSize(req.PageSize).WithPage(page)
	}

	page := query.Apply(entries)

	responses := make([]ResidentResponse, len(page.Entries))
	for i := range page.Entries {
		responses[i] = ToRosterResidentResponse(page.Entries[i])
	}
	return &RosterResponse{
		Entries:  responses,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

func (s *ResidentService) loadRosterEntries(ctx context.Context) ([]portfolio.RosterEntry, error) {
	if s.queryCache != nil {
		if data, ok, err := s.queryCache.Get(ctx, cache.KeyRosterEntries); err == nil && ok {
			var entries []portfolio.RosterEntry
			if err := json.Unmarshal(data, &entries); err == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.residentRepo.FindRosterEntries(ctx)
	if err != nil {
		return nil, err
	}
	if s.queryCache != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.queryCache.Set(ctx, cache.KeyRosterEntries, data, rosterCacheTTL); err != nil {
				s.logger.Warn("Failed to cache roster entries", zap.Error(err))
			}
		}
	}
	return entries, nil
}

func (s *ResidentService) invalidateRollups(ctx context.Context) {
	if s.queryCache == nil {
		return
	}
	err := s.queryCache.Invalidate(ctx, cache.KeyDashboardStats, cache.KeyRosterEntries)
	if err != nil {
		s.logger.Warn("Failed to invalidate query cache", zap.Error(err))
	}
}
