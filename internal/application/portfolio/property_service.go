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

// projectionCacheTTL bounds staleness of the roster filter dropdowns
// when an invalidation is missed.
const projectionCacheTTL = 10 * time.Minute

// PropertyService handles property management operations
type PropertyService struct {
	propertyRepo portfolio.PropertyRepository
	residentRepo portfolio.ResidentRepository
	queryCache   cache.QueryCache
	logger       *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo portfolio.PropertyRepository,
	residentRepo portfolio.ResidentRepository,
	queryCache cache.QueryCache,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		residentRepo: residentRepo,
		queryCache:   queryCache,
		logger:       logger,
	}
}

// Create creates a new property. Admin only.
func (s *PropertyService) Create(ctx context.Context, actor identity.Role, req CreatePropertyRequest) (*PropertyResponse, error) {
	if !actor.CanCreateProperty() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.propertyRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Property with this name already exists")
	}

	property, err := portfolio.NewProperty(req.Name, req.Address, req.City, req.UnitCount)
	if err != nil {
		return nil, err
	}
	if req.ManagerName != "" || req.ManagerContact != "" {
		if err := property.SetManager(req.ManagerName, req.ManagerContact); err != nil {
			return nil, err
		}
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}
	s.invalidateProjections(ctx)

	s.logger.Info("Property created",
		zap.String("property_id", property.ID.String()),
		zap.String("name", property.Name))

	response := ToPropertyResponse(property)
	return &response, nil
}

// Update updates a property. Admin only.
func (s *PropertyService) Update(ctx context.Context, actor identity.Role, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	if !actor.CanEditProperty() {
		return nil, shared.ErrForbidden
	}

	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := property.Name
	if req.Name != nil {
		name = *req.Name
	}
	if name != property.Name {
		exists, err := s.propertyRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Property with this name already exists")
		}
	}

	address := property.Address
	if req.Address != nil {
		address = *req.Address
	}
	city := property.City
	if req.City != nil {
		city = *req.City
	}
	unitCount := property.UnitCount
	if req.UnitCount != nil {
		unitCount = *req.UnitCount
	}
	if err := property.Update(name, address, city, unitCount); err != nil {
		return nil, err
	}

	if req.ManagerName != nil || req.ManagerContact != nil {
		managerName := property.ManagerName
		if req.ManagerName != nil {
			managerName = *req.ManagerName
		}
		managerContact := property.ManagerContact
		if req.ManagerContact != nil {
			managerContact = *req.ManagerContact
		}
		if err := property.SetManager(managerName, managerContact); err != nil {
			return nil, err
		}
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}
	s.invalidateProjections(ctx)

	response := ToPropertyResponse(property)
	return &response, nil
}

// Delete deletes a property without residents. Admin only.
func (s *PropertyService) Delete(ctx context.Context, actor identity.Role, id uuid.UUID) error {
	if !actor.CanDeleteProperty() {
		return shared.ErrForbidden
	}

	occupied, err := s.residentRepo.Count(ctx, shared.Filter{
		Filters: map[string]interface{}{"property_id": id},
	})
	if err != nil {
		return err
	}
	if occupied > 0 {
		return shared.NewDomainError("INVALID_STATE", "Property still has residents assigned")
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateProjections(ctx)
	return nil
}

// Get returns a single property
func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPropertyResponse(property)
	return &response, nil
}

// List returns properties matching the filter
func (s *PropertyService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PropertyResponse], error) {
	properties, err := s.propertyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.propertyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]PropertyResponse, len(properties))
	for i := range properties {
		responses[i] = ToPropertyResponse(&properties[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Cities returns the distinct set of cities for roster filters
func (s *PropertyService) Cities(ctx context.Context) ([]string, error) {
	return s.cachedProjection(ctx, cache.KeyPropertyCities, s.propertyRepo.DistinctCities)
}

// Names returns the distinct set of property names for roster filters
func (s *PropertyService) Names(ctx context.Context) ([]string, error) {
	return s.cachedProjection(ctx, cache.KeyPropertyNames, s.propertyRepo.DistinctNames)
}

func (s *PropertyService) cachedProjection(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if s.queryCache != nil {
		if data, ok, err := s.queryCache.Get(ctx, key); err == nil && ok {
			var values []string
			if err := json.Unmarshal(data, &values); err == nil {
				return values, nil
			}
		}
	}

	values, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if s.queryCache != nil {
		if data, err := json.Marshal(values); err == nil {
			if err := s.queryCache.Set(ctx, key, data, projectionCacheTTL); err != nil {
				s.logger.Warn("Failed to cache projection", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return values, nil
}

func (s *PropertyService) invalidateProjections(ctx context.Context) {
	if s.queryCache == nil {
		return
	}
	err := s.queryCache.Invalidate(ctx,
		cache.KeyDashboardStats,
		cache.KeyRosterEntries,
		cache.KeyPropertyCities,
		cache.KeyPropertyNames,
	)
	if err != nil {
		s.logger.Warn("Failed to invalidate query cache", zap.Error(err))
	}
}
