package portfolio

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/circlepe/backend/internal/domain/portfolio"
	"github.com/circlepe/backend/internal/domain/shared"
)

// MockPropertyRepository is a mock implementation of PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByName(ctx context.Context, name string) (*portfolio.Property, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepository) DistinctCities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPropertyRepository) DistinctNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *portfolio.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockResidentRepository is a mock implementation of ResidentRepository
type MockResidentRepository struct {
	mock.Mock
}

func (m *MockResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindByEmail(ctx context.Context, email string) (*portfolio.Resident, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Resident, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindStatement(ctx context.Context, id uuid.UUID) (*portfolio.StatementOfAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.StatementOfAccount), args.Error(1)
}

func (m *MockResidentRepository) FindRosterEntries(ctx context.Context) ([]portfolio.RosterEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portfolio.RosterEntry), args.Error(1)
}

func (m *MockResidentRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]portfolio.Resident, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).([]portfolio.Resident), args.Error(1)
}

func (m *MockResidentRepository) Save(ctx context.Context, resident *portfolio.Resident) error {
	args := m.Called(ctx, resident)
	return args.Error(0)
}

func (m *MockResidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResidentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResidentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockDisbursementRepository is a mock implementation of DisbursementRepository
type MockDisbursementRepository struct {
	mock.Mock
}

func (m *MockDisbursementRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Disbursement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) FindByResident(ctx context.Context, residentID uuid.UUID) ([]portfolio.Disbursement, error) {
	args := m.Called(ctx, residentID)
	return args.Get(0).([]portfolio.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Disbursement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) Save(ctx context.Context, disbursement *portfolio.Disbursement) error {
	args := m.Called(ctx, disbursement)
	return args.Error(0)
}

func (m *MockDisbursementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDisbursementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockRepaymentRepository is a mock implementation of RepaymentRepository
type MockRepaymentRepository struct {
	mock.Mock
}

func (m *MockRepaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Repayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Repayment), args.Error(1)
}

func (m *MockRepaymentRepository) FindByResident(ctx context.Context, residentID uuid.UUID) ([]portfolio.Repayment, error) {
	args := m.Called(ctx, residentID)
	return args.Get(0).([]portfolio.Repayment), args.Error(1)
}

func (m *MockRepaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Repayment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Repayment), args.Error(1)
}

func (m *MockRepaymentRepository) ListAll(ctx context.Context) ([]portfolio.Repayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portfolio.Repayment), args.Error(1)
}

func (m *MockRepaymentRepository) Save(ctx context.Context, repayment *portfolio.Repayment) error {
	args := m.Called(ctx, repayment)
	return args.Error(0)
}

func (m *MockRepaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
