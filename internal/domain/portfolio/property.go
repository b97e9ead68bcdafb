package portfolio

import (
	"regexp"
	"time"

	"github.com/circlepe/backend/internal/domain/shared"
)

// PropertyStatus represents the operational status of a property
type PropertyStatus string

const (
	PropertyStatusActive   PropertyStatus = "active"
	PropertyStatusInactive PropertyStatus = "inactive"
)

// Property represents a building under management. Residents reference a
// property but the property does not own them.
type Property struct {
	shared.BaseAggregateRoot
	Name           string         `gorm:"type:varchar(200);not null"`
	Address        string         `gorm:"type:text"`
	City           string         `gorm:"type:varchar(100);not null;index"`
	UnitCount      int            `gorm:"not null;default:0"`
	ManagerName    string         `gorm:"type:varchar(100)"`
	ManagerContact string         `gorm:"type:varchar(50)"`
	Status         PropertyStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Property) TableName() string {
	return "properties"
}

// NewProperty creates a new property with required fields
func NewProperty(name, address, city string, unitCount int) (*Property, error) {
	if err := validatePropertyName(name); err != nil {
		return nil, err
	}
	if err := validateCity(city); err != nil {
		return nil, err
	}
	if unitCount < 0 {
		return nil, shared.NewDomainError("INVALID_UNIT_COUNT", "Unit count cannot be negative")
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		City:              city,
		UnitCount:         unitCount,
		Status:            PropertyStatusActive,
	}, nil
}

// Update updates the property's basic information
func (p *Property) Update(name, address, city string, unitCount int) error {
	if err := validatePropertyName(name); err != nil {
		return err
	}
	if err := validateCity(city); err != nil {
		return err
	}
	if unitCount < 0 {
		return shared.NewDomainError("INVALID_UNIT_COUNT", "Unit count cannot be negative")
	}

	p.Name = name
	p.Address = address
	p.City = city
	p.UnitCount = unitCount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetManager sets the property manager's contact pair
func (p *Property) SetManager(name, contact string) error {
	if name != "" && len(name) > 100 {
		return shared.NewDomainError("INVALID_MANAGER_NAME", "Manager name cannot exceed 100 characters")
	}
	if contact != "" {
		if err := validateContactNumber(contact); err != nil {
			return err
		}
	}

	p.ManagerName = name
	p.ManagerContact = contact
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate marks the property as active
func (p *Property) Activate() error {
	if p.Status == PropertyStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Property is already active")
	}

	p.Status = PropertyStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate marks the property as inactive
func (p *Property) Deactivate() error {
	if p.Status == PropertyStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Property is already inactive")
	}

	p.Status = PropertyStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the property is active
func (p *Property) IsActive() bool {
	return p.Status == PropertyStatusActive
}

// Validation functions

func validatePropertyName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot exceed 200 characters")
	}
	return nil
}

func validateCity(city string) error {
	if city == "" {
		return shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	return nil
}

func validateContactNumber(contact string) error {
	if len(contact) > 50 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact number cannot exceed 50 characters")
	}
	validContact := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validContact.MatchString(contact) {
		return shared.NewDomainError("INVALID_CONTACT", "Invalid contact number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
