package shared

import (
	"github.com/google/uuid"
)

// TenantAggregateRoot is embedded by every entity owned by a business.
// BusinessID is always assigned from the authenticated caller, never from client input.
type TenantAggregateRoot struct {
	BaseEntity
	BusinessID uuid.UUID `gorm:"column:business_id;not null;index"`
}

// NewTenantAggregateRoot creates a new business-scoped aggregate root
func NewTenantAggregateRoot(businessID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		BaseEntity: NewBaseEntity(),
		BusinessID: businessID,
	}
}

// BelongsTo reports whether the aggregate is owned by the given business
func (a *TenantAggregateRoot) BelongsTo(businessID uuid.UUID) bool {
	return a.BusinessID == businessID
}
