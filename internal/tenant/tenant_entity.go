package tenant

import (
	"time"

	"go-texerp/internal/concern"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is a (concern, financial year) execution context, the unit of
// data isolation for all transactional documents.
type Tenant struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// The composite unique index makes concurrent get-or-create calls
	// for the same (concern, year) converge on a single row. It is
	// partial so a soft-deleted tenant never blocks re-creation.
	ConcernID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_tenant_concern_year,where:deleted_at IS NULL"`
	FinancialYear string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_tenant_concern_year,where:deleted_at IS NULL"`

	Concern *concern.Concern `gorm:"foreignKey:ConcernID"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Tenant) TableName() string {
	return "tenants"
}
