package concern

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Concern is a company master record. A concern owns zero or more
// tenants, one per financial year.
type Concern struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(150);not null"`
	// NameKey is the stored normalized name; the unique index makes
	// concurrent get-or-create calls converge on a single row and is
	// partial so a soft-deleted concern never blocks re-creation.
	NameKey    string         `gorm:"type:varchar(150);not null;uniqueIndex:uq_concern_name_key,where:deleted_at IS NULL"`
	VendorCode string         `gorm:"type:varchar(30)"`
	CreatedAt  time.Time      `gorm:"not null;default:now()"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Concern) TableName() string {
	return "concerns"
}
