package process

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Process is a tenant-scoped master record for a textile treatment
// (dyeing, bleaching, calendering and so on) quoted on documents.
type Process struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(100);not null"`
	// NameKey backs the per-tenant duplicate check among live rows.
	NameKey string  `gorm:"type:varchar(100);not null;index:idx_process_tenant_name_key"`
	Rate    float64 `gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Process) TableName() string {
	return "processes"
}
