package tenant

import "gorm.io/gorm"

// Scope restricts a query to one tenant. Every read and write on
// tenant-bound tables goes through this.
func Scope(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}
