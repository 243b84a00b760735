package counter

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// NumberWidth is the fixed width of formatted document numbers. Numbers
// are zero-padded so numeric and lexicographic ordering coincide.
const NumberWidth = 10

// Counter holds the last allocated value for one (tenant, series)
// numbering space.
type Counter struct {
	TenantID  string    `gorm:"type:uuid;primaryKey"`
	Series    string    `gorm:"type:varchar(30);primaryKey"`
	LastValue int64     `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Counter) TableName() string {
	return "tenant_counters"
}

// Format renders an allocated value as the external document number.
func Format(n int64) string {
	return fmt.Sprintf("%0*d", NumberWidth, n)
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// Next allocates and returns the next value for the numbering space.
	Next(ctx context.Context, tenantID string, series string) (int64, error)
	// Peek returns the value Next would allocate, without allocating it.
	Peek(ctx context.Context, tenantID string, series string) (int64, error)
	// Raise bumps the counter to at least value, for admin-assigned numbers.
	Raise(ctx context.Context, tenantID string, series string, value int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the allocator to a transaction so the increment commits
// or rolls back together with the header insert it numbers.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Next(ctx context.Context, tenantID string, series string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT-and-increment; the row lock taken by the UPDATE arm
	// serializes concurrent allocations for the same numbering space.
	// First allocation seeds from the highest live header so pre-counter
	// data never collides.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO tenant_counters (tenant_id, series, last_value, updated_at)
		SELECT ?, ?, COALESCE(MAX(sort_order), 0) + 1, now()
		FROM document_headers
		WHERE tenant_id = ? AND series = ? AND deleted_at IS NULL
		ON CONFLICT (tenant_id, series) DO UPDATE
		SET last_value = tenant_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, tenantID, series, tenantID, series).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

func (r *repository) Peek(ctx context.Context, tenantID string, series string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(
			(SELECT last_value FROM tenant_counters WHERE tenant_id = ? AND series = ?),
			(SELECT COALESCE(MAX(sort_order), 0) FROM document_headers
			 WHERE tenant_id = ? AND series = ? AND deleted_at IS NULL)
		) + 1
	`, tenantID, series, tenantID, series).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

func (r *repository) Raise(ctx context.Context, tenantID string, series string, value int64) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO tenant_counters (tenant_id, series, last_value, updated_at)
		VALUES (?, ?, ?, now())
		ON CONFLICT (tenant_id, series) DO UPDATE
		SET last_value = GREATEST(tenant_counters.last_value, EXCLUDED.last_value), updated_at = now()
	`, tenantID, series, value).Error
}
