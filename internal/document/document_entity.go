package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Series values name the two numbering spaces sharing this store.
const (
	SeriesGoodsReceipt = "grn"
	SeriesQuotation    = "quotation"
)

// Header is one goods-receipt note or rate quotation. Lines and process
// lines hang off it; replaced line sets stay in storage soft-deleted
// under their old revision.
type Header struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_doc_tenant_series_sort,priority:1"`
	Series   string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_doc_tenant_series_sort,priority:2"`

	// DocNumber is the zero-padded rendering of SortOrder, except when an
	// administrator assigned it manually. SortOrder stays the ordering and
	// uniqueness key either way.
	DocNumber string `gorm:"type:char(10);not null"`
	SortOrder int64  `gorm:"not null;uniqueIndex:uq_doc_tenant_series_sort,priority:3"`

	DocDate   time.Time `gorm:"type:date;not null"`
	PartyName string    `gorm:"type:varchar(200);not null"`

	DesignNo   string `gorm:"type:varchar(100)"`
	DesignKey  string `gorm:"type:varchar(100);index"`
	DesignName string `gorm:"type:varchar(200)"`
	Remarks    string `gorm:"type:text"`

	TotalQty    float64 `gorm:"type:numeric(14,3);not null;default:0"`
	TotalRolls  int     `gorm:"not null;default:0"`
	TotalAmount float64 `gorm:"type:numeric(14,2);not null;default:0"`

	// Revision counts line-set replacements; lines carry the revision
	// they were written under.
	Revision int `gorm:"not null;default:1"`

	CreatedBy  string `gorm:"type:varchar(100);not null"`
	ModifiedBy string `gorm:"type:varchar(100)"`
	DeletedBy  string `gorm:"type:varchar(100)"`

	Lines     []Line        `gorm:"foreignKey:HeaderID"`
	Processes []ProcessLine `gorm:"foreignKey:HeaderID"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Header) TableName() string {
	return "document_headers"
}

type Line struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HeaderID uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Revision int       `gorm:"not null;default:1"`

	LotNo   string   `gorm:"type:varchar(100)"`
	Color   string   `gorm:"type:varchar(100)"`
	Weight  *float64 `gorm:"type:numeric(12,3)"`
	Rolls   *int
	Remarks string `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Line) TableName() string {
	return "document_lines"
}

type ProcessLine struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HeaderID uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Revision int       `gorm:"not null;default:1"`

	ProcessName string   `gorm:"type:varchar(100);not null"`
	Rate        *float64 `gorm:"type:numeric(12,2)"`
	Amount      *float64 `gorm:"type:numeric(14,2)"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ProcessLine) TableName() string {
	return "document_processes"
}
