package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an operator account. Accounts are deactivated or soft-deleted,
// never hard-deleted.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username string    `gorm:"type:varchar(100);not null"`
	// UsernameKey is the stored normalized username backing the
	// duplicate check ("john_doe", "John Doe" and " johndoe " collide).
	// The index is partial: a soft-deleted account releases its name.
	UsernameKey string `gorm:"type:varchar(100);not null;uniqueIndex:uq_user_username_key,where:deleted_at IS NULL"`
	Password    string `gorm:"type:varchar(255);not null"`

	IsAdmin   bool `gorm:"not null;default:false"`
	CanAdd    bool `gorm:"not null;default:false"`
	CanEdit   bool `gorm:"not null;default:false"`
	CanDelete bool `gorm:"not null;default:false"`
	DCClose   bool `gorm:"not null;default:false"`
	IsActive  bool `gorm:"not null;default:true"`

	// Concerns the user may work under; empty means administrator-wide
	// visibility.
	Concerns []UserConcern `gorm:"foreignKey:UserID"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

type UserConcern struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConcernID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (UserConcern) TableName() string {
	return "user_concerns"
}

// ConcernIDs flattens the join rows for claims embedding.
func (u *User) ConcernIDs() []string {
	ids := make([]string, len(u.Concerns))
	for i, c := range u.Concerns {
		ids[i] = c.ConcernID.String()
	}
	return ids
}
