package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff is the back-office profile attached to a user account.
type Staff struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Name        string    `gorm:"column:name;not null"`
	PhoneNumber *string   `gorm:"column:phone_number"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	User *User `gorm:"foreignKey:UserID"`
}

// TableName keeps the historical table name.
func (Staff) TableName() string {
	return "staffs"
}
