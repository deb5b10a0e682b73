package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"column:name;type:varchar(255);not null"`
	Email     string     `gorm:"column:email;type:text;not null;uniqueIndex:uq_users_email"`
	Role      string     `gorm:"column:role;type:varchar(20);not null;default:'employee';index"`
	ManagerID *uuid.UUID `gorm:"column:manager_id;type:uuid;index"`

	CasualBalance int `gorm:"column:casual_balance;not null;default:0"`
	SickBalance   int `gorm:"column:sick_balance;not null;default:0"`
	EarnedBalance int `gorm:"column:earned_balance;not null;default:0"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
