package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID           string `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	PhoneNumber  string `gorm:"uniqueIndex;not null" json:"phone_number"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"type:varchar(16);not null;default:'customer'" json:"role"`
	IsAnonymous  bool   `gorm:"not null;default:false" json:"is_anonymous"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
