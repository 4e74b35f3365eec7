package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuEntry places one menu item on one calendar day. Date is stored as
// midnight in the configured local timezone. A custom entry exists only
// to back a manual order and never shows on the public calendar; a
// normal and a custom entry for the same (date, item) may coexist, but
// not two of the same kind.
type MenuEntry struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	Date       time.Time `gorm:"not null;uniqueIndex:uq_menu_entries_day_item_kind" json:"date"`
	MenuItemID string    `gorm:"type:char(36);not null;uniqueIndex:uq_menu_entries_day_item_kind" json:"menu_item_id"`
	IsCustom   bool      `gorm:"not null;default:false;uniqueIndex:uq_menu_entries_day_item_kind" json:"is_custom"`
	SortOrder  int       `gorm:"not null;default:0" json:"sort_order"`

	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *MenuEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
