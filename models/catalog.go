package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Active limits a query to rows that have not been soft-deleted.
// Catalog reads must apply it explicitly at every site; there is no
// default scope doing it silently.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// MenuItem is a catalog dish. Prices are integer minor units (cents).
// Catalog rows are soft-deleted only, so historical orders keep their
// references.
type MenuItem struct {
	ID          string `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	BasePrice   int64  `gorm:"not null" json:"base_price"`

	GroupLinks []MenuItemModifierGroup `gorm:"foreignKey:MenuItemID" json:"modifier_groups,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MenuItemModifierGroup attaches a modifier group to a menu item with a
// per-item display order.
type MenuItemModifierGroup struct {
	MenuItemID      string `gorm:"type:char(36);primaryKey" json:"menu_item_id"`
	ModifierGroupID string `gorm:"type:char(36);primaryKey" json:"modifier_group_id"`
	SortOrder       int    `gorm:"not null;default:0" json:"sort_order"`

	ModifierGroup ModifierGroup `gorm:"foreignKey:ModifierGroupID" json:"modifier_group"`
}

// ModifierGroup is a set of options such as "Size" or "Spice level".
// MaxSelect nil means unlimited; when set it must be >= MinSelect.
type ModifierGroup struct {
	ID        string `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	MinSelect int    `gorm:"not null;default:0" json:"min_select"`
	MaxSelect *int   `json:"max_select"`

	Options []ModifierOption `gorm:"foreignKey:ModifierGroupID" json:"options,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

func (g *ModifierGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// ModifierOption belongs to exactly one group. PriceDelta is signed
// minor units added to the item base price when selected.
type ModifierOption struct {
	ID              string `gorm:"type:char(36);primaryKey" json:"id"`
	ModifierGroupID string `gorm:"type:char(36);index;not null" json:"modifier_group_id"`
	Name            string `gorm:"not null" json:"name"`
	PriceDelta      int64  `gorm:"not null;default:0" json:"price_delta"`
	SortOrder       int    `gorm:"not null;default:0" json:"sort_order"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

func (o *ModifierOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
