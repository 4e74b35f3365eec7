package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPlaced = "placed"
)

// Order is operational data and is hard-deleted, unlike the catalog.
// Total is computed server-side at creation and changes only through an
// explicit order edit. Invariant: 0 <= CentsPaid <= Total, enforced at
// the payment-update boundary.
type Order struct {
	ID        string `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string `gorm:"type:char(36);index;not null" json:"user_id"`
	Status    string `gorm:"type:varchar(16);not null;default:'placed'" json:"status"`
	Total     int64  `gorm:"not null" json:"total"`
	CentsPaid int64  `gorm:"not null;default:0" json:"cents_paid"`
	IsManual  bool   `gorm:"not null;default:false" json:"is_manual"`

	User  User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem freezes ItemPrice at order time; it is never recomputed
// from the current catalog. BaggedAt marks the line as packed.
type OrderItem struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID     string     `gorm:"type:char(36);index;not null" json:"order_id"`
	MenuEntryID string     `gorm:"type:char(36);index;not null" json:"menu_entry_id"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	ItemPrice   int64      `gorm:"not null" json:"item_price"`
	BaggedAt    *time.Time `json:"bagged_at"`

	Order     Order               `gorm:"foreignKey:OrderID" json:"-"`
	MenuEntry MenuEntry           `gorm:"foreignKey:MenuEntryID" json:"menu_entry,omitempty"`
	Modifiers []OrderItemModifier `gorm:"foreignKey:OrderItemID" json:"modifiers,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// OrderItemModifier freezes the option PriceDelta at order time.
type OrderItemModifier struct {
	ID               string `gorm:"type:char(36);primaryKey" json:"id"`
	OrderItemID      string `gorm:"type:char(36);index;not null" json:"order_item_id"`
	ModifierOptionID string `gorm:"type:char(36);index;not null" json:"modifier_option_id"`
	OptionPrice      int64  `gorm:"not null" json:"option_price"`

	ModifierOption ModifierOption `gorm:"foreignKey:ModifierOptionID" json:"modifier_option,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *OrderItemModifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
