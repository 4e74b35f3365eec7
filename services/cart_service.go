package services

import (
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kitchen-api/models"
	"kitchen-api/pricing"
	"kitchen-api/skukey"
	"kitchen-api/utils/apperr"
)

// CartService reconciles a client-held cart against the live catalog.
// The cart itself lives on the client; the server only validates and
// prices it. Stale keys are dropped and logged, never surfaced as
// errors, so a menu change cannot lock a customer out of the valid
// remainder of their cart.
type CartService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCartService(db *gorm.DB, log *zap.Logger) *CartService {
	return &CartService{db: db, log: log}
}

type CartLine struct {
	Key         string   `json:"key"`
	MenuEntryID string   `json:"menu_entry_id"`
	MenuItemID  string   `json:"menu_item_id"`
	ItemName    string   `json:"item_name"`
	OptionNames []string `json:"option_names"`
	Quantity    int      `json:"quantity"`
	UnitPrice   int64    `json:"unit_price"`
	LineTotal   int64    `json:"line_total"`
}

type CartView struct {
	// Items is the repaired cart the client should persist back.
	Items map[string]int `json:"items"`
	Lines []CartLine     `json:"lines"`
	Total int64          `json:"total"`
}

// Reconcile validates every key against the current menu and catalog
// and prices the survivors with the same arithmetic checkout uses.
func (s *CartService) Reconcile(items map[string]int) (*CartView, error) {
	view := &CartView{Items: make(map[string]int, len(items))}

	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		quantity := items[key]
		if quantity <= 0 {
			s.log.Warn("dropping cart key with non-positive quantity", zap.String("key", key))
			continue
		}

		line, err := s.resolveKey(key)
		if err != nil {
			s.log.Warn("dropping stale cart key", zap.String("key", key), zap.Error(err))
			continue
		}

		line.Quantity = quantity
		line.LineTotal = pricing.LineTotal(line.UnitPrice, quantity)
		view.Items[key] = quantity
		view.Lines = append(view.Lines, *line)
		view.Total += line.LineTotal
	}

	return view, nil
}

// resolveKey checks one sku key against the live data: the entry must
// exist and reference the encoded item, every selected group must still
// be attached to that item, and every option must still be active
// inside its group.
func (s *CartService) resolveKey(key string) (*CartLine, error) {
	entryID, itemID, sel, err := skukey.Parse(key)
	if err != nil {
		return nil, err
	}

	var entry models.MenuEntry
	err = s.db.Preload("MenuItem", "deleted_at IS NULL").First(&entry, "id = ?", entryID).Error
	if err != nil {
		return nil, apperr.NotFoundf("menu entry %s not found", entryID)
	}
	if entry.MenuItemID != itemID || entry.MenuItem.ID == "" {
		return nil, apperr.NotFoundf("menu item %s not on entry %s", itemID, entryID)
	}

	var links []models.MenuItemModifierGroup
	if err := s.db.Where("menu_item_id = ?", itemID).Find(&links).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to load modifier assignments")
	}
	attached := make(map[string]bool, len(links))
	for _, link := range links {
		attached[link.ModifierGroupID] = true
	}

	var deltas []int64
	var names []string
	for _, groupID := range sortedGroupIDs(sel) {
		if !attached[groupID] {
			return nil, apperr.NotFoundf("group %s not attached to item %s", groupID, itemID)
		}
		var group models.ModifierGroup
		if err := s.db.Scopes(models.Active).First(&group, "id = ?", groupID).Error; err != nil {
			return nil, apperr.NotFoundf("group %s not found", groupID)
		}
		for _, optionID := range sel[groupID] {
			var option models.ModifierOption
			err := s.db.Scopes(models.Active).
				First(&option, "id = ? AND modifier_group_id = ?", optionID, groupID).Error
			if err != nil {
				return nil, apperr.NotFoundf("option %s not found in group %s", optionID, groupID)
			}
			deltas = append(deltas, option.PriceDelta)
			names = append(names, option.Name)
		}
	}

	return &CartLine{
		Key:         key,
		MenuEntryID: entryID,
		MenuItemID:  itemID,
		ItemName:    entry.MenuItem.Name,
		OptionNames: names,
		UnitPrice:   pricing.UnitPrice(entry.MenuItem.BasePrice, deltas),
	}, nil
}

func sortedGroupIDs(sel skukey.Selection) []string {
	ids := make([]string, 0, len(sel))
	for id := range sel {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MergeQuantity applies the cart merge rule in place: adding delta to
// an existing key sums quantities, and a result of zero or less removes
// the key entirely.
func MergeQuantity(cart map[string]int, key string, delta int) {
	next := cart[key] + delta
	if next <= 0 {
		delete(cart, key)
		return
	}
	cart[key] = next
}
