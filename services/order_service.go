package services

import (
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kitchen-api/dtos"
	"kitchen-api/models"
	"kitchen-api/pricing"
	"kitchen-api/utils/apperr"
	"kitchen-api/utils/dates"
)

// OrderService owns order creation, editing, deletion and payment
// tracking. Totals are always re-derived server-side from the current
// catalog; client-computed numbers are never trusted. Every mutation
// runs in a single transaction so partial orders are never observable.
type OrderService struct {
	db  *gorm.DB
	log *zap.Logger
	loc *time.Location
}

func NewOrderService(db *gorm.DB, log *zap.Logger, loc *time.Location) *OrderService {
	return &OrderService{db: db, log: log, loc: loc}
}

// buildItems resolves submitted lines against the live catalog and
// freezes prices into order items. Any unresolved ID fails the whole
// batch; soft-deleted items and options count as unresolved.
func buildItems(db *gorm.DB, lines []dtos.OrderLineInput) ([]models.OrderItem, int64, error) {
	if len(lines) == 0 {
		return nil, 0, apperr.ValidationField("lines", "order must have at least one line")
	}

	entryIDs := make([]string, 0, len(lines))
	optionIDs := make([]string, 0)
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, 0, apperr.ValidationField("quantity", "quantity must be >= 1")
		}
		entryIDs = append(entryIDs, line.MenuEntryID)
		seen := make(map[string]bool, len(line.ModifierOptionIDs))
		for _, optID := range line.ModifierOptionIDs {
			if seen[optID] {
				return nil, 0, apperr.ValidationField("modifier_option_ids", "duplicate modifier option %s", optID)
			}
			seen[optID] = true
			optionIDs = append(optionIDs, optID)
		}
	}

	var entries []models.MenuEntry
	err := db.Preload("MenuItem", "deleted_at IS NULL").
		Where("id IN ?", entryIDs).Find(&entries).Error
	if err != nil {
		return nil, 0, apperr.Internalf(err, "failed to resolve menu entries")
	}
	entryByID := make(map[string]*models.MenuEntry, len(entries))
	itemIDs := make([]string, 0, len(entries))
	for i := range entries {
		entryByID[entries[i].ID] = &entries[i]
		itemIDs = append(itemIDs, entries[i].MenuItemID)
	}

	optionByID := make(map[string]*models.ModifierOption)
	if len(optionIDs) > 0 {
		var options []models.ModifierOption
		err := db.Scopes(models.Active).Where("id IN ?", optionIDs).Find(&options).Error
		if err != nil {
			return nil, 0, apperr.Internalf(err, "failed to resolve modifier options")
		}
		for i := range options {
			optionByID[options[i].ID] = &options[i]
		}
	}

	// Attached, active modifier groups per item, for availability and
	// min/max checks.
	groupsByItem := make(map[string]map[string]*models.ModifierGroup, len(itemIDs))
	if len(itemIDs) > 0 {
		var links []models.MenuItemModifierGroup
		if err := db.Where("menu_item_id IN ?", itemIDs).Find(&links).Error; err != nil {
			return nil, 0, apperr.Internalf(err, "failed to resolve modifier assignments")
		}
		groupIDs := make([]string, 0, len(links))
		for _, link := range links {
			groupIDs = append(groupIDs, link.ModifierGroupID)
		}
		groupByID := make(map[string]*models.ModifierGroup, len(groupIDs))
		if len(groupIDs) > 0 {
			var groups []models.ModifierGroup
			if err := db.Scopes(models.Active).Where("id IN ?", groupIDs).Find(&groups).Error; err != nil {
				return nil, 0, apperr.Internalf(err, "failed to resolve modifier groups")
			}
			for i := range groups {
				groupByID[groups[i].ID] = &groups[i]
			}
		}
		for _, link := range links {
			group, ok := groupByID[link.ModifierGroupID]
			if !ok {
				continue
			}
			if groupsByItem[link.MenuItemID] == nil {
				groupsByItem[link.MenuItemID] = make(map[string]*models.ModifierGroup)
			}
			groupsByItem[link.MenuItemID][group.ID] = group
		}
	}

	items := make([]models.OrderItem, 0, len(lines))
	var total int64
	for _, line := range lines {
		entry, ok := entryByID[line.MenuEntryID]
		if !ok {
			return nil, 0, apperr.NotFoundf("menu entry %s not found", line.MenuEntryID)
		}
		if entry.MenuItem.ID == "" {
			return nil, 0, apperr.NotFoundf("menu item for entry %s not found", line.MenuEntryID)
		}

		attached := groupsByItem[entry.MenuItemID]
		selectedPerGroup := make(map[string]int, len(attached))
		deltas := make([]int64, 0, len(line.ModifierOptionIDs))
		modifiers := make([]models.OrderItemModifier, 0, len(line.ModifierOptionIDs))

		for _, optID := range line.ModifierOptionIDs {
			option, ok := optionByID[optID]
			if !ok {
				return nil, 0, apperr.NotFoundf("modifier option %s not found", optID)
			}
			if _, ok := attached[option.ModifierGroupID]; !ok {
				return nil, 0, apperr.Validationf("modifier option %s not available for item %s", optID, entry.MenuItem.Name)
			}
			selectedPerGroup[option.ModifierGroupID]++
			deltas = append(deltas, option.PriceDelta)
			modifiers = append(modifiers, models.OrderItemModifier{
				ModifierOptionID: option.ID,
				OptionPrice:      option.PriceDelta,
			})
		}

		for groupID, group := range attached {
			count := selectedPerGroup[groupID]
			if count < group.MinSelect {
				return nil, 0, apperr.Validationf("group %q requires at least %d selection(s)", group.Name, group.MinSelect)
			}
			if group.MaxSelect != nil && count > *group.MaxSelect {
				return nil, 0, apperr.Validationf("group %q allows at most %d selection(s)", group.Name, *group.MaxSelect)
			}
		}

		unit := pricing.UnitPrice(entry.MenuItem.BasePrice, deltas)
		total += pricing.LineTotal(unit, line.Quantity)

		items = append(items, models.OrderItem{
			MenuEntryID: entry.ID,
			Quantity:    line.Quantity,
			ItemPrice:   entry.MenuItem.BasePrice,
			Modifiers:   modifiers,
		})
	}

	return items, total, nil
}

// Create writes the order, its items and their modifiers atomically.
// isManual marks admin-entered orders.
func (s *OrderService) Create(userID string, lines []dtos.OrderLineInput, isManual bool) (*models.Order, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		return nil, apperr.Internalf(err, "failed to load user")
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items, total, err := buildItems(tx, lines)
		if err != nil {
			return err
		}
		order = models.Order{
			UserID:   userID,
			Status:   models.OrderStatusPlaced,
			Total:    total,
			IsManual: isManual,
			Items:    items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperr.Internalf(err, "failed to create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Int64("total", order.Total),
		zap.Bool("manual", isManual))
	return s.GetOrder(order.ID)
}

// UpdateManual replaces the full item set of a manual order: existing
// items and modifiers are deleted and fresh ones inserted, and the
// total is recomputed, all in one transaction. Bagging state of the old
// lines is not carried over. CentsPaid is capped at the new total so
// the payment invariant survives edits that lower it.
func (s *OrderService) UpdateManual(orderID string, lines []dtos.OrderLineInput) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order not found")
		}
		return nil, apperr.Internalf(err, "failed to load order")
	}
	if !order.IsManual {
		return nil, apperr.Validationf("only manual orders can be edited")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		items, total, err := buildItems(tx, lines)
		if err != nil {
			return err
		}

		if err := deleteOrderRows(tx, orderID, false); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = orderID
		}
		if err := tx.Create(&items).Error; err != nil {
			return apperr.Internalf(err, "failed to insert order items")
		}

		centsPaid := order.CentsPaid
		if centsPaid > total {
			centsPaid = total
		}
		err = tx.Model(&models.Order{}).Where("id = ?", orderID).
			Updates(map[string]any{"total": total, "cents_paid": centsPaid}).Error
		if err != nil {
			return apperr.Internalf(err, "failed to update order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order updated", zap.String("order_id", orderID))
	return s.GetOrder(orderID)
}

// Delete hard-deletes the order and everything under it, modifiers
// before items before the order itself.
func (s *OrderService) Delete(orderID string) error {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("order not found")
		}
		return apperr.Internalf(err, "failed to load order")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteOrderRows(tx, orderID, true); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("order deleted", zap.String("order_id", orderID))
	return nil
}

// deleteOrderRows removes the order's modifiers and items, and the
// order row itself when deleteOrder is set.
func deleteOrderRows(tx *gorm.DB, orderID string, deleteOrder bool) error {
	var itemIDs []string
	err := tx.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Pluck("id", &itemIDs).Error
	if err != nil {
		return apperr.Internalf(err, "failed to load order items")
	}
	if len(itemIDs) > 0 {
		if err := tx.Where("order_item_id IN ?", itemIDs).Delete(&models.OrderItemModifier{}).Error; err != nil {
			return apperr.Internalf(err, "failed to delete order item modifiers")
		}
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return apperr.Internalf(err, "failed to delete order items")
	}
	if deleteOrder {
		if err := tx.Delete(&models.Order{}, "id = ?", orderID).Error; err != nil {
			return apperr.Internalf(err, "failed to delete order")
		}
	}
	return nil
}

// UpdatePayment sets the running payment total. Valid range is
// [0, total]; exceeding the total is a conflict and leaves the stored
// value unchanged. Idempotent.
func (s *OrderService) UpdatePayment(orderID string, centsPaid int64) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order not found")
		}
		return nil, apperr.Internalf(err, "failed to load order")
	}

	if centsPaid < 0 {
		return nil, apperr.ValidationField("cents_paid", "cents_paid must be >= 0")
	}
	if centsPaid > order.Total {
		return nil, apperr.Conflictf("payment %d exceeds order total %d", centsPaid, order.Total)
	}

	if err := s.db.Model(&models.Order{}).Where("id = ?", orderID).Update("cents_paid", centsPaid).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to update payment")
	}

	s.log.Info("payment updated", zap.String("order_id", orderID), zap.Int64("cents_paid", centsPaid))
	return s.GetOrder(orderID)
}

// MarkPaidInFull is shorthand for cents_paid := total. Idempotent.
func (s *OrderService) MarkPaidInFull(orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order not found")
		}
		return nil, apperr.Internalf(err, "failed to load order")
	}
	return s.UpdatePayment(orderID, order.Total)
}

// orderPreloads loads the frozen order graph. The catalog rows are
// preloaded without the active predicate on purpose: a soft-deleted
// item must still render on its historical orders.
func orderPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("User").
		Preload("Items.Modifiers.ModifierOption").
		Preload("Items.MenuEntry.MenuItem")
}

func (s *OrderService) GetOrder(orderID string) (*models.Order, error) {
	var order models.Order
	err := orderPreloads(s.db).First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("order not found")
	}
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load order")
	}
	return &order, nil
}

// GetOrders lists orders, optionally restricted to those with items on
// one local calendar day and/or to one user.
func (s *OrderService) GetOrders(day, userID string) ([]models.Order, error) {
	query := orderPreloads(s.db).Order("created_at DESC")

	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if day != "" {
		date, err := dates.ParseDay(day, s.loc)
		if err != nil {
			return nil, apperr.ValidationField("date", "invalid date %q", day)
		}
		start, end := dates.DayBounds(date, s.loc)
		entrySub := s.db.Model(&models.MenuEntry{}).Select("id").
			Where("date >= ? AND date < ?", start, end)
		itemSub := s.db.Model(&models.OrderItem{}).Select("order_id").
			Where("menu_entry_id IN (?)", entrySub)
		query = query.Where("id IN (?)", itemSub)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to list orders")
	}
	return orders, nil
}

// GetDatesWithOrders returns the distinct local day strings that have
// at least one ordered item, newest first.
func (s *OrderService) GetDatesWithOrders() ([]string, error) {
	var entryDates []time.Time
	err := s.db.Model(&models.MenuEntry{}).
		Where("id IN (?)", s.db.Model(&models.OrderItem{}).Select("menu_entry_id")).
		Pluck("date", &entryDates).Error
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load order dates")
	}

	seen := make(map[string]bool, len(entryDates))
	days := make([]string, 0, len(entryDates))
	for _, d := range entryDates {
		day := dates.DayString(d, s.loc)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days, nil
}
