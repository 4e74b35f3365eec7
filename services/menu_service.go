package services

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kitchen-api/models"
	"kitchen-api/utils/apperr"
	"kitchen-api/utils/dates"
)

// MenuService manages the calendar: which catalog items are offered on
// which day.
type MenuService struct {
	db  *gorm.DB
	log *zap.Logger
	loc *time.Location
}

func NewMenuService(db *gorm.DB, log *zap.Logger, loc *time.Location) *MenuService {
	return &MenuService{db: db, log: log, loc: loc}
}

func (s *MenuService) entryQuery() *gorm.DB {
	return s.db.Model(&models.MenuEntry{}).
		Preload("MenuItem", "deleted_at IS NULL").
		Preload("MenuItem.GroupLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("MenuItem.GroupLinks.ModifierGroup", "deleted_at IS NULL").
		Preload("MenuItem.GroupLinks.ModifierGroup.Options", "deleted_at IS NULL", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
}

// GetByDate returns the public (non-custom) entries for one day.
func (s *MenuService) GetByDate(day string) ([]models.MenuEntry, error) {
	date, err := dates.ParseDay(day, s.loc)
	if err != nil {
		return nil, apperr.ValidationField("date", "invalid date %q", day)
	}
	start, end := dates.DayBounds(date, s.loc)

	var entries []models.MenuEntry
	err = s.entryQuery().
		Where("date >= ? AND date < ? AND is_custom = ?", start, end, false).
		Order("sort_order ASC").
		Find(&entries).Error
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load menu entries")
	}
	return entries, nil
}

func (s *MenuService) GetByDateRange(from, to string) ([]models.MenuEntry, error) {
	start, err := dates.ParseDay(from, s.loc)
	if err != nil {
		return nil, apperr.ValidationField("from", "invalid date %q", from)
	}
	toDate, err := dates.ParseDay(to, s.loc)
	if err != nil {
		return nil, apperr.ValidationField("to", "invalid date %q", to)
	}
	if toDate.Before(start) {
		return nil, apperr.ValidationField("to", "range end before start")
	}
	_, end := dates.DayBounds(toDate, s.loc)

	var entries []models.MenuEntry
	err = s.entryQuery().
		Where("date >= ? AND date < ? AND is_custom = ?", start, end, false).
		Order("date ASC, sort_order ASC").
		Find(&entries).Error
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load menu entries")
	}
	return entries, nil
}

// Save replaces the non-custom entries for a day with the submitted
// ordered item list: entries for items no longer listed are removed,
// new ones inserted, sort orders updated. Custom entries for the day
// are untouched.
func (s *MenuService) Save(day string, menuItemIDs []string) ([]models.MenuEntry, error) {
	date, err := dates.ParseDay(day, s.loc)
	if err != nil {
		return nil, apperr.ValidationField("date", "invalid date %q", day)
	}

	seen := make(map[string]bool, len(menuItemIDs))
	for _, id := range menuItemIDs {
		if seen[id] {
			return nil, apperr.ValidationField("menu_item_ids", "duplicate menu item %s", id)
		}
		seen[id] = true
	}

	if len(menuItemIDs) > 0 {
		var count int64
		err = s.db.Model(&models.MenuItem{}).Scopes(models.Active).
			Where("id IN ?", menuItemIDs).Count(&count).Error
		if err != nil {
			return nil, apperr.Internalf(err, "failed to check menu items")
		}
		if int(count) != len(menuItemIDs) {
			return nil, apperr.NotFoundf("one or more menu items not found")
		}
	}

	start, end := dates.DayBounds(date, s.loc)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.MenuEntry
		err := tx.Where("date >= ? AND date < ? AND is_custom = ?", start, end, false).
			Find(&existing).Error
		if err != nil {
			return apperr.Internalf(err, "failed to load existing entries")
		}

		byItem := make(map[string]*models.MenuEntry, len(existing))
		for i := range existing {
			byItem[existing[i].MenuItemID] = &existing[i]
		}

		for _, entry := range existing {
			if !seen[entry.MenuItemID] {
				if err := tx.Delete(&models.MenuEntry{}, "id = ?", entry.ID).Error; err != nil {
					return apperr.Internalf(err, "failed to remove menu entry")
				}
			}
		}

		for order, itemID := range menuItemIDs {
			if entry, ok := byItem[itemID]; ok {
				err := tx.Model(&models.MenuEntry{}).Where("id = ?", entry.ID).
					Update("sort_order", order).Error
				if err != nil {
					return apperr.Internalf(err, "failed to reorder menu entry")
				}
				continue
			}
			entry := models.MenuEntry{
				Date:       date,
				MenuItemID: itemID,
				SortOrder:  order,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return apperr.Internalf(err, "failed to create menu entry")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("menu saved", zap.String("date", day), zap.Int("items", len(menuItemIDs)))
	return s.GetByDate(day)
}

// CreateCustomEntry creates an off-calendar entry backing a manual
// order for an item not offered that day.
func (s *MenuService) CreateCustomEntry(day, menuItemID string) (*models.MenuEntry, error) {
	date, err := dates.ParseDay(day, s.loc)
	if err != nil {
		return nil, apperr.ValidationField("date", "invalid date %q", day)
	}

	var item models.MenuItem
	err = s.db.Scopes(models.Active).First(&item, "id = ?", menuItemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("menu item not found")
	}
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load menu item")
	}

	start, end := dates.DayBounds(date, s.loc)
	var count int64
	err = s.db.Model(&models.MenuEntry{}).
		Where("date >= ? AND date < ? AND menu_item_id = ? AND is_custom = ?", start, end, menuItemID, true).
		Count(&count).Error
	if err != nil {
		return nil, apperr.Internalf(err, "failed to check existing entries")
	}
	if count > 0 {
		return nil, apperr.Conflictf("custom entry already exists for this item and date")
	}

	entry := models.MenuEntry{
		Date:       date,
		MenuItemID: menuItemID,
		IsCustom:   true,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to create custom entry")
	}

	s.log.Info("custom entry created",
		zap.String("menu_entry_id", entry.ID),
		zap.String("date", day),
		zap.String("menu_item_id", menuItemID))

	entry.MenuItem = item
	return &entry, nil
}

// ConvertCustomToNormal flips the custom flag so the entry shows on the
// public calendar. Fails with a conflict when a normal entry for the
// same item and day already exists.
func (s *MenuService) ConvertCustomToNormal(entryID string) (*models.MenuEntry, error) {
	var entry models.MenuEntry
	err := s.db.First(&entry, "id = ?", entryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("menu entry not found")
	}
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load menu entry")
	}
	if !entry.IsCustom {
		return nil, apperr.Validationf("menu entry is not custom")
	}

	start, end := dates.DayBounds(entry.Date, s.loc)
	var count int64
	err = s.db.Model(&models.MenuEntry{}).
		Where("date >= ? AND date < ? AND menu_item_id = ? AND is_custom = ?", start, end, entry.MenuItemID, false).
		Count(&count).Error
	if err != nil {
		return nil, apperr.Internalf(err, "failed to check existing entries")
	}
	if count > 0 {
		return nil, apperr.Conflictf("a normal entry already exists for this item and date")
	}

	if err := s.db.Model(&models.MenuEntry{}).Where("id = ?", entryID).Update("is_custom", false).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to convert menu entry")
	}

	s.log.Info("custom entry converted", zap.String("menu_entry_id", entryID))
	entry.IsCustom = false
	return &entry, nil
}
