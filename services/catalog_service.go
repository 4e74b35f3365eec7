package services

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kitchen-api/dtos"
	"kitchen-api/models"
	"kitchen-api/utils/apperr"
)

// CatalogService owns menu items, modifier groups and options. Catalog
// rows are soft-deleted so historical orders keep valid references;
// every read here applies models.Active explicitly.
type CatalogService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCatalogService(db *gorm.DB, log *zap.Logger) *CatalogService {
	return &CatalogService{db: db, log: log}
}

func (s *CatalogService) ListMenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.Scopes(models.Active).
		Preload("GroupLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("GroupLinks.ModifierGroup", "deleted_at IS NULL").
		Preload("GroupLinks.ModifierGroup.Options", "deleted_at IS NULL", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Internalf(err, "failed to list menu items")
	}
	return items, nil
}

func (s *CatalogService) GetMenuItem(id string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.Scopes(models.Active).
		Preload("GroupLinks.ModifierGroup", "deleted_at IS NULL").
		Preload("GroupLinks.ModifierGroup.Options", "deleted_at IS NULL").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("menu item not found")
	}
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load menu item")
	}
	return &item, nil
}

func (s *CatalogService) CreateMenuItem(input dtos.MenuItemInput) (*models.MenuItem, error) {
	if err := s.checkGroupsExist(input.Groups); err != nil {
		return nil, err
	}

	item := models.MenuItem{
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return apperr.Internalf(err, "failed to create menu item")
		}
		return createGroupLinks(tx, item.ID, input.Groups)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("menu item created", zap.String("menu_item_id", item.ID), zap.String("name", item.Name))
	return s.GetMenuItem(item.ID)
}

func (s *CatalogService) UpdateMenuItem(id string, input dtos.MenuItemInput) (*models.MenuItem, error) {
	item, err := s.GetMenuItem(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkGroupsExist(input.Groups); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":        input.Name,
			"description": input.Description,
			"base_price":  input.BasePrice,
		}
		if err := tx.Model(&models.MenuItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return apperr.Internalf(err, "failed to update menu item")
		}
		// Group assignments are replaced wholesale.
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.MenuItemModifierGroup{}).Error; err != nil {
			return apperr.Internalf(err, "failed to clear group assignments")
		}
		return createGroupLinks(tx, id, input.Groups)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("menu item updated", zap.String("menu_item_id", item.ID))
	return s.GetMenuItem(id)
}

// DeleteMenuItem soft-deletes; the row stays for historical orders.
func (s *CatalogService) DeleteMenuItem(id string) error {
	if _, err := s.GetMenuItem(id); err != nil {
		return err
	}
	now := time.Now()
	if err := s.db.Model(&models.MenuItem{}).Where("id = ?", id).Update("deleted_at", now).Error; err != nil {
		return apperr.Internalf(err, "failed to delete menu item")
	}
	s.log.Info("menu item deleted", zap.String("menu_item_id", id))
	return nil
}

func (s *CatalogService) ListModifierGroups() ([]models.ModifierGroup, error) {
	var groups []models.ModifierGroup
	err := s.db.Scopes(models.Active).
		Preload("Options", "deleted_at IS NULL", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("name ASC").
		Find(&groups).Error
	if err != nil {
		return nil, apperr.Internalf(err, "failed to list modifier groups")
	}
	return groups, nil
}

func (s *CatalogService) GetModifierGroup(id string) (*models.ModifierGroup, error) {
	var group models.ModifierGroup
	err := s.db.Scopes(models.Active).
		Preload("Options", "deleted_at IS NULL", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("modifier group not found")
	}
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load modifier group")
	}
	return &group, nil
}

func (s *CatalogService) CreateModifierGroup(input dtos.ModifierGroupInput) (*models.ModifierGroup, error) {
	if err := validateGroupInput(input); err != nil {
		return nil, err
	}

	group := models.ModifierGroup{
		Name:      input.Name,
		MinSelect: input.MinSelect,
		MaxSelect: input.MaxSelect,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return apperr.Internalf(err, "failed to create modifier group")
		}
		for i, opt := range input.Options {
			option := models.ModifierOption{
				ModifierGroupID: group.ID,
				Name:            opt.Name,
				PriceDelta:      opt.PriceDelta,
				SortOrder:       i,
			}
			if err := tx.Create(&option).Error; err != nil {
				return apperr.Internalf(err, "failed to create modifier option")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("modifier group created", zap.String("modifier_group_id", group.ID), zap.String("name", group.Name))
	return s.GetModifierGroup(group.ID)
}

// UpdateModifierGroup diffs the submitted option list against the
// active options: options with an ID are updated, active options
// missing from the input are soft-deleted, options without an ID are
// created.
func (s *CatalogService) UpdateModifierGroup(id string, input dtos.ModifierGroupInput) (*models.ModifierGroup, error) {
	group, err := s.GetModifierGroup(id)
	if err != nil {
		return nil, err
	}
	if err := validateGroupInput(input); err != nil {
		return nil, err
	}

	submitted := make(map[string]bool, len(input.Options))
	for _, opt := range input.Options {
		if opt.ID != "" {
			submitted[opt.ID] = true
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"name":       input.Name,
			"min_select": input.MinSelect,
			"max_select": input.MaxSelect,
		}
		if err := tx.Model(&models.ModifierGroup{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return apperr.Internalf(err, "failed to update modifier group")
		}

		now := time.Now()
		for _, existing := range group.Options {
			if !submitted[existing.ID] {
				err := tx.Model(&models.ModifierOption{}).
					Where("id = ?", existing.ID).
					Update("deleted_at", now).Error
				if err != nil {
					return apperr.Internalf(err, "failed to delete modifier option")
				}
			}
		}

		for i, opt := range input.Options {
			if opt.ID != "" {
				err := tx.Model(&models.ModifierOption{}).
					Where("id = ? AND modifier_group_id = ?", opt.ID, id).
					Updates(map[string]any{
						"name":        opt.Name,
						"price_delta": opt.PriceDelta,
						"sort_order":  i,
					}).Error
				if err != nil {
					return apperr.Internalf(err, "failed to update modifier option")
				}
				continue
			}
			option := models.ModifierOption{
				ModifierGroupID: id,
				Name:            opt.Name,
				PriceDelta:      opt.PriceDelta,
				SortOrder:       i,
			}
			if err := tx.Create(&option).Error; err != nil {
				return apperr.Internalf(err, "failed to create modifier option")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("modifier group updated", zap.String("modifier_group_id", id))
	return s.GetModifierGroup(id)
}

func (s *CatalogService) DeleteModifierGroup(id string) error {
	if _, err := s.GetModifierGroup(id); err != nil {
		return err
	}
	now := time.Now()
	if err := s.db.Model(&models.ModifierGroup{}).Where("id = ?", id).Update("deleted_at", now).Error; err != nil {
		return apperr.Internalf(err, "failed to delete modifier group")
	}
	s.log.Info("modifier group deleted", zap.String("modifier_group_id", id))
	return nil
}

func validateGroupInput(input dtos.ModifierGroupInput) error {
	if input.MaxSelect != nil && *input.MaxSelect < input.MinSelect {
		return apperr.ValidationField("max_select", "max_select must be >= min_select")
	}
	names := make(map[string]bool, len(input.Options))
	for _, opt := range input.Options {
		if names[opt.Name] {
			return apperr.ValidationField("options", "duplicate option name %q", opt.Name)
		}
		names[opt.Name] = true
	}
	return nil
}

func (s *CatalogService) checkGroupsExist(groups []dtos.GroupAssignmentInput) error {
	if len(groups) == 0 {
		return nil
	}
	ids := make([]string, 0, len(groups))
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		if seen[g.ModifierGroupID] {
			return apperr.ValidationField("groups", "duplicate modifier group %s", g.ModifierGroupID)
		}
		seen[g.ModifierGroupID] = true
		ids = append(ids, g.ModifierGroupID)
	}

	var count int64
	if err := s.db.Model(&models.ModifierGroup{}).Scopes(models.Active).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return apperr.Internalf(err, "failed to check modifier groups")
	}
	if int(count) != len(ids) {
		return apperr.NotFoundf("one or more modifier groups not found")
	}
	return nil
}

func createGroupLinks(tx *gorm.DB, itemID string, groups []dtos.GroupAssignmentInput) error {
	for _, g := range groups {
		link := models.MenuItemModifierGroup{
			MenuItemID:      itemID,
			ModifierGroupID: g.ModifierGroupID,
			SortOrder:       g.SortOrder,
		}
		if err := tx.Create(&link).Error; err != nil {
			return apperr.Internalf(err, "failed to assign modifier group")
		}
	}
	return nil
}
