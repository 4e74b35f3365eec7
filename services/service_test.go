package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kitchen-api/config"
	"kitchen-api/models"
	"kitchen-api/utils/dates"
)

// newTestDB opens a uniquely named shared in-memory SQLite database so
// every connection in the pool sees the same schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

// fixture is the catalog most service tests start from: one item with
// a required single-select size group (Regular +0, Large +300) and a
// menu entry for the fixed test day.
type fixture struct {
	db       *gorm.DB
	user     models.User
	item     models.MenuItem
	size     models.ModifierGroup
	regular  models.ModifierOption
	large    models.ModifierOption
	entry    models.MenuEntry
	day      string
	location *time.Location
}

const testDay = "2026-03-15"

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{db: db, day: testDay, location: time.UTC}

	f.user = models.User{Name: "Priya", PhoneNumber: "5550100002", PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&f.user).Error)

	one := 1
	f.size = models.ModifierGroup{Name: "Size", MinSelect: 1, MaxSelect: &one}
	require.NoError(t, db.Create(&f.size).Error)

	f.regular = models.ModifierOption{ModifierGroupID: f.size.ID, Name: "Regular", PriceDelta: 0, SortOrder: 0}
	f.large = models.ModifierOption{ModifierGroupID: f.size.ID, Name: "Large", PriceDelta: 300, SortOrder: 1}
	require.NoError(t, db.Create(&f.regular).Error)
	require.NoError(t, db.Create(&f.large).Error)

	f.item = models.MenuItem{Name: "Chicken Biryani", BasePrice: 1000}
	require.NoError(t, db.Create(&f.item).Error)
	require.NoError(t, db.Create(&models.MenuItemModifierGroup{
		MenuItemID: f.item.ID, ModifierGroupID: f.size.ID,
	}).Error)

	f.entry = f.addEntry(t, f.item.ID, testDay)
	return f
}

func (f *fixture) addEntry(t *testing.T, itemID, day string) models.MenuEntry {
	t.Helper()
	date, err := dates.ParseDay(day, f.location)
	require.NoError(t, err)
	entry := models.MenuEntry{Date: date, MenuItemID: itemID}
	require.NoError(t, f.db.Create(&entry).Error)
	return entry
}

// addPlainItem creates an item with no modifier groups and an entry for
// the test day.
func (f *fixture) addPlainItem(t *testing.T, name string, basePrice int64) (models.MenuItem, models.MenuEntry) {
	t.Helper()
	item := models.MenuItem{Name: name, BasePrice: basePrice}
	require.NoError(t, f.db.Create(&item).Error)
	return item, f.addEntry(t, item.ID, testDay)
}

func (f *fixture) addUser(t *testing.T, name, phone string) models.User {
	t.Helper()
	user := models.User{Name: name, PhoneNumber: phone, PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func (f *fixture) orders() *OrderService {
	return NewOrderService(f.db, zap.NewNop(), f.location)
}

func (f *fixture) aggregations() *AggregationService {
	return NewAggregationService(f.db, zap.NewNop(), f.location)
}

func (f *fixture) carts() *CartService {
	return NewCartService(f.db, zap.NewNop())
}

func (f *fixture) menus() *MenuService {
	return NewMenuService(f.db, zap.NewNop(), f.location)
}

func (f *fixture) catalog() *CatalogService {
	return NewCatalogService(f.db, zap.NewNop())
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *fixture) softDelete(t *testing.T, model any, id string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.db.Model(model).Where("id = ?", id).Update("deleted_at", now).Error)
}
