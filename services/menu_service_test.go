package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchen-api/models"
	"kitchen-api/utils/apperr"
)

func TestGetByDateReturnsActiveGraph(t *testing.T) {
	f := newFixture(t)
	menus := f.menus()

	entries, err := menus.GetByDate(testDay)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "Chicken Biryani", entry.MenuItem.Name)
	require.Len(t, entry.MenuItem.GroupLinks, 1)
	group := entry.MenuItem.GroupLinks[0].ModifierGroup
	assert.Equal(t, "Size", group.Name)
	require.Len(t, group.Options, 2)
	assert.Equal(t, "Regular", group.Options[0].Name)
	assert.Equal(t, "Large", group.Options[1].Name)
}

func TestGetByDateExcludesCustomEntriesAndDeletedOptions(t *testing.T) {
	f := newFixture(t)
	menus := f.menus()

	_, err := menus.CreateCustomEntry(testDay, f.item.ID)
	require.NoError(t, err)
	f.softDelete(t, &models.ModifierOption{}, f.large.ID)

	entries, err := menus.GetByDate(testDay)
	require.NoError(t, err)
	require.Len(t, entries, 1, "custom entries stay off the public calendar")

	options := entries[0].MenuItem.GroupLinks[0].ModifierGroup.Options
	require.Len(t, options, 1)
	assert.Equal(t, "Regular", options[0].Name)
}

func TestGetByDateRange(t *testing.T) {
	f := newFixture(t)
	menus := f.menus()
	f.addEntry(t, f.item.ID, "2026-03-17")

	entries, err := menus.GetByDateRange("2026-03-15", "2026-03-17")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = menus.GetByDateRange("2026-03-16", "2026-03-16")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = menus.GetByDateRange("2026-03-17", "2026-03-15")
	requireKind(t, err, apperr.Validation)
}

func TestSaveDiffsEntries(t *testing.T) {
	f := newFixture(t)
	menus := f.menus()
	lassi, _ := f.addPlainItem(t, "Mango Lassi", 450)
	samosa := models.MenuItem{Name: "Samosa", BasePrice: 250}
	require.NoError(t, f.db.Create(&samosa).Error)

	// Fixture day currently lists biryani and lassi. Replace with
	// samosa first, then biryani; lassi drops off.
	entries, err := menus.Save(testDay, []string{samosa.ID, f.item.ID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, samosa.ID, entries[0].MenuItemID)
	assert.Equal(t, f.item.ID, entries[1].MenuItemID)
	assert.Equal(t, 0, entries[0].SortOrder)
	assert.Equal(t, 1, entries[1].SortOrder)

	// The surviving entry keeps its row (and therefore its ID).
	assert.Equal(t, f.entry.ID, entries[1].ID)

	var lassiEntries int64
	require.NoError(t, f.db.Model(&models.MenuEntry{}).
		Where("menu_item_id = ?", lassi.ID).Count(&lassiEntries).Error)
	assert.Equal(t, int64(0), lassiEntries)
}

func TestSaveLeavesCustomEntriesAlone(t *testing.T) {
	f := newFixture(t)
	menus := f.menus()

	custom, err := menus.CreateCustomEntry(testDay, f.item.ID)
	require.NoError(t, err)

	_, err = menus.Save(testDay, nil)
	require.NoError(t, err)

	var remaining models.MenuEntry
	require.NoError(t, f.db.First(&remaining, "id = ?", custom.ID).Error)
	assert.True(t, remaining.IsCustom)
}

func TestSaveRejectsDuplicatesAndUnknownItems(t *testing.T) {
	f := newFixture(t)
	menus := f.menus()

	_, err := menus.Save(testDay, []string{f.item.ID, f.item.ID})
	requireKind(t, err, apperr.Validation)

	_, err = menus.Save(testDay, []string{"00000000-0000-4000-8000-000000000000"})
	requireKind(t, err, apperr.NotFound)

	f.softDelete(t, &models.MenuItem{}, f.item.ID)
	_, err = menus.Save(testDay, []string{f.item.ID})
	requireKind(t, err, apperr.NotFound)
}

func TestCreateCustomEntryConflictsOnDuplicate(t *testing.T) {
	f := newFixture(t)
	menus := f.menus()

	entry, err := menus.CreateCustomEntry(testDay, f.item.ID)
	require.NoError(t, err)
	assert.True(t, entry.IsCustom)

	_, err = menus.CreateCustomEntry(testDay, f.item.ID)
	requireKind(t, err, apperr.Conflict)
}

func TestConvertCustomToNormal(t *testing.T) {
	f := newFixture(t)
	menus := f.menus()
	lassi, _ := f.addPlainItem(t, "Mango Lassi", 450)

	// Converting when a normal entry for the same item and day exists
	// is a conflict: the fixture already lists biryani.
	custom, err := menus.CreateCustomEntry(testDay, f.item.ID)
	require.NoError(t, err)
	_, err = menus.ConvertCustomToNormal(custom.ID)
	requireKind(t, err, apperr.Conflict)

	// Lassi has a custom entry only, but the fixture's addPlainItem
	// already put it on the calendar; use a fresh day instead.
	free, err := menus.CreateCustomEntry("2026-03-20", lassi.ID)
	require.NoError(t, err)
	converted, err := menus.ConvertCustomToNormal(free.ID)
	require.NoError(t, err)
	assert.False(t, converted.IsCustom)

	entries, err := menus.GetByDate("2026-03-20")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, lassi.ID, entries[0].MenuItemID)

	// Converting a non-custom entry is rejected.
	_, err = menus.ConvertCustomToNormal(f.entry.ID)
	requireKind(t, err, apperr.Validation)
}
