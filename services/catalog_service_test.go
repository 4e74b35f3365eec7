package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchen-api/dtos"
	"kitchen-api/models"
	"kitchen-api/utils/apperr"
)

func TestCreateMenuItemWithGroupAssignments(t *testing.T) {
	f := newFixture(t)
	catalog := f.catalog()

	item, err := catalog.CreateMenuItem(dtos.MenuItemInput{
		Name:      "Paneer Tikka",
		BasePrice: 850,
		Groups: []dtos.GroupAssignmentInput{
			{ModifierGroupID: f.size.ID, SortOrder: 0},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Paneer Tikka", item.Name)
	assert.Equal(t, int64(850), item.BasePrice)
	require.Len(t, item.GroupLinks, 1)
	assert.Equal(t, f.size.ID, item.GroupLinks[0].ModifierGroup.ID)
}

func TestCreateMenuItemRejectsUnknownGroup(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog().CreateMenuItem(dtos.MenuItemInput{
		Name: "Paneer Tikka",
		Groups: []dtos.GroupAssignmentInput{
			{ModifierGroupID: "00000000-0000-4000-8000-000000000000"},
		},
	})
	requireKind(t, err, apperr.NotFound)
}

func TestUpdateMenuItemReplacesGroupAssignments(t *testing.T) {
	f := newFixture(t)
	catalog := f.catalog()

	spice := models.ModifierGroup{Name: "Spice Level"}
	require.NoError(t, f.db.Create(&spice).Error)

	item, err := catalog.UpdateMenuItem(f.item.ID, dtos.MenuItemInput{
		Name:      "Chicken Biryani (Family)",
		BasePrice: 1800,
		Groups: []dtos.GroupAssignmentInput{
			{ModifierGroupID: spice.ID, SortOrder: 0},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Chicken Biryani (Family)", item.Name)
	assert.Equal(t, int64(1800), item.BasePrice)
	require.Len(t, item.GroupLinks, 1, "assignments are replaced wholesale")
	assert.Equal(t, spice.ID, item.GroupLinks[0].ModifierGroup.ID)
}

func TestDeleteMenuItemIsSoft(t *testing.T) {
	f := newFixture(t)
	catalog := f.catalog()

	require.NoError(t, catalog.DeleteMenuItem(f.item.ID))

	_, err := catalog.GetMenuItem(f.item.ID)
	requireKind(t, err, apperr.NotFound)

	items, err := catalog.ListMenuItems()
	require.NoError(t, err)
	assert.Empty(t, items)

	// The row itself survives for historical orders.
	var raw models.MenuItem
	require.NoError(t, f.db.First(&raw, "id = ?", f.item.ID).Error)
	assert.NotNil(t, raw.DeletedAt)

	require.Error(t, catalog.DeleteMenuItem(f.item.ID), "deleting twice is a not-found")
}

func TestCreateModifierGroupValidatesBounds(t *testing.T) {
	f := newFixture(t)
	catalog := f.catalog()

	zero := 0
	_, err := catalog.CreateModifierGroup(dtos.ModifierGroupInput{
		Name:      "Broken",
		MinSelect: 1,
		MaxSelect: &zero,
	})
	requireKind(t, err, apperr.Validation)

	_, err = catalog.CreateModifierGroup(dtos.ModifierGroupInput{
		Name: "Broken",
		Options: []dtos.ModifierOptionInput{
			{Name: "Mild"},
			{Name: "Mild"},
		},
	})
	requireKind(t, err, apperr.Validation)
}

func TestCreateModifierGroupWithOptions(t *testing.T) {
	f := newFixture(t)
	catalog := f.catalog()

	group, err := catalog.CreateModifierGroup(dtos.ModifierGroupInput{
		Name:      "Spice Level",
		MinSelect: 0,
		Options: []dtos.ModifierOptionInput{
			{Name: "Mild"},
			{Name: "Hot", PriceDelta: 50},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, group.MaxSelect)
	require.Len(t, group.Options, 2)
	assert.Equal(t, "Mild", group.Options[0].Name)
	assert.Equal(t, "Hot", group.Options[1].Name)
	assert.Equal(t, int64(50), group.Options[1].PriceDelta)
}

func TestUpdateModifierGroupDiffsOptions(t *testing.T) {
	f := newFixture(t)
	catalog := f.catalog()

	two := 2
	group, err := catalog.UpdateModifierGroup(f.size.ID, dtos.ModifierGroupInput{
		Name:      "Portion",
		MinSelect: 1,
		MaxSelect: &two,
		Options: []dtos.ModifierOptionInput{
			{ID: f.regular.ID, Name: "Standard", PriceDelta: 0},
			{Name: "Extra Large", PriceDelta: 500},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Portion", group.Name)
	require.NotNil(t, group.MaxSelect)
	assert.Equal(t, 2, *group.MaxSelect)

	// Regular renamed in place, Large soft-deleted, Extra Large added.
	require.Len(t, group.Options, 2)
	assert.Equal(t, f.regular.ID, group.Options[0].ID)
	assert.Equal(t, "Standard", group.Options[0].Name)
	assert.Equal(t, "Extra Large", group.Options[1].Name)

	var large models.ModifierOption
	require.NoError(t, f.db.First(&large, "id = ?", f.large.ID).Error)
	assert.NotNil(t, large.DeletedAt)
}

func TestDeleteModifierGroupIsSoft(t *testing.T) {
	f := newFixture(t)
	catalog := f.catalog()

	require.NoError(t, catalog.DeleteModifierGroup(f.size.ID))

	_, err := catalog.GetModifierGroup(f.size.ID)
	requireKind(t, err, apperr.NotFound)

	groups, err := catalog.ListModifierGroups()
	require.NoError(t, err)
	assert.Empty(t, groups)

	var raw models.ModifierGroup
	require.NoError(t, f.db.First(&raw, "id = ?", f.size.ID).Error)
	assert.NotNil(t, raw.DeletedAt)
}
