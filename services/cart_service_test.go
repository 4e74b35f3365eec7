package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchen-api/models"
	"kitchen-api/skukey"
)

func TestReconcilePricesValidLines(t *testing.T) {
	f := newFixture(t)
	carts := f.carts()

	largeKey := skukey.Encode(f.entry.ID, f.item.ID, skukey.Selection{
		f.size.ID: {f.large.ID},
	})
	regularKey := skukey.Encode(f.entry.ID, f.item.ID, skukey.Selection{
		f.size.ID: {f.regular.ID},
	})

	view, err := carts.Reconcile(map[string]int{largeKey: 2, regularKey: 1})
	require.NoError(t, err)

	require.Len(t, view.Lines, 2)
	assert.Equal(t, map[string]int{largeKey: 2, regularKey: 1}, view.Items)
	assert.Equal(t, int64(2*1300+1000), view.Total)

	for _, line := range view.Lines {
		assert.Equal(t, "Chicken Biryani", line.ItemName)
		switch line.Key {
		case largeKey:
			assert.Equal(t, int64(1300), line.UnitPrice)
			assert.Equal(t, int64(2600), line.LineTotal)
			assert.Equal(t, []string{"Large"}, line.OptionNames)
		case regularKey:
			assert.Equal(t, int64(1000), line.UnitPrice)
		default:
			t.Fatalf("unexpected line key %s", line.Key)
		}
	}
}

func TestReconcileDropsStaleKeysWithoutError(t *testing.T) {
	tests := []struct {
		name  string
		stale func(t *testing.T, f *fixture)
	}{
		{"option removed from menu", func(t *testing.T, f *fixture) {
			f.softDelete(t, &models.ModifierOption{}, f.large.ID)
		}},
		{"group removed from catalog", func(t *testing.T, f *fixture) {
			f.softDelete(t, &models.ModifierGroup{}, f.size.ID)
		}},
		{"group detached from item", func(t *testing.T, f *fixture) {
			require.NoError(t, f.db.
				Where("menu_item_id = ? AND modifier_group_id = ?", f.item.ID, f.size.ID).
				Delete(&models.MenuItemModifierGroup{}).Error)
		}},
		{"item removed from catalog", func(t *testing.T, f *fixture) {
			f.softDelete(t, &models.MenuItem{}, f.item.ID)
		}},
		{"entry removed from menu", func(t *testing.T, f *fixture) {
			require.NoError(t, f.db.Delete(&models.MenuEntry{}, "id = ?", f.entry.ID).Error)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			staleKey := skukey.Encode(f.entry.ID, f.item.ID, skukey.Selection{
				f.size.ID: {f.large.ID},
			})
			lassi, lassiEntry := f.addPlainItem(t, "Mango Lassi", 450)
			keepKey := skukey.Encode(lassiEntry.ID, lassi.ID, skukey.Selection{})

			tt.stale(t, f)

			view, err := f.carts().Reconcile(map[string]int{staleKey: 2, keepKey: 1})
			require.NoError(t, err, "stale keys are dropped, never surfaced as errors")

			require.Len(t, view.Lines, 1)
			assert.Equal(t, keepKey, view.Lines[0].Key)
			assert.Equal(t, map[string]int{keepKey: 1}, view.Items)
			assert.Equal(t, int64(450), view.Total)
		})
	}
}

func TestReconcileEmptiesCartWhenNothingSurvives(t *testing.T) {
	f := newFixture(t)
	key := skukey.Encode(f.entry.ID, f.item.ID, skukey.Selection{
		f.size.ID: {f.large.ID},
	})
	f.softDelete(t, &models.ModifierOption{}, f.large.ID)

	view, err := f.carts().Reconcile(map[string]int{key: 2, "garbage": 1})
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.Total)
}

func TestReconcileDropsNonPositiveQuantities(t *testing.T) {
	f := newFixture(t)
	key := skukey.Encode(f.entry.ID, f.item.ID, skukey.Selection{
		f.size.ID: {f.regular.ID},
	})

	view, err := f.carts().Reconcile(map[string]int{key: 0})
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestMergeQuantity(t *testing.T) {
	cart := map[string]int{}

	MergeQuantity(cart, "k", 2)
	assert.Equal(t, 2, cart["k"])

	MergeQuantity(cart, "k", 3)
	assert.Equal(t, 5, cart["k"])

	MergeQuantity(cart, "k", -5)
	_, ok := cart["k"]
	assert.False(t, ok, "quantity reaching zero removes the key")

	MergeQuantity(cart, "other", -1)
	assert.NotContains(t, cart, "other")
}
