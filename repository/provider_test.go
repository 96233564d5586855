package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

func ptr[T any](v T) *T { return &v }

// runProviderContract checks the behaviour every DataProvider shares.
func runProviderContract(t *testing.T, newProvider func(t *testing.T) DataProvider) {
	ctx := context.Background()

	t.Run("add assigns ids and get returns the row", func(t *testing.T) {
		p := newProvider(t)

		first, err := p.AddBrewery(ctx, entity.Brewery{Name: "Sierra Nevada", Location: ptr("Chico, CA")})
		require.NoError(t, err)
		second, err := p.AddBrewery(ctx, entity.Brewery{Name: "Russian River"})
		require.NoError(t, err)
		assert.NotZero(t, first.ID)
		assert.Greater(t, second.ID, first.ID)

		got, err := p.GetBrewery(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sierra Nevada", got.Name)
		require.NotNil(t, got.Location)
		assert.Equal(t, "Chico, CA", *got.Location)

		all, err := p.ListBreweries(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("get missing is ErrNotFound", func(t *testing.T) {
		p := newProvider(t)

		_, err := p.GetMenu(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = p.GetItem(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = p.UpdateContainer(ctx, 42, entity.ItemContainerPatch{DisplayName: ptr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		p := newProvider(t)

		item, err := p.AddItem(ctx, entity.Item{
			InternalName: "pliny",
			DisplayName:  "Pliny the Elder",
			Style:        ptr("Double IPA"),
			ABV:          ptr(8.0),
		})
		require.NoError(t, err)

		updated, err := p.UpdateItem(ctx, item.ID, entity.ItemPatch{Description: ptr("Hoppy")})
		require.NoError(t, err)
		assert.Equal(t, "pliny", updated.InternalName)
		assert.Equal(t, "Pliny the Elder", updated.DisplayName)
		assert.Equal(t, "Double IPA", *updated.Style)
		assert.Equal(t, 8.0, *updated.ABV)
		assert.Equal(t, "Hoppy", *updated.Description)

		got, err := p.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("update rejects id change", func(t *testing.T) {
		p := newProvider(t)

		menu, err := p.AddMenu(ctx, entity.Menu{InternalName: "main", DisplayName: "Main"})
		require.NoError(t, err)

		_, err = p.UpdateMenu(ctx, menu.ID, entity.MenuPatch{ID: ptr(menu.ID + 1), DisplayName: ptr("Changed")})
		assert.ErrorIs(t, err, ErrImmutableField)

		got, err := p.GetMenu(ctx, menu.ID)
		require.NoError(t, err)
		assert.Equal(t, "Main", got.DisplayName)

		// sending the current id is allowed
		got, err = p.UpdateMenu(ctx, menu.ID, entity.MenuPatch{ID: ptr(menu.ID), DisplayName: ptr("Changed")})
		require.NoError(t, err)
		assert.Equal(t, "Changed", got.DisplayName)
	})

	t.Run("submenus sorted by order with missing last", func(t *testing.T) {
		p := newProvider(t)

		menu, err := p.AddMenu(ctx, entity.Menu{InternalName: "main", DisplayName: "Main"})
		require.NoError(t, err)
		other, err := p.AddMenu(ctx, entity.Menu{InternalName: "other", DisplayName: "Other"})
		require.NoError(t, err)

		for _, s := range []entity.SubMenu{
			{InternalName: "cans", DisplayName: "Cans", MenuID: menu.ID, Order: ptr(3)},
			{InternalName: "misc", DisplayName: "Misc", MenuID: menu.ID},
			{InternalName: "draft", DisplayName: "Draft", MenuID: menu.ID, Order: ptr(1)},
			{InternalName: "elsewhere", DisplayName: "Elsewhere", MenuID: other.ID, Order: ptr(0)},
		} {
			_, err := p.AddSubMenu(ctx, s)
			require.NoError(t, err)
		}

		subs, err := p.GetSubMenusForMenu(ctx, menu.ID)
		require.NoError(t, err)
		names := make([]string, 0, len(subs))
		for _, s := range subs {
			names = append(names, s.InternalName)
		}
		assert.Equal(t, []string{"draft", "cans", "misc"}, names)
	})

	t.Run("dangling references are rejected", func(t *testing.T) {
		p := newProvider(t)

		_, err := p.AddItem(ctx, entity.Item{InternalName: "x", DisplayName: "X", BreweryID: ptr(uint(99))})
		assert.ErrorIs(t, err, ErrReferenceNotFound)

		_, err = p.AddSubMenu(ctx, entity.SubMenu{InternalName: "x", DisplayName: "X", MenuID: 99})
		assert.ErrorIs(t, err, ErrReferenceNotFound)

		menu, err := p.AddMenu(ctx, entity.Menu{InternalName: "main", DisplayName: "Main"})
		require.NoError(t, err)
		other, err := p.AddMenu(ctx, entity.Menu{InternalName: "other", DisplayName: "Other"})
		require.NoError(t, err)
		item, err := p.AddItem(ctx, entity.Item{InternalName: "x", DisplayName: "X"})
		require.NoError(t, err)
		foreignSub, err := p.AddSubMenu(ctx, entity.SubMenu{InternalName: "s", DisplayName: "S", MenuID: other.ID})
		require.NoError(t, err)

		_, err = p.AddMenuItem(ctx, entity.MenuItem{MenuID: menu.ID, ItemID: 99})
		assert.ErrorIs(t, err, ErrReferenceNotFound)
		_, err = p.AddMenuItem(ctx, entity.MenuItem{MenuID: 99, ItemID: item.ID})
		assert.ErrorIs(t, err, ErrReferenceNotFound)
		_, err = p.AddMenuItem(ctx, entity.MenuItem{MenuID: menu.ID, ItemID: item.ID, SubMenuID: &foreignSub.ID})
		assert.ErrorIs(t, err, ErrReferenceNotFound)

		mi, err := p.AddMenuItem(ctx, entity.MenuItem{MenuID: menu.ID, ItemID: item.ID})
		require.NoError(t, err)
		_, err = p.AddSaleContainer(ctx, entity.SaleContainer{ContainerID: 99, MenuItemID: mi.ID, Price: 5})
		assert.ErrorIs(t, err, ErrReferenceNotFound)
		_, err = p.UpdateMenuItem(ctx, mi.ID, entity.MenuItemPatch{ItemID: ptr(uint(99))})
		assert.ErrorIs(t, err, ErrReferenceNotFound)
	})

	t.Run("remove sale container and menu item", func(t *testing.T) {
		p := newProvider(t)

		deleted, err := p.RemoveSaleContainer(ctx, 12345)
		require.NoError(t, err)
		assert.False(t, deleted)

		menu, err := p.AddMenu(ctx, entity.Menu{InternalName: "main", DisplayName: "Main"})
		require.NoError(t, err)
		item, err := p.AddItem(ctx, entity.Item{InternalName: "x", DisplayName: "X"})
		require.NoError(t, err)
		crowler, err := p.AddContainer(ctx, entity.ItemContainer{ContainerName: "Crowler", DisplayName: "Crowler"})
		require.NoError(t, err)
		mi, err := p.AddMenuItem(ctx, entity.MenuItem{MenuID: menu.ID, ItemID: item.ID})
		require.NoError(t, err)
		first, err := p.AddSaleContainer(ctx, entity.SaleContainer{ContainerID: crowler.ID, MenuItemID: mi.ID, Price: 6.5})
		require.NoError(t, err)
		_, err = p.AddSaleContainer(ctx, entity.SaleContainer{ContainerID: crowler.ID, MenuItemID: mi.ID, Price: 12})
		require.NoError(t, err)

		deleted, err = p.RemoveSaleContainer(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
		sales, err := p.GetSaleContainersForMenuItem(ctx, mi.ID)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, 12.0, sales[0].Price)

		deleted, err = p.RemoveMenuItem(ctx, mi.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
		sales, err = p.GetSaleContainersForMenuItem(ctx, mi.ID)
		require.NoError(t, err)
		assert.Empty(t, sales)

		deleted, err = p.RemoveMenuItem(ctx, mi.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("menu items for menu", func(t *testing.T) {
		p := newProvider(t)

		menu, err := p.AddMenu(ctx, entity.Menu{InternalName: "main", DisplayName: "Main"})
		require.NoError(t, err)
		other, err := p.AddMenu(ctx, entity.Menu{InternalName: "other", DisplayName: "Other"})
		require.NoError(t, err)
		item, err := p.AddItem(ctx, entity.Item{InternalName: "x", DisplayName: "X"})
		require.NoError(t, err)

		_, err = p.AddMenuItem(ctx, entity.MenuItem{MenuID: menu.ID, ItemID: item.ID})
		require.NoError(t, err)
		_, err = p.AddMenuItem(ctx, entity.MenuItem{MenuID: other.ID, ItemID: item.ID})
		require.NoError(t, err)

		placements, err := p.GetMenuItemsForMenu(ctx, menu.ID)
		require.NoError(t, err)
		require.Len(t, placements, 1)
		assert.Equal(t, menu.ID, placements[0].MenuID)
	})

	t.Run("moving a submenu detaches placements left on the old menu", func(t *testing.T) {
		p := newProvider(t)

		menu, err := p.AddMenu(ctx, entity.Menu{InternalName: "main", DisplayName: "Main"})
		require.NoError(t, err)
		other, err := p.AddMenu(ctx, entity.Menu{InternalName: "other", DisplayName: "Other"})
		require.NoError(t, err)
		item, err := p.AddItem(ctx, entity.Item{InternalName: "x", DisplayName: "X"})
		require.NoError(t, err)
		draft, err := p.AddSubMenu(ctx, entity.SubMenu{InternalName: "draft", DisplayName: "Draft", MenuID: menu.ID})
		require.NoError(t, err)
		mi, err := p.AddMenuItem(ctx, entity.MenuItem{MenuID: menu.ID, ItemID: item.ID, SubMenuID: &draft.ID})
		require.NoError(t, err)

		moved, err := p.UpdateSubMenu(ctx, draft.ID, entity.SubMenuPatch{MenuID: &other.ID})
		require.NoError(t, err)
		assert.Equal(t, other.ID, moved.MenuID)

		got, err := p.GetMenuItem(ctx, mi.ID)
		require.NoError(t, err)
		assert.Nil(t, got.SubMenuID)

		updated, err := p.UpdateMenuItem(ctx, mi.ID, entity.MenuItemPatch{Order: ptr(5)})
		require.NoError(t, err)
		require.NotNil(t, updated.Order)
		assert.Equal(t, 5, *updated.Order)

		// a placement on the new menu may now use it
		_, err = p.AddMenuItem(ctx, entity.MenuItem{MenuID: other.ID, ItemID: item.ID, SubMenuID: &draft.ID})
		require.NoError(t, err)
	})
}
