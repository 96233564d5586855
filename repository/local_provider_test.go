package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

func newTestLocalProvider(t *testing.T) DataProvider {
	log, _ := test.NewNullLogger()
	return NewLocalProvider(log)
}

func TestLocalProviderContract(t *testing.T) {
	runProviderContract(t, newTestLocalProvider)
}

func TestLocalProviderReturnsCopies(t *testing.T) {
	ctx := context.Background()
	p := newTestLocalProvider(t)

	c, err := p.AddContainer(ctx, entity.ItemContainer{ContainerName: "Pint", DisplayName: "Pint", Order: ptr(1)})
	require.NoError(t, err)
	*c.Order = 9

	got, err := p.GetContainer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, *got.Order)
}

func writeFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestNewLocalProviderFromDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFixture(t, dir, "breweries.json", `[{"id": 3, "name": "Sierra Nevada"}]`)
	writeFixture(t, dir, "items.json", `[{"id": 7, "internalName": "pale", "displayName": "Pale Ale", "breweryId": 3}]`)
	writeFixture(t, dir, "containers.json", `[{"id": 2, "containerName": "Crowler", "displayName": "Crowler"}]`)
	writeFixture(t, dir, "saleContainers.json", `[{"id": 1, "containerId": 2, "menuItemId": 4, "price": 6.5}]`)
	writeFixture(t, dir, "menus.json", `[{"id": 1, "internalName": "main", "displayName": "Main"}]`)
	writeFixture(t, dir, "subMenus.json", `[{"id": 5, "internalName": "draft", "displayName": "Draft", "menuId": 1, "order": 1}]`)
	writeFixture(t, dir, "menuItems.json", `[{"id": 4, "menuId": 1, "itemId": 7, "subMenuId": 5}]`)

	log, _ := test.NewNullLogger()
	p, err := NewLocalProviderFromDir(dir, log)
	require.NoError(t, err)

	item, err := p.GetItem(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Pale Ale", item.DisplayName)
	assert.Equal(t, uint(3), *item.BreweryID)

	sales, err := p.GetSaleContainersForMenuItem(ctx, 4)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 6.5, sales[0].Price)

	// new ids continue after the highest loaded one
	b, err := p.AddBrewery(ctx, entity.Brewery{Name: "Russian River"})
	require.NoError(t, err)
	assert.Equal(t, uint(4), b.ID)
	mi, err := p.AddMenuItem(ctx, entity.MenuItem{MenuID: 1, ItemID: 7})
	require.NoError(t, err)
	assert.Equal(t, uint(5), mi.ID)
}

func TestNewLocalProviderFromDirMissingFiles(t *testing.T) {
	log, _ := test.NewNullLogger()

	p, err := NewLocalProviderFromDir(filepath.Join(t.TempDir(), "nope"), log)
	require.NoError(t, err)
	menus, err := p.ListMenus(context.Background())
	require.NoError(t, err)
	assert.Empty(t, menus)
}

func TestNewLocalProviderFromDirInvalid(t *testing.T) {
	log, _ := test.NewNullLogger()

	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name:  "malformed json",
			files: map[string]string{"menus.json": `{"id": 1`},
		},
		{
			name: "duplicate id",
			files: map[string]string{"menus.json": `[
				{"id": 1, "internalName": "a", "displayName": "A"},
				{"id": 1, "internalName": "b", "displayName": "B"}
			]`},
		},
		{
			name:  "dangling reference",
			files: map[string]string{"subMenus.json": `[{"id": 1, "internalName": "a", "displayName": "A", "menuId": 9}]`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, body := range tt.files {
				writeFixture(t, dir, name, body)
			}
			_, err := NewLocalProviderFromDir(dir, log)
			assert.ErrorIs(t, err, ErrInvalidFixture)
		})
	}
}

func TestRestoreAssignsMissingIDs(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := NewLocalProvider(log)

	err := p.Restore(&Fixtures{Menus: []entity.Menu{
		{ID: 5, InternalName: "a", DisplayName: "A"},
		{InternalName: "b", DisplayName: "B"},
	}})
	require.NoError(t, err)

	snap := p.Snapshot()
	require.Len(t, snap.Menus, 2)
	assert.Equal(t, uint(5), snap.Menus[0].ID)
	assert.Equal(t, uint(6), snap.Menus[1].ID)
	assert.Equal(t, "b", snap.Menus[1].InternalName)
}
