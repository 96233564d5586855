package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrReferenceNotFound = errors.New("reference not found")
	ErrImmutableField    = errors.New("field cannot be modified")
	ErrInvalidFixture    = errors.New("invalid fixture")
)

type BreweryStore interface {
	AddBrewery(ctx context.Context, b entity.Brewery) (entity.Brewery, error)
	GetBrewery(ctx context.Context, id uint) (entity.Brewery, error)
	ListBreweries(ctx context.Context) ([]entity.Brewery, error)
	UpdateBrewery(ctx context.Context, id uint, p entity.BreweryPatch) (entity.Brewery, error)
}

type ContainerStore interface {
	AddContainer(ctx context.Context, c entity.ItemContainer) (entity.ItemContainer, error)
	GetContainer(ctx context.Context, id uint) (entity.ItemContainer, error)
	ListContainers(ctx context.Context) ([]entity.ItemContainer, error)
	UpdateContainer(ctx context.Context, id uint, p entity.ItemContainerPatch) (entity.ItemContainer, error)
}

type SaleContainerStore interface {
	AddSaleContainer(ctx context.Context, s entity.SaleContainer) (entity.SaleContainer, error)
	GetSaleContainer(ctx context.Context, id uint) (entity.SaleContainer, error)
	ListSaleContainers(ctx context.Context) ([]entity.SaleContainer, error)
	UpdateSaleContainer(ctx context.Context, id uint, p entity.SaleContainerPatch) (entity.SaleContainer, error)
	// RemoveSaleContainer reports false when the id does not exist.
	RemoveSaleContainer(ctx context.Context, id uint) (bool, error)
	GetSaleContainersForMenuItem(ctx context.Context, menuItemID uint) ([]entity.SaleContainer, error)
}

type ItemStore interface {
	AddItem(ctx context.Context, i entity.Item) (entity.Item, error)
	GetItem(ctx context.Context, id uint) (entity.Item, error)
	ListItems(ctx context.Context) ([]entity.Item, error)
	UpdateItem(ctx context.Context, id uint, p entity.ItemPatch) (entity.Item, error)
}

type MenuStore interface {
	AddMenu(ctx context.Context, m entity.Menu) (entity.Menu, error)
	GetMenu(ctx context.Context, id uint) (entity.Menu, error)
	ListMenus(ctx context.Context) ([]entity.Menu, error)
	UpdateMenu(ctx context.Context, id uint, p entity.MenuPatch) (entity.Menu, error)
}

type SubMenuStore interface {
	AddSubMenu(ctx context.Context, s entity.SubMenu) (entity.SubMenu, error)
	GetSubMenu(ctx context.Context, id uint) (entity.SubMenu, error)
	ListSubMenus(ctx context.Context) ([]entity.SubMenu, error)
	UpdateSubMenu(ctx context.Context, id uint, p entity.SubMenuPatch) (entity.SubMenu, error)
	// GetSubMenusForMenu is sorted by order, submenus without one last.
	GetSubMenusForMenu(ctx context.Context, menuID uint) ([]entity.SubMenu, error)
}

type MenuItemStore interface {
	AddMenuItem(ctx context.Context, m entity.MenuItem) (entity.MenuItem, error)
	GetMenuItem(ctx context.Context, id uint) (entity.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]entity.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id uint, p entity.MenuItemPatch) (entity.MenuItem, error)
	// RemoveMenuItem also removes the sale containers priced for it.
	RemoveMenuItem(ctx context.Context, id uint) (bool, error)
	GetMenuItemsForMenu(ctx context.Context, menuID uint) ([]entity.MenuItem, error)
}

// DataProvider is everything the HTTP layer needs from storage.
// LocalProvider and GormProvider both satisfy it.
type DataProvider interface {
	BreweryStore
	ContainerStore
	SaleContainerStore
	ItemStore
	MenuStore
	SubMenuStore
	MenuItemStore
}

func notFound(what string, id uint) error {
	return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
}

func danglingRef(what string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrReferenceNotFound, what, id)
}

func checkID(id uint, patched *uint) error {
	if patched != nil && *patched != id {
		return fmt.Errorf("%w: id", ErrImmutableField)
	}
	return nil
}

func sortSubMenus(subs []entity.SubMenu) {
	sort.SliceStable(subs, func(i, j int) bool {
		if c := entity.CompareOrder(subs[i].Order, subs[j].Order); c != 0 {
			return c < 0
		}
		return subs[i].ID < subs[j].ID
	})
}
