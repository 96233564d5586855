// services/menu_service.go
package services

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/entity"
	"github.com/Bombastion/taproom-offering-engine/repository"
)

type MenuService struct {
	Repo repository.DataProvider
	Log  logrus.FieldLogger
}

func NewMenuService(repo repository.DataProvider, log logrus.FieldLogger) *MenuService {
	return &MenuService{Repo: repo, Log: log}
}

// Print joins a menu's submenus, placements, items, breweries and prices into
// the view model used by the printable menu. Placements without a submenu of
// this menu land in the uncategorized bucket, which is always last.
func (s *MenuService) Print(ctx context.Context, menuID uint) (entity.PrintMenu, error) {
	menu, err := s.Repo.GetMenu(ctx, menuID)
	if err != nil {
		return entity.PrintMenu{}, err
	}
	subs, err := s.Repo.GetSubMenusForMenu(ctx, menuID)
	if err != nil {
		return entity.PrintMenu{}, err
	}
	subs = append(subs, entity.UncategorizedSubMenu(menuID))

	items := make(map[uint][]entity.DisplayItem, len(subs))
	columns := make(map[uint]map[string]*int, len(subs))
	for _, sub := range subs {
		items[sub.ID] = []entity.DisplayItem{}
		columns[sub.ID] = map[string]*int{}
	}

	placements, err := s.Repo.GetMenuItemsForMenu(ctx, menuID)
	if err != nil {
		return entity.PrintMenu{}, err
	}
	for _, mi := range placements {
		bucket := entity.UncategorizedSubMenuID
		if mi.SubMenuID != nil {
			if _, ok := items[*mi.SubMenuID]; ok {
				bucket = *mi.SubMenuID
			}
		}

		di, orders, err := s.displayItem(ctx, mi)
		if errors.Is(err, repository.ErrNotFound) {
			s.Log.WithError(err).WithField("menuItemId", mi.ID).Warn("skipping menu item")
			continue
		}
		if err != nil {
			return entity.PrintMenu{}, err
		}
		items[bucket] = append(items[bucket], di)

		for name, order := range orders {
			mergeOrder(columns[bucket], name, order)
		}
	}

	out := entity.PrintMenu{
		Title:    menu.DisplayName,
		Logo:     menu.Logo,
		SubMenus: make([]entity.DisplaySubMenu, 0, len(subs)),
		Items:    items,
	}
	for _, sub := range subs {
		sortDisplayItems(items[sub.ID])
		out.SubMenus = append(out.SubMenus, entity.DisplaySubMenu{
			Menu:             sub,
			ContainerOptions: sortColumns(columns[sub.ID]),
		})
	}
	return out, nil
}

// displayItem resolves one placement. The second result maps each priced
// container's display name to its column order.
func (s *MenuService) displayItem(ctx context.Context, mi entity.MenuItem) (entity.DisplayItem, map[string]*int, error) {
	item, err := s.Repo.GetItem(ctx, mi.ItemID)
	if err != nil {
		return entity.DisplayItem{}, nil, err
	}

	di := entity.DisplayItem{
		DisplayName:                 item.DisplayName,
		Style:                       item.Style,
		ABV:                         item.ABV,
		Description:                 item.Description,
		Order:                       mi.Order,
		ContainerDisplayNameToPrice: map[string]string{},
	}
	if item.BreweryID != nil {
		brewery, err := s.Repo.GetBrewery(ctx, *item.BreweryID)
		switch {
		case err == nil:
			di.BreweryName = &brewery.Name
		case !errors.Is(err, repository.ErrNotFound):
			return entity.DisplayItem{}, nil, err
		}
	}

	sales, err := s.Repo.GetSaleContainersForMenuItem(ctx, mi.ID)
	if err != nil {
		return entity.DisplayItem{}, nil, err
	}
	orders := make(map[string]*int, len(sales))
	for _, sale := range sales {
		container, err := s.Repo.GetContainer(ctx, sale.ContainerID)
		if errors.Is(err, repository.ErrNotFound) {
			s.Log.WithField("saleContainerId", sale.ID).Warn("sale container has no container")
			continue
		}
		if err != nil {
			return entity.DisplayItem{}, nil, err
		}
		di.ContainerDisplayNameToPrice[container.DisplayName] = FormatPrice(sale.Price)
		mergeOrder(orders, container.DisplayName, container.Order)
	}
	return di, orders, nil
}

// mergeOrder keeps the lowest order seen for a column.
func mergeOrder(orders map[string]*int, name string, order *int) {
	prev, seen := orders[name]
	if !seen || entity.CompareOrder(order, prev) < 0 {
		orders[name] = order
	}
}

func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

// sortColumns orders column names by their lowest container order, then name.
func sortColumns(orders map[string]*int) []string {
	names := make([]string, 0, len(orders))
	for name := range orders {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c := entity.CompareOrder(orders[names[i]], orders[names[j]]); c != 0 {
			return c < 0
		}
		return names[i] < names[j]
	})
	return names
}

func sortDisplayItems(items []entity.DisplayItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := entity.CompareOrder(items[i].Order, items[j].Order); c != 0 {
			return c < 0
		}
		return items[i].DisplayName < items[j].DisplayName
	})
}
