package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

// LocalProvider keeps every entity in memory. It is safe for concurrent use
// and is meant for development, demos and tests.
type LocalProvider struct {
	mu  sync.RWMutex
	log logrus.FieldLogger

	breweries      *table[entity.Brewery]
	containers     *table[entity.ItemContainer]
	saleContainers *table[entity.SaleContainer]
	items          *table[entity.Item]
	menus          *table[entity.Menu]
	subMenus       *table[entity.SubMenu]
	menuItems      *table[entity.MenuItem]
}

var _ DataProvider = (*LocalProvider)(nil)

func NewLocalProvider(log logrus.FieldLogger) *LocalProvider {
	return &LocalProvider{
		log:            log,
		breweries:      newTable[entity.Brewery](),
		containers:     newTable[entity.ItemContainer](),
		saleContainers: newTable[entity.SaleContainer](),
		items:          newTable[entity.Item](),
		menus:          newTable[entity.Menu](),
		subMenus:       newTable[entity.SubMenu](),
		menuItems:      newTable[entity.MenuItem](),
	}
}

// NewLocalProviderFromDir builds a provider seeded with the fixture files in dir.
func NewLocalProviderFromDir(dir string, log logrus.FieldLogger) (*LocalProvider, error) {
	f, err := LoadFixtures(dir)
	if err != nil {
		return nil, err
	}
	p := NewLocalProvider(log)
	if err := p.Restore(f); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"dir":       dir,
		"breweries": len(f.Breweries),
		"items":     len(f.Items),
		"menus":     len(f.Menus),
		"menuItems": len(f.MenuItems),
	}).Info("loaded fixtures")
	return p, nil
}

// Restore inserts fixture rows keeping their ids. Rows without an id get the
// next free one. References are checked exactly as for Add.
func (p *LocalProvider) Restore(f *Fixtures) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, b := range f.Breweries {
		if err := restoreRow(p.breweries, "breweries.json", &b, &b.ID, cloneBrewery, nil); err != nil {
			return err
		}
	}
	for _, i := range f.Items {
		if err := restoreRow(p.items, "items.json", &i, &i.ID, cloneItem, p.checkItemRefs); err != nil {
			return err
		}
	}
	for _, c := range f.Containers {
		if err := restoreRow(p.containers, "containers.json", &c, &c.ID, cloneContainer, nil); err != nil {
			return err
		}
	}
	for _, m := range f.Menus {
		if err := restoreRow(p.menus, "menus.json", &m, &m.ID, cloneMenu, nil); err != nil {
			return err
		}
	}
	for _, s := range f.SubMenus {
		if err := restoreRow(p.subMenus, "subMenus.json", &s, &s.ID, cloneSubMenu, p.checkSubMenuRefs); err != nil {
			return err
		}
	}
	for _, m := range f.MenuItems {
		if err := restoreRow(p.menuItems, "menuItems.json", &m, &m.ID, cloneMenuItem, p.checkMenuItemRefs); err != nil {
			return err
		}
	}
	for _, s := range f.SaleContainers {
		if err := restoreRow(p.saleContainers, "saleContainers.json", &s, &s.ID, cloneSaleContainer, p.checkSaleContainerRefs); err != nil {
			return err
		}
	}
	return nil
}

// restoreRow stores one fixture row. id points into row so an assigned id is
// written back before the row is stored.
func restoreRow[T any](t *table[T], file string, row *T, id *uint, clone func(T) T, check func(T) error) error {
	if *id != 0 && t.has(*id) {
		return fixtureError(file, *id, fmt.Errorf("duplicate id"))
	}
	if check != nil {
		if err := check(*row); err != nil {
			return fixtureError(file, *id, err)
		}
	}
	if *id == 0 {
		*id = t.next()
	}
	t.put(*id, clone(*row))
	return nil
}

// Snapshot returns every stored row with its assigned id.
func (p *LocalProvider) Snapshot() *Fixtures {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return &Fixtures{
		Breweries:      mapRows(p.breweries.list(), cloneBrewery),
		Items:          mapRows(p.items.list(), cloneItem),
		Containers:     mapRows(p.containers.list(), cloneContainer),
		SaleContainers: p.saleContainers.list(),
		Menus:          mapRows(p.menus.list(), cloneMenu),
		SubMenus:       mapRows(p.subMenus.list(), cloneSubMenu),
		MenuItems:      mapRows(p.menuItems.list(), cloneMenuItem),
	}
}

// Breweries -------------------------------------------------------------------

func (p *LocalProvider) AddBrewery(_ context.Context, b entity.Brewery) (entity.Brewery, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b.ID = p.breweries.next()
	p.breweries.put(b.ID, cloneBrewery(b))
	return cloneBrewery(b), nil
}

func (p *LocalProvider) GetBrewery(_ context.Context, id uint) (entity.Brewery, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	b, ok := p.breweries.get(id)
	if !ok {
		return entity.Brewery{}, notFound("brewery", id)
	}
	return cloneBrewery(b), nil
}

func (p *LocalProvider) ListBreweries(_ context.Context) ([]entity.Brewery, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return mapRows(p.breweries.list(), cloneBrewery), nil
}

func (p *LocalProvider) UpdateBrewery(_ context.Context, id uint, patch entity.BreweryPatch) (entity.Brewery, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.breweries.get(id)
	if !ok {
		return entity.Brewery{}, notFound("brewery", id)
	}
	if err := checkID(id, patch.ID); err != nil {
		return entity.Brewery{}, err
	}
	b.Apply(patch)
	p.breweries.put(id, cloneBrewery(b))
	return cloneBrewery(b), nil
}

// Containers ------------------------------------------------------------------

func (p *LocalProvider) AddContainer(_ context.Context, c entity.ItemContainer) (entity.ItemContainer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c.ID = p.containers.next()
	p.containers.put(c.ID, cloneContainer(c))
	return cloneContainer(c), nil
}

func (p *LocalProvider) GetContainer(_ context.Context, id uint) (entity.ItemContainer, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.containers.get(id)
	if !ok {
		return entity.ItemContainer{}, notFound("container", id)
	}
	return cloneContainer(c), nil
}

func (p *LocalProvider) ListContainers(_ context.Context) ([]entity.ItemContainer, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return mapRows(p.containers.list(), cloneContainer), nil
}

func (p *LocalProvider) UpdateContainer(_ context.Context, id uint, patch entity.ItemContainerPatch) (entity.ItemContainer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.containers.get(id)
	if !ok {
		return entity.ItemContainer{}, notFound("container", id)
	}
	if err := checkID(id, patch.ID); err != nil {
		return entity.ItemContainer{}, err
	}
	c.Apply(patch)
	p.containers.put(id, cloneContainer(c))
	return cloneContainer(c), nil
}

// Sale containers -------------------------------------------------------------

func (p *LocalProvider) AddSaleContainer(_ context.Context, s entity.SaleContainer) (entity.SaleContainer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkSaleContainerRefs(s); err != nil {
		return entity.SaleContainer{}, err
	}
	s.ID = p.saleContainers.next()
	p.saleContainers.put(s.ID, cloneSaleContainer(s))
	return s, nil
}

func (p *LocalProvider) GetSaleContainer(_ context.Context, id uint) (entity.SaleContainer, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.saleContainers.get(id)
	if !ok {
		return entity.SaleContainer{}, notFound("sale container", id)
	}
	return s, nil
}

func (p *LocalProvider) ListSaleContainers(_ context.Context) ([]entity.SaleContainer, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.saleContainers.list(), nil
}

func (p *LocalProvider) UpdateSaleContainer(_ context.Context, id uint, patch entity.SaleContainerPatch) (entity.SaleContainer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.saleContainers.get(id)
	if !ok {
		return entity.SaleContainer{}, notFound("sale container", id)
	}
	if err := checkID(id, patch.ID); err != nil {
		return entity.SaleContainer{}, err
	}
	s.Apply(patch)
	if err := p.checkSaleContainerRefs(s); err != nil {
		return entity.SaleContainer{}, err
	}
	p.saleContainers.put(id, s)
	return s, nil
}

func (p *LocalProvider) RemoveSaleContainer(_ context.Context, id uint) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saleContainers.remove(id), nil
}

func (p *LocalProvider) GetSaleContainersForMenuItem(_ context.Context, menuItemID uint) ([]entity.SaleContainer, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return filterRows(p.saleContainers.list(), func(s entity.SaleContainer) bool {
		return s.MenuItemID == menuItemID
	}), nil
}

// Items -----------------------------------------------------------------------

func (p *LocalProvider) AddItem(_ context.Context, i entity.Item) (entity.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkItemRefs(i); err != nil {
		return entity.Item{}, err
	}
	i.ID = p.items.next()
	p.items.put(i.ID, cloneItem(i))
	return cloneItem(i), nil
}

func (p *LocalProvider) GetItem(_ context.Context, id uint) (entity.Item, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	i, ok := p.items.get(id)
	if !ok {
		return entity.Item{}, notFound("item", id)
	}
	return cloneItem(i), nil
}

func (p *LocalProvider) ListItems(_ context.Context) ([]entity.Item, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return mapRows(p.items.list(), cloneItem), nil
}

func (p *LocalProvider) UpdateItem(_ context.Context, id uint, patch entity.ItemPatch) (entity.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i, ok := p.items.get(id)
	if !ok {
		return entity.Item{}, notFound("item", id)
	}
	if err := checkID(id, patch.ID); err != nil {
		return entity.Item{}, err
	}
	i.Apply(patch)
	if err := p.checkItemRefs(i); err != nil {
		return entity.Item{}, err
	}
	p.items.put(id, cloneItem(i))
	return cloneItem(i), nil
}

// Menus -----------------------------------------------------------------------

func (p *LocalProvider) AddMenu(_ context.Context, m entity.Menu) (entity.Menu, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m.ID = p.menus.next()
	p.menus.put(m.ID, cloneMenu(m))
	return cloneMenu(m), nil
}

func (p *LocalProvider) GetMenu(_ context.Context, id uint) (entity.Menu, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, ok := p.menus.get(id)
	if !ok {
		return entity.Menu{}, notFound("menu", id)
	}
	return cloneMenu(m), nil
}

func (p *LocalProvider) ListMenus(_ context.Context) ([]entity.Menu, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return mapRows(p.menus.list(), cloneMenu), nil
}

func (p *LocalProvider) UpdateMenu(_ context.Context, id uint, patch entity.MenuPatch) (entity.Menu, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.menus.get(id)
	if !ok {
		return entity.Menu{}, notFound("menu", id)
	}
	if err := checkID(id, patch.ID); err != nil {
		return entity.Menu{}, err
	}
	m.Apply(patch)
	p.menus.put(id, cloneMenu(m))
	return cloneMenu(m), nil
}

// Submenus --------------------------------------------------------------------

func (p *LocalProvider) AddSubMenu(_ context.Context, s entity.SubMenu) (entity.SubMenu, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkSubMenuRefs(s); err != nil {
		return entity.SubMenu{}, err
	}
	s.ID = p.subMenus.next()
	p.subMenus.put(s.ID, cloneSubMenu(s))
	return cloneSubMenu(s), nil
}

func (p *LocalProvider) GetSubMenu(_ context.Context, id uint) (entity.SubMenu, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.subMenus.get(id)
	if !ok {
		return entity.SubMenu{}, notFound("submenu", id)
	}
	return cloneSubMenu(s), nil
}

func (p *LocalProvider) ListSubMenus(_ context.Context) ([]entity.SubMenu, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return mapRows(p.subMenus.list(), cloneSubMenu), nil
}

func (p *LocalProvider) UpdateSubMenu(_ context.Context, id uint, patch entity.SubMenuPatch) (entity.SubMenu, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.subMenus.get(id)
	if !ok {
		return entity.SubMenu{}, notFound("submenu", id)
	}
	if err := checkID(id, patch.ID); err != nil {
		return entity.SubMenu{}, err
	}
	oldMenu := s.MenuID
	s.Apply(patch)
	if err := p.checkSubMenuRefs(s); err != nil {
		return entity.SubMenu{}, err
	}
	p.subMenus.put(id, cloneSubMenu(s))
	if s.MenuID != oldMenu {
		p.detachSubMenu(id, s.MenuID)
	}
	return cloneSubMenu(s), nil
}

// detachSubMenu clears subMenuId on placements outside menuID that point at
// the submenu.
func (p *LocalProvider) detachSubMenu(subMenuID, menuID uint) {
	detached := 0
	for _, m := range p.menuItems.list() {
		if m.SubMenuID == nil || *m.SubMenuID != subMenuID || m.MenuID == menuID {
			continue
		}
		m.SubMenuID = nil
		p.menuItems.put(m.ID, cloneMenuItem(m))
		detached++
	}
	if detached > 0 {
		p.log.WithFields(logrus.Fields{"subMenuId": subMenuID, "menuItems": detached}).Info("detached menu items from moved submenu")
	}
}

func (p *LocalProvider) GetSubMenusForMenu(_ context.Context, menuID uint) ([]entity.SubMenu, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	subs := filterRows(mapRows(p.subMenus.list(), cloneSubMenu), func(s entity.SubMenu) bool {
		return s.MenuID == menuID
	})
	sortSubMenus(subs)
	return subs, nil
}

// Menu items ------------------------------------------------------------------

func (p *LocalProvider) AddMenuItem(_ context.Context, m entity.MenuItem) (entity.MenuItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkMenuItemRefs(m); err != nil {
		return entity.MenuItem{}, err
	}
	m.ID = p.menuItems.next()
	p.menuItems.put(m.ID, cloneMenuItem(m))
	return cloneMenuItem(m), nil
}

func (p *LocalProvider) GetMenuItem(_ context.Context, id uint) (entity.MenuItem, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, ok := p.menuItems.get(id)
	if !ok {
		return entity.MenuItem{}, notFound("menu item", id)
	}
	return cloneMenuItem(m), nil
}

func (p *LocalProvider) ListMenuItems(_ context.Context) ([]entity.MenuItem, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return mapRows(p.menuItems.list(), cloneMenuItem), nil
}

func (p *LocalProvider) UpdateMenuItem(_ context.Context, id uint, patch entity.MenuItemPatch) (entity.MenuItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.menuItems.get(id)
	if !ok {
		return entity.MenuItem{}, notFound("menu item", id)
	}
	if err := checkID(id, patch.ID); err != nil {
		return entity.MenuItem{}, err
	}
	m.Apply(patch)
	if err := p.checkMenuItemRefs(m); err != nil {
		return entity.MenuItem{}, err
	}
	p.menuItems.put(id, cloneMenuItem(m))
	return cloneMenuItem(m), nil
}

func (p *LocalProvider) RemoveMenuItem(_ context.Context, id uint) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.menuItems.remove(id) {
		return false, nil
	}
	removed := 0
	for _, s := range p.saleContainers.list() {
		if s.MenuItemID == id {
			p.saleContainers.remove(s.ID)
			removed++
		}
	}
	p.log.WithFields(logrus.Fields{"menuItemId": id, "saleContainers": removed}).Debug("removed menu item")
	return true, nil
}

func (p *LocalProvider) GetMenuItemsForMenu(_ context.Context, menuID uint) ([]entity.MenuItem, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return filterRows(mapRows(p.menuItems.list(), cloneMenuItem), func(m entity.MenuItem) bool {
		return m.MenuID == menuID
	}), nil
}

// Reference checks, callers hold p.mu -----------------------------------------

func (p *LocalProvider) checkItemRefs(i entity.Item) error {
	if i.BreweryID != nil && !p.breweries.has(*i.BreweryID) {
		return danglingRef("brewery", *i.BreweryID)
	}
	return nil
}

func (p *LocalProvider) checkSaleContainerRefs(s entity.SaleContainer) error {
	if !p.containers.has(s.ContainerID) {
		return danglingRef("container", s.ContainerID)
	}
	if !p.menuItems.has(s.MenuItemID) {
		return danglingRef("menu item", s.MenuItemID)
	}
	return nil
}

func (p *LocalProvider) checkSubMenuRefs(s entity.SubMenu) error {
	if !p.menus.has(s.MenuID) {
		return danglingRef("menu", s.MenuID)
	}
	return nil
}

func (p *LocalProvider) checkMenuItemRefs(m entity.MenuItem) error {
	if !p.menus.has(m.MenuID) {
		return danglingRef("menu", m.MenuID)
	}
	if !p.items.has(m.ItemID) {
		return danglingRef("item", m.ItemID)
	}
	if m.SubMenuID != nil {
		sub, ok := p.subMenus.get(*m.SubMenuID)
		if !ok || sub.MenuID != m.MenuID {
			return danglingRef("submenu", *m.SubMenuID)
		}
	}
	return nil
}

// table -----------------------------------------------------------------------

// table is one entity's rows keyed by id with a monotonic id counter.
type table[T any] struct {
	rows   map[uint]T
	nextID uint
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uint]T), nextID: 1}
}

func (t *table[T]) next() uint {
	id := t.nextID
	t.nextID++
	return id
}

func (t *table[T]) put(id uint, row T) {
	t.rows[id] = row
	if id >= t.nextID {
		t.nextID = id + 1
	}
}

func (t *table[T]) get(id uint) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) has(id uint) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) remove(id uint) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) list() []T {
	ids := make([]uint, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func mapRows[T any](rows []T, fn func(T) T) []T {
	for i := range rows {
		rows[i] = fn(rows[i])
	}
	return rows
}

func filterRows[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Cloning keeps callers from mutating stored rows through shared pointers.

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBrewery(b entity.Brewery) entity.Brewery {
	b.DefaultLogo = clonePtr(b.DefaultLogo)
	b.Location = clonePtr(b.Location)
	b.Items = nil
	return b
}

func cloneContainer(c entity.ItemContainer) entity.ItemContainer {
	c.Order = clonePtr(c.Order)
	c.SaleContainers = nil
	return c
}

func cloneSaleContainer(s entity.SaleContainer) entity.SaleContainer {
	return s
}

func cloneItem(i entity.Item) entity.Item {
	i.BreweryID = clonePtr(i.BreweryID)
	i.Style = clonePtr(i.Style)
	i.ABV = clonePtr(i.ABV)
	i.Description = clonePtr(i.Description)
	i.Category = clonePtr(i.Category)
	i.MenuItems = nil
	return i
}

func cloneMenu(m entity.Menu) entity.Menu {
	m.Logo = clonePtr(m.Logo)
	m.SubMenus = nil
	m.MenuItems = nil
	return m
}

func cloneSubMenu(s entity.SubMenu) entity.SubMenu {
	s.Order = clonePtr(s.Order)
	s.MenuItems = nil
	return s
}

func cloneMenuItem(m entity.MenuItem) entity.MenuItem {
	m.SubMenuID = clonePtr(m.SubMenuID)
	m.ItemLogo = clonePtr(m.ItemLogo)
	m.Order = clonePtr(m.Order)
	m.SaleContainers = nil
	return m
}
