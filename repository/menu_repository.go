package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

// Menus -----------------------------------------------------------------------

func (p *GormProvider) AddMenu(ctx context.Context, m entity.Menu) (entity.Menu, error) {
	m.ID = 0
	if err := p.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return entity.Menu{}, translateError(err)
	}
	return m, nil
}

func (p *GormProvider) GetMenu(ctx context.Context, id uint) (entity.Menu, error) {
	var m entity.Menu
	err := p.first(ctx, nil, &m, id, "menu")
	return m, err
}

func (p *GormProvider) ListMenus(ctx context.Context) ([]entity.Menu, error) {
	var out []entity.Menu
	err := p.list(ctx, &out)
	return out, err
}

func (p *GormProvider) UpdateMenu(ctx context.Context, id uint, patch entity.MenuPatch) (entity.Menu, error) {
	var m entity.Menu
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := p.first(ctx, tx, &m, id, "menu"); err != nil {
			return err
		}
		if err := checkID(id, patch.ID); err != nil {
			return err
		}
		m.Apply(patch)
		return translateError(tx.Save(&m).Error)
	})
	if err != nil {
		return entity.Menu{}, err
	}
	return m, nil
}

// Submenus --------------------------------------------------------------------

func (p *GormProvider) AddSubMenu(ctx context.Context, s entity.SubMenu) (entity.SubMenu, error) {
	s.ID = 0
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &entity.Menu{}, s.MenuID, "menu"); err != nil {
			return err
		}
		return translateError(tx.Create(&s).Error)
	})
	if err != nil {
		return entity.SubMenu{}, err
	}
	return s, nil
}

func (p *GormProvider) GetSubMenu(ctx context.Context, id uint) (entity.SubMenu, error) {
	var s entity.SubMenu
	err := p.first(ctx, nil, &s, id, "submenu")
	return s, err
}

func (p *GormProvider) ListSubMenus(ctx context.Context) ([]entity.SubMenu, error) {
	var out []entity.SubMenu
	err := p.list(ctx, &out)
	return out, err
}

func (p *GormProvider) UpdateSubMenu(ctx context.Context, id uint, patch entity.SubMenuPatch) (entity.SubMenu, error) {
	var s entity.SubMenu
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := p.first(ctx, tx, &s, id, "submenu"); err != nil {
			return err
		}
		if err := checkID(id, patch.ID); err != nil {
			return err
		}
		oldMenu := s.MenuID
		s.Apply(patch)
		if err := exists(tx, &entity.Menu{}, s.MenuID, "menu"); err != nil {
			return err
		}
		if err := tx.Save(&s).Error; err != nil {
			return translateError(err)
		}
		if s.MenuID == oldMenu {
			return nil
		}
		// placements left on other menus lose the submenu
		res := tx.Model(&entity.MenuItem{}).
			Where("sub_menu_id = ? AND menu_id <> ?", id, s.MenuID).
			Update("sub_menu_id", nil)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected > 0 {
			p.log.WithFields(logrus.Fields{"subMenuId": id, "menuItems": res.RowsAffected}).Info("detached menu items from moved submenu")
		}
		return nil
	})
	if err != nil {
		return entity.SubMenu{}, err
	}
	return s, nil
}

func (p *GormProvider) GetSubMenusForMenu(ctx context.Context, menuID uint) ([]entity.SubMenu, error) {
	var out []entity.SubMenu
	if err := p.list(ctx, &out, "menu_id = ?", menuID); err != nil {
		return nil, err
	}
	sortSubMenus(out)
	return out, nil
}

// Menu items ------------------------------------------------------------------

func menuItemRefs(tx *gorm.DB, m entity.MenuItem) error {
	if err := exists(tx, &entity.Menu{}, m.MenuID, "menu"); err != nil {
		return err
	}
	if err := exists(tx, &entity.Item{}, m.ItemID, "item"); err != nil {
		return err
	}
	if m.SubMenuID == nil {
		return nil
	}
	var n int64
	err := tx.Model(&entity.SubMenu{}).
		Where("id = ? AND menu_id = ?", *m.SubMenuID, m.MenuID).
		Count(&n).Error
	if err != nil {
		return translateError(err)
	}
	if n == 0 {
		return danglingRef("submenu", *m.SubMenuID)
	}
	return nil
}

func (p *GormProvider) AddMenuItem(ctx context.Context, m entity.MenuItem) (entity.MenuItem, error) {
	m.ID = 0
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := menuItemRefs(tx, m); err != nil {
			return err
		}
		return translateError(tx.Create(&m).Error)
	})
	if err != nil {
		return entity.MenuItem{}, err
	}
	return m, nil
}

func (p *GormProvider) GetMenuItem(ctx context.Context, id uint) (entity.MenuItem, error) {
	var m entity.MenuItem
	err := p.first(ctx, nil, &m, id, "menu item")
	return m, err
}

func (p *GormProvider) ListMenuItems(ctx context.Context) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	err := p.list(ctx, &out)
	return out, err
}

func (p *GormProvider) UpdateMenuItem(ctx context.Context, id uint, patch entity.MenuItemPatch) (entity.MenuItem, error) {
	var m entity.MenuItem
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := p.first(ctx, tx, &m, id, "menu item"); err != nil {
			return err
		}
		if err := checkID(id, patch.ID); err != nil {
			return err
		}
		m.Apply(patch)
		if err := menuItemRefs(tx, m); err != nil {
			return err
		}
		return translateError(tx.Save(&m).Error)
	})
	if err != nil {
		return entity.MenuItem{}, err
	}
	return m, nil
}

func (p *GormProvider) RemoveMenuItem(ctx context.Context, id uint) (bool, error) {
	var removed bool
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", id).Delete(&entity.SaleContainer{}).Error; err != nil {
			return translateError(err)
		}
		res := tx.Delete(&entity.MenuItem{}, id)
		if res.Error != nil {
			return translateError(res.Error)
		}
		removed = res.RowsAffected > 0
		return nil
	})
	return removed, err
}

func (p *GormProvider) GetMenuItemsForMenu(ctx context.Context, menuID uint) ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	err := p.list(ctx, &out, "menu_id = ?", menuID)
	return out, err
}
