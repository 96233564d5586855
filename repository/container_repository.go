package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

// Item containers -------------------------------------------------------------

func (p *GormProvider) AddContainer(ctx context.Context, c entity.ItemContainer) (entity.ItemContainer, error) {
	c.ID = 0
	if err := p.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return entity.ItemContainer{}, translateError(err)
	}
	return c, nil
}

func (p *GormProvider) GetContainer(ctx context.Context, id uint) (entity.ItemContainer, error) {
	var c entity.ItemContainer
	err := p.first(ctx, nil, &c, id, "container")
	return c, err
}

func (p *GormProvider) ListContainers(ctx context.Context) ([]entity.ItemContainer, error) {
	var out []entity.ItemContainer
	err := p.list(ctx, &out)
	return out, err
}

func (p *GormProvider) UpdateContainer(ctx context.Context, id uint, patch entity.ItemContainerPatch) (entity.ItemContainer, error) {
	var c entity.ItemContainer
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := p.first(ctx, tx, &c, id, "container"); err != nil {
			return err
		}
		if err := checkID(id, patch.ID); err != nil {
			return err
		}
		c.Apply(patch)
		return translateError(tx.Save(&c).Error)
	})
	if err != nil {
		return entity.ItemContainer{}, err
	}
	return c, nil
}

// Sale containers -------------------------------------------------------------

func saleContainerRefs(tx *gorm.DB, s entity.SaleContainer) error {
	if err := exists(tx, &entity.ItemContainer{}, s.ContainerID, "container"); err != nil {
		return err
	}
	return exists(tx, &entity.MenuItem{}, s.MenuItemID, "menu item")
}

func (p *GormProvider) AddSaleContainer(ctx context.Context, s entity.SaleContainer) (entity.SaleContainer, error) {
	s.ID = 0
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saleContainerRefs(tx, s); err != nil {
			return err
		}
		return translateError(tx.Create(&s).Error)
	})
	if err != nil {
		return entity.SaleContainer{}, err
	}
	return s, nil
}

func (p *GormProvider) GetSaleContainer(ctx context.Context, id uint) (entity.SaleContainer, error) {
	var s entity.SaleContainer
	err := p.first(ctx, nil, &s, id, "sale container")
	return s, err
}

func (p *GormProvider) ListSaleContainers(ctx context.Context) ([]entity.SaleContainer, error) {
	var out []entity.SaleContainer
	err := p.list(ctx, &out)
	return out, err
}

func (p *GormProvider) UpdateSaleContainer(ctx context.Context, id uint, patch entity.SaleContainerPatch) (entity.SaleContainer, error) {
	var s entity.SaleContainer
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := p.first(ctx, tx, &s, id, "sale container"); err != nil {
			return err
		}
		if err := checkID(id, patch.ID); err != nil {
			return err
		}
		s.Apply(patch)
		if err := saleContainerRefs(tx, s); err != nil {
			return err
		}
		return translateError(tx.Save(&s).Error)
	})
	if err != nil {
		return entity.SaleContainer{}, err
	}
	return s, nil
}

func (p *GormProvider) RemoveSaleContainer(ctx context.Context, id uint) (bool, error) {
	return p.remove(ctx, &entity.SaleContainer{}, id)
}

func (p *GormProvider) GetSaleContainersForMenuItem(ctx context.Context, menuItemID uint) ([]entity.SaleContainer, error) {
	var out []entity.SaleContainer
	err := p.list(ctx, &out, "menu_item_id = ?", menuItemID)
	return out, err
}
