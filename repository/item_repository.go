package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

func itemRefs(tx *gorm.DB, i entity.Item) error {
	if i.BreweryID == nil {
		return nil
	}
	return exists(tx, &entity.Brewery{}, *i.BreweryID, "brewery")
}

func (p *GormProvider) AddItem(ctx context.Context, i entity.Item) (entity.Item, error) {
	i.ID = 0
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := itemRefs(tx, i); err != nil {
			return err
		}
		return translateError(tx.Create(&i).Error)
	})
	if err != nil {
		return entity.Item{}, err
	}
	return i, nil
}

func (p *GormProvider) GetItem(ctx context.Context, id uint) (entity.Item, error) {
	var i entity.Item
	err := p.first(ctx, nil, &i, id, "item")
	return i, err
}

func (p *GormProvider) ListItems(ctx context.Context) ([]entity.Item, error) {
	var out []entity.Item
	err := p.list(ctx, &out)
	return out, err
}

func (p *GormProvider) UpdateItem(ctx context.Context, id uint, patch entity.ItemPatch) (entity.Item, error) {
	var i entity.Item
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := p.first(ctx, tx, &i, id, "item"); err != nil {
			return err
		}
		if err := checkID(id, patch.ID); err != nil {
			return err
		}
		i.Apply(patch)
		if err := itemRefs(tx, i); err != nil {
			return err
		}
		return translateError(tx.Save(&i).Error)
	})
	if err != nil {
		return entity.Item{}, err
	}
	return i, nil
}
