package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

func (p *GormProvider) AddBrewery(ctx context.Context, b entity.Brewery) (entity.Brewery, error) {
	b.ID = 0
	if err := p.DB.WithContext(ctx).Create(&b).Error; err != nil {
		return entity.Brewery{}, translateError(err)
	}
	return b, nil
}

func (p *GormProvider) GetBrewery(ctx context.Context, id uint) (entity.Brewery, error) {
	var b entity.Brewery
	err := p.first(ctx, nil, &b, id, "brewery")
	return b, err
}

func (p *GormProvider) ListBreweries(ctx context.Context) ([]entity.Brewery, error) {
	var out []entity.Brewery
	err := p.list(ctx, &out)
	return out, err
}

func (p *GormProvider) UpdateBrewery(ctx context.Context, id uint, patch entity.BreweryPatch) (entity.Brewery, error) {
	var b entity.Brewery
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := p.first(ctx, tx, &b, id, "brewery"); err != nil {
			return err
		}
		if err := checkID(id, patch.ID); err != nil {
			return err
		}
		b.Apply(patch)
		return translateError(tx.Save(&b).Error)
	})
	if err != nil {
		return entity.Brewery{}, err
	}
	return b, nil
}
