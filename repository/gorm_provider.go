package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

// PostgreSQL error codes we translate.
const (
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
)

// GormProvider stores entities in a relational database through gorm.
// References are checked inside the same transaction as the write.
type GormProvider struct {
	DB  *gorm.DB
	log logrus.FieldLogger
}

var _ DataProvider = (*GormProvider)(nil)

func NewGormProvider(db *gorm.DB, log logrus.FieldLogger) *GormProvider {
	return &GormProvider{DB: db, log: log}
}

// AutoMigrate creates or updates every table the provider uses.
func (p *GormProvider) AutoMigrate() error {
	return p.DB.AutoMigrate(
		&entity.Brewery{}, &entity.ItemContainer{}, &entity.Item{},
		&entity.Menu{}, &entity.SubMenu{}, &entity.MenuItem{}, &entity.SaleContainer{},
	)
}

// SeedFromFixtures copies fixtures into an empty database, keeping ids.
// A database that already holds menus or items is left untouched.
func (p *GormProvider) SeedFromFixtures(ctx context.Context, f *Fixtures) error {
	// validate references the same way the local provider does
	check := NewLocalProvider(p.log)
	if err := check.Restore(f); err != nil {
		return err
	}
	f = check.Snapshot()

	return p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entity.Menu{}).Count(&n).Error; err != nil {
			return translateError(err)
		}
		var items int64
		if err := tx.Model(&entity.Item{}).Count(&items).Error; err != nil {
			return translateError(err)
		}
		if n+items > 0 {
			p.log.WithFields(logrus.Fields{"menus": n, "items": items}).Info("database not empty, skipping seed")
			return nil
		}

		steps := []struct {
			table string
			rows  any
			count int
		}{
			{"breweries", &f.Breweries, len(f.Breweries)},
			{"items", &f.Items, len(f.Items)},
			{"item_containers", &f.Containers, len(f.Containers)},
			{"menus", &f.Menus, len(f.Menus)},
			{"sub_menus", &f.SubMenus, len(f.SubMenus)},
			{"menu_items", &f.MenuItems, len(f.MenuItems)},
			{"sale_containers", &f.SaleContainers, len(f.SaleContainers)},
		}
		for _, s := range steps {
			if s.count == 0 {
				continue
			}
			if err := tx.Create(s.rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", s.table, translateError(err))
			}
			// explicit ids do not advance postgres sequences
			if tx.Dialector.Name() == "postgres" {
				q := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))", s.table, s.table)
				if err := tx.Exec(q).Error; err != nil {
					return fmt.Errorf("seed %s: %w", s.table, err)
				}
			}
			p.log.WithFields(logrus.Fields{"table": s.table, "rows": s.count}).Info("seeded")
		}
		return nil
	})
}

func (p *GormProvider) first(ctx context.Context, tx *gorm.DB, dest any, id uint, what string) error {
	if tx == nil {
		tx = p.DB.WithContext(ctx)
	}
	err := tx.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what, id)
	}
	return translateError(err)
}

func (p *GormProvider) list(ctx context.Context, dest any, where ...any) error {
	q := p.DB.WithContext(ctx)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	return translateError(q.Order("id").Find(dest).Error)
}

// exists returns ErrReferenceNotFound unless a row of model with id exists.
func exists(tx *gorm.DB, model any, id uint, what string) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return translateError(err)
	}
	if n == 0 {
		return danglingRef(what, id)
	}
	return nil
}

func (p *GormProvider) remove(ctx context.Context, model any, id uint) (bool, error) {
	res := p.DB.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PgErrForeignKeyViolation {
		return fmt.Errorf("%w: %s", ErrReferenceNotFound, pgErr.ConstraintName)
	}
	return err
}
