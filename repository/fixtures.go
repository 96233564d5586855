package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

// Fixtures is the content of a data folder. Each file holds a JSON array of
// rows in the same shape the HTTP API returns.
type Fixtures struct {
	Breweries      []entity.Brewery
	Items          []entity.Item
	Containers     []entity.ItemContainer
	SaleContainers []entity.SaleContainer
	Menus          []entity.Menu
	SubMenus       []entity.SubMenu
	MenuItems      []entity.MenuItem
}

// LoadFixtures reads the fixture files in dir. Missing files, or a missing
// dir, load as empty tables.
func LoadFixtures(dir string) (*Fixtures, error) {
	f := &Fixtures{}
	files := []struct {
		name string
		dest any
	}{
		{"breweries.json", &f.Breweries},
		{"items.json", &f.Items},
		{"containers.json", &f.Containers},
		{"saleContainers.json", &f.SaleContainers},
		{"menus.json", &f.Menus},
		{"subMenus.json", &f.SubMenus},
		{"menuItems.json", &f.MenuItems},
	}
	for _, file := range files {
		data, err := os.ReadFile(filepath.Join(dir, file.name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file.name, err)
		}
		if err := json.Unmarshal(data, file.dest); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFixture, file.name, err)
		}
	}
	return f, nil
}

func fixtureError(file string, id uint, err error) error {
	return fmt.Errorf("%w: %s entry %d: %w", ErrInvalidFixture, file, id, err)
}
