package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bombastion/taproom-offering-engine/entity"
)

func TestLoadDefinesEveryPage(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	for _, name := range []string{"index", "breweryList", "containerList", "itemList", "menuList", "menuPrint"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestMenuPrintSkipsEmptySubMenus(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	name := "Sierra Nevada"
	menu := entity.PrintMenu{
		Title: "Taproom",
		SubMenus: []entity.DisplaySubMenu{
			{Menu: entity.SubMenu{ID: 1, DisplayName: "Draft"}, ContainerOptions: []string{"Pint", "Crowler"}},
			{Menu: entity.SubMenu{ID: 2, DisplayName: "Cans"}},
			{Menu: entity.UncategorizedSubMenu(1)},
		},
		Items: map[uint][]entity.DisplayItem{
			1: {{
				BreweryName:                 &name,
				DisplayName:                 "Pale Ale",
				ContainerDisplayNameToPrice: map[string]string{"Crowler": "6.50"},
			}},
			2:                             {},
			entity.UncategorizedSubMenuID: {},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "menuPrint", map[string]any{"menu": menu}))
	page := buf.String()

	assert.Contains(t, page, "<h2>Draft</h2>")
	assert.Contains(t, page, "Sierra Nevada")
	assert.Contains(t, page, "6.50")
	assert.NotContains(t, page, "Cans")
	assert.NotContains(t, page, "Other")
}

func TestFuncs(t *testing.T) {
	abvValue, order, s := 5.25, 3, "x"

	assert.Equal(t, "5.25%", abv(&abvValue))
	assert.Equal(t, "", abv(nil))
	assert.Equal(t, "3", num(&order))
	assert.Equal(t, "", num(nil))
	assert.Equal(t, "x", str(&s))
	assert.Equal(t, "", str(nil))
	assert.Equal(t, "", string(dataURI(nil)))
}
