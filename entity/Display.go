package entity

// DisplayItem is one printed line of a menu. Built per request, never stored.
type DisplayItem struct {
	BreweryName *string  `json:"breweryName"`
	DisplayName string   `json:"displayName"`
	Style       *string  `json:"style"`
	ABV         *float64 `json:"abv"`
	Description *string  `json:"description"`
	Order       *int     `json:"order"`
	// container display name -> price formatted with two decimals
	ContainerDisplayNameToPrice map[string]string `json:"containerDisplayNameToPrice"`
}

// DisplaySubMenu pairs a submenu with the price columns printed above it.
type DisplaySubMenu struct {
	Menu             SubMenu  `json:"menu"`
	ContainerOptions []string `json:"containerOptions"`
}

type PrintMenu struct {
	Title    string           `json:"title"`
	Logo     *string          `json:"logo"`
	SubMenus []DisplaySubMenu `json:"subMenus"`
	// keyed by submenu id, UncategorizedSubMenuID for the catch-all bucket
	Items map[uint][]DisplayItem `json:"items"`
}

// UncategorizedSubMenuID never matches a stored submenu; ids start at 1.
const UncategorizedSubMenuID uint = 0

func UncategorizedSubMenu(menuID uint) SubMenu {
	return SubMenu{
		ID:           UncategorizedSubMenuID,
		InternalName: "uncategorized",
		DisplayName:  "Other",
		MenuID:       menuID,
	}
}

// CompareOrder orders explicit display orders ascending, missing ones last.
func CompareOrder(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
