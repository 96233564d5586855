package entity

// MenuItem places an Item on a Menu, optionally inside one of its SubMenus.
type MenuItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	MenuID    uint    `gorm:"not null;index" json:"menuId"`
	ItemID    uint    `gorm:"not null;index" json:"itemId"`
	SubMenuID *uint   `gorm:"index" json:"subMenuId"`
	ItemLogo  *string `json:"itemLogo"`
	Order     *int    `gorm:"column:display_order" json:"order"`

	SaleContainers []SaleContainer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

type MenuItemPatch struct {
	ID        *uint   `json:"id"`
	MenuID    *uint   `json:"menuId"`
	ItemID    *uint   `json:"itemId"`
	SubMenuID *uint   `json:"subMenuId"`
	ItemLogo  *string `json:"itemLogo"`
	Order     *int    `json:"order"`
}

func (m *MenuItem) Apply(p MenuItemPatch) {
	if p.MenuID != nil {
		m.MenuID = *p.MenuID
	}
	if p.ItemID != nil {
		m.ItemID = *p.ItemID
	}
	if p.SubMenuID != nil {
		m.SubMenuID = p.SubMenuID
	}
	if p.ItemLogo != nil {
		m.ItemLogo = p.ItemLogo
	}
	if p.Order != nil {
		m.Order = p.Order
	}
}
