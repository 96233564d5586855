package entity

// SubMenu is a section of a menu such as "Draft" or "Cans".
type SubMenu struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	InternalName string `gorm:"not null" json:"internalName"`
	DisplayName  string `gorm:"not null" json:"displayName"`
	MenuID       uint   `gorm:"not null;index" json:"menuId"`
	Order        *int   `gorm:"column:display_order" json:"order"`

	MenuItems []MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

type SubMenuPatch struct {
	ID           *uint   `json:"id"`
	InternalName *string `json:"internalName"`
	DisplayName  *string `json:"displayName"`
	MenuID       *uint   `json:"menuId"`
	Order        *int    `json:"order"`
}

func (s *SubMenu) Apply(p SubMenuPatch) {
	if p.InternalName != nil {
		s.InternalName = *p.InternalName
	}
	if p.DisplayName != nil {
		s.DisplayName = *p.DisplayName
	}
	if p.MenuID != nil {
		s.MenuID = *p.MenuID
	}
	if p.Order != nil {
		s.Order = p.Order
	}
}
