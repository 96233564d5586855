package entity

type Menu struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	InternalName string `gorm:"not null" json:"internalName"`
	DisplayName  string `gorm:"not null" json:"displayName"`
	// base64 encoded image
	Logo *string `json:"logo"`

	SubMenus  []SubMenu  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	MenuItems []MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

type MenuPatch struct {
	ID           *uint   `json:"id"`
	InternalName *string `json:"internalName"`
	DisplayName  *string `json:"displayName"`
	Logo         *string `json:"logo"`
}

func (m *Menu) Apply(p MenuPatch) {
	if p.InternalName != nil {
		m.InternalName = *p.InternalName
	}
	if p.DisplayName != nil {
		m.DisplayName = *p.DisplayName
	}
	if p.Logo != nil {
		m.Logo = p.Logo
	}
}
