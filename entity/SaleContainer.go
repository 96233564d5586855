package entity

// SaleContainer prices one container for one menu placement.
type SaleContainer struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ContainerID uint    `gorm:"not null;index" json:"containerId"`
	MenuItemID  uint    `gorm:"not null;index" json:"menuItemId"`
	Price       float64 `gorm:"not null" json:"price"`
}

type SaleContainerPatch struct {
	ID          *uint    `json:"id"`
	ContainerID *uint    `json:"containerId"`
	MenuItemID  *uint    `json:"menuItemId"`
	Price       *float64 `json:"price"`
}

func (s *SaleContainer) Apply(p SaleContainerPatch) {
	if p.ContainerID != nil {
		s.ContainerID = *p.ContainerID
	}
	if p.MenuItemID != nil {
		s.MenuItemID = *p.MenuItemID
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
}
