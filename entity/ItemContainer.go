package entity

// ItemContainer is a serving vessel, e.g. "Crowler" shown as "Full Pour".
type ItemContainer struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ContainerName string `gorm:"not null" json:"containerName"`
	DisplayName   string `gorm:"not null" json:"displayName"`
	// column position on a printed menu, ascending
	Order *int `gorm:"column:display_order" json:"order"`

	SaleContainers []SaleContainer `gorm:"foreignKey:ContainerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

type ItemContainerPatch struct {
	ID            *uint   `json:"id"`
	ContainerName *string `json:"containerName"`
	DisplayName   *string `json:"displayName"`
	Order         *int    `json:"order"`
}

func (c *ItemContainer) Apply(p ItemContainerPatch) {
	if p.ContainerName != nil {
		c.ContainerName = *p.ContainerName
	}
	if p.DisplayName != nil {
		c.DisplayName = *p.DisplayName
	}
	if p.Order != nil {
		c.Order = p.Order
	}
}
