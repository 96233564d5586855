package entity

// Item is a catalog entry independent of any menu placement.
type Item struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	InternalName string `gorm:"not null" json:"internalName"`
	DisplayName  string `gorm:"not null" json:"displayName"`
	// optional, snacks have no brewery
	BreweryID   *uint    `gorm:"index" json:"breweryId"`
	Style       *string  `json:"style"`
	ABV         *float64 `gorm:"column:abv" json:"abv"`
	Description *string  `json:"description"`
	// e.g. "beer", "NA" or "snacks"
	Category *string `json:"category"`

	MenuItems []MenuItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

type ItemPatch struct {
	ID           *uint    `json:"id"`
	InternalName *string  `json:"internalName"`
	DisplayName  *string  `json:"displayName"`
	BreweryID    *uint    `json:"breweryId"`
	Style        *string  `json:"style"`
	ABV          *float64 `json:"abv"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
}

func (i *Item) Apply(p ItemPatch) {
	if p.InternalName != nil {
		i.InternalName = *p.InternalName
	}
	if p.DisplayName != nil {
		i.DisplayName = *p.DisplayName
	}
	if p.BreweryID != nil {
		i.BreweryID = p.BreweryID
	}
	if p.Style != nil {
		i.Style = p.Style
	}
	if p.ABV != nil {
		i.ABV = p.ABV
	}
	if p.Description != nil {
		i.Description = p.Description
	}
	if p.Category != nil {
		i.Category = p.Category
	}
}
