package entity

type Brewery struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	// base64 encoded image
	DefaultLogo *string `json:"defaultLogo"`
	Location    *string `json:"location"`

	Items []Item `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

type BreweryPatch struct {
	ID          *uint   `json:"id"`
	Name        *string `json:"name"`
	DefaultLogo *string `json:"defaultLogo"`
	Location    *string `json:"location"`
}

func (b *Brewery) Apply(p BreweryPatch) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.DefaultLogo != nil {
		b.DefaultLogo = p.DefaultLogo
	}
	if p.Location != nil {
		b.Location = p.Location
	}
}
