package models

// Variation is a named option of a product (flavor, size) that may override
// its price and carry its own stock count.
type Variation struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type Product struct {
	ID          string      `json:"id"` // Airtable record id, or a uuid for local-only records
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	CategoryIDs []string    `json:"category"`
	Stock       int         `json:"stock"`
	ImageURL    string      `json:"imageUrl"`
	Variations  []Variation `json:"variations,omitempty"`
	IsActive    bool        `json:"isActive"`
	Status      string      `json:"status"` // mirrors IsActive: "active" / "inactive"
	NeedsSync   bool        `json:"needsSync"`
	LocalOnly   bool        `json:"localOnly"` // record exists only in the local file store
}

// StatusFor derives the display status from the active flag.
func StatusFor(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// Variation returns the named variation, if the product has one.
func (p Product) Variation(name string) (Variation, bool) {
	for _, v := range p.Variations {
		if v.Name == name {
			return v, true
		}
	}
	return Variation{}, false
}

// EffectivePrice is the variation price when a variation is selected,
// otherwise the base price.
func (p Product) EffectivePrice(variationName string) float64 {
	if variationName != "" {
		if v, ok := p.Variation(variationName); ok {
			return v.Price
		}
	}
	return p.Price
}
