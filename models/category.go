package models

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     bool   `json:"isActive"`
	NeedsSync    bool   `json:"needsSync"`
	LocalOnly    bool   `json:"localOnly"`
}
