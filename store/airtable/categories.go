package airtable

import (
	"context"

	"github.com/ronautumn/hhnyc-api/models"
)

const (
	fCatName         = "Name"
	fCatDescription  = "Description"
	fCatDisplayOrder = "Display Order"
	fCatIsActive     = "Is Active"
)

func categoryFields(c models.Category) map[string]any {
	return map[string]any{
		fCatName:         c.Name,
		fCatDescription:  c.Description,
		fCatDisplayOrder: c.DisplayOrder,
		fCatIsActive:     c.IsActive,
	}
}

func categoryFromRecord(r record) models.Category {
	return models.Category{
		ID:           r.ID,
		Name:         fieldString(r.Fields, fCatName),
		Description:  fieldString(r.Fields, fCatDescription),
		DisplayOrder: fieldInt(r.Fields, fCatDisplayOrder),
		IsActive:     fieldBool(r.Fields, fCatIsActive),
	}
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	records, err := c.listAll(ctx, categoriesTable)
	if err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(records))
	for _, r := range records {
		categories = append(categories, categoryFromRecord(r))
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	rec, err := c.createRecord(ctx, categoriesTable, categoryFields(cat))
	if err != nil {
		return models.Category{}, err
	}
	return categoryFromRecord(rec), nil
}

func (c *Client) UpdateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	rec, err := c.updateRecord(ctx, categoriesTable, cat.ID, categoryFields(cat))
	if err != nil {
		return models.Category{}, err
	}
	return categoryFromRecord(rec), nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.deleteRecord(ctx, categoriesTable, id)
}
