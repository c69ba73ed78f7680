package airtable

import (
	"context"
	"encoding/json"

	"github.com/ronautumn/hhnyc-api/models"
)

// Column names in the Products table. The translation table lives here and
// only here, so no untyped maps leave this package.
const (
	fName        = "Name"
	fDescription = "Description"
	fPrice       = "Price"
	fCategory    = "Category"
	fStock       = "Stock"
	fImageURL    = "Image URL"
	fVariations  = "Variations"
	fIsActive    = "Is Active"
	fStatus      = "Status"
)

func productFields(p models.Product) map[string]any {
	fields := map[string]any{
		fName:        p.Name,
		fDescription: p.Description,
		fPrice:       p.Price,
		fStock:       p.Stock,
		fImageURL:    p.ImageURL,
		fIsActive:    p.IsActive,
		fStatus:      models.StatusFor(p.IsActive),
	}
	if len(p.CategoryIDs) > 0 {
		fields[fCategory] = p.CategoryIDs
	}
	if len(p.Variations) > 0 {
		// Variations live in a long-text column as JSON.
		if data, err := json.Marshal(p.Variations); err == nil {
			fields[fVariations] = string(data)
		}
	}
	return fields
}

func productFromRecord(r record) models.Product {
	p := models.Product{
		ID:          r.ID,
		Name:        fieldString(r.Fields, fName),
		Description: fieldString(r.Fields, fDescription),
		Price:       fieldFloat(r.Fields, fPrice),
		CategoryIDs: fieldStrings(r.Fields, fCategory),
		Stock:       fieldInt(r.Fields, fStock),
		ImageURL:    fieldString(r.Fields, fImageURL),
		IsActive:    fieldBool(r.Fields, fIsActive),
	}
	p.Status = models.StatusFor(p.IsActive)
	if raw := fieldString(r.Fields, fVariations); raw != "" {
		// Malformed variation JSON degrades to a variation-less product.
		_ = json.Unmarshal([]byte(raw), &p.Variations)
	}
	return p
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	records, err := c.listAll(ctx, productsTable)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(records))
	for _, r := range records {
		products = append(products, productFromRecord(r))
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (models.Product, error) {
	rec, err := c.getRecord(ctx, productsTable, id)
	if err != nil {
		return models.Product{}, err
	}
	return productFromRecord(rec), nil
}

func (c *Client) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	rec, err := c.createRecord(ctx, productsTable, productFields(p))
	if err != nil {
		return models.Product{}, err
	}
	return productFromRecord(rec), nil
}

func (c *Client) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	rec, err := c.updateRecord(ctx, productsTable, p.ID, productFields(p))
	if err != nil {
		return models.Product{}, err
	}
	return productFromRecord(rec), nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.deleteRecord(ctx, productsTable, id)
}
