// Package store defines the persistence ports for catalog and order records
// and the reconciliation engine that pushes locally staged records to the
// remote record store.
package store

import (
	"context"
	"errors"

	"github.com/ronautumn/hhnyc-api/models"
)

var ErrNotFound = errors.New("record not found")

type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, p models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, c models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type OrderStore interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, ref string) (models.Order, error)
	CreateOrder(ctx context.Context, o *models.Order) error
	UpdateOrderStatus(ctx context.Context, ref string, status models.OrderStatus) error
	OrderRefExists(ctx context.Context, ref string) (bool, error)
}
