// Package local is the JSON-file staging store under data/. It backs the
// catalog and order flow when the remote record store is unreachable or
// unconfigured; every write flags the record NeedsSync for a later explicit
// reconciliation pass. Full-file read-modify-write under one mutex, which is safe for
// the single-instance deployment this targets, not for multiple processes.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/store"
)

const (
	productsFile   = "products.json"
	categoriesFile = "categories.json"
	ordersFile     = "orders.json"
)

type Store struct {
	dir string
	mu  sync.Mutex
	log *zap.SugaredLogger
}

func New(dir string, log *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// readFile decodes the named JSON array into out. A missing file reads as an
// empty set.
func (s *Store) readFile(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeFile(name string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// -------- Products --------

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var products []models.Product
	if err := s.readFile(productsFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var products []models.Product
	if err := s.readFile(productsFile, &products); err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, store.ErrNotFound
}

func (s *Store) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []models.Product
	if err := s.readFile(productsFile, &products); err != nil {
		return models.Product{}, err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.LocalOnly = true
	p.NeedsSync = true
	p.Status = models.StatusFor(p.IsActive)
	products = append(products, p)

	if err := s.writeFile(productsFile, products); err != nil {
		return models.Product{}, err
	}
	s.log.Infow("product staged locally", "id", p.ID, "name", p.Name)
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []models.Product
	if err := s.readFile(productsFile, &products); err != nil {
		return models.Product{}, err
	}
	for i := range products {
		if products[i].ID == p.ID {
			p.LocalOnly = products[i].LocalOnly
			p.NeedsSync = true
			p.Status = models.StatusFor(p.IsActive)
			products[i] = p
			if err := s.writeFile(productsFile, products); err != nil {
				return models.Product{}, err
			}
			return p, nil
		}
	}
	return models.Product{}, store.ErrNotFound
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []models.Product
	if err := s.readFile(productsFile, &products); err != nil {
		return err
	}
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return store.ErrNotFound
	}
	return s.writeFile(productsFile, kept)
}

func (s *Store) PendingProducts(ctx context.Context) ([]models.Product, error) {
	all, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	var pending []models.Product
	for _, p := range all {
		if p.NeedsSync {
			pending = append(pending, p)
		}
	}
	return pending, nil
}

// MarkProductSynced rewrites a pushed record under its remote id and clears
// the staging flags.
func (s *Store) MarkProductSynced(ctx context.Context, localID, remoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []models.Product
	if err := s.readFile(productsFile, &products); err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == localID {
			products[i].ID = remoteID
			products[i].NeedsSync = false
			products[i].LocalOnly = false
			return s.writeFile(productsFile, products)
		}
	}
	return store.ErrNotFound
}

// -------- Categories --------

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var categories []models.Category
	if err := s.readFile(categoriesFile, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var categories []models.Category
	if err := s.readFile(categoriesFile, &categories); err != nil {
		return models.Category{}, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.LocalOnly = true
	c.NeedsSync = true
	categories = append(categories, c)

	if err := s.writeFile(categoriesFile, categories); err != nil {
		return models.Category{}, err
	}
	s.log.Infow("category staged locally", "id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var categories []models.Category
	if err := s.readFile(categoriesFile, &categories); err != nil {
		return models.Category{}, err
	}
	for i := range categories {
		if categories[i].ID == c.ID {
			c.LocalOnly = categories[i].LocalOnly
			c.NeedsSync = true
			categories[i] = c
			if err := s.writeFile(categoriesFile, categories); err != nil {
				return models.Category{}, err
			}
			return c, nil
		}
	}
	return models.Category{}, store.ErrNotFound
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var categories []models.Category
	if err := s.readFile(categoriesFile, &categories); err != nil {
		return err
	}
	kept := categories[:0]
	for _, c := range categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(categories) {
		return store.ErrNotFound
	}
	return s.writeFile(categoriesFile, kept)
}

func (s *Store) PendingCategories(ctx context.Context) ([]models.Category, error) {
	all, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	var pending []models.Category
	for _, c := range all {
		if c.NeedsSync {
			pending = append(pending, c)
		}
	}
	return pending, nil
}

func (s *Store) MarkCategorySynced(ctx context.Context, localID, remoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var categories []models.Category
	if err := s.readFile(categoriesFile, &categories); err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID == localID {
			categories[i].ID = remoteID
			categories[i].NeedsSync = false
			categories[i].LocalOnly = false
			return s.writeFile(categoriesFile, categories)
		}
	}
	return store.ErrNotFound
}

// -------- Orders --------

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []models.Order
	if err := s.readFile(ordersFile, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, ref string) (models.Order, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range orders {
		if o.OrderRef == ref {
			return o, nil
		}
	}
	return models.Order{}, store.ErrNotFound
}

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []models.Order
	if err := s.readFile(ordersFile, &orders); err != nil {
		return err
	}
	o.NeedsSync = true
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	orders = append(orders, *o)

	if err := s.writeFile(ordersFile, orders); err != nil {
		return err
	}
	s.log.Infow("order staged locally", "orderRef", o.OrderRef)
	return nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, ref string, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []models.Order
	if err := s.readFile(ordersFile, &orders); err != nil {
		return err
	}
	for i := range orders {
		if orders[i].OrderRef == ref {
			orders[i].Status = status
			orders[i].NeedsSync = true
			return s.writeFile(ordersFile, orders)
		}
	}
	return store.ErrNotFound
}

func (s *Store) OrderRefExists(ctx context.Context, ref string) (bool, error) {
	_, err := s.GetOrder(ctx, ref)
	if err == store.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) PendingOrders(ctx context.Context) ([]models.Order, error) {
	all, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	var pending []models.Order
	for _, o := range all {
		if o.NeedsSync {
			pending = append(pending, o)
		}
	}
	return pending, nil
}

func (s *Store) MarkOrderSynced(ctx context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []models.Order
	if err := s.readFile(ordersFile, &orders); err != nil {
		return err
	}
	for i := range orders {
		if orders[i].OrderRef == ref {
			orders[i].NeedsSync = false
			return s.writeFile(ordersFile, orders)
		}
	}
	return store.ErrNotFound
}
