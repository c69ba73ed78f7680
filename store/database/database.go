// Package database is the relational store for orders and delivery settings,
// the authoritative path when Postgres is configured.
package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/store"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, ref string) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("order_ref = ?", ref).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, store.ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	return s.db.WithContext(ctx).Create(o).Error
}

func (s *Store) UpdateOrderStatus(ctx context.Context, ref string, status models.OrderStatus) error {
	res := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_ref = ?", ref).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) OrderRefExists(ctx context.Context, ref string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_ref = ?", ref).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) DeliverySettings(ctx context.Context) ([]models.DeliverySetting, error) {
	var settings []models.DeliverySetting
	if err := s.db.WithContext(ctx).Order("borough ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// SeedDeliverySettings inserts the default borough schedule when the table is
// empty. Existing rows are never touched.
func (s *Store) SeedDeliverySettings(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.DeliverySetting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := []models.DeliverySetting{
		{Borough: "Manhattan", DeliveryFee: 10, FreeDeliveryMinimum: 100},
		{Borough: "Brooklyn", DeliveryFee: 5, FreeDeliveryMinimum: 50},
		{Borough: "Queens", DeliveryFee: 7, FreeDeliveryMinimum: 75},
		{Borough: "Bronx", DeliveryFee: 8, FreeDeliveryMinimum: 100},
		{Borough: "Staten Island", DeliveryFee: 10, FreeDeliveryMinimum: 125},
	}
	return s.db.WithContext(ctx).Create(&defaults).Error
}
