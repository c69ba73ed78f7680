package productController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/store"
)

// -------- Request Structs --------

type CreateProductRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Price       float64            `json:"price" binding:"min=0"`
	CategoryIDs []string           `json:"category" binding:"required,min=1"`
	Stock       int                `json:"stock" binding:"min=0"`
	ImageURL    string             `json:"imageUrl"`
	Variations  []models.Variation `json:"variations"`
	IsActive    *bool              `json:"isActive"`
}

// UpdateProductRequest carries only the fields the admin actually edited.
type UpdateProductRequest struct {
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Price       *float64            `json:"price"`
	CategoryIDs []string            `json:"category"`
	Stock       *int                `json:"stock"`
	ImageURL    *string             `json:"imageUrl"`
	Variations  *[]models.Variation `json:"variations"`
	IsActive    *bool               `json:"isActive"`
}

// -------- Handlers --------

// GetProducts lists the catalog. The storefront only sees active products;
// admins pass ?include_inactive=true to see everything.
func GetProducts(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := products.ListProducts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		if c.Query("include_inactive") == "true" {
			c.JSON(http.StatusOK, all)
			return
		}
		active := make([]models.Product, 0, len(all))
		for _, p := range all {
			if p.IsActive {
				active = append(active, p)
			}
		}
		c.JSON(http.StatusOK, active)
	}
}

func GetProductByID(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.GetProduct(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func CreateProduct(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		p := models.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			CategoryIDs: req.CategoryIDs,
			Stock:       req.Stock,
			ImageURL:    req.ImageURL,
			Variations:  req.Variations,
			IsActive:    isActive,
			Status:      models.StatusFor(isActive),
		}

		created, err := products.CreateProduct(c.Request.Context(), p)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func UpdateProduct(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, err := products.GetProduct(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if req.Name != "" {
			existing.Name = req.Name
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.Price != nil {
			if *req.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
				return
			}
			existing.Price = *req.Price
		}
		if req.CategoryIDs != nil {
			existing.CategoryIDs = req.CategoryIDs
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock must not be negative"})
				return
			}
			existing.Stock = *req.Stock
		}
		if req.ImageURL != nil {
			existing.ImageURL = *req.ImageURL
		}
		if req.Variations != nil {
			existing.Variations = *req.Variations
		}
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}
		existing.Status = models.StatusFor(existing.IsActive)

		updated, err := products.UpdateProduct(c.Request.Context(), existing)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteProduct(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := products.DeleteProduct(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// SyncProducts pushes locally staged products to the remote record store and
// reports each record's outcome.
func SyncProducts(syncer *store.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if syncer == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Remote record store is not configured"})
			return
		}
		results, err := syncer.SyncProducts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read pending products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}
