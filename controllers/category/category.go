package categoryController

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/store"
)

type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}

type UpdateCategoryRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// GetCategories lists categories sorted by display order.
func GetCategories(categories store.CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := categories.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		if c.Query("include_inactive") != "true" {
			active := make([]models.Category, 0, len(all))
			for _, cat := range all {
				if cat.IsActive {
					active = append(active, cat)
				}
			}
			all = active
		}
		sort.SliceStable(all, func(i, j int) bool { return all[i].DisplayOrder < all[j].DisplayOrder })
		c.JSON(http.StatusOK, all)
	}
}

func CreateCategory(categories store.CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		created, err := categories.CreateCategory(c.Request.Context(), models.Category{
			Name:         req.Name,
			Description:  req.Description,
			DisplayOrder: req.DisplayOrder,
			IsActive:     isActive,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func UpdateCategory(categories store.CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		all, err := categories.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		var existing *models.Category
		for i := range all {
			if all[i].ID == id {
				existing = &all[i]
				break
			}
		}
		if existing == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		var req UpdateCategoryRequest
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
		if req.DisplayOrder != nil {
			existing.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}

		updated, err := categories.UpdateCategory(c.Request.Context(), *existing)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteCategory(categories store.CategoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := categories.DeleteCategory(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}

func SyncCategories(syncer *store.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if syncer == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Remote record store is not configured"})
			return
		}
		results, err := syncer.SyncCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read pending categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}
