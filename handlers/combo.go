package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"foodfusion-backend/firebase"
	"foodfusion-backend/models"
	"foodfusion-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComboHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

// resolveComboFoods parses the comma-separated food_ids form value and loads
// the referenced foods. Every id must resolve.
func (h *ComboHandler) resolveComboFoods(raw string) ([]models.Food, error) {
	var foods []models.Food
	for _, part := range strings.Split(raw, ",") {
		idStr := strings.TrimSpace(part)
		if idStr == "" {
			continue
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		var food models.Food
		if err := h.DB.Where("id = ?", id).First(&food).Error; err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}
	return foods, nil
}

func (h *ComboHandler) GetCombos(c *gin.Context) {
	query := h.DB.Preload("Foods")
	if available := c.Query("available"); available == "true" {
		query = query.Where("is_available = ?", true)
	}

	var combos []models.Combo
	if err := query.Order("created_at DESC").Find(&combos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch combos"})
		return
	}

	c.JSON(http.StatusOK, combos)
}

func (h *ComboHandler) GetCombo(c *gin.Context) {
	id := c.Param("id")

	var combo models.Combo
	if err := h.DB.Preload("Foods").Where("id = ?", id).First(&combo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
		return
	}

	c.JSON(http.StatusOK, combo)
}

func (h *ComboHandler) CreateCombo(c *gin.Context) {
	var combo models.Combo

	combo.ID = uuid.New()
	combo.Name = c.PostForm("name")
	combo.Description = c.PostForm("description")
	combo.IsAvailable = c.PostForm("is_available") != "false"

	if combo.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A positive price is required"})
		return
	}
	combo.Price = price

	foods, err := h.resolveComboFoods(c.PostForm("food_ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more food IDs are invalid"})
		return
	}
	if len(foods) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A combo must include at least one food"})
		return
	}
	combo.Foods = foods

	// Cover image is optional; the storefront falls back to the first food's image.
	fileHeader, err := c.FormFile("cover_image")
	if err == nil {
		if err := utils.ValidateFileUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		file, openErr := fileHeader.Open()
		if openErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer file.Close()

		imageURL, uploadErr := h.Storage.UploadComboImage(
			file,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
		)
		if uploadErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		combo.CoverImage = imageURL
	}

	if err := h.DB.Create(&combo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create combo"})
		return
	}

	c.JSON(http.StatusCreated, combo)
}

func (h *ComboHandler) UpdateCombo(c *gin.Context) {
	id := c.Param("id")

	var combo models.Combo
	if err := h.DB.Preload("Foods").Where("id = ?", id).First(&combo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		combo.Name = name
	}
	if description, ok := c.GetPostForm("description"); ok {
		combo.Description = description
	}
	if available, ok := c.GetPostForm("is_available"); ok {
		combo.IsAvailable = available == "true"
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a positive number"})
			return
		}
		combo.Price = price
	}

	if foodIDs, ok := c.GetPostForm("food_ids"); ok {
		foods, err := h.resolveComboFoods(foodIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more food IDs are invalid"})
			return
		}
		if len(foods) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A combo must include at least one food"})
			return
		}
		if err := h.DB.Model(&combo).Association("Foods").Replace(foods); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update combo foods"})
			return
		}
		combo.Foods = foods
	}

	fileHeader, err := c.FormFile("cover_image")
	if err == nil {
		if err := utils.ValidateFileUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if combo.CoverImage != "" {
			objectPath, pathErr := firebase.ExtractObjectPath(combo.CoverImage)
			if pathErr == nil {
				_ = h.Storage.DeleteFile(objectPath)
			}
		}

		file, openErr := fileHeader.Open()
		if openErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer file.Close()

		imageURL, uploadErr := h.Storage.UploadComboImage(
			file,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
		)
		if uploadErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		combo.CoverImage = imageURL
	}

	if err := h.DB.Save(&combo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update combo"})
		return
	}

	c.JSON(http.StatusOK, combo)
}

func (h *ComboHandler) DeleteCombo(c *gin.Context) {
	id := c.Param("id")

	var combo models.Combo
	if err := h.DB.Where("id = ?", id).First(&combo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
		return
	}

	if combo.CoverImage != "" {
		objectPath, err := firebase.ExtractObjectPath(combo.CoverImage)
		if err == nil {
			_ = h.Storage.DeleteFile(objectPath)
		}
	}

	if err := h.DB.Select("Foods").Delete(&combo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete combo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Combo deleted successfully"})
}
