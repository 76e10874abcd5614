package handlers

import (
	"log"
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

type FoodHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

// parseIngredients splits a comma-separated form value into a clean slice.
func parseIngredients(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ingredients := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}
	return ingredients
}

// GetFoods is the public menu listing. Supports category, search and
// availability filters.
func (h *FoodHandler) GetFoods(c *gin.Context) {
	query := h.DB.Model(&models.Food{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}
	if available := c.Query("available"); available == "true" {
		query = query.Where("is_available = ?", true)
	}

	var foods []models.Food
	if err := query.Order("name ASC").Find(&foods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch foods"})
		return
	}

	c.JSON(http.StatusOK, foods)
}

func (h *FoodHandler) GetFood(c *gin.Context) {
	id := c.Param("id")

	var food models.Food
	if err := h.DB.Where("id = ?", id).First(&food).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}

	c.JSON(http.StatusOK, food)
}

// GetCategories returns the distinct menu categories for the storefront nav.
func (h *FoodHandler) GetCategories(c *gin.Context) {
	var categories []string
	if err := h.DB.Model(&models.Food{}).Distinct("category").
		Order("category ASC").Pluck("category", &categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *FoodHandler) CreateFood(c *gin.Context) {
	var food models.Food

	food.ID = uuid.New()
	food.Name = c.PostForm("name")
	food.Description = c.PostForm("description")
	food.Category = c.PostForm("category")
	food.Ingredients = parseIngredients(c.PostForm("ingredients"))
	food.Advantages = c.PostForm("advantages")
	food.IsAvailable = c.PostForm("is_available") != "false"

	if food.Name == "" || food.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and category are required"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A positive price is required"})
		return
	}
	food.Price = price

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return
	}

	if err := utils.ValidateFileUpload(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	imageURL, err := h.Storage.UploadFoodImage(
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
		return
	}

	food.Image = imageURL

	if err := h.DB.Create(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create food"})
		return
	}

	c.JSON(http.StatusCreated, food)
}

func (h *FoodHandler) UpdateFood(c *gin.Context) {
	id := c.Param("id")

	var food models.Food
	if err := h.DB.Where("id = ?", id).First(&food).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		food.Name = name
	}
	if description, ok := c.GetPostForm("description"); ok {
		food.Description = description
	}
	if category := c.PostForm("category"); category != "" {
		food.Category = category
	}
	if ingredients, ok := c.GetPostForm("ingredients"); ok {
		food.Ingredients = parseIngredients(ingredients)
	}
	if advantages, ok := c.GetPostForm("advantages"); ok {
		food.Advantages = advantages
	}
	if available, ok := c.GetPostForm("is_available"); ok {
		food.IsAvailable = available == "true"
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a positive number"})
			return
		}
		food.Price = price
	}

	fileHeader, err := c.FormFile("image")
	if err == nil {
		if err := utils.ValidateFileUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if food.Image != "" {
			objectPath, pathErr := firebase.ExtractObjectPath(food.Image)
			if pathErr == nil {
				_ = h.Storage.DeleteFile(objectPath)
			}
		}

		file, openErr := fileHeader.Open()
		if openErr != nil {
			log.Printf("Failed to open uploaded file: %v", openErr)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer file.Close()

		imageURL, uploadErr := h.Storage.UploadFoodImage(
			file,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
		)
		if uploadErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}

		food.Image = imageURL
	}

	if err := h.DB.Save(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update food"})
		return
	}

	c.JSON(http.StatusOK, food)
}

func (h *FoodHandler) DeleteFood(c *gin.Context) {
	id := c.Param("id")

	var food models.Food
	if err := h.DB.Where("id = ?", id).First(&food).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}

	if food.Image != "" {
		objectPath, err := firebase.ExtractObjectPath(food.Image)
		if err == nil {
			_ = h.Storage.DeleteFile(objectPath)
		}
	}

	if err := h.DB.Delete(&models.Food{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete food"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food deleted successfully"})
}
