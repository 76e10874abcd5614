package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"foodfusion-backend/models"
)

func TestGetFoodsFilters(t *testing.T) {
	db := freshDB()
	router := setupFoodRouter(db)
	seedFood(db, "Masala Dosa", "Breakfast", 120)
	seedFood(db, "Biryani", "Mains", 300)
	unavailable := seedFood(db, "Seasonal Special", "Mains", 400)
	db.Model(&unavailable).Update("is_available", false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/foods", nil))
	if len(parseResponseArray(w)) != 3 {
		t.Errorf("expected 3 foods unfiltered")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/foods?category=Mains", nil))
	if len(parseResponseArray(w)) != 2 {
		t.Errorf("expected 2 foods in Mains")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/foods?category=Mains&available=true", nil))
	if len(parseResponseArray(w)) != 1 {
		t.Errorf("expected 1 available food in Mains")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/foods?search=dosa", nil))
	if len(parseResponseArray(w)) != 1 {
		t.Errorf("expected case-insensitive name search to match 1 food")
	}
}

func TestGetCategories(t *testing.T) {
	db := freshDB()
	router := setupFoodRouter(db)
	seedFood(db, "Masala Dosa", "Breakfast", 120)
	seedFood(db, "Idli", "Breakfast", 80)
	seedFood(db, "Biryani", "Mains", 300)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/categories", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	categories := parseResponseArray(w)
	if len(categories) != 2 {
		t.Fatalf("expected 2 distinct categories, got %d", len(categories))
	}
}

func TestCreateFood(t *testing.T) {
	db := freshDB()
	router := setupFoodRouter(db)
	_, adminToken := seedTestUser(db, "admin@test.com", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/foods", map[string]string{
		"name":        "Butter Chicken",
		"description": "Rich tomato gravy",
		"price":       "350",
		"category":    "Mains",
		"ingredients": "chicken, butter, tomato",
	}, map[string]string{"image": "butter-chicken.jpg"}, adminToken))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var food models.Food
	if err := db.Where("name = ?", "Butter Chicken").First(&food).Error; err != nil {
		t.Fatalf("food not persisted: %v", err)
	}
	if len(food.Ingredients) != 3 {
		t.Errorf("expected 3 parsed ingredients, got %v", food.Ingredients)
	}
	if food.Image == "" {
		t.Error("expected uploaded image URL")
	}
}

func TestCreateFoodRequiresImage(t *testing.T) {
	db := freshDB()
	router := setupFoodRouter(db)
	_, adminToken := seedTestUser(db, "admin@test.com", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/foods", map[string]string{
		"name":     "Imageless",
		"price":    "100",
		"category": "Mains",
	}, nil, adminToken))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateFoodRejectsBadPrice(t *testing.T) {
	db := freshDB()
	router := setupFoodRouter(db)
	_, adminToken := seedTestUser(db, "admin@test.com", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/foods", map[string]string{
		"name":     "Free Lunch",
		"price":    "-5",
		"category": "Mains",
	}, map[string]string{"image": "lunch.jpg"}, adminToken))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateFoodReplacesImage(t *testing.T) {
	db := freshDB()
	router := setupFoodRouter(db)
	_, adminToken := seedTestUser(db, "admin@test.com", "admin")
	food := seedFood(db, "Biryani", "Mains", 300)
	db.Model(&food).Update("image", "https://storage.googleapis.com/test-bucket/foods/old.jpg")

	t.Setenv("FIREBASE_STORAGE_BUCKET", "test-bucket")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("PUT", "/api/admin/foods/"+food.ID.String(), map[string]string{
		"price": "320",
	}, map[string]string{"image": "new.jpg"}, adminToken))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Food
	db.Where("id = ?", food.ID).First(&updated)
	if updated.Price != 320 {
		t.Errorf("expected price 320, got %v", updated.Price)
	}
	if updated.Image == "https://storage.googleapis.com/test-bucket/foods/old.jpg" {
		t.Error("expected image replaced")
	}
}

func TestDeleteFood(t *testing.T) {
	db := freshDB()
	router := setupFoodRouter(db)
	_, adminToken := seedTestUser(db, "admin@test.com", "admin")
	food := seedFood(db, "Biryani", "Mains", 300)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/admin/foods/"+food.ID.String(), nil, adminToken))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var count int64
	db.Model(&models.Food{}).Where("id = ?", food.ID).Count(&count)
	if count != 0 {
		t.Error("expected food soft-deleted from listings")
	}
}

func TestFoodAdminRoutesRequireAdmin(t *testing.T) {
	db := freshDB()
	router := setupFoodRouter(db)
	_, token := seedTestUser(db, "customer@test.com", "customer")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/foods", map[string]string{
		"name":     "Sneaky Dish",
		"price":    "1",
		"category": "Mains",
	}, map[string]string{"image": "dish.jpg"}, token))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
