package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"foodfusion-backend/models"

	"github.com/google/uuid"
)

func TestCreateCombo(t *testing.T) {
	db := freshDB()
	router := setupComboRouter(db)
	_, adminToken := seedTestUser(db, "admin@test.com", "admin")
	dosa := seedFood(db, "Masala Dosa", "Breakfast", 120)
	coffee := seedFood(db, "Filter Coffee", "Beverages", 40)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/combos", map[string]string{
		"name":     "Breakfast Combo",
		"price":    "140",
		"food_ids": dosa.ID.String() + "," + coffee.ID.String(),
	}, map[string]string{"cover_image": "combo.jpg"}, adminToken))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var combo models.Combo
	if err := db.Preload("Foods").Where("name = ?", "Breakfast Combo").First(&combo).Error; err != nil {
		t.Fatalf("combo not persisted: %v", err)
	}
	if len(combo.Foods) != 2 {
		t.Errorf("expected 2 foods linked, got %d", len(combo.Foods))
	}
	if combo.CoverImage == "" {
		t.Error("expected cover image URL")
	}
}

func TestCreateComboRejectsUnknownFood(t *testing.T) {
	db := freshDB()
	router := setupComboRouter(db)
	_, adminToken := seedTestUser(db, "admin@test.com", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/combos", map[string]string{
		"name":     "Ghost Combo",
		"price":    "99",
		"food_ids": uuid.NewString(),
	}, nil, adminToken))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateComboRequiresFoods(t *testing.T) {
	db := freshDB()
	router := setupComboRouter(db)
	_, adminToken := seedTestUser(db, "admin@test.com", "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("POST", "/api/admin/combos", map[string]string{
		"name":  "Empty Combo",
		"price": "99",
	}, nil, adminToken))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateComboReplacesFoods(t *testing.T) {
	db := freshDB()
	router := setupComboRouter(db)
	_, adminToken := seedTestUser(db, "admin@test.com", "admin")
	dosa := seedFood(db, "Masala Dosa", "Breakfast", 120)
	idli := seedFood(db, "Idli", "Breakfast", 80)

	combo := models.Combo{ID: uuid.New(), Name: "Morning Combo", Price: 100, Foods: []models.Food{dosa}, IsAvailable: true}
	db.Create(&combo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("PUT", "/api/admin/combos/"+combo.ID.String(), map[string]string{
		"food_ids": idli.ID.String(),
	}, nil, adminToken))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Combo
	db.Preload("Foods").Where("id = ?", combo.ID).First(&updated)
	if len(updated.Foods) != 1 || updated.Foods[0].Name != "Idli" {
		t.Errorf("expected foods replaced with Idli, got %+v", updated.Foods)
	}
}

func TestGetCombosAvailableFilter(t *testing.T) {
	db := freshDB()
	router := setupComboRouter(db)
	dosa := seedFood(db, "Masala Dosa", "Breakfast", 120)

	available := models.Combo{ID: uuid.New(), Name: "Available", Price: 100, Foods: []models.Food{dosa}, IsAvailable: true}
	db.Create(&available)
	hidden := models.Combo{ID: uuid.New(), Name: "Hidden", Price: 100, Foods: []models.Food{dosa}}
	db.Create(&hidden)
	db.Model(&hidden).Update("is_available", false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/combos?available=true", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	result := parseResponseArray(w)
	if len(result) != 1 {
		t.Fatalf("expected 1 available combo, got %d", len(result))
	}
}

func TestDeleteCombo(t *testing.T) {
	db := freshDB()
	router := setupComboRouter(db)
	_, adminToken := seedTestUser(db, "admin@test.com", "admin")
	dosa := seedFood(db, "Masala Dosa", "Breakfast", 120)
	combo := models.Combo{ID: uuid.New(), Name: "Doomed Combo", Price: 100, Foods: []models.Food{dosa}, IsAvailable: true}
	db.Create(&combo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/admin/combos/"+combo.ID.String(), nil, adminToken))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Combo{}).Where("id = ?", combo.ID).Count(&count)
	if count != 0 {
		t.Error("expected combo removed from listings")
	}

	// The member foods survive the combo.
	db.Model(&models.Food{}).Where("id = ?", dosa.ID).Count(&count)
	if count != 1 {
		t.Error("deleting a combo must not delete its foods")
	}
}
