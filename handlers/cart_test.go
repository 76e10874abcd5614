package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"foodfusion-backend/models"
)

func TestAddToCart(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)
	user, token := seedTestUser(db, "customer@test.com", "customer")
	food := seedFood(db, "Paneer Tikka", "Starters", 250)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/cart", map[string]interface{}{
		"food_id":  food.ID,
		"quantity": 2,
	}, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var item models.CartItem
	if err := db.Where("user_id = ? AND food_id = ?", user.ID, food.ID).First(&item).Error; err != nil {
		t.Fatalf("cart item not persisted: %v", err)
	}
	if item.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", item.Quantity)
	}
}

func TestAddToCartMergesQuantity(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)
	user, token := seedTestUser(db, "customer@test.com", "customer")
	food := seedFood(db, "Paneer Tikka", "Starters", 250)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authRequest("POST", "/api/cart", map[string]interface{}{
			"food_id":  food.ID,
			"quantity": 2,
		}, token))
		if w.Code != http.StatusOK {
			t.Fatalf("add %d failed: %d", i, w.Code)
		}
	}

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single merged row, got %d", count)
	}

	var item models.CartItem
	db.Where("user_id = ? AND food_id = ?", user.ID, food.ID).First(&item)
	if item.Quantity != 4 {
		t.Errorf("expected merged quantity 4, got %d", item.Quantity)
	}
}

func TestAddToCartUnavailableFood(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)
	_, token := seedTestUser(db, "customer@test.com", "customer")
	food := seedFood(db, "Seasonal Special", "Mains", 400)
	db.Model(&food).Update("is_available", false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/cart", map[string]interface{}{
		"food_id":  food.ID,
		"quantity": 1,
	}, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateCartItem(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)
	user, token := seedTestUser(db, "customer@test.com", "customer")
	food := seedFood(db, "Paneer Tikka", "Starters", 250)
	item := seedCartItem(db, user.ID, food.ID, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/cart/"+item.ID.String(),
		map[string]interface{}{"quantity": 5}, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.CartItem
	db.Where("id = ?", item.ID).First(&updated)
	if updated.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", updated.Quantity)
	}
}

func TestCartScopedToOwner(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)
	owner, _ := seedTestUser(db, "owner@test.com", "customer")
	_, otherToken := seedTestUser(db, "other@test.com", "customer")
	food := seedFood(db, "Paneer Tikka", "Starters", 250)
	item := seedCartItem(db, owner.ID, food.ID, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/cart/"+item.ID.String(),
		map[string]interface{}{"quantity": 3}, otherToken))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for someone else's cart item, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/cart", nil, otherToken))
	result := parseResponseArray(w)
	if len(result) != 0 {
		t.Errorf("expected empty cart for other user, got %d items", len(result))
	}
}

func TestRemoveFromCartAndClear(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)
	user, token := seedTestUser(db, "customer@test.com", "customer")
	tikka := seedFood(db, "Paneer Tikka", "Starters", 250)
	dosa := seedFood(db, "Dosa", "Breakfast", 120)
	item := seedCartItem(db, user.ID, tikka.ID, 1)
	seedCartItem(db, user.ID, dosa.ID, 2)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/cart/"+item.ID.String(), nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("remove failed: %d", w.Code)
	}

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 remaining item, got %d", count)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/cart", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("clear failed: %d", w.Code)
	}

	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected empty cart, got %d items", count)
	}
}
