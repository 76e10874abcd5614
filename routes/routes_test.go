package routes

import (
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodfusion-backend/payments"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubStorage struct{}

func (s *stubStorage) UploadFoodImage(file multipart.File, filename, contentType string) (string, error) {
	return "", nil
}

func (s *stubStorage) UploadComboImage(file multipart.File, filename, contentType string) (string, error) {
	return "", nil
}

func (s *stubStorage) DeleteFile(objectPath string) error { return nil }

type stubCheckout struct{}

func (s *stubCheckout) CreateCheckoutSession(items []payments.CheckoutItem, successURL, cancelURL string) (string, error) {
	return "", nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	SetupRoutes(r, db, &stubStorage{}, &stubCheckout{})
	return r
}

func TestRouteRegistration(t *testing.T) {
	r := testRouter(t)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/refresh",
		"POST /api/auth/forgot-password",
		"POST /api/auth/reset-password",
		"GET /api/auth/profile",
		"PUT /api/auth/profile",
		"PUT /api/auth/password",
		"GET /api/foods",
		"GET /api/foods/:id",
		"GET /api/foods/:id/reviews",
		"GET /api/categories",
		"GET /api/combos",
		"GET /api/combos/:id",
		"POST /api/coupons/validate",
		"GET /api/cart",
		"POST /api/cart",
		"PUT /api/cart/:id",
		"DELETE /api/cart/:id",
		"DELETE /api/cart",
		"POST /api/orders/place",
		"POST /api/orders/verify",
		"GET /api/orders",
		"GET /api/orders/:id/status",
		"POST /api/orders/:id/cancel",
		"POST /api/orders/:id/cancel-request",
		"POST /api/reviews",
		"GET /api/reviews/mine",
		"GET /api/reviews/reviewable",
		"POST /api/admin/foods",
		"PUT /api/admin/foods/:id",
		"DELETE /api/admin/foods/:id",
		"POST /api/admin/combos",
		"PUT /api/admin/combos/:id",
		"DELETE /api/admin/combos/:id",
		"GET /api/admin/coupons",
		"POST /api/admin/coupons",
		"PUT /api/admin/coupons/:id",
		"DELETE /api/admin/coupons/:id",
		"GET /api/admin/orders",
		"PUT /api/admin/orders/:id/status",
		"GET /api/admin/orders/cancellation-requests",
		"POST /api/admin/orders/:id/cancellation",
		"GET /api/admin/reviews",
		"PUT /api/admin/reviews/:id/status",
		"DELETE /api/admin/reviews/:id",
		"GET /api/admin/users",
		"PUT /api/admin/users/:id",
		"GET /api/admin/dashboard",
		"GET /health",
	}

	for _, route := range expected {
		if !registered[route] {
			t.Errorf("route %s not registered", route)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r := testRouter(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/cart"},
		{"POST", "/api/orders/place"},
		{"GET", "/api/admin/dashboard"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without a token, got %d", route.method, route.path, w.Code)
		}
	}
}
