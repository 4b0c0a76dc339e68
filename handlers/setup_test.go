package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"quickbite/config"
	"quickbite/handlers"
	"quickbite/middleware"
	"quickbite/models"
	"quickbite/notify"
	"quickbite/routes"

	"github.com/gin-gonic/gin"
)

// setupRouter wires a fresh in-memory database, notifier and router for one
// test. The shared-cache DSN keeps all pooled connections on the same
// in-memory database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", name)
	db, err := config.Open(dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	config.DB = db

	handlers.Notifier = notify.New(db, 64)
	t.Cleanup(handlers.Notifier.Close)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func seedUser(t *testing.T, name, email string, role models.UserRole) (models.User, string) {
	t.Helper()
	u := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "not-checked-here",
		Role:         role,
		Phone:        "777123456",
		IsAvailable:  true,
		IsActive:     true,
	}
	if err := config.DB.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := middleware.GenerateToken(&u)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return u, token
}

// orderPayload is a valid checkout body; callers override fields as needed.
func orderPayload() map[string]any {
	return map[string]any{
		"customer_name":    "Sara",
		"customer_phone":   "777123456",
		"delivery_address": "Hadda St 12",
		"items": []map[string]any{
			{"name": "Chicken Mandi", "quantity": 2, "unit_price": 20, "restaurant_id": 1},
			{"name": "Fresh Juice", "quantity": 1, "unit_price": 10, "restaurant_id": 1},
		},
		"subtotal":       50,
		"delivery_fee":   5,
		"payment_method": "cash",
		"restaurant_id":  1,
	}
}

// createOrder posts a checkout and returns the created order object.
func createOrder(t *testing.T, r *gin.Engine, payload map[string]any) map[string]any {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/orders", payload, "")
	if w.Code != 201 {
		t.Fatalf("create order: status %d body %s", w.Code, w.Body.String())
	}
	return decode(t, w)["order"].(map[string]any)
}
