package order

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/groshop/grocery-shop-backend/internal/user"
)

// makeApp injects a jwt.Token into locals from X-User-ID / X-Role headers
// so the handler sees the same claims the jwt middleware would provide.
func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{
					"user_id": id,
					"email":   c.Get("X-Email"),
					"role":    c.Get("X-Role"),
				}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	admin := app.Group("/api/v1/admin", user.AdminRequired())
	h.RegisterAdminRoutes(admin)
	return app
}

func TestCreateOrder_COD(t *testing.T) {
	svc, repo := newTestService(nil)
	app := makeApp(NewHandler(svc))

	payload := `{"items":[{"productId":1,"name":"Bread","price":2.5,"qty":2}]}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	req.Header.Set("X-Email", "j@example.com")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var ord Order
	if err := json.NewDecoder(res.Body).Decode(&ord); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ord.UserID != 7 || ord.Email != "j@example.com" {
		t.Fatalf("caller identity not taken from claims: %+v", ord)
	}
	if ord.Status != StatusNew || ord.PaymentMethod != PaymentCOD || ord.Total != 5.0 {
		t.Fatalf("unexpected order: %+v", ord)
	}

	stored, err := repo.GetByID(ord.ID)
	if err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	if stored.Total != 5.0 {
		t.Fatalf("stored order differs: %+v", stored)
	}
}

func TestCreateOrder_RequiresAuthAndItems(t *testing.T) {
	svc, _ := newTestService(nil)
	app := makeApp(NewHandler(svc))

	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{"items":[]}`))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-ID", "7")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", res2.StatusCode)
	}
}

func TestGetMyOrder_HidesOtherCustomersOrders(t *testing.T) {
	svc, _ := newTestService([]Order{{ID: "ord_1", UserID: 7}})
	app := makeApp(NewHandler(svc))

	req := httptest.NewRequest("GET", "/api/v1/orders/ord_1", nil)
	req.Header.Set("X-User-ID", "8")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for foreign order, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/v1/orders/ord_1", nil)
	req2.Header.Set("X-User-ID", "7")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for own order, got %d", res2.StatusCode)
	}
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	svc, _ := newTestService(nil)
	app := makeApp(NewHandler(svc))

	req := httptest.NewRequest("GET", "/api/v1/admin/orders", nil)
	req.Header.Set("X-User-ID", "7")
	req.Header.Set("X-Role", "user")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/v1/admin/orders", nil)
	req2.Header.Set("X-User-ID", "1")
	req2.Header.Set("X-Role", "admin")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res2.StatusCode)
	}
}

func TestAdminSetStatus(t *testing.T) {
	svc, repo := newTestService([]Order{{ID: "ord_1", Status: StatusPaid}})
	app := makeApp(NewHandler(svc))

	do := func(body string) int {
		req := httptest.NewRequest("PATCH", "/api/v1/admin/orders/ord_1/status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "1")
		req.Header.Set("X-Role", "admin")
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return res.StatusCode
	}

	if code := do(`{"status":"shipped"}`); code != fiber.StatusOK {
		t.Fatalf("paid -> shipped should succeed, got %d", code)
	}
	ord, _ := repo.GetByID("ord_1")
	if ord.Status != StatusShipped {
		t.Fatalf("expected shipped, got %s", ord.Status)
	}

	if code := do(`{"status":"paid"}`); code != fiber.StatusBadRequest {
		t.Fatalf("shipped is final, expected 400, got %d", code)
	}
	if code := do(`{"status":"bogus"}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", code)
	}
}

func TestAdminOrderStats(t *testing.T) {
	svc, _ := newTestService([]Order{
		{ID: "a", Status: StatusPaid, Total: 10},
		{ID: "b", Status: StatusNew, PaymentMethod: PaymentCOD},
	})
	app := makeApp(NewHandler(svc))

	req := httptest.NewRequest("GET", "/api/v1/admin/orders/stats", nil)
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Role", "admin")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var st Stats
	if err := json.NewDecoder(res.Body).Decode(&st); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if st.Total != 2 || st.Paid != 1 || st.CODNew != 1 || st.Revenue != 10 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}
