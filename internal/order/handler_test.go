package order

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/hngoc-dev/gift-shop-backend/internal/user"
)

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := strings.Clone(c.Get("X-User-ID")); id != "" {
			claims := jwt.MapClaims{"user_id": id, "role": strings.Clone(c.Get("X-User-Role"))}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestOrderRoutes(t *testing.T) {
	svc, carts := newTestService(t)
	app := makeApp(NewHandler(svc))

	if _, err := carts.AddToCart(buyerID, teapotID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	body := `{"addressId":"` + addressID + `","deliveryMethod":"standard","paymentMethod":"cod"}`
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", buyerID)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201 for checkout, got %d: %s", res.StatusCode, b)
	}
	var created Order
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &created); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if created.TotalPrice != 60 {
		t.Fatalf("expected total 2*30 = 60, got %v", created.TotalPrice)
	}

	// owner sees the order, a stranger gets 403, an admin gets 200
	get := func(userID, role string) int {
		req := httptest.NewRequest("GET", "/api/orders/"+created.ID, nil)
		req.Header.Set("X-User-ID", userID)
		if role != "" {
			req.Header.Set("X-User-Role", role)
		}
		res, _ := app.Test(req)
		return res.StatusCode
	}
	if code := get(buyerID, ""); code != fiber.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", code)
	}
	stranger := "9e2a1f34-5dc0-4f2a-8e75-2c3b4d5e6f70"
	if code := get(stranger, ""); code != fiber.StatusForbidden {
		t.Fatalf("expected 403 for stranger, got %d", code)
	}
	if code := get(stranger, user.RoleAdmin); code != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", code)
	}

	// admin listing is closed to customers
	listReq := httptest.NewRequest("GET", "/api/orders", nil)
	listReq.Header.Set("X-User-ID", buyerID)
	listRes, _ := app.Test(listReq)
	if listRes.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer listing all orders, got %d", listRes.StatusCode)
	}
}
