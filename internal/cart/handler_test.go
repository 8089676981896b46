package cart

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-User-ID"); id != "" {
			claims := jwt.MapClaims{"user_id": id, "role": c.Get("X-User-Role")}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body, userID string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func TestCartRoutes(t *testing.T) {
	svc, _ := newTestService()
	app := makeApp(NewHandler(svc))

	code, _ := doJSON(t, app, "GET", "/api/cart", "", "")
	if code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", code)
	}

	code, _ = doJSON(t, app, "GET", "/api/cart", "", testUserID)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404 before first add, got %d", code)
	}

	code, body := doJSON(t, app, "POST", "/api/cart",
		`{"productId":"`+mugID+`","quantity":2}`, testUserID)
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201 for add, got %d: %s", code, body)
	}
	var created View
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode created view: %v", err)
	}
	if created.TotalItems != 2 {
		t.Fatalf("expected add response to carry the whole cart, got %+v", created)
	}

	code, _ = doJSON(t, app, "POST", "/api/cart",
		`{"productId":"`+mugID+`","quantity":0}`, testUserID)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", code)
	}

	code, body = doJSON(t, app, "GET", "/api/cart", "", testUserID)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var view View
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.TotalItems != 2 || view.TotalPrice != 20 {
		t.Fatalf("expected totals 2/20, got %d/%v", view.TotalItems, view.TotalPrice)
	}
	if view.Items[0].ProductName != "INFP Mug" {
		t.Fatalf("expected resolved product name, got %q", view.Items[0].ProductName)
	}

	code, _ = doJSON(t, app, "GET", "/api/cart/"+view.Items[0].ID, "", testUserID)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for item lookup, got %d", code)
	}
	code, _ = doJSON(t, app, "GET", "/api/cart/c0ffee00-0000-4000-8000-00000000dead", "", testUserID)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown line item id, got %d", code)
	}

	code, body = doJSON(t, app, "PUT", "/api/cart/quantity",
		`{"productId":"`+mugID+`","quantity":5}`, testUserID)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for quantity change, got %d: %s", code, body)
	}
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.TotalItems != 5 || view.TotalPrice != 50 {
		t.Fatalf("expected 5 units at 50, got %d / %v", view.TotalItems, view.TotalPrice)
	}

	code, _ = doJSON(t, app, "DELETE", "/api/cart/"+candleID, "", testUserID)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404 removing a product not in the cart, got %d", code)
	}

	code, _ = doJSON(t, app, "DELETE", "/api/cart/"+mugID, "", testUserID)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", code)
	}
	code, _ = doJSON(t, app, "GET", "/api/cart", "", testUserID)
	if code != fiber.StatusOK {
		t.Fatalf("expected empty cart to remain readable, got %d", code)
	}

	code, body = doJSON(t, app, "DELETE", "/api/cart", "", testUserID)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for clear, got %d", code)
	}
	if !strings.Contains(string(body), "Cart deleted successfully") {
		t.Fatalf("unexpected clear response: %s", body)
	}
	code, _ = doJSON(t, app, "GET", "/api/cart", "", testUserID)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404 after clear, got %d", code)
	}
}
