package user

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-User-ID"); id != "" {
			claims := jwt.MapClaims{"user_id": id}
			if role := c.Get("X-User-Role"); role != "" {
				claims["role"] = role
			}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret")

	repo := NewInMemoryRepository(nil)
	app := makeApp(NewHandler(NewService(repo)))

	body := `{"fullname":"Linh Tran","email":"linh@example.com","password":"secret-123","confirmPassword":"secret-123","phone":"0912345678","gender":"female"}`
	req := httptest.NewRequest("POST", "/api/auth/sign-up", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201 for sign-up, got %d: %s", res.StatusCode, b)
	}
	var signup map[string]string
	if err := json.NewDecoder(res.Body).Decode(&signup); err != nil {
		t.Fatalf("decode sign-up response: %v", err)
	}
	if signup["accessToken"] == "" || signup["refreshToken"] == "" {
		t.Fatalf("expected tokens in sign-up response, got %v", signup)
	}

	// duplicate email is a conflict
	req2 := httptest.NewRequest("POST", "/api/auth/sign-up", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res2.StatusCode)
	}

	// login with the registered credentials
	req3 := httptest.NewRequest("POST", "/api/auth/sign-in", strings.NewReader(`{"email":"linh@example.com","password":"secret-123"}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for sign-in, got %d", res3.StatusCode)
	}

	// wrong password rejected
	req4 := httptest.NewRequest("POST", "/api/auth/sign-in", strings.NewReader(`{"email":"linh@example.com","password":"wrong-pass"}`))
	req4.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", res4.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := makeApp(NewHandler(NewService(repo)))

	cases := []string{
		`{"email":"a@b.com","password":"secret-123","confirmPassword":"secret-123","phone":"0912345678","gender":"male"}`,
		`{"fullname":"A","email":"not-an-email","password":"secret-123","confirmPassword":"secret-123","phone":"0912345678","gender":"male"}`,
		`{"fullname":"A","email":"a@b.com","password":"short","confirmPassword":"short","phone":"0912345678","gender":"male"}`,
		`{"fullname":"A","email":"a@b.com","password":"secret-123","confirmPassword":"different-1","phone":"0912345678","gender":"male"}`,
	}
	for i, body := range cases {
		req := httptest.NewRequest("POST", "/api/auth/sign-up", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		res, _ := app.Test(req)
		if res.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d", i, res.StatusCode)
		}
	}
}

func TestProfileRoutes(t *testing.T) {
	seed := []User{{
		ID:       "6f1cbe43-04f5-4ce4-9dfd-9d2f24f1da1c",
		Fullname: "Minh Nguyen",
		Email:    "minh@example.com",
		Password: hash(t, "secret-123"),
		Phone:    "0912345678",
		Gender:   "male",
		Role:     RoleCustomer,
	}}
	repo := NewInMemoryRepository(seed)
	app := makeApp(NewHandler(NewService(repo)))

	// unauthenticated profile fetch blocked
	res, _ := app.Test(httptest.NewRequest("GET", "/api/users/profile", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/users/profile", nil)
	req.Header.Set("X-User-ID", seed[0].ID)
	res2, _ := app.Test(req)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for profile, got %d", res2.StatusCode)
	}
	b, _ := io.ReadAll(res2.Body)
	if strings.Contains(string(b), "password") {
		t.Fatalf("profile response leaked password: %s", b)
	}

	// partial update via PATCH
	req3 := httptest.NewRequest("PATCH", "/api/users/profile", strings.NewReader(`{"fullname":"Minh N."}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", seed[0].ID)
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for profile update, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), "Minh N.") {
		t.Fatalf("expected updated fullname, got %s", b3)
	}
}

func TestAdminOnlyUserListing(t *testing.T) {
	seed := []User{
		{ID: "6f1cbe43-04f5-4ce4-9dfd-9d2f24f1da1c", Fullname: "Customer", Email: "c@example.com", Role: RoleCustomer},
		{ID: "e3a1a63e-5c4e-4a0e-8a5a-0b15efc45a11", Fullname: "Admin", Email: "a@example.com", Role: RoleAdmin},
	}
	repo := NewInMemoryRepository(seed)
	app := makeApp(NewHandler(NewService(repo)))

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("X-User-ID", seed[0].ID)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/users?role=customer", nil)
	req2.Header.Set("X-User-ID", seed[1].ID)
	req2.Header.Set("X-User-Role", RoleAdmin)
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res2.StatusCode)
	}
	b, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b), `"totalDocs":1`) {
		t.Fatalf("expected one filtered customer, got %s", b)
	}
}
