package user

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	accessTokenTTL  = 30 * 24 * time.Hour
	refreshTokenTTL = 100 * 24 * time.Hour
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/auth/sign-up", h.register)
	app.Post("/api/auth/sign-in", h.login)
	app.Post("/api/auth/refresh-token", h.refreshToken)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/auth/logout", h.logout)
	app.Get("/api/users/profile", h.getProfile)
	app.Put("/api/users/profile", h.updateProfile)
	app.Patch("/api/users/profile", h.updateProfile)
	app.Put("/api/users/password", h.updatePassword)

	app.Get("/api/users", RequireAdmin, h.getUsers)
	app.Get("/api/users/:id", RequireAdmin, h.getUser)
	app.Delete("/api/users/:id", RequireAdmin, h.deleteUser)
}

type registerRequest struct {
	Fullname        string `json:"fullname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
	Gender          string `json:"gender"`
	DateOfBirth     string `json:"dateOfBirth"`
	Role            string `json:"role"`
}

func (r *registerRequest) validate() string {
	switch {
	case r.Fullname == "" || r.Email == "" || r.Password == "" || r.Phone == "" || r.Gender == "":
		return "Missing required fields"
	case !ValidEmail(r.Email):
		return "Invalid email format"
	case !ValidPhone(r.Phone):
		return "Invalid phone number format"
	case len(r.Password) < 8:
		return "Password must be at least 8 characters"
	case r.Password != r.ConfirmPassword:
		return "Passwords do not match"
	case r.Role != "" && !ValidRole(r.Role):
		return "Invalid role"
	}
	return ""
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if msg := payload.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Register(User{
		Fullname:    payload.Fullname,
		Email:       payload.Email,
		Password:    payload.Password,
		Phone:       payload.Phone,
		Gender:      payload.Gender,
		DateOfBirth: payload.DateOfBirth,
		Role:        payload.Role,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if err == ErrEmailExists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	access, refresh, err := h.issueTokens(created)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	if err := h.service.StoreRefreshToken(created.ID, refresh); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"userId":       created.ID,
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing required fields"})
	}

	u, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	access, refresh, err := h.issueTokens(u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	if err := h.service.StoreRefreshToken(u.ID, refresh); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"userId":       u.ID,
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) refreshToken(c *fiber.Ctx) error {
	payload := new(refreshRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	token, err := jwt.Parse(payload.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("REFRESH_TOKEN_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid refresh token"})
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid refresh token"})
	}
	userID, _ := claims["user_id"].(string)

	u, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}
	// the stored token must match the one presented; rotation invalidates old tokens
	if u.RefreshToken != payload.RefreshToken {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid refresh token"})
	}

	access, refresh, err := h.issueTokens(u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	if err := h.service.StoreRefreshToken(u.ID, refresh); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"accessToken": access, "refreshToken": refresh})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.service.StoreRefreshToken(userID, ""); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	u, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}
	return c.JSON(u)
}

type profileUpdateRequest struct {
	Fullname    *string `json:"fullname,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	existing, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	payload := new(profileUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email != nil && !ValidEmail(*payload.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid email format"})
	}
	if payload.Phone != nil && !ValidPhone(*payload.Phone) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid phone number format"})
	}

	if payload.Fullname != nil {
		existing.Fullname = *payload.Fullname
	}
	if payload.Email != nil {
		existing.Email = *payload.Email
	}
	if payload.Phone != nil {
		existing.Phone = *payload.Phone
	}
	if payload.Gender != nil {
		existing.Gender = *payload.Gender
	}
	if payload.DateOfBirth != nil {
		existing.DateOfBirth = *payload.DateOfBirth
	}
	existing.Password = ""
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := h.service.UpdateProfile(userID, existing)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

type passwordUpdateRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) updatePassword(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(passwordUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if len(payload.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Password must be at least 8 characters"})
	}
	if payload.NewPassword != payload.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Passwords do not match"})
	}

	if err := h.service.UpdatePassword(userID, payload.OldPassword, payload.NewPassword); err != nil {
		switch err {
		case ErrNotFound, ErrInvalidID:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		case ErrInvalidCredentials:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Incorrect old password"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	f := ListFilter{
		Fullname: c.Query("fullname"),
		Email:    c.Query("email"),
		Role:     c.Query("role"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
	}
	users, total, err := h.service.List(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	totalPages := (total + f.Limit - 1) / f.Limit
	return c.JSON(fiber.Map{
		"data": users,
		"meta": fiber.Map{
			"totalDocs":   total,
			"totalPages":  totalPages,
			"currentPage": f.Page,
			"limit":       f.Limit,
		},
	})
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	u, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if err == ErrInvalidID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid Id"})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}
	return c.JSON(u)
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if err == ErrInvalidID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid Id"})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func (h *Handler) issueTokens(u User) (string, string, error) {
	access, err := signToken(u, accessTokenTTL, os.Getenv("JWT_SECRET"))
	if err != nil {
		return "", "", err
	}
	refresh, err := signToken(u, refreshTokenTTL, os.Getenv("REFRESH_TOKEN_SECRET"))
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func signToken(u User, ttl time.Duration, secret string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
