package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GetUserIDFromCtx extracts the authenticated user's id from the JWT token
// stored by the jwt middleware under c.Locals("user").
func GetUserIDFromCtx(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return "", errors.New("missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("missing user_id claim")
	}
	return id, nil
}

// GetRoleFromCtx returns the role claim, defaulting to customer.
func GetRoleFromCtx(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return RoleCustomer
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return RoleCustomer
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		return role
	}
	return RoleCustomer
}

// RequireAdmin rejects requests whose token does not carry the admin role.
func RequireAdmin(c *fiber.Ctx) error {
	if GetRoleFromCtx(c) != RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}
	return c.Next()
}
