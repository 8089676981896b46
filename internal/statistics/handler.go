package statistics

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hngoc-dev/gift-shop-backend/internal/user"
)

var ErrInvalidRange = errors.New("dateFrom and dateTo must be RFC3339 timestamps")

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/statistics/revenue", user.RequireAdmin, h.revenue)
	app.Get("/api/statistics/orders-per-month", user.RequireAdmin, h.ordersPerMonth)
	app.Get("/api/statistics/summary", user.RequireAdmin, h.rangeSummary)
}

func (h *Handler) revenue(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().UTC().Year())
	summary, err := h.repo.RevenueByYear(year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(summary)
}

func (h *Handler) ordersPerMonth(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().UTC().Year())
	months, err := h.repo.OrdersPerMonth(year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(months)
}

func (h *Handler) rangeSummary(c *fiber.Ctx) error {
	dateFrom, dateTo := c.Query("dateFrom"), c.Query("dateTo")
	if _, err := time.Parse(time.RFC3339, dateFrom); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ErrInvalidRange.Error()})
	}
	if _, err := time.Parse(time.RFC3339, dateTo); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ErrInvalidRange.Error()})
	}
	summary, err := h.repo.Range(dateFrom, dateTo)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(summary)
}
