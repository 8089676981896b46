package orderstatus

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hngoc-dev/gift-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/order-statuses", h.list)
	app.Get("/api/order-statuses/:id", h.get)
	app.Post("/api/order-statuses", user.RequireAdmin, h.create)
	app.Put("/api/order-statuses/:id", user.RequireAdmin, h.update)
	app.Delete("/api/order-statuses/:id", user.RequireAdmin, h.delete)
}

type statusRequest struct {
	Name string `json:"orderStatusName"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	statuses, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(statuses)
}

func (h *Handler) get(c *fiber.Ctx) error {
	st, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if err == ErrInvalidID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order status not found"})
	}
	return c.JSON(st)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Status{Name: payload.Name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		switch err {
		case ErrMissingName:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(c.Params("id"), Status{
		Name:      payload.Name,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		switch err {
		case ErrInvalidID, ErrMissingName:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order status not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		switch err {
		case ErrInvalidID:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order status not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Order status deleted successfully"})
}
