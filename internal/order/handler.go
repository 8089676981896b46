package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hngoc-dev/gift-shop-backend/internal/cart"
	"github.com/hngoc-dev/gift-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/orders", h.checkout)
	app.Get("/api/orders/me", h.listMine)
	app.Get("/api/orders", user.RequireAdmin, h.list)
	app.Get("/api/orders/:id", h.get)
	app.Put("/api/orders/:id/status", user.RequireAdmin, h.updateStatus)
}

type checkoutRequest struct {
	AddressID      string `json:"addressId"`
	DeliveryMethod string `json:"deliveryMethod"`
	PaymentMethod  string `json:"paymentMethod"`
}

type statusChangeRequest struct {
	StatusID string `json:"orderStatusId"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	o, err := h.service.Checkout(userID, CheckoutInput{
		AddressID:      payload.AddressID,
		DeliveryMethod: payload.DeliveryMethod,
		PaymentMethod:  payload.PaymentMethod,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) list(c *fiber.Ctx) error {
	filter := ListFilter{
		StatusID: c.Query("orderStatusId"),
		UserID:   c.Query("userId"),
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
	}
	orders, total, err := h.service.List(filter)
	if err != nil {
		return errorResponse(c, err)
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	totalPages := (total + limit - 1) / limit
	return c.JSON(fiber.Map{
		"orders":      orders,
		"totalDocs":   total,
		"totalPages":  totalPages,
		"currentPage": filter.Page,
		"limit":       limit,
	})
}

func (h *Handler) get(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	role := user.GetRoleFromCtx(c)
	o, err := h.service.GetByID(c.Params("id"), userID, role == user.RoleAdmin)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusChangeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	o, err := h.service.UpdateStatus(c.Params("id"), payload.StatusID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(o)
}

func errorResponse(c *fiber.Ctx, err error) error {
	switch err {
	case ErrInvalidID, ErrMissingFields, ErrEmptyCart, ErrUnknownStatus, cart.ErrInvalidID:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case ErrNotOwner:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
	case ErrNotFound, cart.ErrCartNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
