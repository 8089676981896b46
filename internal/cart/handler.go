package cart

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hngoc-dev/gift-shop-backend/internal/product"
	"github.com/hngoc-dev/gift-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// All cart routes act on the authenticated user's own cart.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/cart", h.getCart)
	app.Post("/api/cart", h.addToCart)
	app.Put("/api/cart/quantity", h.changeQuantity)
	app.Get("/api/cart/:itemId", h.getItem)
	app.Delete("/api/cart/:productId", h.removeItem)
	app.Delete("/api/cart", h.clearCart)
}

type addRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	view, err := h.service.GetCartByUser(userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(view)
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if _, err := h.service.AddToCart(userID, payload.ProductID, payload.Quantity); err != nil {
		return errorResponse(c, err)
	}
	view, err := h.service.GetCartByUser(userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *Handler) changeQuantity(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if _, err := h.service.ChangeItemQuantity(userID, payload.ProductID, payload.Quantity); err != nil {
		return errorResponse(c, err)
	}
	view, err := h.service.GetCartByUser(userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(view)
}

func (h *Handler) getItem(c *fiber.Ctx) error {
	item, err := h.service.GetCartItem(c.Params("itemId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(item)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.RemoveFromCart(userID, c.Params("productId")); err != nil {
		return errorResponse(c, err)
	}
	view, err := h.service.GetCartByUser(userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(view)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.ClearCart(userID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart deleted successfully"})
}

func errorResponse(c *fiber.Ctx, err error) error {
	switch err {
	case ErrInvalidID, ErrInvalidQuantity, product.ErrInvalidID:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case ErrCartNotFound, ErrItemNotFound, product.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
