package product

import (
	"strings"
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

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products", h.getProducts)
	app.Get("/api/products/:id", h.getProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/products", user.RequireAdmin, h.createProduct)
	app.Put("/api/products/:id", user.RequireAdmin, h.updateProduct)
	app.Delete("/api/products/:id", user.RequireAdmin, h.deleteProduct)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	f := ListFilter{
		Traits: splitList(c.Query("traits")),
		MBTI:   splitList(c.Query("mbti")),
		Search: c.Query("searchString"),
		SortBy: c.Query("sortBy", "createdAt"),
		Desc:   c.Query("isDesc") == "true",
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	}
	for _, m := range f.MBTI {
		if !ValidMBTIType(m) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid mbti type"})
		}
	}

	products, total, err := h.service.List(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	totalPages := (total + f.Limit - 1) / f.Limit
	return c.JSON(fiber.Map{
		"products":    products,
		"totalDocs":   total,
		"totalPages":  totalPages,
		"currentPage": f.Page,
		"limit":       f.Limit,
	})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if err == ErrInvalidID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid Product ID"})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	return c.JSON(p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	for _, m := range p.RecommendedTypes {
		if !ValidMBTIType(m) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid mbti type"})
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	created, err := h.service.Create(*p)
	if err != nil {
		switch err {
		case ErrMissingFields, ErrInvalidTypeRef:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case ErrUnknownType:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	updated, err := h.service.Update(c.Params("id"), *p)
	if err != nil {
		switch err {
		case ErrInvalidID, ErrInvalidTypeRef:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case ErrNotFound, ErrUnknownType:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		switch err {
		case ErrInvalidID:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
