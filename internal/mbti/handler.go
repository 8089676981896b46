package mbti

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// The quiz is open to anonymous visitors.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/mbti/result", h.result)
}

type resultRequest struct {
	Answers []string `json:"answers"`
	Limit   int      `json:"limit"`
}

func (h *Handler) result(c *fiber.Ctx) error {
	payload := new(resultRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	res, err := h.service.Evaluate(payload.Answers, payload.Limit)
	if err != nil {
		if err == ErrInvalidAnswer {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(res)
}
