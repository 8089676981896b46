package address

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hngoc-dev/gift-shop-backend/internal/user"
)

type Handler struct {
	service   *Service
	provinces *ProvincesClient
}

func NewHandler(service *Service, provinces *ProvincesClient) *Handler {
	return &Handler{service: service, provinces: provinces}
}

// Administrative-unit lookups are public; address CRUD requires auth.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/provinces", h.listProvinces)
	app.Get("/api/provinces/:code/districts", h.listDistricts)
	app.Get("/api/districts/:code/wards", h.listWards)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/addresses", h.list)
	app.Post("/api/addresses", h.create)
	app.Get("/api/addresses/:id", h.get)
	app.Put("/api/addresses/:id", h.update)
	app.Patch("/api/addresses/:id/default", h.setDefault)
	app.Delete("/api/addresses/:id", h.delete)
}

type addressRequest struct {
	Receiver  string `json:"receiverName"`
	Phone     string `json:"phoneNumber"`
	Province  string `json:"province"`
	District  string `json:"district"`
	Ward      string `json:"ward"`
	Detail    string `json:"detailAddress"`
	IsDefault bool   `json:"isDefault"`
}

func (r addressRequest) toAddress() Address {
	return Address{
		Receiver:  r.Receiver,
		Phone:     r.Phone,
		Province:  r.Province,
		District:  r.District,
		Ward:      r.Ward,
		Detail:    r.Detail,
		IsDefault: r.IsDefault,
	}
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	addresses, err := h.service.ListByUser(userID)
	if err != nil {
		return errorResponse(c, err)
	}
	if len(addresses) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "No addresses found"})
	}
	return c.JSON(addresses)
}

func (h *Handler) get(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	a, err := h.service.GetByID(c.Params("id"), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(a)
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.Create(userID, payload.toAddress())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	updated, err := h.service.Update(c.Params("id"), userID, payload.toAddress())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) setDefault(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	a, err := h.service.SetDefault(c.Params("id"), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(a)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.Delete(c.Params("id"), userID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Address deleted successfully"})
}

func (h *Handler) listProvinces(c *fiber.Ctx) error {
	units, err := h.provinces.Provinces()
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(units)
}

func (h *Handler) listDistricts(c *fiber.Ctx) error {
	code, err := c.ParamsInt("code")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid province code"})
	}
	units, err := h.provinces.Districts(code)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(units)
}

func (h *Handler) listWards(c *fiber.Ctx) error {
	code, err := c.ParamsInt("code")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid district code"})
	}
	units, err := h.provinces.Wards(code)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(units)
}

func errorResponse(c *fiber.Ctx, err error) error {
	switch err {
	case ErrInvalidID, ErrMissingFields:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case ErrDuplicate:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case ErrNotOwner:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
