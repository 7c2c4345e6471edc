package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/groshop/grocery-shop-backend/internal/user"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterProtectedRoutes wires the storefront order endpoints. These
// sit behind the JWT middleware; the caller identity comes from the
// token claims, never from the payload.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders", h.listMyOrders)
	app.Get("/api/v1/orders/:id", h.getMyOrder)
}

func (h *Handler) RegisterAdminRoutes(g fiber.Router) {
	g.Get("/orders", h.adminListOrders)
	g.Get("/orders/stats", h.adminOrderStats)
	g.Patch("/orders/:id/status", h.adminSetStatus)
}

type createOrderRequest struct {
	Items []Item `json:"items"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	email, _ := user.GetEmailFromCtx(c)

	req := new(createOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.CreateCOD(userID, email, req.Items)
	if err != nil {
		if err == ErrEmptyOrder || err == ErrInvalidItem {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(ord)
}

func (h *Handler) listMyOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getMyOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	ord, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	role, _ := user.GetRoleFromCtx(c)
	if ord.UserID != userID && role != user.RoleAdmin {
		// Opaque ids should not leak existence to other customers.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	}
	return c.JSON(ord)
}

func (h *Handler) adminListOrders(c *fiber.Ctx) error {
	f := Filter{
		Status: Status(c.Query("status")),
		Query:  c.Query("q"),
	}
	if f.Status != "" && !f.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order status"})
	}
	orders, err := h.service.ListAdmin(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) adminOrderStats(c *fiber.Ctx) error {
	st, err := h.service.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(st)
}

type statusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) adminSetStatus(c *fiber.Ctx) error {
	req := new(statusRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.SetStatus(c.Params("id"), req.Status)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrInvalidStatus, ErrInvalidTransition:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}
