package payment

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/groshop/grocery-shop-backend/internal/order"
)

// Orders is the slice of the order service the webhook needs.
type Orders interface {
	ConfirmPayment(orderID string, sessionID string) (order.Order, error)
}

type Handler struct {
	gateway       Gateway
	orders        Orders
	webhookSecret string
	clientURL     string
	log           *logrus.Logger
}

func NewHandler(gateway Gateway, orders Orders, webhookSecret, clientURL string, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		gateway:       gateway,
		orders:        orders,
		webhookSecret: webhookSecret,
		clientURL:     clientURL,
		log:           log,
	}
}

// RegisterRoutes wires the payment endpoints. Both must be registered
// before any body-rewriting or auth middleware: the webhook signature
// covers the raw request bytes, and the gateway calls it unauthenticated.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/webhook", h.handleWebhook)
	app.Post("/create-checkout-session", h.createCheckoutSession)
}

type checkoutItem struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

type checkoutRequest struct {
	Items   []checkoutItem `json:"items"`
	OrderID string         `json:"orderId"`
}

func (h *Handler) createCheckoutSession(c *fiber.Ctx) error {
	req := new(checkoutRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cart is empty"})
	}

	lines := make([]LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Name == "" || it.Qty < 1 || it.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cart item"})
		}
		lines = append(lines, LineItem{
			Name:       it.Name,
			UnitAmount: MinorUnits(it.Price),
			Qty:        it.Qty,
		})
	}

	sess, err := h.gateway.CreateSession(c.Context(), SessionRequest{
		Items:      lines,
		Currency:   "eur",
		SuccessURL: h.clientURL + "/cart?paid=1",
		CancelURL:  h.clientURL + "/cart?canceled=1",
		OrderID:    req.OrderID,
	})
	if err != nil {
		h.log.WithError(err).WithField("orderId", req.OrderID).Error("checkout session creation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create session"})
	}
	return c.JSON(fiber.Map{"url": sess.URL})
}

func (h *Handler) handleWebhook(c *fiber.Ctx) error {
	body := c.Body()
	header := c.Get(SignatureHeader)

	ev, err := VerifyAndParseEvent(body, header, h.webhookSecret, time.Now())
	if err != nil {
		if err == ErrMalformedEvent {
			// Signed by us but not decodable; retrying will not help,
			// still surface it as a server-side failure.
			h.log.WithError(err).Error("webhook event undecodable after valid signature")
			return c.Status(fiber.StatusInternalServerError).SendString("webhook handler failed")
		}
		h.log.WithError(err).Warn("webhook signature rejected")
		return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: " + err.Error())
	}

	if ev.Type != EventCheckoutCompleted {
		return c.JSON(fiber.Map{"received": true})
	}

	orderID := ev.Data.Object.Metadata["orderId"]
	if orderID == "" {
		h.log.WithField("event", ev.ID).Warn("checkout completed without orderId metadata")
		return c.JSON(fiber.Map{"received": true})
	}

	if _, err := h.orders.ConfirmPayment(orderID, ev.Data.Object.ID); err != nil {
		// 500 makes the gateway redeliver; confirmation is convergent
		// so the retry is safe.
		h.log.WithError(err).WithFields(logrus.Fields{
			"orderId": orderID,
			"session": ev.Data.Object.ID,
		}).Error("payment confirmation failed")
		return c.Status(fiber.StatusInternalServerError).SendString("webhook handler failed")
	}

	h.log.WithFields(logrus.Fields{
		"orderId": orderID,
		"session": ev.Data.Object.ID,
	}).Info("order marked paid")
	return c.JSON(fiber.Map{"received": true})
}
