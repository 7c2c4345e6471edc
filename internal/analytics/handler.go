package analytics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service ServiceInterface
	log     *logrus.Logger
}

func NewHandler(service ServiceInterface, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/events", h.recordEvent)
}

func (h *Handler) RegisterAdminRoutes(g fiber.Router) {
	g.Get("/events/summary", h.eventSummary)
}

// recordEvent always acknowledges. Telemetry must never break the
// storefront, so storage failures are logged and swallowed.
func (h *Handler) recordEvent(c *fiber.Ctx) error {
	ev := new(Event)
	if err := c.BodyParser(ev); err != nil {
		h.log.WithError(err).Debug("unparseable analytics event")
		return c.JSON(fiber.Map{"received": true})
	}
	if _, err := h.service.Record(*ev); err != nil {
		h.log.WithError(err).WithField("type", ev.Type).Warn("analytics event dropped")
	}
	return c.JSON(fiber.Map{"received": true})
}

func (h *Handler) eventSummary(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days < 1 {
		days = 7
	}
	summary, err := h.service.Summary(days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(summary)
}
