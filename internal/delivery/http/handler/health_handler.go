package handler

import (
	"context"
	"time"

	"dev-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type healthStatus struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// HealthHandler reports database and cache reachability. The cache is
// optional and never fails the check.
type HealthHandler struct {
	db      Pinger
	cache   Pinger
	timeout time.Duration
}

func NewHealthHandler(db Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	st := healthStatus{Database: probe(ctx, h.db), Cache: probe(ctx, h.cache)}
	if st.Database != "ok" {
		return response.Error(c, fiber.StatusServiceUnavailable, "database unavailable", st)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "ok"
}
