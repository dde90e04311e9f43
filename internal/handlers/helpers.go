package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkostrikov/marketplace/internal/httperr"
	"github.com/mkostrikov/marketplace/internal/logging"
	"github.com/mkostrikov/marketplace/internal/models"
	"github.com/mkostrikov/marketplace/internal/mykafka"
)

// identityFromContext returns the authenticated caller's identity as set by
// the auth middleware. Handlers never read identities from request bodies.
func identityFromContext(c echo.Context) (string, error) {
	id, ok := c.Get("identity").(string)
	if !ok || id == "" {
		return "", httperr.Unauthenticated("no authenticated identity")
	}
	return id, nil
}

func roleFromContext(c echo.Context) models.Role {
	if role, ok := c.Get("role").(models.Role); ok {
		return role
	}
	return models.RoleBuyer
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, httperr.Validation("invalid " + name)
	}
	return id, nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}
