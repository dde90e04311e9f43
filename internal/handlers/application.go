package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkostrikov/marketplace/internal/httperr"
	"github.com/mkostrikov/marketplace/internal/logging"
	"github.com/mkostrikov/marketplace/internal/models"
	"github.com/mkostrikov/marketplace/internal/mykafka"
	"github.com/mkostrikov/marketplace/internal/store"
)

type ApplicationHandler struct {
	Store    *store.Store
	Producer *mykafka.Producer
}

// Submit files a new seller application for the caller. Multiple
// applications over time are allowed; the latest one is the current one.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "application.submit")

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	var req struct {
		Email          string `json:"email"`
		Phone          string `json:"phone"`
		PaymentDetails string `json:"payment_details"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}
	if req.Email == "" || req.Phone == "" {
		return httperr.Validation("email and phone are required")
	}

	app := models.SellerApplication{
		UserID:         identity,
		Email:          req.Email,
		Phone:          req.Phone,
		PaymentDetails: req.PaymentDetails,
		Status:         models.ApplicationPending,
	}
	if err := h.Store.CreateSellerApplication(ctx, &app); err != nil {
		l.Error("create application failed", "error", err)
		return httperr.Internal()
	}

	publish(c, h.Producer, "user_events", identity, map[string]any{
		"type":          "seller_application_submitted",
		"applicationID": app.ID,
		"userID":        identity,
	})

	return c.JSON(http.StatusCreated, app)
}

// MyApplication returns the caller's most recent application.
func (h *ApplicationHandler) MyApplication(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	app, err := h.Store.GetUserSellerApplication(ctx, identity)
	if err != nil {
		logging.FromContext(ctx).Error("get application failed", "error", err)
		return httperr.Internal()
	}
	if app == nil {
		return httperr.NotFound("no application on file")
	}
	return c.JSON(http.StatusOK, app)
}

// ListAll is the admin review queue, newest first.
func (h *ApplicationHandler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	apps, err := h.Store.GetSellerApplications(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list applications failed", "error", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, apps)
}

// Decide sets an application's status. Approval promotes the applicant to
// an approved seller; this is the one cross-entity side effect in the
// system and happens only on the exact status "approved".
func (h *ApplicationHandler) Decide(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "application.decide")

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}
	status := models.ApplicationStatus(req.Status)
	if !status.Valid() {
		return httperr.Validation("unknown application status")
	}

	app, err := h.Store.UpdateSellerApplicationStatus(ctx, id, status)
	if err != nil {
		l.Error("update application failed", "error", err)
		return httperr.Internal()
	}
	if app == nil {
		return httperr.NotFound("application not found")
	}

	if status == models.ApplicationApproved {
		applicant, err := h.Store.GetUser(ctx, app.UserID)
		if err != nil {
			l.Error("get applicant failed", "error", err)
			return httperr.Internal()
		}
		if applicant == nil {
			return httperr.NotFound("applicant not found")
		}

		if _, err := h.Store.UpsertUser(ctx, store.UpsertUserParams{
			ID:              applicant.ID,
			Email:           applicant.Email,
			FirstName:       applicant.FirstName,
			LastName:        applicant.LastName,
			ProfileImageURL: applicant.ProfileImageURL,
			Role:            models.RoleSeller,
			IsApproved:      true,
		}); err != nil {
			l.Error("promote applicant failed", "error", err)
			return httperr.Internal()
		}

		publish(c, h.Producer, "user_events", app.UserID, map[string]any{
			"type":   "seller_approved",
			"userID": app.UserID,
		})
	}

	return c.JSON(http.StatusOK, app)
}
