package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/queue"
)

// CreateSignature handles POST /projects/:id/signatures.  The image arrives
// base64-encoded in the JSON body and is stored as-is; decoding happens
// only to validate that the payload really is base64.
func (h *ProjectHandler) CreateSignature(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}
	username, _, _ := caller(c)

	var body struct {
		Image string `json:"image"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	image := strings.TrimSpace(body.Image)
	if image == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image is required"})
	}
	if _, err := base64.StdEncoding.DecodeString(image); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image must be base64"})
	}

	s := &model.Signature{ProjectID: p.ID, Image: image, Author: username}
	if err := h.Signatures.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create signature"})
	}
	publishActivity(queue.ActionSignatureAdded, p.ID, p.Name, username, "")
	return c.JSON(http.StatusCreated, s)
}

// ListSignatures handles GET /projects/:id/signatures, newest first.
func (h *ProjectHandler) ListSignatures(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}
	items, err := h.Signatures.ListByProject(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Signature{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
