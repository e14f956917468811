package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/queue"
)

// CreateNote handles POST /projects/:id/notes.
func (h *ProjectHandler) CreateNote(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}
	username, _, _ := caller(c)

	var body struct {
		Body string `json:"body"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	text := strings.TrimSpace(body.Body)
	if text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body is required"})
	}

	n := &model.Note{ProjectID: p.ID, Body: text, Author: username}
	if err := h.Notes.Create(ctx, n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create note"})
	}
	publishActivity(queue.ActionNoteAdded, p.ID, p.Name, username, "")
	return c.JSON(http.StatusCreated, n)
}

// ListNotes handles GET /projects/:id/notes, newest first.
func (h *ProjectHandler) ListNotes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}
	items, err := h.Notes.ListByProject(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Note{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
