package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arbelos/fieldbook/internal/auth"
	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/queue"
	"github.com/arbelos/fieldbook/internal/repository"
	"github.com/arbelos/fieldbook/internal/service"
)

// publishActivity sends an audit event without blocking the request; the
// broker being down only costs a log line.
func publishActivity(action, projectID, projectName, actor, detail string) {
	ev := queue.ActivityEvent{
		Action:      action,
		ProjectID:   projectID,
		ProjectName: projectName,
		Actor:       actor,
		Detail:      detail,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = service.PublishActivity(ctx, ev)
	}()
}

// CreateProject handles POST /projects.  The caller becomes the owner.
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	username, _, ok := caller(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := &model.Project{
		Name:        name,
		Description: strings.TrimSpace(body.Description),
		Owner:       username,
	}
	if err := h.Projects.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create project"})
	}
	publishActivity(queue.ActionProjectCreated, p.ID, p.Name, username, "")
	return c.JSON(http.StatusCreated, p)
}

// ListProjects handles GET /projects.  Admins see every project; everyone
// else sees only their own.  Hidden projects are omitted, never hinted at.
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	username, role, ok := caller(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		items []*model.Project
		err   error
	)
	if role == auth.RoleAdmin {
		items, err = h.Projects.ListAll(ctx)
	} else {
		items, err = h.Projects.ListByOwner(ctx, username)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Project{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetProject handles GET /projects/:id with the 404-before-403 ordering.
func (h *ProjectHandler) GetProject(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProject handles DELETE /projects/:id.  The database rows go first,
// in one transaction; the upload directory is removed only after commit so
// a failed delete never leaves metadata pointing at missing bytes.
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}

	if err := h.Projects.DeleteCascade(ctx, p.ID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if err := h.Blobs.RemoveProject(p.ID); err != nil {
		// Rows are gone; orphaned bytes are only a disk-space problem.
		log.Printf("delete project %s: removing upload dir failed: %v", p.ID, err)
	}

	username, _, _ := caller(c)
	publishActivity(queue.ActionProjectDeleted, p.ID, p.Name, username, "")
	return c.NoContent(http.StatusNoContent)
}
