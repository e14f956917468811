package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/queue"
)

// CreateTimesheet handles POST /projects/:id/timesheets.  Hours must be
// non-negative and the date must be YYYY-MM-DD.
func (h *ProjectHandler) CreateTimesheet(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}
	username, _, _ := caller(c)

	var body struct {
		WorkDate    string  `json:"work_date"`
		Hours       float64 `json:"hours"`
		Description string  `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	workDate := strings.TrimSpace(body.WorkDate)
	if _, err := time.Parse("2006-01-02", workDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "work_date must be YYYY-MM-DD"})
	}
	if body.Hours < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hours must be non-negative"})
	}

	t := &model.Timesheet{
		ProjectID:   p.ID,
		Author:      username,
		WorkDate:    workDate,
		Hours:       body.Hours,
		Description: strings.TrimSpace(body.Description),
	}
	if err := h.Timesheets.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create timesheet"})
	}
	publishActivity(queue.ActionTimesheetLogged, p.ID, p.Name, username,
		fmt.Sprintf("date=%s hours=%.2f", t.WorkDate, t.Hours))
	return c.JSON(http.StatusCreated, t)
}

// ListTimesheets handles GET /projects/:id/timesheets, most recent first.
func (h *ProjectHandler) ListTimesheets(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}
	items, err := h.Timesheets.ListByProject(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Timesheet{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
