package handler // handler defines http handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arbelos/fieldbook/internal/auth"
	"github.com/arbelos/fieldbook/internal/middleware"
	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/repository"
)

// The handler structs depend on these narrow interfaces rather than the
// concrete repository types so tests can drive them with in-memory fakes.
// The real repositories satisfy them without adapters.

// UserStore is the account surface used by auth endpoints.
type UserStore interface {
	Create(ctx context.Context, username, password, fullName, email, role string, cost int) error
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// ProjectStore is the project surface used by every project-scoped endpoint.
type ProjectStore interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	ListAll(ctx context.Context) ([]*model.Project, error)
	ListByOwner(ctx context.Context, owner string) ([]*model.Project, error)
	DeleteCascade(ctx context.Context, id string) error
}

// FileStore tracks file metadata records.
type FileStore interface {
	Create(ctx context.Context, f *model.File) error
	GetByIDAndProject(ctx context.Context, id, projectID string) (*model.File, error)
	ExistsByName(ctx context.Context, projectID, filename string) (bool, error)
	ListByProject(ctx context.Context, projectID string) ([]*model.File, error)
	Delete(ctx context.Context, id string) error
}

// NoteStore tracks free-text notes.
type NoteStore interface {
	Create(ctx context.Context, n *model.Note) error
	ListByProject(ctx context.Context, projectID string) ([]*model.Note, error)
}

// SignatureStore tracks captured signature images.
type SignatureStore interface {
	Create(ctx context.Context, s *model.Signature) error
	ListByProject(ctx context.Context, projectID string) ([]*model.Signature, error)
}

// TimesheetStore tracks time entries.
type TimesheetStore interface {
	Create(ctx context.Context, t *model.Timesheet) error
	ListByProject(ctx context.Context, projectID string) ([]*model.Timesheet, error)
}

// BlobStore is the on-disk side of file handling.  Uploads go through the
// two-phase SaveTemp/Promote pair so bytes only land under a committed
// filename once the metadata row exists.
type BlobStore interface {
	SaveTemp(projectID string, r io.Reader) (string, int64, error)
	Promote(tmpRel, finalRel string) error
	Stat(relPath string) (int64, error)
	StreamTo(w io.Writer, relPath string) (int64, error)
	Remove(relPath string) error
	RemoveProject(projectID string) error
}

// ProjectHandler bundles everything the project-scoped endpoints touch.
type ProjectHandler struct {
	Projects   ProjectStore
	Files      FileStore
	Notes      NoteStore
	Signatures SignatureStore
	Timesheets TimesheetStore
	Blobs      BlobStore
}

// NewProjectHandler constructs a ProjectHandler and panics on a nil
// dependency; wiring bugs should fail at startup, not on first request.
func NewProjectHandler(projects ProjectStore, files FileStore, notes NoteStore, signatures SignatureStore, timesheets TimesheetStore, blobs BlobStore) *ProjectHandler {
	if projects == nil || files == nil || notes == nil || signatures == nil || timesheets == nil || blobs == nil {
		panic("nil dependency passed to NewProjectHandler")
	}
	return &ProjectHandler{
		Projects:   projects,
		Files:      files,
		Notes:      notes,
		Signatures: signatures,
		Timesheets: timesheets,
		Blobs:      blobs,
	}
}

// caller extracts the authenticated identity placed in context by the
// BearerAuth middleware.
func caller(c echo.Context) (string, auth.Role, bool) {
	username, ok := c.Get(middleware.CtxUsername).(string)
	if !ok || username == "" {
		return "", "", false
	}
	role, ok := c.Get(middleware.CtxRole).(auth.Role)
	if !ok {
		return "", "", false
	}
	return username, role, true
}

// fetchAuthorized loads the project named in the :id URL parameter and
// enforces the access policy.  The existence check runs first so a missing
// project is always 404 and never 403, regardless of caller identity.  On
// failure the response has already been written and the returned project is
// nil; callers simply return the accompanying error value.
func (h *ProjectHandler) fetchAuthorized(ctx context.Context, c echo.Context) (*model.Project, error) {
	p, err := h.Projects.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	username, role, ok := caller(c)
	if !ok {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !auth.CanAccess(role, p.Owner == username) {
		return nil, c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return p, nil
}
