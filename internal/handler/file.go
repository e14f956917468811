package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/queue"
	"github.com/arbelos/fieldbook/internal/repository"
	"github.com/arbelos/fieldbook/internal/storage"
)

// UploadFile handles POST /projects/:id/upload (multipart, field "file").
// The extension is validated before any bytes touch disk, a duplicate
// filename within the project is rejected, and the recorded size is what
// was actually written, not what the client declared.  Bytes are staged
// under a temp name and promoted onto the committed path only after the
// metadata row inserts, so a lost duplicate-filename race cleans up its
// own staging file and never touches the winner's bytes.
func (h *ProjectHandler) UploadFile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}
	username, _, _ := caller(c)

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file field is required"})
	}
	filename := filepath.Base(fh.Filename)

	ext, err := storage.Extension(filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported file type"})
	}

	taken, err := h.Files.ExistsByName(ctx, p.ID, filename)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"error": "filename already exists in project"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read upload"})
	}
	defer src.Close()

	tmpRel, size, err := h.Blobs.SaveTemp(p.ID, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store file failed"})
	}

	record := &model.File{
		ProjectID:   p.ID,
		Filename:    filename,
		Filetype:    ext,
		UploadedBy:  username,
		StoragePath: storage.Rel(p.ID, filename),
		SizeBytes:   size,
	}
	if err := h.Files.Create(ctx, record); err != nil {
		// Only the staging file is removed; a concurrent upload that won
		// the unique key keeps its committed bytes.
		_ = h.Blobs.Remove(tmpRel)
		if errors.Is(err, repository.ErrDuplicateFilename) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "filename already exists in project"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save file record failed"})
	}
	if err := h.Blobs.Promote(tmpRel, record.StoragePath); err != nil {
		// Keep disk and table consistent: no bytes, no record.
		_ = h.Files.Delete(ctx, record.ID)
		_ = h.Blobs.Remove(tmpRel)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store file failed"})
	}

	publishActivity(queue.ActionFileUploaded, p.ID, p.Name, username,
		fmt.Sprintf("file=%s size=%d", filename, size))
	return c.JSON(http.StatusCreated, record)
}

// ListFiles handles GET /projects/:id/files.
func (h *ProjectHandler) ListFiles(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}
	items, err := h.Files.ListByProject(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.File{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DownloadFile handles GET /projects/:id/files/:fileId/download.  Not-found
// is checked in two steps: first the metadata record, then the bytes on
// disk.  A record whose bytes are gone is reported distinctly rather than
// being lumped in with "file never uploaded".  Content streams in bounded
// chunks.
func (h *ProjectHandler) DownloadFile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.fetchAuthorized(ctx, c)
	if p == nil {
		return err
	}

	f, err := h.Files.GetByIDAndProject(ctx, c.Param("fileId"), p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	size, err := h.Blobs.Stat(f.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrContentMissing) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file content missing from storage"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read file failed"})
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "application/octet-stream")
	resp.Header().Set(echo.HeaderContentLength, strconv.FormatInt(size, 10))
	resp.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, f.Filename))
	resp.WriteHeader(http.StatusOK)

	if _, err := h.Blobs.StreamTo(resp, f.StoragePath); err != nil {
		// Headers are committed; all we can do is log and drop the conn.
		c.Logger().Errorf("stream file %s: %v", f.ID, err)
		return err
	}
	return nil
}
