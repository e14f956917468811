package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/arbelos/fieldbook/internal/model"
)

// FileRepo persists file metadata in the 'files' table.  The bytes live on
// disk and are handled by the storage package; this repo only tracks the
// records that index them.
type FileRepo struct {
	db *sql.DB
}

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{db: db} }

// Create inserts a metadata row with a server-generated UUID.  A duplicate
// (project_id, filename) pair violates the table's unique key and is
// reported as ErrDuplicateFilename.
func (r *FileRepo) Create(ctx context.Context, f *model.File) error {
	f.ID = uuid.NewString()
	const qInsert = `INSERT INTO files (id, project_id, filename, filetype, uploaded_by, storage_path, size_bytes)
	                 VALUES (?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, qInsert,
		f.ID, f.ProjectID, f.Filename, f.Filetype, f.UploadedBy, f.StoragePath, f.SizeBytes)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateFilename
		}
		return err
	}
	const qSelect = "SELECT created_at FROM files WHERE id=?"
	return r.db.QueryRowContext(ctx, qSelect, f.ID).Scan(&f.CreatedAt)
}

// GetByIDAndProject fetches a file record only when it belongs to the given
// project, so a file id cannot be reached through another project's URL.
// Returns ErrFileNotFound when no such row exists.
func (r *FileRepo) GetByIDAndProject(ctx context.Context, id, projectID string) (*model.File, error) {
	const q = `SELECT id, project_id, filename, filetype, uploaded_by, storage_path, size_bytes, created_at
	           FROM files WHERE id=? AND project_id=? LIMIT 1`
	var f model.File
	err := r.db.QueryRowContext(ctx, q, id, projectID).Scan(
		&f.ID, &f.ProjectID, &f.Filename, &f.Filetype, &f.UploadedBy, &f.StoragePath, &f.SizeBytes, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ExistsByName reports whether the project already has a file with this
// filename.  Used to reject duplicate uploads before any bytes are written;
// the unique key on (project_id, filename) backstops the race window.
func (r *FileRepo) ExistsByName(ctx context.Context, projectID, filename string) (bool, error) {
	const q = "SELECT 1 FROM files WHERE project_id=? AND filename=? LIMIT 1"
	var one int
	err := r.db.QueryRowContext(ctx, q, projectID, filename).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByProject returns all file metadata for a project, newest first.
func (r *FileRepo) ListByProject(ctx context.Context, projectID string) ([]*model.File, error) {
	const q = `SELECT id, project_id, filename, filetype, uploaded_by, storage_path, size_bytes, created_at
	           FROM files WHERE project_id=? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.File
	for rows.Next() {
		f := new(model.File)
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Filename, &f.Filetype, &f.UploadedBy, &f.StoragePath, &f.SizeBytes, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a single metadata row.  Used to roll back an upload whose
// bytes could not be kept; project deletion goes through DeleteCascade.
func (r *FileRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM files WHERE id=?", id)
	return err
}
