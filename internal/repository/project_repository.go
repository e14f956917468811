package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arbelos/fieldbook/internal/model"
)

// ProjectRepo encapsulates all database queries related to projects,
// including the transactional cascade delete of child records.
type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{db: db} }

// Create inserts a new project with a server-generated UUID.  On success
// the ID and CreatedAt fields are populated on the passed record.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	p.ID = uuid.NewString()
	const qInsert = "INSERT INTO projects (id, name, description, owner) VALUES (?,?,?,?)"
	if _, err := r.db.ExecContext(ctx, qInsert, p.ID, p.Name, p.Description, p.Owner); err != nil {
		return err
	}
	// Follow-up SELECT populates the DB-assigned creation timestamp.
	const qSelect = "SELECT created_at FROM projects WHERE id=?"
	return r.db.QueryRowContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt)
}

// GetByID fetches a project regardless of owner.  Returns
// ErrProjectNotFound when no row exists.  Ownership is checked by the
// caller after this lookup so that a missing project yields 404, not 403.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	const q = "SELECT id, name, description, owner, created_at FROM projects WHERE id=? LIMIT 1"
	var p model.Project
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.Description, &p.Owner, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListAll returns every project, newest first.  Used for admin callers.
func (r *ProjectRepo) ListAll(ctx context.Context) ([]*model.Project, error) {
	const q = "SELECT id, name, description, owner, created_at FROM projects ORDER BY created_at DESC, id"
	return r.list(ctx, q)
}

// ListByOwner returns the projects owned by one user, newest first.
func (r *ProjectRepo) ListByOwner(ctx context.Context, owner string) ([]*model.Project, error) {
	const q = "SELECT id, name, description, owner, created_at FROM projects WHERE owner=? ORDER BY created_at DESC, id"
	return r.list(ctx, q, owner)
}

func (r *ProjectRepo) list(ctx context.Context, q string, args ...any) ([]*model.Project, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Project
	for rows.Next() {
		p := new(model.Project)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Owner, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteCascade removes a project and every dependent file, note, signature
// and timesheet row inside a single transaction: either everything goes or
// nothing does.  Returns ErrProjectNotFound when the project row does not
// exist.  Removal of the stored bytes on disk is the caller's job, after
// the transaction commits.
func (r *ProjectRepo) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	var exists string
	err = tx.QueryRowContext(ctx, "SELECT id FROM projects WHERE id=? FOR UPDATE", id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProjectNotFound
		}
		return err
	}

	for _, q := range []string{
		"DELETE FROM files WHERE project_id=?",
		"DELETE FROM notes WHERE project_id=?",
		"DELETE FROM signatures WHERE project_id=?",
		"DELETE FROM timesheets WHERE project_id=?",
		"DELETE FROM projects WHERE id=?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}
