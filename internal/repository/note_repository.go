package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/arbelos/fieldbook/internal/model"
)

// NoteRepo persists free-text project notes.
type NoteRepo struct {
	db *sql.DB
}

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{db: db} }

// Create inserts a note with a server-generated UUID and populates the
// DB-assigned creation timestamp on the passed record.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	n.ID = uuid.NewString()
	const qInsert = "INSERT INTO notes (id, project_id, body, author) VALUES (?,?,?,?)"
	if _, err := r.db.ExecContext(ctx, qInsert, n.ID, n.ProjectID, n.Body, n.Author); err != nil {
		return err
	}
	const qSelect = "SELECT created_at FROM notes WHERE id=?"
	return r.db.QueryRowContext(ctx, qSelect, n.ID).Scan(&n.CreatedAt)
}

// ListByProject returns a project's notes newest first.  The descending
// order is part of the API contract, not a presentation choice.
func (r *NoteRepo) ListByProject(ctx context.Context, projectID string) ([]*model.Note, error) {
	const q = `SELECT id, project_id, body, author, created_at
	           FROM notes WHERE project_id=? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Note
	for rows.Next() {
		n := new(model.Note)
		if err := rows.Scan(&n.ID, &n.ProjectID, &n.Body, &n.Author, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
