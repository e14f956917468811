package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/arbelos/fieldbook/internal/model"
)

// SignatureRepo persists captured sign-off images (base64 payloads).
type SignatureRepo struct {
	db *sql.DB
}

func NewSignatureRepo(db *sql.DB) *SignatureRepo { return &SignatureRepo{db: db} }

// Create inserts a signature with a server-generated UUID.
func (r *SignatureRepo) Create(ctx context.Context, s *model.Signature) error {
	s.ID = uuid.NewString()
	const qInsert = "INSERT INTO signatures (id, project_id, image, author) VALUES (?,?,?,?)"
	if _, err := r.db.ExecContext(ctx, qInsert, s.ID, s.ProjectID, s.Image, s.Author); err != nil {
		return err
	}
	const qSelect = "SELECT created_at FROM signatures WHERE id=?"
	return r.db.QueryRowContext(ctx, qSelect, s.ID).Scan(&s.CreatedAt)
}

// ListByProject returns a project's signatures newest first.
func (r *SignatureRepo) ListByProject(ctx context.Context, projectID string) ([]*model.Signature, error) {
	const q = `SELECT id, project_id, image, author, created_at
	           FROM signatures WHERE project_id=? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Signature
	for rows.Next() {
		s := new(model.Signature)
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Image, &s.Author, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
