package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/arbelos/fieldbook/internal/model"
)

// TimesheetRepo persists per-day time-tracking entries.
type TimesheetRepo struct {
	db *sql.DB
}

func NewTimesheetRepo(db *sql.DB) *TimesheetRepo { return &TimesheetRepo{db: db} }

// Create inserts a timesheet entry with a server-generated UUID.
func (r *TimesheetRepo) Create(ctx context.Context, t *model.Timesheet) error {
	t.ID = uuid.NewString()
	const qInsert = `INSERT INTO timesheets (id, project_id, author, work_date, hours, description)
	                 VALUES (?,?,?,?,?,?)`
	if _, err := r.db.ExecContext(ctx, qInsert,
		t.ID, t.ProjectID, t.Author, t.WorkDate, t.Hours, t.Description); err != nil {
		return err
	}
	const qSelect = "SELECT created_at FROM timesheets WHERE id=?"
	return r.db.QueryRowContext(ctx, qSelect, t.ID).Scan(&t.CreatedAt)
}

// ListByProject returns a project's timesheets most recent first, ordered
// by work date and then by entry creation within the same day.
func (r *TimesheetRepo) ListByProject(ctx context.Context, projectID string) ([]*model.Timesheet, error) {
	const q = `SELECT id, project_id, author, DATE_FORMAT(work_date, '%Y-%m-%d'), hours, description, created_at
	           FROM timesheets WHERE project_id=? ORDER BY work_date DESC, created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Timesheet
	for rows.Next() {
		t := new(model.Timesheet)
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Author, &t.WorkDate, &t.Hours, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
