package model

import "time"

// Timesheet records hours worked on a project on a given date.  Hours are
// validated as non-negative at the API boundary.  Immutable once created.
type Timesheet struct {
	ID          string    `json:"id"`          // timesheets.id
	ProjectID   string    `json:"project_id"`  // timesheets.project_id
	Author      string    `json:"author"`      // timesheets.author
	WorkDate    string    `json:"work_date"`   // timesheets.work_date (YYYY-MM-DD)
	Hours       float64   `json:"hours"`       // timesheets.hours
	Description string    `json:"description"` // timesheets.description
	CreatedAt   time.Time `json:"created_at"`  // timesheets.created_at
}
