package model

import "time"

// Note is a free-text entry attached to a project, immutable once created.
type Note struct {
	ID        string    `json:"id"`         // notes.id
	ProjectID string    `json:"project_id"` // notes.project_id
	Body      string    `json:"body"`       // notes.body
	Author    string    `json:"author"`     // notes.author
	CreatedAt time.Time `json:"created_at"` // notes.created_at
}
