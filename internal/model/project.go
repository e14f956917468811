package model

import "time"

// Project represents a row in the `projects` table.  A project is owned by
// exactly one user and owns four child collections: files, notes,
// signatures and timesheets.  Deleting a project removes all children in
// the same transaction.
//
// Fields:
//
//	ID          – server-generated UUID, primary key.
//	Name        – human-friendly project name.
//	Description – optional free text.
//	Owner       – username of the creating user.
//	CreatedAt   – timestamp of creation.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}
