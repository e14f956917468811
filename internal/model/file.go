package model

import "time"

// File is the metadata record for an uploaded attachment, stored in the
// `files` table.  The bytes themselves live on disk under the configured
// upload root, one directory per project.  A file record is immutable after
// upload; it disappears only through the parent project's cascade delete.
//
// Fields:
//
//	ID          – server-generated UUID, primary key.
//	ProjectID   – owning project.
//	Filename    – original client filename, unique within the project.
//	Filetype    – lower-cased extension from the allow-list.
//	UploadedBy  – username of the uploader.
//	StoragePath – path of the stored bytes relative to the upload root.
//	SizeBytes   – size as measured after the write completed.
//	CreatedAt   – upload timestamp.
type File struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Filename    string    `json:"filename"`
	Filetype    string    `json:"filetype"`
	UploadedBy  string    `json:"uploaded_by"`
	StoragePath string    `json:"-"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
