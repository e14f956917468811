package model

import "time"

// Signature is a captured sign-off attached to a project.  The image is a
// base64-encoded raster supplied by the client and stored as-is; the server
// never decodes it.  Immutable once created.
type Signature struct {
	ID        string    `json:"id"`         // signatures.id
	ProjectID string    `json:"project_id"` // signatures.project_id
	Image     string    `json:"image"`      // signatures.image (base64 payload)
	Author    string    `json:"author"`     // signatures.author
	CreatedAt time.Time `json:"created_at"` // signatures.created_at
}
