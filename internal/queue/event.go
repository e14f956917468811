// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity actions published to the audit queue.
const (
	ActionProjectCreated  = "project.created"
	ActionProjectDeleted  = "project.deleted"
	ActionFileUploaded    = "file.uploaded"
	ActionNoteAdded       = "note.added"
	ActionSignatureAdded  = "signature.added"
	ActionTimesheetLogged = "timesheet.logged"
)

// ActivityEvent is published whenever a project or one of its child
// resources changes.  It carries enough information for downstream
// consumers to build an audit trail without querying the primary database.
type ActivityEvent struct {
	Action      string `json:"action"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name,omitempty"`
	Actor       string `json:"actor"`
	Detail      string `json:"detail,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
