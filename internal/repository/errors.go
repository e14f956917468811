// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios and map them onto HTTP
// status codes without inspecting driver-specific errors.
package repository

import "errors"

// ErrUsernameTaken is returned when registering a username that already
// exists.  Handlers translate it into an HTTP 409 response.
var ErrUsernameTaken = errors.New("username already exists")

// ErrProjectNotFound is returned when a project id does not exist.  The
// existence check runs before any ownership check, so callers probing for
// foreign projects see 404 for missing ids and 403 for hidden ones.
var ErrProjectNotFound = errors.New("project not found")

// ErrFileNotFound is returned when a file metadata record does not exist
// within the requested project.
var ErrFileNotFound = errors.New("file not found")

// ErrDuplicateFilename is returned when uploading a filename that already
// exists within the same project.  Handlers translate it into HTTP 409.
var ErrDuplicateFilename = errors.New("filename already exists in project")
