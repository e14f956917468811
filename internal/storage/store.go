// Package storage manages the on-disk tree of uploaded attachments.  Bytes
// live under a configurable root, one directory per project id; the files
// table in the database indexes them.  Uploads are validated against a fixed
// extension allow-list and downloads stream in bounded chunks so large
// drawings never sit in memory whole.
package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// allowedTypes is the closed set of accepted file extensions, lower case,
// without the leading dot.
var allowedTypes = map[string]bool{
	"pdf":  true,
	"dwg":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"tiff": true,
	"bmp":  true,
	"gif":  true,
	"svg":  true,
}

// streamChunkSize bounds the buffer used when copying file bytes to a
// response.
const streamChunkSize = 8 * 1024

// ErrUnsupportedFileType is returned when a filename's extension is not in
// the allow-list.  Handlers translate it into HTTP 400.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ErrContentMissing is returned when a metadata record exists but the bytes
// are gone from disk.  This is deliberately distinct from a missing record
// so the condition shows up in responses and logs as what it is.
var ErrContentMissing = errors.New("file content missing from storage")

// Store reads and writes attachment bytes below a single root directory.
type Store struct {
	root string
}

// New returns a Store rooted at dir.  The root itself is created lazily on
// the first upload.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Extension extracts and validates the file extension from a client
// filename.  It returns the lower-cased extension without the dot, or
// ErrUnsupportedFileType when the extension is absent or not allowed.
func Extension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" || !allowedTypes[ext] {
		return "", ErrUnsupportedFileType
	}
	return ext, nil
}

// Rel is the storage path a project file lives under once committed.
// Base strips any path components a hostile client put in the filename.
func Rel(projectID, filename string) string {
	return filepath.Join(projectID, filepath.Base(filename))
}

// SaveTemp streams an upload into a uniquely named staging file inside the
// project directory and returns its storage path together with the number
// of bytes actually written; the size is measured from the write, never
// taken from the client.  The project directory is created if absent.  On
// a write error the partial file is removed.  Nothing appears under a
// committed filename until Promote runs, so two uploads racing on the same
// name can never overwrite each other's bytes.
func (s *Store) SaveTemp(projectID string, r io.Reader) (string, int64, error) {
	dir := filepath.Join(s.root, projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}
	f, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", 0, err
	}
	return filepath.Join(projectID, filepath.Base(f.Name())), n, nil
}

// Promote renames a staged upload onto its committed path.  The rename is
// atomic within the project directory, so a reader sees either the old
// state or the whole new file, never a truncated one.
func (s *Store) Promote(tmpRel, finalRel string) error {
	return os.Rename(filepath.Join(s.root, tmpRel), filepath.Join(s.root, finalRel))
}

// Save is the one-shot path for callers that do not need the two-phase
// write: stage, then promote immediately.
func (s *Store) Save(projectID, filename string, r io.Reader) (string, int64, error) {
	tmpRel, n, err := s.SaveTemp(projectID, r)
	if err != nil {
		return "", 0, err
	}
	finalRel := Rel(projectID, filename)
	if err := s.Promote(tmpRel, finalRel); err != nil {
		_ = os.Remove(filepath.Join(s.root, tmpRel))
		return "", 0, err
	}
	return finalRel, n, nil
}

// StreamTo copies the stored bytes for relPath into w in fixed-size chunks.
// It returns ErrContentMissing when the path does not exist on disk even
// though the caller holds a metadata record for it.
func (s *Store) StreamTo(w io.Writer, relPath string) (int64, error) {
	f, err := os.Open(filepath.Join(s.root, relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrContentMissing
		}
		return 0, err
	}
	defer f.Close()
	return io.CopyBuffer(w, f, make([]byte, streamChunkSize))
}

// Stat reports the on-disk size for relPath, or ErrContentMissing.
func (s *Store) Stat(relPath string) (int64, error) {
	info, err := os.Stat(filepath.Join(s.root, relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrContentMissing
		}
		return 0, err
	}
	return info.Size(), nil
}

// Remove deletes a single stored file.  Missing bytes are ignored: the goal
// state is "not on disk" either way.
func (s *Store) Remove(relPath string) error {
	err := os.Remove(filepath.Join(s.root, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveProject deletes a project's whole directory.  Called after the
// project's database rows are gone so the disk never references live rows.
func (s *Store) RemoveProject(projectID string) error {
	return os.RemoveAll(filepath.Join(s.root, projectID))
}
