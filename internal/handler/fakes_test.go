package handler

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/repository"
	"github.com/arbelos/fieldbook/internal/utils"
)

// In-memory fakes for the handler-side store interfaces.  They mirror the
// repository contracts: sentinel errors, server-generated ids, newest-first
// list ordering.

type fakeUsers struct {
	users map[string]model.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{users: make(map[string]model.User)} }

func (f *fakeUsers) Create(_ context.Context, username, password, fullName, email, role string, cost int) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if _, ok := f.users[username]; ok {
		return repository.ErrUsernameTaken
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	f.users[username] = model.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Email:        email,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	return nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := f.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) deactivate(username string) {
	u := f.users[username]
	u.IsActive = false
	f.users[username] = u
}

type fakeProjects struct {
	projects map[string]*model.Project

	// Child stores swept by DeleteCascade, mirroring the transaction that
	// removes a project and every row scoped to it.
	files      *fakeFiles
	notes      *fakeNotes
	signatures *fakeSignatures
	timesheets *fakeTimesheets
}

func newFakeProjects() *fakeProjects { return &fakeProjects{projects: make(map[string]*model.Project)} }

func (f *fakeProjects) Create(_ context.Context, p *model.Project) error {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeProjects) GetByID(_ context.Context, id string) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjects) ListAll(_ context.Context) ([]*model.Project, error) {
	var out []*model.Project
	for _, p := range f.projects {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProjects) ListByOwner(_ context.Context, owner string) ([]*model.Project, error) {
	all, _ := f.ListAll(context.Background())
	var out []*model.Project
	for _, p := range all {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) DeleteCascade(_ context.Context, id string) error {
	if _, ok := f.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	if f.files != nil {
		for fid, rec := range f.files.files {
			if rec.ProjectID == id {
				delete(f.files.files, fid)
			}
		}
	}
	if f.notes != nil {
		kept := f.notes.notes[:0]
		for _, n := range f.notes.notes {
			if n.ProjectID != id {
				kept = append(kept, n)
			}
		}
		f.notes.notes = kept
	}
	if f.signatures != nil {
		kept := f.signatures.sigs[:0]
		for _, s := range f.signatures.sigs {
			if s.ProjectID != id {
				kept = append(kept, s)
			}
		}
		f.signatures.sigs = kept
	}
	if f.timesheets != nil {
		kept := f.timesheets.entries[:0]
		for _, e := range f.timesheets.entries {
			if e.ProjectID != id {
				kept = append(kept, e)
			}
		}
		f.timesheets.entries = kept
	}
	delete(f.projects, id)
	return nil
}

type fakeFiles struct {
	files map[string]*model.File
}

func newFakeFiles() *fakeFiles { return &fakeFiles{files: make(map[string]*model.File)} }

func (f *fakeFiles) Create(_ context.Context, rec *model.File) error {
	for _, existing := range f.files {
		if existing.ProjectID == rec.ProjectID && existing.Filename == rec.Filename {
			return repository.ErrDuplicateFilename
		}
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()
	cp := *rec
	f.files[rec.ID] = &cp
	return nil
}

func (f *fakeFiles) GetByIDAndProject(_ context.Context, id, projectID string) (*model.File, error) {
	rec, ok := f.files[id]
	if !ok || rec.ProjectID != projectID {
		return nil, repository.ErrFileNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeFiles) ExistsByName(_ context.Context, projectID, filename string) (bool, error) {
	for _, rec := range f.files {
		if rec.ProjectID == projectID && rec.Filename == filename {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFiles) ListByProject(_ context.Context, projectID string) ([]*model.File, error) {
	var out []*model.File
	for _, rec := range f.files {
		if rec.ProjectID == projectID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeFiles) Delete(_ context.Context, id string) error {
	delete(f.files, id)
	return nil
}

type fakeNotes struct {
	notes []*model.Note
}

func (f *fakeNotes) Create(_ context.Context, n *model.Note) error {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()
	cp := *n
	f.notes = append(f.notes, &cp)
	return nil
}

func (f *fakeNotes) ListByProject(_ context.Context, projectID string) ([]*model.Note, error) {
	var out []*model.Note
	for _, n := range f.notes {
		if n.ProjectID == projectID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeSignatures struct {
	sigs []*model.Signature
}

func (f *fakeSignatures) Create(_ context.Context, s *model.Signature) error {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	cp := *s
	f.sigs = append(f.sigs, &cp)
	return nil
}

func (f *fakeSignatures) ListByProject(_ context.Context, projectID string) ([]*model.Signature, error) {
	var out []*model.Signature
	for _, s := range f.sigs {
		if s.ProjectID == projectID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeTimesheets struct {
	entries []*model.Timesheet
}

func (f *fakeTimesheets) Create(_ context.Context, t *model.Timesheet) error {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()
	cp := *t
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeTimesheets) ListByProject(_ context.Context, projectID string) ([]*model.Timesheet, error) {
	var out []*model.Timesheet
	for _, t := range f.entries {
		if t.ProjectID == projectID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkDate != out[j].WorkDate {
			return out[i].WorkDate > out[j].WorkDate
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
