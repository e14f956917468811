package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbelos/fieldbook/internal/auth"
	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/session"
)

type stubUsers struct {
	users map[string]model.User
}

func (s *stubUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := s.users[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func runBearer(t *testing.T, mw echo.MiddlewareFunc, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	require.NoError(t, mw(next)(c))
	return rec, c
}

func TestBearerAuth(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore(time.Minute)
	users := &stubUsers{users: map[string]model.User{
		"alice": {Username: "alice", Role: "contractor", IsActive: true},
		"root":  {Username: "root", Role: "admin", IsActive: true},
		"gone":  {Username: "gone", Role: "contractor", IsActive: false},
	}}
	mw := BearerAuth(sessions, users)

	t.Run("missing header", func(t *testing.T) {
		rec, _ := runBearer(t, mw, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		rec, _ := runBearer(t, mw, "Bearer deadbeef")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		token, err := sessions.Issue(ctx, "alice")
		require.NoError(t, err)
		rec, c := runBearer(t, mw, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", c.Get(CtxUsername))
		assert.Equal(t, auth.RoleContractor, c.Get(CtxRole))
		assert.Equal(t, token, c.Get(CtxToken))
	})

	t.Run("admin role parsed", func(t *testing.T) {
		token, err := sessions.Issue(ctx, "root")
		require.NoError(t, err)
		_, c := runBearer(t, mw, "Bearer "+token)
		assert.Equal(t, auth.RoleAdmin, c.Get(CtxRole))
	})

	t.Run("deactivated user rejected despite live session", func(t *testing.T) {
		token, err := sessions.Issue(ctx, "gone")
		require.NoError(t, err)
		rec, _ := runBearer(t, mw, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "deactivated")
	})

	t.Run("session for deleted account rejected", func(t *testing.T) {
		token, err := sessions.Issue(ctx, "nobody")
		require.NoError(t, err)
		rec, _ := runBearer(t, mw, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
