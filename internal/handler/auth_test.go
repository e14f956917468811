package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbelos/fieldbook/internal/auth"
	"github.com/arbelos/fieldbook/internal/config"
	"github.com/arbelos/fieldbook/internal/middleware"
	"github.com/arbelos/fieldbook/internal/session"
)

func newAuthHandler() (*AuthHandler, *fakeUsers, *session.MemoryStore) {
	users := newFakeUsers()
	sessions := session.NewMemoryStore(time.Minute)
	cfg := config.Config{BcryptCost: 4, SessionTTLMin: 1}
	return NewAuthHandler(cfg, users, sessions), users, sessions
}

func do(t *testing.T, e *echo.Echo, h echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestRegisterAndToken(t *testing.T) {
	h, _, _ := newAuthHandler()
	e := echo.New()

	rec := do(t, e, h.Register, jsonRequest(http.MethodPost, "/register",
		`{"username":"Alice","password":"pw1","full_name":"Alice Smith","role":"contractor"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	var prof profileResp
	decodeBody(t, rec, &prof)
	assert.Equal(t, "alice", prof.Username) // normalized to lower case
	assert.Equal(t, "contractor", prof.Role)
	assert.True(t, prof.IsActive)
	assert.NotContains(t, rec.Body.String(), "pw1")

	// Same credentials log in and yield a usable token.
	rec = do(t, e, h.Token, jsonRequest(http.MethodPost, "/token",
		`{"username":"alice","password":"pw1"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	var tok tokenResp
	decodeBody(t, rec, &tok)
	assert.NotEmpty(t, tok.Token)
	assert.NotNil(t, tok.ExpiresAt)

	// Wrong password fails with 401.
	rec = do(t, e, h.Token, jsonRequest(http.MethodPost, "/token",
		`{"username":"alice","password":"wrong"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown user fails the same way; no existence leak.
	rec = do(t, e, h.Token, jsonRequest(http.MethodPost, "/token",
		`{"username":"mallory","password":"pw1"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h, _, _ := newAuthHandler()
	e := echo.New()

	rec := do(t, e, h.Register, jsonRequest(http.MethodPost, "/register",
		`{"username":"alice","password":"pw1"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, h.Register, jsonRequest(http.MethodPost, "/register",
		`{"username":"alice","password":"pw2"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	h, _, _ := newAuthHandler()
	e := echo.New()

	rec := do(t, e, h.Register, jsonRequest(http.MethodPost, "/register",
		`{"username":"","password":"pw"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The role field is not client-controlled: asking for admin on
	// self-registration still yields a contractor account.
	rec = do(t, e, h.Register, jsonRequest(http.MethodPost, "/register",
		`{"username":"eve","password":"pw","role":"admin"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	var prof profileResp
	decodeBody(t, rec, &prof)
	assert.Equal(t, "contractor", prof.Role)

	rec = do(t, e, h.Register, jsonRequest(http.MethodPost, "/register",
		`{"username":"mallory","password":"pw","role":"superuser"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeBody(t, rec, &prof)
	assert.Equal(t, "contractor", prof.Role)
}

func TestTokenDeactivatedUser(t *testing.T) {
	h, users, _ := newAuthHandler()
	e := echo.New()

	do(t, e, h.Register, jsonRequest(http.MethodPost, "/register",
		`{"username":"alice","password":"pw1"}`))
	users.deactivate("alice")

	rec := do(t, e, h.Token, jsonRequest(http.MethodPost, "/token",
		`{"username":"alice","password":"pw1"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	h, _, sessions := newAuthHandler()
	e := echo.New()
	ctx := context.Background()

	token, err := sessions.Issue(ctx, "alice")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/logout", ""), rec)
	c.Set(middleware.CtxToken, token)
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err = sessions.Resolve(ctx, token)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

func TestMe(t *testing.T) {
	h, _, _ := newAuthHandler()
	e := echo.New()

	do(t, e, h.Register, jsonRequest(http.MethodPost, "/register",
		`{"username":"alice","password":"pw1","full_name":"Alice Smith","email":"alice@example.com"}`))

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodGet, "/user", ""), rec)
	c.Set(middleware.CtxUsername, "alice")
	c.Set(middleware.CtxRole, auth.RoleContractor)
	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var prof profileResp
	decodeBody(t, rec, &prof)
	assert.Equal(t, "alice", prof.Username)
	assert.Equal(t, "Alice Smith", prof.FullName)
	assert.Equal(t, "alice@example.com", prof.Email)
}
