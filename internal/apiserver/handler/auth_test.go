package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airmaint/airmaint/internal/common/dto"
)

func TestLoginSuccess(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "POST", "/api/login", dto.LoginRequest{Username: "miguel", Password: "password"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.LoginResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "miguel", resp.User.Username)
	assert.Equal(t, "control_center", resp.User.Role)
	assert.NotContains(t, w.Body.String(), "password\":")

	claims, err := e.jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	e := newSeededEnv(t)
	w := e.do(t, "POST", "/api/login", dto.LoginRequest{Username: "miguel", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	e := newSeededEnv(t)
	w := e.do(t, "POST", "/api/login", dto.LoginRequest{Username: "ghost", Password: "password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginMissingFields(t *testing.T) {
	e := newSeededEnv(t)
	w := e.do(t, "POST", "/api/login", map[string]string{"username": "miguel"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentUserWithToken(t *testing.T) {
	e := newSeededEnv(t)

	r := e.authedRouter(t)

	login := e.do(t, "POST", "/api/login", dto.LoginRequest{Username: "carlos", Password: "password"})
	require.Equal(t, http.StatusOK, login.Code)
	token := decode[dto.LoginResponse](t, login).Token

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	user := decode[dto.UserInfo](t, w)
	assert.Equal(t, "carlos", user.Username)
	assert.Equal(t, "maintenance_agent", user.Role)

	// Without a token the same route is rejected.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
