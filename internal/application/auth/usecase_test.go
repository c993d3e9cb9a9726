package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/impilo-stock/internal/application/auth"
	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/impilo"
	"github.com/jhoicas/impilo-stock/pkg/apierror"
	pkgjwt "github.com/jhoicas/impilo-stock/pkg/jwt"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func token(t *testing.T, sub string, exp time.Time, roles ...string) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: sub, ExpiresAt: gojwt.NewNumericDate(exp)},
		Roles:            roles,
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func newUseCase(t *testing.T, status int, body any) (*auth.AuthUseCase, *impilo.Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	client := impilo.NewClient(impilo.Config{BaseURL: srv.URL}, impilo.WithHTTPClient(srv.Client()))
	return auth.NewAuthUseCase(impilo.NewAuthService(client, nil), func() time.Time { return now }), client
}

func TestLogin_SesionDesdeClaims(t *testing.T) {
	exp := now.Add(8 * time.Hour)
	tok := token(t, "tmoyo", exp, "ADMIN", "PHARMACIST")
	uc, client := newUseCase(t, http.StatusOK, map[string]any{
		"token": tok,
		"user":  map[string]any{"username": "tmoyo", "firstName": "Tendai"},
	})

	s, err := uc.Login(context.Background(), dto.LoginRequest{Username: "tmoyo", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, tok, s.Token)
	assert.Equal(t, "tmoyo", s.Username)
	assert.Equal(t, []string{"ADMIN", "PHARMACIST"}, s.Roles)
	require.NotNil(t, s.ExpiresAt)
	assert.True(t, exp.Equal(*s.ExpiresAt))
	assert.Equal(t, "Tendai", s.User.FirstName)
	assert.Empty(t, client.Token(), "Login no fija el token")

	require.NoError(t, uc.Persist(s.Token))
	assert.Equal(t, tok, client.Token())
	require.NoError(t, uc.Logout())
	assert.Empty(t, client.Token())
}

func TestLogin_TokenOpaco(t *testing.T) {
	uc, _ := newUseCase(t, http.StatusOK, map[string]any{"token": "opaque-token", "user": map[string]any{}})

	s, err := uc.Login(context.Background(), dto.LoginRequest{Username: "tmoyo", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "tmoyo", s.Username)
	assert.Nil(t, s.ExpiresAt)
}

func TestLogin_Errores(t *testing.T) {
	uc, _ := newUseCase(t, http.StatusUnauthorized, map[string]any{"message": "Bad credentials"})
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "tmoyo", Password: "bad"})
	apiErr := apierror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestSession(t *testing.T) {
	uc, _ := newUseCase(t, http.StatusOK, nil)

	s, err := uc.Session("Bearer " + token(t, "rndlovu", now.Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "rndlovu", s.Username)

	_, err = uc.Session(token(t, "rndlovu", now.Add(-time.Minute)))
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	_, err = uc.Session("no-es-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidate_TokenInvalido(t *testing.T) {
	uc, _ := newUseCase(t, http.StatusOK, map[string]any{"valid": false})

	res, err := uc.Validate(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	require.NotNil(t, res)
	assert.False(t, res.Valid)
}

func TestResetPassword_ValidaEmail(t *testing.T) {
	uc, _ := newUseCase(t, http.StatusOK, nil)

	_, err := uc.ResetPassword(context.Background(), "sin-arroba")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
