package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/impilo-stock/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/impilo-stock/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUsername = "tmoyo"

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para leer el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(clock),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":    true,
				"roles": apphttp.GetRoles(c),
			})
		},
	)
	return app
}

// signedToken firma un JWT como lo haría el backend.
func signedToken(t *testing.T, sub string, exp time.Time, roles ...string) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: sub, ExpiresAt: gojwt.NewNumericDate(exp)},
		Roles:            roles,
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// tokenForRole Bearer token vigente con los roles indicados.
func tokenForRole(t *testing.T, roles ...string) string {
	return "Bearer " + signedToken(t, testUsername, testNow.Add(time.Hour), roles...)
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp("ADMIN")
	resp := doRequest(t, app, tokenForRole(t, "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "ADMIN debe poder acceder a ruta restringida a ADMIN")

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, []any{"ADMIN"}, body["roles"])
}

func TestRequireRole_PrefijoRoleYMayusculas(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "ROLE_ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "ROLE_ADMIN equivale a admin")
}

func TestRequireRole_MultiRol(t *testing.T) {
	app := buildTestApp("ADMIN", "PHARMACIST")
	resp := doRequest(t, app, tokenForRole(t, "NURSE", "PHARMACIST"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolDistintoRetorna403(t *testing.T) {
	app := buildTestApp("ADMIN")
	resp := doRequest(t, app, tokenForRole(t, "NURSE"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp("ADMIN")
	resp := doRequest(t, app, tokenForRole(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader(t *testing.T) {
	resp := doRequest(t, buildTestApp("ADMIN"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	resp := doRequest(t, buildTestApp("ADMIN"), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenMalformado(t *testing.T) {
	resp := doRequest(t, buildTestApp("ADMIN"), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	tok := signedToken(t, testUsername, testNow.Add(-time.Minute), "ADMIN")
	resp := doRequest(t, buildTestApp("ADMIN"), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "TOKEN_EXPIRED")
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	tok := signedToken(t, testUsername, testNow.Add(time.Hour), "PHARMACIST")
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(clock), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"username": apphttp.GetUsername(c),
			"token":    apphttp.GetToken(c),
			"roles":    apphttp.GetRoles(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Username string   `json:"username"`
		Token    string   `json:"token"`
		Roles    []string `json:"roles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUsername, body.Username)
	assert.Equal(t, tok, body.Token, "el token se guarda sin el prefijo Bearer")
	assert.Equal(t, []string{"PHARMACIST"}, body.Roles)
}
