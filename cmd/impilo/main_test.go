package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// backend simula el API Impilo; guarda el último Authorization recibido.
func backend(t *testing.T, lastAuth *string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"token": "opaque-token", "user": map[string]any{"username": "tmoyo"}})
	})
	mux.HandleFunc("GET /provinces", func(w http.ResponseWriter, r *http.Request) {
		*lastAuth = r.Header.Get("Authorization")
		reply(w, http.StatusOK, []map[string]any{{"id": 1, "name": "Harare"}, {"id": 2, "name": "Bulawayo"}})
	})
	mux.HandleFunc("GET /stock/facility-stock-levels", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]map[string]int{"Parirenyatwa": {"Amoxicillin": 120}})
	})
	mux.HandleFunc("DELETE /facility-stock/9", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusForbidden, map[string]any{"message": "Access denied"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// run ejecuta el CLI con args contra srv y devuelve stdout.
func run(t *testing.T, srv *httptest.Server, tokenFile, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("IMPILO_API_BASE_URL", srv.URL)
	t.Setenv("IMPILO_TOKEN_FILE", tokenFile)
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_GuardaTokenYLoUsaEnLaSiguienteEjecucion(t *testing.T) {
	var auth string
	srv := backend(t, &auth)
	tokenFile := filepath.Join(t.TempDir(), "impilo", "token")

	out, err := run(t, srv, tokenFile, "secret\n", "login", "-u", "tmoyo")
	require.NoError(t, err)
	assert.Contains(t, out, "tmoyo")

	saved, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", string(saved))

	out, err = run(t, srv, tokenFile, "", "locations", "provinces", "list")
	require.NoError(t, err)
	assert.Equal(t, "Bearer opaque-token", auth)
	assert.Contains(t, out, "Harare")
	assert.Contains(t, out, "Bulawayo")

	_, err = run(t, srv, tokenFile, "", "logout")
	require.NoError(t, err)
	_, err = os.Stat(tokenFile)
	assert.True(t, os.IsNotExist(err), "logout borra el token guardado")
}

func TestSalidaJSON(t *testing.T) {
	var auth string
	srv := backend(t, &auth)

	out, err := run(t, srv, filepath.Join(t.TempDir(), "token"), "", "--json", "stock", "levels")
	require.NoError(t, err)

	var levels map[string]map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &levels))
	assert.Equal(t, 120, levels["Parirenyatwa"]["Amoxicillin"])
}

func TestErrorDelBackend(t *testing.T) {
	var auth string
	srv := backend(t, &auth)

	_, err := run(t, srv, filepath.Join(t.TempDir(), "token"), "", "facility-stock", "delete", "9")
	require.Error(t, err)
	msg := describeError(err)
	assert.Contains(t, msg, "403")
	assert.Contains(t, msg, "Access denied")
}

func TestValidaArgumentos(t *testing.T) {
	var auth string
	srv := backend(t, &auth)
	tokenFile := filepath.Join(t.TempDir(), "token")

	_, err := run(t, srv, tokenFile, "", "facility-stock", "delete", "abc")
	assert.ErrorContains(t, err, "id inválido")

	_, err = run(t, srv, tokenFile, "", "stock", "transfer", "--drug", "1", "--from", "2", "--to", "2", "--quantity", "5")
	assert.ErrorContains(t, err, "distintos")
}

func TestTabla(t *testing.T) {
	tbl := newTable("Provincias", "id", "provincia")
	tbl.add("1", "Harare")
	tbl.add("2", "Matabeleland North")
	out := tbl.render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5, "título, encabezado, separador y dos filas")
	assert.Contains(t, lines[1], "provincia")
	assert.Contains(t, lines[4], "Matabeleland North")

	assert.Contains(t, newTable("Vacía", "id").render(), "(sin resultados)")
}
