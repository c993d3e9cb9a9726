package impilo_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/impilo"
	"github.com/jhoicas/impilo-stock/pkg/apierror"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// captured petición recibida por el servidor de prueba.
type captured struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

// newServer levanta un backend falso que registra la última petición y responde con h.
func newServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*got = captured{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Header: r.Header.Clone(), Body: string(b)}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func jsonReply(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func newClient(srv *httptest.Server, opts ...impilo.Option) *impilo.Client {
	opts = append([]impilo.Option{impilo.WithHTTPClient(srv.Client())}, opts...)
	return impilo.NewClient(impilo.Config{BaseURL: srv.URL + "/api/"}, opts...)
}

// ──────────────────────────────────────────────────────────────────────────────
// URL y headers
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_ConstruyeURLConParametros(t *testing.T) {
	srv, got := newServer(t, jsonReply(http.StatusOK, map[string]any{}))
	c := newClient(srv)

	err := c.Get(context.Background(), "stock/critical", impilo.Params{
		"threshold": 5,
		"ids":       []int{1, 2},
		"skip":      nil,
		"filter":    map[string]string{"a": "b"},
		"pageable":  entity.Pageable{Page: 1, Size: 20, Sort: []string{"name,asc"}},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/stock/critical", got.Path)
	assert.Equal(t, "filter=%7B%22a%22%3A%22b%22%7D&ids=1&ids=2&page=1&size=20&sort=name%2Casc&threshold=5", got.Query)
	assert.Empty(t, got.Body)
}

func TestNewClient_ValoresPorDefecto(t *testing.T) {
	c := impilo.NewClient(impilo.Config{})
	assert.Equal(t, impilo.DefaultBaseURL, c.BaseURL())
	assert.Empty(t, c.Token())
}

func TestDo_HeadersPorDefectoYBearer(t *testing.T) {
	srv, got := newServer(t, jsonReply(http.StatusOK, map[string]any{}))
	c := newClient(srv)

	require.NoError(t, c.Get(context.Background(), "/provinces", nil, nil))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Empty(t, got.Header.Get("Authorization"))

	c.SetToken("tok-123")
	require.NoError(t, c.Get(context.Background(), "/provinces", nil, nil))
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))

	c.ClearToken()
	require.NoError(t, c.Get(context.Background(), "/provinces", nil, nil))
	assert.Empty(t, got.Header.Get("Authorization"))
}

func TestWithToken_NoAfectaAlOriginal(t *testing.T) {
	srv, got := newServer(t, jsonReply(http.StatusOK, map[string]any{}))
	c := newClient(srv)
	c.SetToken("servicio")

	user := c.WithToken("usuario")
	require.NoError(t, user.Get(context.Background(), "/users/all", nil, nil))
	assert.Equal(t, "Bearer usuario", got.Header.Get("Authorization"))
	assert.Equal(t, "servicio", c.Token())
}

func TestDo_HeadersPersonalizadosSobrescriben(t *testing.T) {
	srv, got := newServer(t, jsonReply(http.StatusOK, map[string]any{}))
	c := newClient(srv, impilo.WithHeaders(http.Header{"X-Tenant": {"zw"}}))

	err := c.Do(context.Background(), impilo.Request{
		Endpoint: "/stock/report",
		Headers:  http.Header{"Accept": {"text/csv"}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", got.Header.Get("Accept"))
	assert.Equal(t, "zw", got.Header.Get("X-Tenant"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuerpo
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_EnviaJSON(t *testing.T) {
	srv, got := newServer(t, jsonReply(http.StatusCreated, map[string]any{"id": 7, "name": "Amoxicillin"}))
	c := newClient(srv)

	var out entity.Drug
	require.NoError(t, c.Post(context.Background(), "/stock/drug", entity.Drug{Name: "Amoxicillin"}, nil, &out))
	assert.Equal(t, http.MethodPost, got.Method)
	assert.JSONEq(t, `{"name":"Amoxicillin"}`, got.Body)
	assert.Equal(t, int64(7), out.ID)
}

func TestPost_SinCuerpoCuandoEsNil(t *testing.T) {
	srv, got := newServer(t, jsonReply(http.StatusOK, map[string]any{}))
	c := newClient(srv)

	require.NoError(t, c.Post(context.Background(), "/provinces", nil, impilo.Params{"name": "Harare"}, nil))
	assert.Empty(t, got.Body)
	assert.Equal(t, "name=Harare", got.Query)
}

func TestPost_RawBodyUsaSuContentType(t *testing.T) {
	srv, got := newServer(t, jsonReply(http.StatusOK, map[string]any{}))
	c := newClient(srv)

	body := impilo.RawBody{ContentType: "multipart/form-data; boundary=x", Body: []byte("--x--")}
	require.NoError(t, c.Post(context.Background(), "/upload", body, nil, nil))
	assert.Equal(t, "multipart/form-data; boundary=x", got.Header.Get("Content-Type"))
	assert.Equal(t, "--x--", got.Body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Respuestas y errores
// ──────────────────────────────────────────────────────────────────────────────

func TestDo_StatusNoExitosoConJSON(t *testing.T) {
	srv, _ := newServer(t, jsonReply(http.StatusNotFound, map[string]any{"message": "drug not found"}))
	c := newClient(srv)

	err := c.Get(context.Background(), "/stock/drugs", nil, nil)
	apiErr := apierror.As(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, "API request failed with status 404", apiErr.Error())
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, map[string]any{"message": "drug not found"}, apiErr.Data)
}

func TestDo_StatusNoExitosoConTexto(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "boom")
	})
	c := newClient(srv)

	apiErr := apierror.As(c.Get(context.Background(), "/stock/report", nil, nil))
	require.NotNil(t, apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Data)
}

func TestDo_204NoDecodifica(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	c := newClient(srv)

	out := entity.FacilityStock{StockLevel: 99}
	require.NoError(t, c.Delete(context.Background(), "/facility-stock/3", nil, &out))
	assert.Equal(t, 99, out.StockLevel)
}

func TestDo_RespuestaDeTexto(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
		_, _ = io.WriteString(w, "Password reset email sent")
	})
	c := newClient(srv)

	var out string
	require.NoError(t, c.Post(context.Background(), "/auth/reset-password", nil, impilo.Params{"email": "a@b.zw"}, &out))
	assert.Equal(t, "Password reset email sent", out)
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	c := impilo.NewClient(impilo.Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, impilo.WithHTTPClient(srv.Client()))

	apiErr := apierror.As(c.Get(context.Background(), "/stock/drugs", nil, nil))
	require.NotNil(t, apiErr)
	assert.Equal(t, "Request timeout", apiErr.Error())
	assert.Equal(t, apierror.StatusTimeout, apiErr.Status)
	assert.True(t, apiErr.Timeout())
}

func TestDo_FalloDeRed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := impilo.NewClient(impilo.Config{BaseURL: url})

	err := c.Get(context.Background(), "/provinces", nil, nil)
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.StatusNetwork, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "Request failed: ")
}

func TestDo_MetricasConRutaNormalizada(t *testing.T) {
	srv, _ := newServer(t, jsonReply(http.StatusOK, map[string]any{}))
	reg := prometheus.NewRegistry()
	m, err := impilo.NewMetrics(reg)
	require.NoError(t, err)
	c := newClient(srv, impilo.WithMetrics(m))

	require.NoError(t, c.Get(context.Background(), "/stock/facility/12/stock", nil, nil))
	require.NoError(t, c.Get(context.Background(), "/stock/facility/15/stock", nil, nil))

	expected := `
# HELP impilo_client_requests_total Total de peticiones enviadas al backend Impilo.
# TYPE impilo_client_requests_total counter
impilo_client_requests_total{method="GET",route="/stock/facility/:id/stock",status="200"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "impilo_client_requests_total"))
}
