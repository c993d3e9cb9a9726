// Package impilo es el cliente REST del backend Impilo Stock Management y sus
// servicios (auth, usuarios, ubicaciones, stock).
package impilo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jhoicas/impilo-stock/pkg/apierror"
)

const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 30 * time.Second

	contentTypeJSON = "application/json"
	maxErrorBody    = 64 * 1024
)

// Config configuración del cliente.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Token   string
}

// RawBody cuerpo enviado tal cual con su propio Content-Type (multipart, texto...).
// El Content-Type JSON por defecto no se envía en ese caso.
type RawBody struct {
	ContentType string
	Body        []byte
}

// Request petición genérica. Headers se aplican sobre los headers por defecto.
type Request struct {
	Method   string
	Endpoint string
	Body     any
	Params   Params
	Headers  http.Header
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, proxies). Se respeta su Transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger registra cada petición en debug.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics cuenta cada petición en Prometheus.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithHeaders agrega o reemplaza headers por defecto.
func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		for k, v := range h {
			c.headers[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
		}
	}
}

// Client cliente HTTP del backend. Es seguro para uso concurrente; el token
// puede cambiarse en caliente con SetToken/ClearToken.
type Client struct {
	baseURL    string
	timeout    time.Duration
	headers    http.Header
	httpClient *http.Client
	log        zerolog.Logger
	metrics    *Metrics

	mu    sync.RWMutex
	token string
}

// NewClient construye el cliente con los valores por defecto del backend
// (base http://localhost:8080/api, timeout 30 s, JSON).
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		headers: http.Header{
			"Content-Type": {contentTypeJSON},
			"Accept":       {contentTypeJSON},
		},
		log:   zerolog.Nop(),
		token: cfg.Token,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return c
}

// BaseURL URL base sin "/" final.
func (c *Client) BaseURL() string { return c.baseURL }

// SetToken fija el bearer token de las siguientes peticiones.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken elimina el bearer token.
func (c *Client) ClearToken() { c.SetToken("") }

// Token devuelve el token actual ("" si no hay).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// WithToken devuelve una copia del cliente que usa token. Comparte transporte,
// logger y métricas; cambiar el token de la copia no afecta al original.
func (c *Client) WithToken(token string) *Client {
	return &Client{
		baseURL:    c.baseURL,
		timeout:    c.timeout,
		headers:    c.headers,
		httpClient: c.httpClient,
		log:        c.log,
		metrics:    c.metrics,
		token:      token,
	}
}

// ── Verbos ───────────────────────────────────────────────────────────────────

// Get GET endpoint?params y decodifica la respuesta en out (puede ser nil).
func (c *Client) Get(ctx context.Context, endpoint string, params Params, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Endpoint: endpoint, Params: params}, out)
}

// Post POST con body JSON (nil = sin cuerpo).
func (c *Client) Post(ctx context.Context, endpoint string, body any, params Params, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Endpoint: endpoint, Body: body, Params: params}, out)
}

// Put PUT con body JSON (nil = sin cuerpo).
func (c *Client) Put(ctx context.Context, endpoint string, body any, params Params, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Endpoint: endpoint, Body: body, Params: params}, out)
}

// Delete DELETE endpoint?params.
func (c *Client) Delete(ctx context.Context, endpoint string, params Params, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Endpoint: endpoint, Params: params}, out)
}

// Do ejecuta la petición. Todos los errores son *apierror.Error:
//   - respuesta no 2xx: "API request failed with status N" con el cuerpo parseado
//   - timeout del cliente: "Request timeout" (408)
//   - cualquier otro fallo: "Request failed: <causa>" (0)
//
// out recibe el JSON decodificado; para respuestas de texto debe ser *string o *[]byte.
// 204 no decodifica nada. No hay reintentos.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	endpoint := r.Endpoint
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	u, err := c.buildURL(endpoint, r.Params)
	if err != nil {
		return apierror.Wrap("Request failed: "+err.Error(), apierror.StatusNetwork, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	headers := c.requestHeaders(r.Headers)
	var body io.Reader
	if method != http.MethodGet && r.Body != nil {
		switch b := r.Body.(type) {
		case RawBody:
			headers.Del("Content-Type")
			if b.ContentType != "" {
				headers.Set("Content-Type", b.ContentType)
			}
			body = bytes.NewReader(b.Body)
		case *RawBody:
			headers.Del("Content-Type")
			if b.ContentType != "" {
				headers.Set("Content-Type", b.ContentType)
			}
			body = bytes.NewReader(b.Body)
		default:
			payload, err := json.Marshal(b)
			if err != nil {
				return apierror.Wrap("Request failed: "+err.Error(), apierror.StatusNetwork, err)
			}
			body = bytes.NewReader(payload)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return apierror.Wrap("Request failed: "+err.Error(), apierror.StatusNetwork, err)
	}
	req.Header = headers

	route := routeLabel(endpoint)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.record(method, route, apierror.StatusTimeout, elapsed, err)
			return apierror.Wrap("Request timeout", apierror.StatusTimeout, err)
		}
		c.record(method, route, apierror.StatusNetwork, elapsed, err)
		return apierror.Wrap("Request failed: "+err.Error(), apierror.StatusNetwork, err)
	}
	defer resp.Body.Close()
	c.record(method, route, resp.StatusCode, elapsed, nil)

	if err := c.handleResponse(resp, out); err != nil {
		var apiErr *apierror.Error
		if errors.As(err, &apiErr) {
			return apiErr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return apierror.Wrap("Request timeout", apierror.StatusTimeout, err)
		}
		return apierror.Wrap("Request failed: "+err.Error(), apierror.StatusNetwork, err)
	}
	return nil
}

func (c *Client) buildURL(endpoint string, params Params) (string, error) {
	u := c.baseURL + endpoint
	if len(params) == 0 {
		return u, nil
	}
	values, err := encodeParams(params)
	if err != nil {
		return "", err
	}
	if qs := values.Encode(); qs != "" {
		u += "?" + qs
	}
	return u, nil
}

func (c *Client) requestHeaders(custom http.Header) http.Header {
	h := c.headers.Clone()
	if token := c.Token(); token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	for k, v := range custom {
		h[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	return h
}

func (c *Client) handleResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			return err
		}
		return apierror.New(fmt.Sprintf("API request failed with status %d", resp.StatusCode), resp.StatusCode, errorData(raw))
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if strings.Contains(resp.Header.Get("Content-Type"), contentTypeJSON) {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decodificar respuesta: %w", err)
		}
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	switch dst := out.(type) {
	case *string:
		*dst = string(raw)
	case *[]byte:
		*dst = raw
	default:
		// Algunos endpoints responden JSON sin Content-Type; se intenta igual.
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("respuesta %q no es JSON: %w", resp.Header.Get("Content-Type"), err)
		}
	}
	return nil
}

// errorData cuerpo de error: JSON decodificado si es válido, si no el texto.
func errorData(raw []byte) any {
	var data any
	if err := json.Unmarshal(raw, &data); err == nil {
		return data
	}
	return string(raw)
}

func (c *Client) record(method, route string, status int, elapsed time.Duration, err error) {
	c.metrics.observe(method, route, status, elapsed)
	ev := c.log.Debug()
	if err != nil {
		ev = c.log.Warn().Err(err)
	}
	ev.Str("method", method).
		Str("route", route).
		Int("status", status).
		Dur("latency", elapsed).
		Msg("impilo: petición")
}
