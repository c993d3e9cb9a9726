package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/impilo-stock/internal/domain"
	"github.com/jhoicas/impilo-stock/pkg/apierror"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#101F38"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a94a6"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935"))
)

// table tabla de texto para la salida de los comandos de listado.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) add(cells ...string) { t.rows = append(t.rows, cells) }

func (t *table) render() string {
	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(titleStyle.Render(t.title))
		sb.WriteString("\n")
	}
	if len(t.rows) == 0 {
		sb.WriteString(mutedStyle.Render("(sin resultados)"))
		sb.WriteString("\n")
		return sb.String()
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	sep := mutedStyle.Render("|")
	line := func(style lipgloss.Style, cells []string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	line(headerStyle, t.headers)
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range t.rows {
		line(cellStyle, row)
	}
	return sb.String()
}

// print escribe v como JSON con --json; si no, la tabla que arme build.
func (a *cli) print(v any, build func() *table) error {
	return writeOutput(a.out, a.json, v, build)
}

func writeOutput(w io.Writer, asJSON bool, v any, build func() *table) error {
	if asJSON || build == nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := io.WriteString(w, build().render())
	return err
}

// done mensaje de confirmación para operaciones sin cuerpo de respuesta.
func (a *cli) done(msg string) error {
	if a.json {
		return writeOutput(a.out, true, map[string]string{"message": msg}, nil)
	}
	_, err := fmt.Fprintln(a.out, okStyle.Render("✓ ")+msg)
	return err
}

// describeError mensaje legible para la terminal, con el cuerpo de error del backend si vino.
func describeError(err error) string {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if apiErr.Data != nil {
			if b, jerr := json.Marshal(apiErr.Data); jerr == nil {
				msg += " " + mutedStyle.Render(string(b))
			}
		}
		return msg
	}
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "la sesión expiró; ejecute impilo login"
	case errors.Is(err, domain.ErrUnauthorized):
		return "no autenticado; ejecute impilo login"
	}
	return err.Error()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
