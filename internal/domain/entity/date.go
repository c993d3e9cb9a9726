package entity

import (
	"bytes"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// El backend serializa LocalDateTime sin zona; se aceptan ambos formatos.
var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", dateLayout}

// Date fecha sin hora (LocalDate del backend, "YYYY-MM-DD").
type Date struct {
	time.Time
}

// NewDate construye una fecha truncada al día.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate acepta "YYYY-MM-DD" o un timestamp RFC 3339.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q", s)
	}
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(bytes.Trim(b, `"`)))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysUntil días completos desde now hasta la fecha (negativo si ya pasó).
func (d Date) DaysUntil(now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Time.Sub(today).Hours() / 24)
}

// Timestamp fecha y hora del backend (Instant o LocalDateTime).
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339Nano) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Timestamp{parsed}
			return nil
		}
	}
	return fmt.Errorf("timestamp inválido %q", s)
}
