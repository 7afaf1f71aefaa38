package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout formato de fecha en la API (ISO 8601, sin hora).
const DateLayout = "2006-01-02"

// Date fecha civil (sin hora ni zona) serializada como "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate normaliza t a medianoche UTC del mismo día calendario.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate interpreta "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// Today devuelve la fecha de now.
func Today(now time.Time) Date {
	return NewDate(now)
}

// AddDays suma días calendario.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Before reporta si d es estrictamente anterior a o.
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

// After reporta si d es estrictamente posterior a o.
func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

// MarshalJSON implementa json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON acepta "YYYY-MM-DD" o null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML serializa como "YYYY-MM-DD".
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
