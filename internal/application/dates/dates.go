// Package dates interpreta las fechas que llegan por la API en la zona horaria de la estación.
package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

const dayLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	dayLayout,
}

// ParseDateTime acepta RFC3339 o fecha/hora local sin zona (se interpreta en loc).
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
}

// ParseDay devuelve el día calendario (00:00 en loc) de s.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := ParseDateTime(s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return entity.StartOfDay(t, loc), nil
}

// Range límites inclusivos: inicio del primer día y final del último.
// Cadenas vacías dejan el límite en nil.
func Range(startStr, endStr string, loc *time.Location) (start, end *time.Time, err error) {
	if startStr != "" {
		d, err := ParseDay(startStr, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("startDate: %w", err)
		}
		start = &d
	}
	if endStr != "" {
		d, err := ParseDay(endStr, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("endDate: %w", err)
		}
		eod := entity.EndOfDay(d, loc)
		end = &eod
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, fmt.Errorf("startDate no puede ser posterior a endDate: %w", domain.ErrInvalidInput)
	}
	return start, end, nil
}

// PeriodStart inicio del día, de la semana (lunes) o del mes que contiene now.
func PeriodStart(period string, now time.Time, loc *time.Location) (time.Time, error) {
	today := entity.StartOfDay(now, loc)
	switch period {
	case "day":
		return today, nil
	case "week":
		offset := (int(today.Weekday()) + 6) % 7 // lunes = 0
		return today.AddDate(0, 0, -offset), nil
	case "month":
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("período %q (day|week|month): %w", period, domain.ErrInvalidInput)
}
