package task

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Turnos-api/internal/application/dates"
	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/access"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// RawFields cuerpo JSON de una actualización parcial, campo a campo.
// Conserva qué claves llegaron para poder aplicar la lista de campos permitidos.
type RawFields map[string]json.RawMessage

// ParseRawFields decodifica un objeto JSON.
func ParseRawFields(body []byte) (RawFields, error) {
	var f RawFields
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("cuerpo JSON: %w", domain.ErrInvalidInput)
	}
	if f == nil {
		f = RawFields{}
	}
	return f, nil
}

// Keys claves presentes, ordenadas.
func (f RawFields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f RawFields) str(key string) (*string, error) {
	raw, ok := f[key]
	if !ok {
		return nil, nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%s debe ser texto: %w", key, domain.ErrInvalidInput)
	}
	if s == nil {
		empty := ""
		return &empty, nil
	}
	return s, nil
}

// Without devuelve una copia sin las claves que cumplen drop.
func (f RawFields) Without(drop func(string) bool) RawFields {
	out := make(RawFields, len(f))
	for k, v := range f {
		if !drop(k) {
			out[k] = v
		}
	}
	return out
}

func (f RawFields) boolean(key string) (*bool, error) {
	raw, ok := f[key]
	if !ok {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%s debe ser booleano: %w", key, domain.ErrInvalidInput)
	}
	return &b, nil
}

// decode convierte las claves conocidas en un TaskPatch validado.
func (f RawFields) decode(loc *time.Location) (entity.TaskPatch, error) {
	var p entity.TaskPatch

	title, err := f.str(access.FieldTitle)
	if err != nil {
		return p, err
	}
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return p, fmt.Errorf("title vacío: %w", domain.ErrInvalidInput)
		}
		p.Title = &t
	}

	if p.Description, err = f.str(access.FieldDescription); err != nil {
		return p, err
	}

	status, err := f.str(access.FieldStatus)
	if err != nil {
		return p, err
	}
	if status != nil {
		st := entity.TaskStatus(strings.ToUpper(*status))
		if !st.Valid() {
			return p, fmt.Errorf("status %q: %w", *status, domain.ErrInvalidInput)
		}
		p.Status = &st
	}

	due, err := f.str(access.FieldDueDate)
	if err != nil {
		return p, err
	}
	if due != nil {
		d, err := dates.ParseDateTime(*due, loc)
		if err != nil {
			return p, fmt.Errorf("dueDate: %w", err)
		}
		p.DueDate = &d
	}

	pos, err := f.str(access.FieldPositionID)
	if err != nil {
		return p, err
	}
	if pos != nil {
		if strings.TrimSpace(*pos) == "" {
			return p, fmt.Errorf("positionId vacío: %w", domain.ErrInvalidInput)
		}
		p.PositionID = pos
	}

	shift, err := f.str(access.FieldShift)
	if err != nil {
		return p, err
	}
	if shift != nil {
		sh := entity.Shift(strings.ToUpper(*shift))
		if !sh.Valid() {
			return p, fmt.Errorf("shift %q: %w", *shift, domain.ErrInvalidInput)
		}
		p.Shift = &sh
	}

	// null o "" dejan completedById en NULL.
	if p.CompletedByID, err = f.str(access.FieldCompletedByID); err != nil {
		return p, err
	}
	if p.CompletedLate, err = f.boolean(access.FieldCompletedLate); err != nil {
		return p, err
	}
	return p, nil
}
