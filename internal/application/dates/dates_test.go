package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Turnos-api/internal/application/dates"
	"github.com/jhoicas/Turnos-api/internal/domain"
)

func loc(t *testing.T) *time.Location {
	t.Helper()
	l, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	return l
}

func TestParseDateTime_Formatos(t *testing.T) {
	l := loc(t)

	got, err := dates.ParseDateTime("2025-03-10T08:30:00Z", l)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)))

	got, err = dates.ParseDateTime("2025-03-10T08:30", l)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 8, 30, 0, 0, l)))

	got, err = dates.ParseDateTime("2025-03-10", l)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, l)))

	_, err = dates.ParseDateTime("10/03/2025", l)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRange_Inclusivo(t *testing.T) {
	l := loc(t)
	start, end, err := dates.Range("2025-03-01", "2025-03-31", l)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, l)))
	assert.True(t, end.Equal(time.Date(2025, 3, 31, 23, 59, 59, 999_000_000, l)))

	start, end, err = dates.Range("", "", l)
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)

	_, _, err = dates.Range("2025-04-01", "2025-03-01", l)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = dates.Range("ayer", "", l)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPeriodStart(t *testing.T) {
	l := loc(t)
	// Jueves 13 de marzo de 2025, 18:45
	now := time.Date(2025, 3, 13, 18, 45, 0, 0, l)

	day, err := dates.PeriodStart("day", now, l)
	require.NoError(t, err)
	assert.True(t, day.Equal(time.Date(2025, 3, 13, 0, 0, 0, 0, l)))

	week, err := dates.PeriodStart("week", now, l)
	require.NoError(t, err)
	assert.True(t, week.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, l)), "la semana empieza el lunes")

	month, err := dates.PeriodStart("month", now, l)
	require.NoError(t, err)
	assert.True(t, month.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, l)))

	_, err = dates.PeriodStart("year", now, l)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPeriodStart_DomingoPerteneceALaSemanaAnterior(t *testing.T) {
	l := loc(t)
	sunday := time.Date(2025, 3, 16, 10, 0, 0, 0, l)
	week, err := dates.PeriodStart("week", sunday, l)
	require.NoError(t, err)
	assert.True(t, week.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, l)))
}
