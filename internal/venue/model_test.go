package venue

import (
	"testing"

	"github.com/GianSanchez-dev/hooping-week/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_ScanValue(t *testing.T) {
	original := Settings{
		RecurringBlocks: []schedule.RecurringRule{
			{Title: "Liga interna", StartClock: "18:00", EndClock: "20:00", DaysOfWeek: []int{1, 3}},
		},
	}

	raw, err := original.Value()
	require.NoError(t, err)

	var decoded Settings
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, original, decoded)
}

func TestSettings_ScanNil(t *testing.T) {
	s := Settings{
		RecurringBlocks: []schedule.RecurringRule{{Title: "stale"}},
	}

	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s.RecurringBlocks)
}

func TestSettings_ScanString(t *testing.T) {
	var s Settings
	require.NoError(t, s.Scan(`{"recurringBlocks":[{"title":"Limpieza","startTime":"08:00","endTime":"09:00","daysOfWeek":[0]}]}`))
	require.Len(t, s.RecurringBlocks, 1)
	assert.Equal(t, "Limpieza", s.RecurringBlocks[0].Title)
}

func TestSettings_ScanUnsupportedType(t *testing.T) {
	var s Settings
	assert.Error(t, s.Scan(42))
}
