package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeInterval_Validate(t *testing.T) {
	tests := []struct {
		name     string
		interval TimeInterval
		wantErr  bool
	}{
		{"корректный интервал", TimeInterval{Start: "09:00", End: "18:00"}, false},
		{"конец равен началу", TimeInterval{Start: "09:00", End: "09:00"}, true},
		{"конец раньше начала", TimeInterval{Start: "18:00", End: "09:00"}, true},
		{"некорректный формат начала", TimeInterval{Start: "9am", End: "18:00"}, true},
		{"некорректный формат конца", TimeInterval{Start: "09:00", End: "25:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.interval.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInterval)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkSchedule_Validate_OverlappingIntervals(t *testing.T) {
	schedule := &WorkSchedule{
		Monday: []TimeInterval{
			{Start: "09:00", End: "13:00"},
			{Start: "12:00", End: "18:00"},
		},
	}

	err := schedule.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverlappingIntervals)
}

func TestWorkSchedule_Validate_TouchingIntervalsAllowed(t *testing.T) {
	// Полуоткрытая семантика: 09:00-13:00 и 13:00-18:00 не пересекаются
	schedule := &WorkSchedule{
		Monday: []TimeInterval{
			{Start: "09:00", End: "13:00"},
			{Start: "13:00", End: "18:00"},
		},
	}

	assert.NoError(t, schedule.Validate())
}

func TestWorkSchedule_Validate_InvalidIntervalInDay(t *testing.T) {
	schedule := &WorkSchedule{
		Friday: []TimeInterval{
			{Start: "18:00", End: "09:00"},
		},
	}

	err := schedule.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.Contains(t, err.Error(), "friday")
}

func TestWorkSchedule_IntervalsFor(t *testing.T) {
	schedule := &WorkSchedule{
		Monday:   []TimeInterval{{Start: "09:00", End: "12:00"}},
		Saturday: []TimeInterval{{Start: "10:00", End: "14:00"}},
	}

	assert.Len(t, schedule.IntervalsFor(time.Monday), 1)
	assert.Len(t, schedule.IntervalsFor(time.Saturday), 1)
	assert.Empty(t, schedule.IntervalsFor(time.Sunday))
	assert.Empty(t, schedule.IntervalsFor(time.Wednesday))
}

func TestWorkSchedule_IsEmpty(t *testing.T) {
	empty := &WorkSchedule{}
	assert.True(t, empty.IsEmpty())

	nonEmpty := &WorkSchedule{Tuesday: []TimeInterval{{Start: "09:00", End: "10:00"}}}
	assert.False(t, nonEmpty.IsEmpty())
}
