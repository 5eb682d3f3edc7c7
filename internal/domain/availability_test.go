package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestAvailabilityBlock_OccurrencesWithin_SingleBlock(t *testing.T) {
	block := &AvailabilityBlock{
		StartTime: mustTime(t, "2026-03-02T10:00:00Z"),
		EndTime:   mustTime(t, "2026-03-02T12:00:00Z"),
		Type:      BlockTypeAvailable,
	}

	t.Run("inside window", func(t *testing.T) {
		occurrences := block.OccurrencesWithin(
			mustTime(t, "2026-03-02T00:00:00Z"),
			mustTime(t, "2026-03-03T00:00:00Z"),
		)
		require.Len(t, occurrences, 1)
		assert.Equal(t, block.Interval(), occurrences[0])
	})

	t.Run("outside window", func(t *testing.T) {
		occurrences := block.OccurrencesWithin(
			mustTime(t, "2026-03-05T00:00:00Z"),
			mustTime(t, "2026-03-06T00:00:00Z"),
		)
		assert.Empty(t, occurrences)
	})

	t.Run("window touching block end", func(t *testing.T) {
		occurrences := block.OccurrencesWithin(
			mustTime(t, "2026-03-02T12:00:00Z"),
			mustTime(t, "2026-03-03T00:00:00Z"),
		)
		assert.Empty(t, occurrences)
	})
}

func TestAvailabilityBlock_OccurrencesWithin_DailyCount(t *testing.T) {
	block := &AvailabilityBlock{
		StartTime:   mustTime(t, "2026-03-02T09:00:00Z"),
		EndTime:     mustTime(t, "2026-03-02T10:00:00Z"),
		IsRecurring: true,
		Recurrence: &RecurrencePattern{
			Frequency: FrequencyDaily,
			Interval:  1,
			Count:     ptr.Ptr(3),
		},
	}

	occurrences := block.OccurrencesWithin(
		mustTime(t, "2026-03-01T00:00:00Z"),
		mustTime(t, "2026-04-01T00:00:00Z"),
	)

	require.Len(t, occurrences, 3)
	assert.Equal(t, mustTime(t, "2026-03-02T09:00:00Z"), occurrences[0].Start)
	assert.Equal(t, mustTime(t, "2026-03-03T09:00:00Z"), occurrences[1].Start)
	assert.Equal(t, mustTime(t, "2026-03-04T09:00:00Z"), occurrences[2].Start)
	// Длительность вхождения совпадает с базовым блоком
	assert.Equal(t, time.Hour, occurrences[0].Duration())
}

func TestAvailabilityBlock_OccurrencesWithin_DailyUntil(t *testing.T) {
	block := &AvailabilityBlock{
		StartTime:   mustTime(t, "2026-03-02T09:00:00Z"),
		EndTime:     mustTime(t, "2026-03-02T10:00:00Z"),
		IsRecurring: true,
		Recurrence: &RecurrencePattern{
			Frequency: FrequencyDaily,
			Interval:  1,
			Until:     ptr.Ptr(mustTime(t, "2026-03-04T09:00:00Z")),
		},
	}

	occurrences := block.OccurrencesWithin(
		mustTime(t, "2026-03-01T00:00:00Z"),
		mustTime(t, "2026-04-01T00:00:00Z"),
	)

	// 2, 3 и 4 марта: until включает вхождение, начинающееся ровно в until
	require.Len(t, occurrences, 3)
	assert.Equal(t, mustTime(t, "2026-03-04T09:00:00Z"), occurrences[2].Start)
}

func TestAvailabilityBlock_OccurrencesWithin_WeeklyDaysOfWeek(t *testing.T) {
	// 2 марта 2026 — понедельник
	block := &AvailabilityBlock{
		StartTime:   mustTime(t, "2026-03-02T09:00:00Z"),
		EndTime:     mustTime(t, "2026-03-02T17:00:00Z"),
		IsRecurring: true,
		Recurrence: &RecurrencePattern{
			Frequency:  FrequencyWeekly,
			Interval:   1,
			DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
		},
	}

	occurrences := block.OccurrencesWithin(
		mustTime(t, "2026-03-02T00:00:00Z"),
		mustTime(t, "2026-03-09T00:00:00Z"),
	)

	require.Len(t, occurrences, 2)
	assert.Equal(t, time.Monday, occurrences[0].Start.Weekday())
	assert.Equal(t, time.Wednesday, occurrences[1].Start.Weekday())
}

func TestAvailabilityBlock_OccurrencesWithin_MonthlyInterval(t *testing.T) {
	block := &AvailabilityBlock{
		StartTime:   mustTime(t, "2026-01-15T09:00:00Z"),
		EndTime:     mustTime(t, "2026-01-15T10:00:00Z"),
		IsRecurring: true,
		Recurrence: &RecurrencePattern{
			Frequency: FrequencyMonthly,
			Interval:  2,
		},
	}

	occurrences := block.OccurrencesWithin(
		mustTime(t, "2026-01-01T00:00:00Z"),
		mustTime(t, "2026-07-01T00:00:00Z"),
	)

	// Январь, март, май — каждый второй месяц
	require.Len(t, occurrences, 3)
	assert.Equal(t, time.January, occurrences[0].Start.Month())
	assert.Equal(t, time.March, occurrences[1].Start.Month())
	assert.Equal(t, time.May, occurrences[2].Start.Month())
}

func TestAvailabilityBlock_OccurrencesWithin_WindowCapsExpansion(t *testing.T) {
	// Бесконечный паттерн: разворачивание обрезается окном
	block := &AvailabilityBlock{
		StartTime:   mustTime(t, "2026-03-02T09:00:00Z"),
		EndTime:     mustTime(t, "2026-03-02T10:00:00Z"),
		IsRecurring: true,
		Recurrence: &RecurrencePattern{
			Frequency: FrequencyDaily,
			Interval:  1,
		},
	}

	occurrences := block.OccurrencesWithin(
		mustTime(t, "2026-03-02T00:00:00Z"),
		mustTime(t, "2026-03-07T00:00:00Z"),
	)

	assert.Len(t, occurrences, 5)
}

func TestAvailabilityBlock_OccurrencesWithin_FarFutureWindow(t *testing.T) {
	t.Run("бессрочный daily блок виден спустя годы", func(t *testing.T) {
		block := &AvailabilityBlock{
			StartTime:   mustTime(t, "2022-01-03T09:00:00Z"),
			EndTime:     mustTime(t, "2022-01-03T17:00:00Z"),
			IsRecurring: true,
			Recurrence: &RecurrencePattern{
				Frequency: FrequencyDaily,
				Interval:  1,
			},
		}

		occurrences := block.OccurrencesWithin(
			mustTime(t, "2026-03-02T00:00:00Z"),
			mustTime(t, "2026-03-03T00:00:00Z"),
		)
		require.Len(t, occurrences, 1)
		assert.Equal(t, mustTime(t, "2026-03-02T09:00:00Z"), occurrences[0].Start)
		assert.Equal(t, mustTime(t, "2026-03-02T17:00:00Z"), occurrences[0].End)
	})

	t.Run("weekly с фильтром по дням недели спустя годы", func(t *testing.T) {
		// 2022-01-03 — понедельник; окно 2026-03-02..09 содержит
		// понедельник 2026-03-02 и среду 2026-03-04
		block := &AvailabilityBlock{
			StartTime:   mustTime(t, "2022-01-03T09:00:00Z"),
			EndTime:     mustTime(t, "2022-01-03T10:00:00Z"),
			IsRecurring: true,
			Recurrence: &RecurrencePattern{
				Frequency:  FrequencyWeekly,
				Interval:   1,
				DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
			},
		}

		occurrences := block.OccurrencesWithin(
			mustTime(t, "2026-03-02T00:00:00Z"),
			mustTime(t, "2026-03-09T00:00:00Z"),
		)
		require.Len(t, occurrences, 2)
		assert.Equal(t, mustTime(t, "2026-03-02T09:00:00Z"), occurrences[0].Start)
		assert.Equal(t, mustTime(t, "2026-03-04T09:00:00Z"), occurrences[1].Start)
	})

	t.Run("monthly блок спустя десятилетия", func(t *testing.T) {
		block := &AvailabilityBlock{
			StartTime:   mustTime(t, "1990-01-15T09:00:00Z"),
			EndTime:     mustTime(t, "1990-01-15T10:00:00Z"),
			IsRecurring: true,
			Recurrence: &RecurrencePattern{
				Frequency: FrequencyMonthly,
				Interval:  1,
			},
		}

		occurrences := block.OccurrencesWithin(
			mustTime(t, "2026-03-01T00:00:00Z"),
			mustTime(t, "2026-04-01T00:00:00Z"),
		)
		require.Len(t, occurrences, 1)
		assert.Equal(t, mustTime(t, "2026-03-15T09:00:00Z"), occurrences[0].Start)
	})

	t.Run("Count учитывает вхождения до окна", func(t *testing.T) {
		block := &AvailabilityBlock{
			StartTime:   mustTime(t, "2022-01-03T09:00:00Z"),
			EndTime:     mustTime(t, "2022-01-03T10:00:00Z"),
			IsRecurring: true,
			Recurrence: &RecurrencePattern{
				Frequency: FrequencyDaily,
				Interval:  1,
				Count:     ptr.Ptr(10),
			},
		}

		occurrences := block.OccurrencesWithin(
			mustTime(t, "2026-03-02T00:00:00Z"),
			mustTime(t, "2026-03-03T00:00:00Z"),
		)
		assert.Empty(t, occurrences)
	})

	t.Run("вхождение, начавшееся до окна, но пересекающее его", func(t *testing.T) {
		// Смена 23:00-02:00: вхождение 2026-03-01T23:00 заходит в окно 2026-03-02
		block := &AvailabilityBlock{
			StartTime:   mustTime(t, "2022-01-03T23:00:00Z"),
			EndTime:     mustTime(t, "2022-01-04T02:00:00Z"),
			IsRecurring: true,
			Recurrence: &RecurrencePattern{
				Frequency: FrequencyDaily,
				Interval:  1,
			},
		}

		occurrences := block.OccurrencesWithin(
			mustTime(t, "2026-03-02T00:00:00Z"),
			mustTime(t, "2026-03-02T12:00:00Z"),
		)
		require.Len(t, occurrences, 1)
		assert.Equal(t, mustTime(t, "2026-03-01T23:00:00Z"), occurrences[0].Start)
	})
}

func TestAvailabilityBlock_Predicates(t *testing.T) {
	block := &AvailabilityBlock{ProviderID: 42, Type: BlockTypeAvailable}

	assert.True(t, block.IsAvailable())
	assert.True(t, block.IsOwnedBy(42))
	assert.False(t, block.IsOwnedBy(7))

	busy := &AvailabilityBlock{ProviderID: 42, Type: BlockTypeBusy}
	assert.False(t, busy.IsAvailable())
}
