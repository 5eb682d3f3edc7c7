package domain

import "time"

// BlockType represents the kind of an availability block
type BlockType string

const (
	BlockTypeAvailable   BlockType = "available"
	BlockTypeUnavailable BlockType = "unavailable"
	BlockTypeBusy        BlockType = "busy"
)

// RecurrenceFrequency represents how often a recurring block repeats
type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "daily"
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
)

// RecurrencePattern describes how a recurring block repeats.
// Expansion terminates on Until, on Count, or at the end of the requested window,
// whichever comes first.
type RecurrencePattern struct {
	Frequency  RecurrenceFrequency `json:"frequency"`
	Interval   int                 `json:"interval"` // шаг повторения: каждые N дней/недель/месяцев
	DaysOfWeek []time.Weekday      `json:"daysOfWeek,omitempty"`
	Until      *time.Time          `json:"until,omitempty"`
	Count      *int                `json:"count,omitempty"`
}

// AvailabilityBlock represents a provider-declared interval of availability status.
// A block is either a single interval or a recurring pattern; conflict detection
// only ever reasons about concrete intervals produced by OccurrencesWithin.
type AvailabilityBlock struct {
	ID          int64
	ProviderID  int64
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	IsRecurring bool
	Recurrence  *RecurrencePattern
	Type        BlockType
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable returns true if the block marks the provider as available
func (b *AvailabilityBlock) IsAvailable() bool {
	return b.Type == BlockTypeAvailable
}

// IsOwnedBy returns true if the block belongs to the given provider
func (b *AvailabilityBlock) IsOwnedBy(providerID int64) bool {
	return b.ProviderID == providerID
}

// Interval returns the base interval of the block
func (b *AvailabilityBlock) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// maxOccurrenceScan страховка от бесконечного разворачивания паттерна
const maxOccurrenceScan = 1000

// OccurrencesWithin materializes the concrete intervals of the block that
// intersect the half-open window [from, to). For a single block this is at most
// its own interval; for a recurring block the pattern is expanded lazily and
// capped at the window, so callers only ever compare simple intervals.
func (b *AvailabilityBlock) OccurrencesWithin(from, to time.Time) []Interval {
	window := Interval{Start: from, End: to}

	if !b.IsRecurring || b.Recurrence == nil {
		if b.Interval().Overlaps(window) {
			return []Interval{b.Interval()}
		}
		return nil
	}

	duration := b.EndTime.Sub(b.StartTime)
	start, produced := b.Recurrence.seekWindow(b.StartTime, duration, from)
	occurrences := make([]Interval, 0)

	for i := 0; i < maxOccurrenceScan; i++ {
		if b.Recurrence.Until != nil && start.After(*b.Recurrence.Until) {
			break
		}
		if b.Recurrence.Count != nil && produced >= *b.Recurrence.Count {
			break
		}
		if !start.Before(to) {
			break
		}

		if b.Recurrence.matchesDay(start) {
			produced++
			occurrence := Interval{Start: start, End: start.Add(duration)}
			if occurrence.Overlaps(window) {
				occurrences = append(occurrences, occurrence)
			}
		}

		start = b.Recurrence.nextCandidate(b.StartTime, start)
	}

	return occurrences
}

// seekWindow перематывает кандидата к последнему вхождению, которое ещё не
// может пересечь окно, начинающееся с from, и возвращает число вхождений
// паттерна строго до этой точки. Без перемотки старый блок (начавшийся за
// годы до окна) упирался бы в страховочный лимит итераций, так и не дойдя
// до окна.
//
// Для weekly с фильтром по дням недели перемотка идет целыми циклами
// (7*interval дней), чтобы не нарушить подневный обход активной недели.
func (p *RecurrencePattern) seekWindow(base time.Time, duration time.Duration, from time.Time) (time.Time, int) {
	// Кандидат со start <= threshold заканчивается не позже from
	// и пересечь полуоткрытое окно не может
	threshold := from.Add(-duration)
	if !base.Before(threshold) {
		return base, 0
	}

	step := p.Interval
	if step < 1 {
		step = 1
	}

	switch p.Frequency {
	case FrequencyDaily:
		k := skippableSteps(base, threshold, step)
		return base.AddDate(0, 0, k*step), k
	case FrequencyWeekly:
		cycles := skippableSteps(base, threshold, 7*step)
		start := base.AddDate(0, 0, cycles*7*step)
		if len(p.DaysOfWeek) > 0 {
			return start, cycles * p.uniqueDayCount()
		}
		return start, cycles
	case FrequencyMonthly:
		// Месячный шаг зависит от пути (AddDate прижимает числа вроде 31-го),
		// поэтому идем итеративно; шагов на порядок меньше, чем дней
		start, skipped := base, 0
		for {
			next := start.AddDate(0, step, 0)
			if next.After(threshold) {
				return start, skipped
			}
			start = next
			skipped++
		}
	default:
		return base, 0
	}
}

// skippableSteps возвращает максимальное число шагов по stepDays календарных
// дней от base, не перешагивающее threshold
func skippableSteps(base, threshold time.Time, stepDays int) int {
	estimate := int(threshold.Sub(base).Hours()/24) / stepDays
	if estimate < 0 {
		estimate = 0
	}
	// Оценка по астрономическим суткам, а шаг календарный: возле переходов
	// на летнее время она может разойтись на шаг в обе стороны
	for estimate > 0 && base.AddDate(0, 0, estimate*stepDays).After(threshold) {
		estimate--
	}
	for !base.AddDate(0, 0, (estimate+1)*stepDays).After(threshold) {
		estimate++
	}
	return estimate
}

// uniqueDayCount возвращает число различных дней недели в фильтре паттерна
func (p *RecurrencePattern) uniqueDayCount() int {
	seen := make(map[time.Weekday]struct{}, len(p.DaysOfWeek))
	for _, day := range p.DaysOfWeek {
		seen[day] = struct{}{}
	}
	return len(seen)
}

// matchesDay проверяет, попадает ли дата в days-of-week фильтр паттерна
// Фильтр применяется только для недельной частоты
func (p *RecurrencePattern) matchesDay(t time.Time) bool {
	if p.Frequency != FrequencyWeekly || len(p.DaysOfWeek) == 0 {
		return true
	}
	for _, day := range p.DaysOfWeek {
		if t.Weekday() == day {
			return true
		}
	}
	return false
}

// nextCandidate возвращает следующую дату-кандидата для разворачивания паттерна
func (p *RecurrencePattern) nextCandidate(base, current time.Time) time.Time {
	step := p.Interval
	if step < 1 {
		step = 1
	}

	switch p.Frequency {
	case FrequencyDaily:
		return current.AddDate(0, 0, step)
	case FrequencyWeekly:
		if len(p.DaysOfWeek) > 0 {
			// С фильтром по дням недели идем день за днем, а шаг недели
			// обеспечивается пропуском целых недель на границе
			next := current.AddDate(0, 0, 1)
			if step > 1 && next.Weekday() == base.Weekday() {
				next = next.AddDate(0, 0, 7*(step-1))
			}
			return next
		}
		return current.AddDate(0, 0, 7*step)
	case FrequencyMonthly:
		return current.AddDate(0, step, 0)
	default:
		// Неизвестная частота: выходим за окно, чтобы остановить разворачивание
		return current.AddDate(100, 0, 0)
	}
}
