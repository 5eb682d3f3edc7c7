package domain

// CalendarViewType represents the presentation granularity of a calendar view.
// The window itself is caller-provided; the view type is echoed back as metadata.
type CalendarViewType string

const (
	CalendarViewDay   CalendarViewType = "day"
	CalendarViewWeek  CalendarViewType = "week"
	CalendarViewMonth CalendarViewType = "month"
)

// IsValid returns true for a known view type
func (t CalendarViewType) IsValid() bool {
	return t == CalendarViewDay || t == CalendarViewWeek || t == CalendarViewMonth
}
