package derive

import (
	"fmt"
	"time"
)

// dateLayout is the strict format accepted by the --date flag
const dateLayout = "2006-01-02"

// PrevWorkday returns the start of the previous working period before ref.
// Monday maps to the preceding Friday (the range later covers the weekend);
// every other day maps to the day before.
func PrevWorkday(ref time.Time) time.Time {
	delta := 1
	if ref.Weekday() == time.Monday {
		delta = 3
	}
	return Day(ref.AddDate(0, 0, -delta))
}

// WorkdayRange returns the (from, to) date range used to filter Plane issues
// and GitHub commits.
// On Mondays the range is Friday through Sunday so the whole weekend is
// covered; on other days it is the single workday.
func WorkdayRange(workday, today time.Time) (time.Time, time.Time) {
	if today.Weekday() == time.Monday {
		return Day(workday), Day(today.AddDate(0, 0, -1)) // Sunday
	}
	return Day(workday), Day(workday)
}

// DateWindow converts a date range into a UTC datetime window from
// 00:00:00 on from to 23:59:59 on to.
func DateWindow(from, to time.Time) (time.Time, time.Time) {
	since := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	until := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)
	return since, until
}

// ParseDateArg parses a strict YYYY-MM-DD date argument.
// Returns a descriptive error for anything else.
func ParseDateArg(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return parsed, nil
}

// Day truncates a time to its calendar date in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatPeriod renders a date range as "from – to", collapsing equal dates.
func FormatPeriod(from, to time.Time) string {
	if Day(from).Equal(Day(to)) {
		return FormatDate(from)
	}
	return fmt.Sprintf("%s – %s", FormatDate(from), FormatDate(to))
}
