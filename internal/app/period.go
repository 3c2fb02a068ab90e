package app

import (
	"fmt"
	"strings"
	"time"
)

// Period identifies a dashboard reporting window. The analytics engine is
// period-agnostic; periods only select which trades the service fetches and
// label the resulting snapshot.
type Period string

const (
	PeriodDaily     Period = "Daily"
	PeriodWeekly    Period = "Weekly"
	PeriodMonthly   Period = "Monthly"
	PeriodQuarterly Period = "Quarterly"
	PeriodHalfYear  Period = "Half-Year"
	PeriodYearly    Period = "Yearly"
	PeriodAllTime   Period = "All Time"
)

// ParsePeriod maps a user-supplied period name to a Period.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day":
		return PeriodDaily, nil
	case "weekly", "week":
		return PeriodWeekly, nil
	case "monthly", "month":
		return PeriodMonthly, nil
	case "quarterly", "quarter":
		return PeriodQuarterly, nil
	case "half-year", "halfyear", "half":
		return PeriodHalfYear, nil
	case "yearly", "year":
		return PeriodYearly, nil
	case "all", "all-time", "all time", "alltime":
		return PeriodAllTime, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Label returns the human-readable period name carried on snapshots.
func (p Period) Label() string { return string(p) }

// Range returns the [start, end) window ending at now for the period. The
// second return value is false for PeriodAllTime, which has no window.
func (p Period) Range(now time.Time) (start, end time.Time, bounded bool) {
	end = now
	switch p {
	case PeriodDaily:
		start = now.AddDate(0, 0, -1)
	case PeriodWeekly:
		start = now.AddDate(0, 0, -7)
	case PeriodMonthly:
		start = now.AddDate(0, -1, 0)
	case PeriodQuarterly:
		start = now.AddDate(0, -3, 0)
	case PeriodHalfYear:
		start = now.AddDate(0, -6, 0)
	case PeriodYearly:
		start = now.AddDate(-1, 0, 0)
	default:
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
