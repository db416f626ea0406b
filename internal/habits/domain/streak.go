package domain

import (
	"sort"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// StreakFromDates counts consecutive completed days ending at today, walking
// backwards one day at a time. A gap ends the streak; a day later than today
// is ignored; duplicate dates count once. Any date that does not parse as
// YYYY-MM-DD aborts with a *sharedDomain.ParseError.
func StreakFromDates(dates []string, today sharedDomain.Day) (int, error) {
	days := make([]sharedDomain.Day, 0, len(dates))
	seen := make(map[sharedDomain.Day]struct{}, len(dates))
	for _, raw := range dates {
		d, err := sharedDomain.ParseDay(raw)
		if err != nil {
			return 0, err
		}
		if today.Before(d) {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}

	sort.Slice(days, func(i, j int) bool { return days[j].Before(days[i]) })

	streak := 0
	expected := today
	for _, d := range days {
		if !d.Equals(expected) {
			break
		}
		streak++
		expected = expected.AddDays(-1)
	}
	return streak, nil
}

// CurrentStreak counts the streak of completed logs for a single habit up to today.
func CurrentStreak(logs []*HabitLog, today sharedDomain.Day) (int, error) {
	dates := make([]string, 0, len(logs))
	for _, l := range logs {
		if l.Completed() {
			dates = append(dates, string(l.Day()))
		}
	}
	return StreakFromDates(dates, today)
}
