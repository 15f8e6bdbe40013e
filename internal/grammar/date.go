package grammar

import "time"

// RelativeDateKind discriminates RelativeDate variants.
type RelativeDateKind int

const (
	RelativeDays RelativeDateKind = iota
	RelativeDayOfWeek
	RelativeWeeks
)

// RelativeDate is a date offset from "now": a number of days, the next
// occurrence of a weekday, or a number of weeks.
type RelativeDate struct {
	Kind RelativeDateKind
	N    int     // RelativeDays, RelativeWeeks
	Day  Weekday // RelativeDayOfWeek
}

// Resolve applies the offset to the given moment, leaving the clock intact.
func (d RelativeDate) Resolve(now time.Time) time.Time {
	switch d.Kind {
	case RelativeDays:
		return now.AddDate(0, 0, d.N)

	case RelativeDayOfWeek:
		// The next occurrence of that weekday, never today: asking for
		// "monday" on a Monday means the following week.
		delta := (int(d.Day) - int(isoWeekday(now))) % 7
		if delta <= 0 {
			delta += 7
		}
		return now.AddDate(0, 0, delta)

	default:
		return now.AddDate(0, 0, 7*d.N)
	}
}

// DateKind discriminates Date variants.
type DateKind int

const (
	DateAbsolute DateKind = iota
	DateRelative
)

// Date is either a concrete YYYY-MM-DD or a relative offset.
type Date struct {
	Kind DateKind

	// DateAbsolute
	Year  int
	Month time.Month
	Day   int

	// DateRelative
	Relative RelativeDate
}

func absoluteDate(year int, month time.Month, day int) Date {
	return Date{Kind: DateAbsolute, Year: year, Month: month, Day: day}
}

func relativeDays(n int) Date {
	return Date{Kind: DateRelative, Relative: RelativeDate{Kind: RelativeDays, N: n}}
}

func relativeDayOfWeek(day Weekday) Date {
	return Date{Kind: DateRelative, Relative: RelativeDate{Kind: RelativeDayOfWeek, Day: day}}
}

func relativeWeeks(n int) Date {
	return Date{Kind: DateRelative, Relative: RelativeDate{Kind: RelativeWeeks, N: n}}
}

// Resolve returns now moved to the date this value denotes, clock preserved.
func (d Date) Resolve(now time.Time) time.Time {
	if d.Kind == DateAbsolute {
		return time.Date(
			d.Year, d.Month, d.Day,
			now.Hour(), now.Minute(), now.Second(), 0,
			now.Location(),
		)
	}
	return d.Relative.Resolve(now)
}

func parseDate(in string) (Date, string, bool) {
	if d, rest, ok := parseAbsoluteDate(in); ok {
		return d, rest, true
	}
	if d, rest, ok := parseRelativeDate(in); ok {
		return d, rest, true
	}
	return Date{}, in, false
}

func parseAbsoluteDate(in string) (Date, string, bool) {
	year, rest, ok := parseNumber(in)
	if !ok {
		return Date{}, in, false
	}
	rest, ok = tag(rest, "-")
	if !ok {
		return Date{}, in, false
	}
	month, rest, ok := parseNumber(rest)
	if !ok {
		return Date{}, in, false
	}
	rest, ok = tag(rest, "-")
	if !ok {
		return Date{}, in, false
	}
	day, rest, ok := parseNumber(rest)
	if !ok {
		return Date{}, in, false
	}
	if !validDate(year, month, day) {
		return Date{}, in, false
	}

	return absoluteDate(year, time.Month(month), day), rest, true
}

// validDate rejects dates that would silently normalize (e.g. 2018-02-30).
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

func parseRelativeDate(in string) (Date, string, bool) {
	if d, rest, ok := parseRelativeDay(in); ok {
		return d, rest, true
	}
	if rest, ok := tagWeekdayPrefix(in); ok {
		if day, rest2, ok := parseWeekday(rest); ok {
			return relativeDayOfWeek(day), rest2, true
		}
	}
	if day, rest, ok := parseWeekday(in); ok {
		return relativeDayOfWeek(day), rest, true
	}
	if d, rest, ok := parseRelativeWeek(in); ok {
		return d, rest, true
	}
	return Date{}, in, false
}

func tagWeekdayPrefix(in string) (string, bool) {
	return tag(in, "on ")
}

func parseRelativeDay(in string) (Date, string, bool) {
	for _, p := range []struct {
		lit  string
		days int
	}{
		{"the day after tomorrow", 2},
		{"today", 0},
		{"tomorrow", 1},
	} {
		if rest, ok := tag(in, p.lit); ok {
			return relativeDays(p.days), rest, true
		}
	}

	rest := optTag(in, "in ")
	if n, rest, ok := parseNumber(rest); ok {
		if rest, ok := tag(rest, "d"); ok {
			return relativeDays(n), rest, true
		}
	}

	return Date{}, in, false
}

func parseRelativeWeek(in string) (Date, string, bool) {
	if rest, ok := tag(in, "next week"); ok {
		return relativeWeeks(1), rest, true
	}

	rest := optTag(in, "in ")
	if n, rest, ok := parseNumber(rest); ok {
		if rest, ok := tag(rest, "w"); ok {
			return relativeWeeks(n), rest, true
		}
	}

	return Date{}, in, false
}
