package grammar

import (
	"strings"
	"time"
)

// RelativeTime is a duration expressed as any subset of hours, minutes and
// seconds, in that order.
type RelativeTime struct {
	Hours   *int
	Minutes *int
	Seconds *int
}

// Resolve adds the duration to the given moment.
func (t RelativeTime) Resolve(now time.Time) time.Time {
	d := time.Duration(orZero(t.Hours))*time.Hour +
		time.Duration(orZero(t.Minutes))*time.Minute +
		time.Duration(orZero(t.Seconds))*time.Second

	return now.Add(d)
}

func orZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func intPtr(v int) *int {
	return &v
}

// TimeKind discriminates Time variants.
type TimeKind int

const (
	TimeAbsolute TimeKind = iota
	TimeRelative
)

// Time is either a concrete time of day or an offset from "now".
type Time struct {
	Kind TimeKind

	// TimeAbsolute
	Hour   int
	Minute int

	// TimeRelative
	Relative RelativeTime
}

func absoluteTime(hour, minute int) Time {
	return Time{Kind: TimeAbsolute, Hour: hour, Minute: minute}
}

func relativeTime(t RelativeTime) Time {
	return Time{Kind: TimeRelative, Relative: t}
}

// Resolve applies this value to the given moment: absolute times replace the
// clock (seconds reset to zero), relative times shift it.
func (t Time) Resolve(now time.Time) time.Time {
	if t.Kind == TimeAbsolute {
		return time.Date(
			now.Year(), now.Month(), now.Day(),
			t.Hour, t.Minute, 0, 0,
			now.Location(),
		)
	}
	return t.Relative.Resolve(now)
}

// The relative branch goes first so that "12h" parses as an offset instead of
// an absolute hour followed by a stray "h".
func parseTime(in string) (Time, string, bool) {
	if t, rest, ok := parseRelativeTimeAtom(in); ok {
		return t, rest, true
	}
	if t, rest, ok := parseAbsoluteTime(in); ok {
		return t, rest, true
	}
	return Time{}, in, false
}

func parseAbsoluteTime(in string) (Time, string, bool) {
	rest := optTag(in, "at ")

	hour, rest, ok := parseNumber(rest)
	if !ok || hour > 23 {
		return Time{}, in, false
	}

	if rest2, ok := tag(rest, ":"); ok {
		if minute, rest3, ok := parseNumber(rest2); ok && minute <= 59 {
			return absoluteTime(hour, minute), rest3, true
		}
	}

	return absoluteTime(hour, 0), rest, true
}

func parseRelativeTimeAtom(in string) (Time, string, bool) {
	rest := optTag(in, "in ")

	t, rest, ok := parseRelativeTime(rest)
	if !ok {
		return Time{}, in, false
	}

	return relativeTime(t), rest, true
}

type timeComponent struct {
	unit  byte
	value int
}

// parseRelativeTime matches a space-separated list of "<n>h", "<n>m", "<n>s"
// components; later components of the same unit overwrite earlier ones.
func parseRelativeTime(in string) (RelativeTime, string, bool) {
	c, rest, ok := parseTimeComponent(in)
	if !ok {
		return RelativeTime{}, in, false
	}

	components := []timeComponent{c}
	for {
		if !strings.HasPrefix(rest, " ") {
			break
		}
		c, rest2, ok := parseTimeComponent(rest[1:])
		if !ok {
			break
		}
		components = append(components, c)
		rest = rest2
	}

	var t RelativeTime
	for _, c := range components {
		switch c.unit {
		case 'h':
			t.Hours = intPtr(c.value)
		case 'm':
			t.Minutes = intPtr(c.value)
		case 's':
			t.Seconds = intPtr(c.value)
		}
	}

	return t, rest, true
}

func parseTimeComponent(in string) (timeComponent, string, bool) {
	n, rest, ok := parseNumber(in)
	if !ok {
		return timeComponent{}, in, false
	}

	for _, unit := range []string{"h", "m", "s"} {
		if rest2, ok := tag(rest, unit); ok {
			return timeComponent{unit: unit[0], value: n}, rest2, true
		}
	}

	return timeComponent{}, in, false
}
