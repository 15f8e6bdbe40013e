package grammar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Patryk27/janet/internal/entities"
)

// DateTime is an optionally-dated, optionally-timed moment, e.g. "tomorrow",
// "at 12:30" or "2018-01-01 in 3h".
type DateTime struct {
	Date *Date
	Time *Time
}

// Resolve applies the date component (replacing the calendar date) and then
// the time component to the given moment. Absent components leave the
// corresponding portion of now untouched.
func (dt DateTime) Resolve(now time.Time) time.Time {
	if dt.Date != nil {
		now = dt.Date.Resolve(now)
	}
	if dt.Time != nil {
		now = dt.Time.Resolve(now)
	}
	return now
}

// ResolveUTC resolves against now's wall clock in now's timezone and returns
// the corresponding UTC instant. It fails when the resolved wall-clock time
// does not exist in that timezone (the DST spring-forward gap).
func (dt DateTime) ResolveUTC(now time.Time) (time.Time, error) {
	// Calendar arithmetic happens in a DST-free frame so that "in 24h"
	// always means exactly 24 hours of wall clock.
	naive := time.Date(
		now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), 0,
		time.UTC,
	)
	resolved := dt.Resolve(naive)

	local := time.Date(
		resolved.Year(), resolved.Month(), resolved.Day(),
		resolved.Hour(), resolved.Minute(), resolved.Second(), 0,
		now.Location(),
	)
	if local.Hour() != resolved.Hour() ||
		local.Minute() != resolved.Minute() ||
		local.Day() != resolved.Day() {
		return time.Time{}, fmt.Errorf(
			"%w: %s does not exist in %s",
			entities.ErrUnrepresentableTime,
			resolved.Format("2006-01-02 15:04:05"),
			now.Location(),
		)
	}

	return local.UTC(), nil
}

func parseDateTime(in string) (DateTime, string, bool) {
	// Date followed by a time binds tighter than a date alone.
	if date, rest, ok := parseDate(in); ok && strings.HasPrefix(rest, " ") {
		if t, rest2, ok := parseTime(rest[1:]); ok {
			return DateTime{Date: &date, Time: &t}, rest2, true
		}
	}

	if date, rest, ok := parseDate(in); ok {
		return DateTime{Date: &date}, rest, true
	}

	if t, rest, ok := parseTime(in); ok {
		return DateTime{Time: &t}, rest, true
	}

	return DateTime{}, in, false
}
