package grammar

import "time"

// Weekday is an ISO weekday, Monday = 1 through Sunday = 7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = []struct {
	name string
	day  Weekday
}{
	{"monday", Monday},
	{"tuesday", Tuesday},
	{"wednesday", Wednesday},
	{"thursday", Thursday},
	{"friday", Friday},
	{"saturday", Saturday},
	{"sunday", Sunday},
}

func parseWeekday(in string) (Weekday, string, bool) {
	for _, w := range weekdayNames {
		if rest, ok := tag(in, w.name); ok {
			return w.day, rest, true
		}
	}
	return 0, in, false
}

func (w Weekday) String() string {
	return weekdayNames[w-1].name
}

// isoWeekday converts the stdlib's Sunday-based numbering to ISO.
func isoWeekday(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return Weekday(t.Weekday())
}
