package model

import "strings"

// Day is a day-of-week tag on a task.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Days lists every recognized day in week order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayLabels = map[Day][2]string{
	Monday:    {"Monday", "Mon"},
	Tuesday:   {"Tuesday", "Tue"},
	Wednesday: {"Wednesday", "Wed"},
	Thursday:  {"Thursday", "Thu"},
	Friday:    {"Friday", "Fri"},
	Saturday:  {"Saturday", "Sat"},
	Sunday:    {"Sunday", "Sun"},
}

// Valid reports whether d is one of the seven recognized days.
func (d Day) Valid() bool {
	_, ok := dayLabels[d]
	return ok
}

// Label returns the full display name, or the raw value for unknown days.
func (d Day) Label() string {
	if l, ok := dayLabels[d]; ok {
		return l[0]
	}
	return string(d)
}

// Short returns the three-letter abbreviation.
func (d Day) Short() string {
	if l, ok := dayLabels[d]; ok {
		return l[1]
	}
	return string(d)
}

// ParseDay accepts a full name or a three-letter abbreviation in any case.
func ParseDay(s string) (Day, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range Days {
		if string(d) == s || strings.ToLower(d.Short()) == s {
			return d, true
		}
	}
	return "", false
}
