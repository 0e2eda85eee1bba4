package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Duration strings are stored the way the mobile client displays them, in
// Portuguese ("1 hora e 30 minutos"). The parser and the formatter must stay
// in lock-step: the picker options are generated with FormatDuration and
// parsed back with ParseDuration.
var (
	hoursRegexp   = regexp.MustCompile(`(\d+)\s*hora`)
	minutesRegexp = regexp.MustCompile(`(\d+)\s*minuto`)
)

// ParseDuration extracts hours and minutes from a human-readable duration
// string and returns the total in minutes. A component that does not match
// contributes 0; fully malformed input yields 0.
func ParseDuration(s string) int {
	total := 0
	if m := hoursRegexp.FindStringSubmatch(s); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			total += h * 60
		}
	}
	if m := minutesRegexp.FindStringSubmatch(s); m != nil {
		if min, err := strconv.Atoi(m[1]); err == nil {
			total += min
		}
	}
	return total
}

// FormatDuration renders hours and minutes as a duration string ParseDuration
// reads back. Zero components are omitted; FormatDuration(0, 0) returns "".
func FormatDuration(hours, minutes int) string {
	var parts []string
	if hours > 0 {
		unit := "horas"
		if hours == 1 {
			unit = "hora"
		}
		parts = append(parts, fmt.Sprintf("%d %s", hours, unit))
	}
	if minutes > 0 {
		unit := "minutos"
		if minutes == 1 {
			unit = "minuto"
		}
		parts = append(parts, fmt.Sprintf("%d %s", minutes, unit))
	}
	return strings.Join(parts, " e ")
}

// DurationOptions returns the picker values offered when scheduling an event:
// every half hour from 30 minutes up to 8 hours.
func DurationOptions() []string {
	var out []string
	for total := 30; total <= 8*60; total += 30 {
		out = append(out, FormatDuration(total/60, total%60))
	}
	return out
}
