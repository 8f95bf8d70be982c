package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

// The free-text duration grammar. Deliberately looser than the duration
// value format: it serves voice and shortcut input, where "1.5 hours" and
// "90 minutes" are as likely as "1:30". Patterns are tried in order; the
// first match wins.
var (
	hoursMinutesRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h)(?:\s+(?:and\s+)?(\d+(?:\.\d+)?)\s*(?:minutes?|mins?|m))?`)
	minutesRe      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:minutes?|mins?|m)`)
	secondsRe      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:seconds?|secs?|s)`)
)

// ParseDurationText recognizes free-form duration text and returns total
// minutes. ok is false when nothing matches.
func ParseDurationText(input string) (float64, bool) {
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "" {
		return 0, false
	}

	if m := hoursMinutesRe.FindStringSubmatch(text); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		var minutes float64
		if m[2] != "" {
			minutes, err = strconv.ParseFloat(m[2], 64)
			if err != nil {
				return 0, false
			}
		}
		return hours*60 + minutes, true
	}

	if m := minutesRe.FindStringSubmatch(text); m != nil {
		minutes, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return minutes, true
	}

	if m := secondsRe.FindStringSubmatch(text); m != nil {
		seconds, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return seconds / 60, true
	}

	if strings.Contains(text, ":") {
		parts := strings.Split(text, ":")
		if len(parts) != 2 {
			return 0, false
		}
		hours, err1 := strconv.ParseFloat(parts[0], 64)
		minutes, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return 0, false
		}
		return hours*60 + minutes, true
	}

	minutes, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return minutes, true
}
