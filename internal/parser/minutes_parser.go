package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseMinutes parses human-friendly session lengths into whole minutes.
// Supported formats:
// - bare number of minutes (e.g., "25")
// - X m / X min / X minutes (e.g., "25m", "25 min")
// - X h / X hours, optionally with minutes (e.g., "1h", "1h30m", "2 hours")
func ParseMinutes(input string) (int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return 0, fmt.Errorf("empty duration")
	}

	// Bare number means minutes
	if minutes, err := strconv.Atoi(input); err == nil {
		return minutes, nil
	}

	// "1h30m" / "1h 30m" compound form
	compoundRegex := regexp.MustCompile(`^(\d+)\s*h(?:ours?)?\s*(\d+)\s*m(?:in(?:utes?)?)?$`)
	if matches := compoundRegex.FindStringSubmatch(input); len(matches) == 3 {
		hours, _ := strconv.Atoi(matches[1])
		minutes, _ := strconv.Atoi(matches[2])
		if minutes > 59 {
			return 0, fmt.Errorf("minutes part must be between 0 and 59")
		}
		return hours*60 + minutes, nil
	}

	// Single unit form: "25m", "25 minutes", "2h", "2 hours"
	unitRegex := regexp.MustCompile(`^(\d+)\s*(m|min|mins|minute|minutes|h|hr|hrs|hour|hours)$`)
	matches := unitRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration %q. Use: 25, 25m, 1h or 1h30m", input)
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "h", "hr", "hrs", "hour", "hours":
		return amount * 60, nil
	default:
		return amount, nil
	}
}

// FormatMinutes formats whole minutes for display ("25m", "1h30m", "2h").
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
