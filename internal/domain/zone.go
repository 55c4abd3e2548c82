package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Real-world UTC offsets span -12..+14; anything outside is rejected even
// though time.FixedZone would happily accept it.
const (
	minOffsetHours = -12
	maxOffsetHours = 14
)

var gmtOffsetPattern = regexp.MustCompile(`^GMT([+-])(\d{1,2})$`)

// NormalizeZone validates a candidate zone and returns its canonical form:
// the IANA name verbatim, or the GMT±H shorthand uppercased.
func NormalizeZone(zone string) (string, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return "", fmt.Errorf("%w: empty zone", ErrInvalidTimezone)
	}
	upper := strings.ToUpper(zone)
	if gmtOffsetPattern.MatchString(upper) {
		if _, ok := offsetHours(upper); !ok {
			return "", fmt.Errorf("%w: offset out of range: %s", ErrInvalidTimezone, zone)
		}
		return upper, nil
	}
	// "Local" resolves to the host zone; conversions must never depend on it.
	if zone == "Local" {
		return "", fmt.Errorf("%w: %s", ErrInvalidTimezone, zone)
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidTimezone, zone)
	}
	return zone, nil
}

// IsValidZone reports whether zone names an IANA entry or a GMT±H shorthand
// with an hour offset in -12..+14.
func IsValidZone(zone string) bool {
	_, err := NormalizeZone(zone)
	return err == nil
}

// LocationFor resolves a zone to a time.Location. The shorthand form yields
// a fixed zone with no DST rules.
func LocationFor(zone string) (*time.Location, error) {
	if hours, ok := offsetHours(strings.ToUpper(strings.TrimSpace(zone))); ok {
		return time.FixedZone(fmt.Sprintf("GMT%+d", hours), hours*3600), nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, zone)
	}
	return loc, nil
}

// offsetHours extracts the hour offset from an uppercased GMT±H shorthand.
func offsetHours(zone string) (int, bool) {
	m := gmtOffsetPattern.FindStringSubmatch(zone)
	if m == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(m[1] + m[2])
	if err != nil || hours < minOffsetHours || hours > maxOffsetHours {
		return 0, false
	}
	return hours, true
}
