package domain

import (
	"fmt"
	"time"
)

// DefaultZone applies to users who never registered a timezone.
const DefaultZone = "UTC"

// ZoneStore is the slice of the registry the service needs.
// store.FileStore implements it.
type ZoneStore interface {
	Get(userID string) string
	Set(userID, zone string) error
}

// Service implements the operations the command layer calls. It returns
// plain values and sentinel errors; rendering them is the caller's job.
type Service struct {
	zones ZoneStore
	now   func() time.Time
}

// NewService wires a Service. A nil now falls back to time.Now; tests inject
// a fixed clock.
func NewService(zones ZoneStore, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{zones: zones, now: now}
}

// ResolveTimezone returns the user's registered zone, or DefaultZone.
func (s *Service) ResolveTimezone(userID string) string {
	return s.zones.Get(userID)
}

// RegisterTimezone validates and stores a zone for the user, returning the
// normalized form. An ErrStorageWriteFailed is non-fatal: the registration is
// honored in memory for the rest of the process, only durability degraded.
func (s *Service) RegisterTimezone(userID, zone string) (string, error) {
	normalized, err := NormalizeZone(zone)
	if err != nil {
		return "", err
	}
	if err := s.zones.Set(userID, normalized); err != nil {
		return normalized, fmt.Errorf("register %s: %w", normalized, err)
	}
	return normalized, nil
}

// Convert turns a time string and optional date string into Unix seconds,
// interpreted in the caller's effective zone.
func (s *Service) Convert(userID, timeStr, dateStr string) (int64, error) {
	zone := s.zones.Get(userID)
	loc, err := LocationFor(zone)
	if err != nil {
		// A zone that validated at registration should always resolve; fall
		// back to UTC rather than fail the conversion.
		loc = time.UTC
		zone = DefaultZone
	}
	w, err := ParseWallClock(timeStr, dateStr, s.now(), loc)
	if err != nil {
		return 0, err
	}
	return ResolveUnix(w, zone)
}

// Now returns the current Unix timestamp. The instant is the same in every
// zone, so no store lookup is involved.
func (s *Service) Now() int64 {
	return s.now().Unix()
}
