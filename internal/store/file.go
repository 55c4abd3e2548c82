package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/m4rv1n33/discord-unix-bot/internal/domain"
)

// Registry load sources, surfaced in status reports.
const (
	SourceVolume = "volume"
	SourceBackup = "backup"
	SourceNone   = "none"
)

const probeName = ".write_test"

// FileStore is the durable user → timezone registry: a JSON object on the
// data volume, shadowed by a backup file on an always-writable path. The
// volume may be absent or read-only; the store degrades instead of failing.
type FileStore struct {
	mu    sync.RWMutex
	zones map[string]string

	primary   string
	backup    string
	primaryOK bool
	source    string
	log       *zap.Logger
}

// Open probes the primary volume, loads whichever source is readable and
// self-heals the primary from the backup when needed. The returned store is
// always usable; ErrStorageReadFailed means an existing source was unreadable
// and the registry started empty, which the caller should log, not fatal.
func Open(primary, backup string, log *zap.Logger) (*FileStore, error) {
	s := &FileStore{
		zones:   map[string]string{},
		primary: primary,
		backup:  backup,
		source:  SourceNone,
		log:     log,
	}
	s.primaryOK = s.probe()
	if !s.primaryOK {
		log.Warn("primary storage not writable, volume persistence disabled",
			zap.String("path", primary))
	}

	var sawCorrupt bool

	if err := s.loadFrom(primary); err == nil {
		s.source = SourceVolume
		log.Info("timezones loaded",
			zap.String("source", s.source), zap.Int("count", len(s.zones)))
		return s, nil
	} else if !os.IsNotExist(err) {
		sawCorrupt = true
		log.Error("primary load failed", zap.Error(err))
	}

	if err := s.loadFrom(backup); err == nil {
		s.source = SourceBackup
		log.Info("timezones loaded",
			zap.String("source", s.source), zap.Int("count", len(s.zones)))
		// Self-heal: put the backup's contents back on the volume.
		if s.primaryOK {
			if err := writeJSON(primary, s.zones); err != nil {
				log.Warn("primary write-back failed", zap.Error(err))
			}
		}
		return s, nil
	} else if !os.IsNotExist(err) {
		sawCorrupt = true
		log.Error("backup load failed", zap.Error(err))
	}

	// Fresh install: neither file exists yet. Only report a read failure
	// when a source existed but could not be decoded.
	if sawCorrupt {
		return s, domain.ErrStorageReadFailed
	}
	return s, nil
}

// probe verifies the primary directory is writable by round-tripping a probe
// file. The result gates primary writes for the process lifetime.
func (s *FileStore) probe() bool {
	dir := filepath.Dir(s.primary)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	probe := filepath.Join(dir, probeName)
	if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
		return false
	}
	if _, err := os.ReadFile(probe); err != nil {
		return false
	}
	return os.Remove(probe) == nil
}

func (s *FileStore) loadFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	zones := map[string]string{}
	if err := json.Unmarshal(data, &zones); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	s.zones = zones
	return nil
}

// Get returns the registered zone, or the UTC default. Pure read.
func (s *FileStore) Get(userID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if zone, ok := s.zones[userID]; ok {
		return zone
	}
	return domain.DefaultZone
}

// Set records the zone in memory, then persists synchronously: the primary
// is attempted only while the startup probe succeeded, the backup always.
// The in-memory value stands even when persistence fails; the returned
// ErrStorageWriteFailed tells the caller durability degraded, not that the
// registration was refused.
func (s *FileStore) Set(userID, zone string) error {
	s.mu.Lock()
	s.zones[userID] = zone
	snapshot := copyZones(s.zones)
	s.mu.Unlock()

	var failed bool
	if s.primaryOK {
		if err := writeJSON(s.primary, snapshot); err != nil {
			s.log.Error("primary save failed", zap.Error(err))
			failed = true
		}
	}
	if err := writeJSON(s.backup, snapshot); err != nil {
		s.log.Error("backup save failed", zap.Error(err))
		failed = true
	}
	if failed {
		return domain.ErrStorageWriteFailed
	}
	s.log.Debug("timezones saved", zap.Int("count", len(snapshot)))
	return nil
}

// Count returns the number of registered users.
func (s *FileStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.zones)
}

// Snapshot returns a copy of the registry for backups and admin exports.
func (s *FileStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyZones(s.zones)
}

// Source reports where the registry was loaded from at startup.
func (s *FileStore) Source() string {
	return s.source
}

// PrimaryWritable reports the result of the startup probe.
func (s *FileStore) PrimaryWritable() bool {
	return s.primaryOK
}

// Paths returns the primary and backup file locations.
func (s *FileStore) Paths() (primary, backup string) {
	return s.primary, s.backup
}

func copyZones(zones map[string]string) map[string]string {
	out := make(map[string]string, len(zones))
	for k, v := range zones {
		out[k] = v
	}
	return out
}

func writeJSON(path string, zones map[string]string) error {
	data, err := json.MarshalIndent(zones, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
