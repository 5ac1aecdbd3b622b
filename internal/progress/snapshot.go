package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ExportSnapshot serializes all progress as indented JSON for sharing.
// Memorized ayahs are listed in surah/ayah order.
func (s *Store) ExportSnapshot() (string, error) {
	s.mu.RLock()
	snap := entities.Snapshot{
		MemorizedAyahs: s.sortedRecordsLocked(),
		DailyLog:       s.dailyLog.Clone(),
		Settings:       s.settings,
		ExportedAt:     s.now().UTC().Format(time.RFC3339),
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// ParseSnapshot decodes an exported snapshot.
func ParseSnapshot(data []byte) (*entities.Snapshot, error) {
	var snap entities.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.MemorizedAyahs == nil && snap.DailyLog == nil && snap.ExportedAt == "" {
		return nil, fmt.Errorf("%w: no progress fields present", ErrInvalidSnapshot)
	}
	return &snap, nil
}

// Restore replaces all state with the snapshot's content and persists it.
// Invalid and duplicate records are dropped, the first occurrence wins.
// It returns the number of restored ayahs.
func (s *Store) Restore(snap *entities.Snapshot) int {
	ayahs := make(map[entities.AyahRef]entities.MemorizedAyah, len(snap.MemorizedAyahs))
	for _, r := range snap.MemorizedAyahs {
		if !r.Ref().Valid() {
			continue
		}
		if _, dup := ayahs[r.Ref()]; dup {
			continue
		}
		r.MasteryLevel = entities.NormalizeMastery(r.MasteryLevel)
		if r.JuzNumber <= 0 {
			r.JuzNumber = s.resolver.JuzForAyah(r.SurahNumber, r.AyahNumber)
		}
		ayahs[r.Ref()] = r
	}

	dailyLog := make(entities.DailyLog, len(snap.DailyLog))
	for k, v := range snap.DailyLog {
		if v > 0 {
			dailyLog[k] = v
		}
	}

	settings := s.defaults
	if snap.Settings.DailyGoal > 0 {
		settings.DailyGoal = snap.Settings.DailyGoal
	}
	settings.WalkthroughCompleted = snap.Settings.WalkthroughCompleted

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ayahs = ayahs
	s.dailyLog = dailyLog
	s.settings = settings
	s.persistAyahsLocked()
	s.persistDailyLogLocked()
	s.persistSettingsLocked()

	log.Printf("[STORE] Restored %d memorized ayahs from snapshot exported at %s", len(ayahs), snap.ExportedAt)
	return len(ayahs)
}
