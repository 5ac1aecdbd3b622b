// Package progress owns the user's memorization state: the set of memorized
// ayahs, the daily activity log and the settings. Store is the only writer of
// that state; every mutation updates memory first and then queues a
// whole-blob write to durable storage. Storage failures are logged and never
// surface to callers, memory stays authoritative for the session.
package progress

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

// Store holds memorization progress in memory and mirrors it to Storage.
type Store struct {
	resolver JuzResolver
	writer   *writeBehind
	now      func() time.Time

	mu       sync.RWMutex
	ayahs    map[entities.AyahRef]entities.MemorizedAyah
	dailyLog entities.DailyLog
	settings entities.Settings
	defaults entities.Settings
	closed   bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now. Daily log keys use the location of the
// returned time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithDefaultSettings replaces the settings used before any are saved and
// after a reset.
func WithDefaultSettings(settings entities.Settings) Option {
	return func(s *Store) {
		s.defaults = settings
	}
}

// NewStore creates an empty store. Call Load to read persisted state and
// Close to drain pending writes.
func NewStore(storage Storage, resolver JuzResolver, opts ...Option) *Store {
	s := &Store{
		resolver: resolver,
		now:      time.Now,
		ayahs:    make(map[entities.AyahRef]entities.MemorizedAyah),
		dailyLog: make(entities.DailyLog),
		defaults: entities.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.settings = s.defaults
	s.writer = newWriteBehind(storage)
	return s
}

// Load replaces in-memory state with what storage holds. Each key is read
// independently; a missing, unreadable or malformed key leaves that part at
// its default.
func (s *Store) Load(ctx context.Context) {
	ayahs := make(map[entities.AyahRef]entities.MemorizedAyah)
	dailyLog := make(entities.DailyLog)
	settings := s.defaults

	storage := s.writer.storage

	if raw, ok := readKey(ctx, storage, entities.KeyMemorized); ok {
		var records []entities.MemorizedAyah
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			log.Printf("[STORE] Ignoring malformed %s: %v", entities.KeyMemorized, err)
		} else {
			for _, r := range records {
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
		}
	}

	if raw, ok := readKey(ctx, storage, entities.KeyDailyLog); ok {
		var stored entities.DailyLog
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			log.Printf("[STORE] Ignoring malformed %s: %v", entities.KeyDailyLog, err)
		} else {
			for k, v := range stored {
				dailyLog[k] = v
			}
		}
	}

	if raw, ok := readKey(ctx, storage, entities.KeySettings); ok {
		var patch entities.SettingsPatch
		if err := json.Unmarshal([]byte(raw), &patch); err != nil {
			log.Printf("[STORE] Ignoring malformed %s: %v", entities.KeySettings, err)
		} else {
			settings = patch.Apply(settings)
		}
	}

	s.mu.Lock()
	s.ayahs = ayahs
	s.dailyLog = dailyLog
	s.settings = settings
	s.mu.Unlock()

	log.Printf("[STORE] Loaded %d memorized ayahs, %d active days", len(ayahs), len(dailyLog))
}

func readKey(ctx context.Context, storage Storage, key string) (string, bool) {
	raw, ok, err := storage.GetItem(ctx, key)
	if err != nil {
		log.Printf("[STORE] Failed to read %s: %v", key, err)
		return "", false
	}
	return raw, ok
}

// Memorize records every entry not yet memorized with the given mastery level
// and returns how many were new. Entries already present are skipped without
// touching their mastery. Entries with non-positive numbers are ignored. New
// records are added to today's daily log count.
func (s *Store) Memorize(entries []entities.AyahRef, masteryLevel float64) int {
	mastery := entities.NormalizeMastery(masteryLevel)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	added := 0
	for _, ref := range entries {
		if !ref.Valid() {
			continue
		}
		if _, ok := s.ayahs[ref]; ok {
			continue
		}
		s.ayahs[ref] = entities.MemorizedAyah{
			SurahNumber:  ref.SurahNumber,
			AyahNumber:   ref.AyahNumber,
			JuzNumber:    s.resolver.JuzForAyah(ref.SurahNumber, ref.AyahNumber),
			MasteryLevel: mastery,
			MemorizedAt:  now.UTC(),
		}
		added++
	}

	if added == 0 {
		return 0
	}

	s.persistAyahsLocked()
	s.dailyLog[entities.DateKey(now)] += added
	s.persistDailyLogLocked()
	return added
}

// Unmemorize removes one ayah. The daily log is not touched.
func (s *Store) Unmemorize(surahNumber, ayahNumber int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ayahs, entities.AyahRef{SurahNumber: surahNumber, AyahNumber: ayahNumber})
	s.persistAyahsLocked()
}

func (s *Store) IsMemorized(surahNumber, ayahNumber int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ayahs[entities.AyahRef{SurahNumber: surahNumber, AyahNumber: ayahNumber}]
	return ok
}

// CountMemorized counts memorized ayahs of a surah within [startAyah, endAyah].
func (s *Store) CountMemorized(surahNumber, startAyah, endAyah int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for a := startAyah; a <= endAyah; a++ {
		if _, ok := s.ayahs[entities.AyahRef{SurahNumber: surahNumber, AyahNumber: a}]; ok {
			n++
		}
	}
	return n
}

// MasteryLevel returns the stored mastery, or 0 when not memorized.
func (s *Store) MasteryLevel(surahNumber, ayahNumber int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.ayahs[entities.AyahRef{SurahNumber: surahNumber, AyahNumber: ayahNumber}]
	if !ok {
		return 0
	}
	return rec.MasteryLevel
}

// MemorizedCount is the size of the memorized set.
func (s *Store) MemorizedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ayahs)
}

// DailyCount returns the log entry for a date key, or 0.
func (s *Store) DailyCount(date string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dailyLog[date]
}

// DailyLog returns a copy of the activity log.
func (s *Store) DailyLog() entities.DailyLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dailyLog.Clone()
}

func (s *Store) Settings() entities.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Records returns the memorized ayahs ordered by surah then ayah.
func (s *Store) Records() []entities.MemorizedAyah {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedRecordsLocked()
}

func (s *Store) sortedRecordsLocked() []entities.MemorizedAyah {
	records := make([]entities.MemorizedAyah, 0, len(s.ayahs))
	for _, r := range s.ayahs {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].SurahNumber != records[j].SurahNumber {
			return records[i].SurahNumber < records[j].SurahNumber
		}
		return records[i].AyahNumber < records[j].AyahNumber
	})
	return records
}

// UpdateSettings merges the patch into the current settings and persists
// them. It returns the merged settings.
func (s *Store) UpdateSettings(patch entities.SettingsPatch) entities.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = patch.Apply(s.settings)
	s.persistSettingsLocked()
	return s.settings
}

// ResetAll clears every part of the state in memory and in storage.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ayahs = make(map[entities.AyahRef]entities.MemorizedAyah)
	s.dailyLog = make(entities.DailyLog)
	s.settings = s.defaults

	if s.closed {
		log.Printf("[STORE] Store closed, reset not persisted")
		return
	}
	s.writer.remove(entities.KeyMemorized)
	s.writer.remove(entities.KeyDailyLog)
	s.writer.remove(entities.KeySettings)
	log.Printf("[STORE] All progress reset")
}

// Flush waits until every write queued so far has reached storage.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil
	}
	return s.writer.flush(ctx)
}

// Close drains pending writes. Later mutations stay in memory only.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.writer.close()
}

func (s *Store) persistAyahsLocked() {
	s.persistLocked(entities.KeyMemorized, s.sortedRecordsLocked())
}

func (s *Store) persistDailyLogLocked() {
	s.persistLocked(entities.KeyDailyLog, s.dailyLog)
}

func (s *Store) persistSettingsLocked() {
	s.persistLocked(entities.KeySettings, s.settings)
}

// persistLocked serializes v now, while the lock pins the state, and queues
// the write. Must be called with s.mu held.
func (s *Store) persistLocked(key string, v any) {
	if s.closed {
		log.Printf("[STORE] Store closed, %s not persisted", key)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[STORE] Failed to encode %s: %v", key, err)
		return
	}
	s.writer.set(key, string(data))
}
