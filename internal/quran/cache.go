package quran

import (
	"errors"
	"sync"
)

var errNoTextSource = errors.New("no text source configured")

// ayahCache holds parsed surah text. Entries are written once and never
// evicted; reference text does not change while the process runs.
type ayahCache struct {
	source TextSource

	mu      sync.Mutex
	entries map[int][]Ayah
}

func newAyahCache(source TextSource) *ayahCache {
	return &ayahCache{
		source:  source,
		entries: make(map[int][]Ayah),
	}
}

// get returns the cached ayahs of a surah, populating the entry on first
// access. Failed loads are not cached so a later call can retry.
func (c *ayahCache) get(surahNumber int) ([]Ayah, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ayahs, ok := c.entries[surahNumber]; ok {
		return ayahs, nil
	}
	if c.source == nil {
		return nil, errNoTextSource
	}

	data, err := c.source.ReadSurahText(surahNumber)
	if err != nil {
		return nil, err
	}
	ayahs, err := ParseSurahText(surahNumber, data)
	if err != nil {
		return nil, err
	}
	c.entries[surahNumber] = ayahs
	return ayahs, nil
}

// len reports how many surahs are cached.
func (c *ayahCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
