package quran

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"slices"
)

const (
	surahIndexFile = "surah.json"
	juzIndexFile   = "juz.json"
)

// TextSource reads the raw text file of one surah.
type TextSource interface {
	ReadSurahText(surahNumber int) ([]byte, error)
}

// fsTextSource reads surah/surah_<n>.json from a file system.
type fsTextSource struct {
	fsys fs.FS
}

func (s fsTextSource) ReadSurahText(surahNumber int) ([]byte, error) {
	return fs.ReadFile(s.fsys, path.Join("surah", fmt.Sprintf("surah_%d.json", surahNumber)))
}

// Provider answers structural questions about the text. It is safe for
// concurrent use: the indexes are immutable after construction and the
// ayah cache is internally synchronized.
type Provider struct {
	surahs   []Surah
	juz      []Juz
	surahIdx map[int]int
	juzIdx   map[int]int
	segments map[int][]SurahSegment
	total    int

	texts *ayahCache
}

// LoadDir loads reference data from a directory on disk.
func LoadDir(dir string) (*Provider, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("quran data dir: %w", err)
	}
	return Load(os.DirFS(dir))
}

// Load parses surah.json and juz.json from fsys. Ayah text is read lazily.
func Load(fsys fs.FS) (*Provider, error) {
	surahData, err := fs.ReadFile(fsys, surahIndexFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", surahIndexFile, err)
	}
	surahs, err := ParseSurahs(surahData)
	if err != nil {
		return nil, err
	}

	juzData, err := fs.ReadFile(fsys, juzIndexFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", juzIndexFile, err)
	}
	juz, err := ParseJuz(juzData)
	if err != nil {
		return nil, err
	}

	p := New(surahs, juz, fsTextSource{fsys: fsys})
	if p.total != TotalAyahs || len(p.surahs) != TotalSurahs || len(p.juz) != TotalJuz {
		log.Printf("[QURAN] Loaded partial reference data: %d surahs, %d juz, %d ayahs", len(p.surahs), len(p.juz), p.total)
	} else {
		log.Printf("[QURAN] Loaded reference data: %d surahs, %d juz, %d ayahs", len(p.surahs), len(p.juz), p.total)
	}
	return p, nil
}

// New builds a provider from already parsed data. texts may be nil, in which
// case every surah has no text.
func New(surahs []Surah, juz []Juz, texts TextSource) *Provider {
	p := &Provider{
		surahs:   surahs,
		juz:      juz,
		surahIdx: make(map[int]int, len(surahs)),
		juzIdx:   make(map[int]int, len(juz)),
		segments: make(map[int][]SurahSegment),
		texts:    newAyahCache(texts),
	}
	for i, s := range surahs {
		p.surahIdx[s.Number] = i
		p.total += s.AyahCount
		for _, r := range s.JuzRanges {
			p.segments[r.Juz] = append(p.segments[r.Juz], SurahSegment{
				SurahNumber: s.Number,
				StartAyah:   r.StartAyah,
				EndAyah:     r.EndAyah,
			})
		}
	}
	for i, j := range juz {
		p.juzIdx[j.Number] = i
	}
	return p
}

// Surahs returns a copy of all surahs in ascending order.
func (p *Provider) Surahs() []Surah {
	out := make([]Surah, len(p.surahs))
	for i, s := range p.surahs {
		out[i] = cloneSurah(s)
	}
	return out
}

// JuzList returns a copy of all juz in ascending order.
func (p *Provider) JuzList() []Juz {
	return slices.Clone(p.juz)
}

func (p *Provider) Surah(number int) (Surah, bool) {
	i, ok := p.surahIdx[number]
	if !ok {
		return Surah{}, false
	}
	return cloneSurah(p.surahs[i]), true
}

func cloneSurah(s Surah) Surah {
	s.JuzRanges = slices.Clone(s.JuzRanges)
	return s
}

func (p *Provider) Juz(number int) (Juz, bool) {
	i, ok := p.juzIdx[number]
	if !ok {
		return Juz{}, false
	}
	return p.juz[i], true
}

// JuzForSurah returns the juz ranges of a surah, ordered by start ayah.
func (p *Provider) JuzForSurah(surahNumber int) []JuzRange {
	i, ok := p.surahIdx[surahNumber]
	if !ok {
		return nil
	}
	return slices.Clone(p.surahs[i].JuzRanges)
}

// SurahsInJuz returns the surah segments that make up a juz, in surah order.
func (p *Provider) SurahsInJuz(juzNumber int) []SurahSegment {
	if _, ok := p.juzIdx[juzNumber]; !ok {
		return nil
	}
	return slices.Clone(p.segments[juzNumber])
}

// JuzForAyah resolves the juz containing an ayah by range containment.
// If no range matches it falls back to the surah's first listed juz, and to
// juz 1 when the surah is unknown or has no ranges.
func (p *Provider) JuzForAyah(surahNumber, ayahNumber int) int {
	i, ok := p.surahIdx[surahNumber]
	if !ok {
		return 1
	}
	s := p.surahs[i]
	for _, r := range s.JuzRanges {
		if r.Contains(ayahNumber) {
			return r.Juz
		}
	}
	if len(s.JuzRanges) > 0 {
		return s.JuzRanges[0].Juz
	}
	return 1
}

// TotalAyahsInJuz sums the segment lengths of a juz.
func (p *Provider) TotalAyahsInJuz(juzNumber int) int {
	if _, ok := p.juzIdx[juzNumber]; !ok {
		return 0
	}
	total := 0
	for _, seg := range p.segments[juzNumber] {
		total += seg.Len()
	}
	return total
}

// TotalAyahs is the ayah count across all loaded surahs.
func (p *Provider) TotalAyahs() int {
	return p.total
}

// Ayahs returns a copy of the text of a surah, loading it on first access.
// Unknown surahs and unreadable files yield an empty slice.
func (p *Provider) Ayahs(surahNumber int) []Ayah {
	if _, ok := p.surahIdx[surahNumber]; !ok {
		return []Ayah{}
	}
	ayahs, err := p.texts.get(surahNumber)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, errNoTextSource) {
			log.Printf("[QURAN] Failed to load surah %d text: %v", surahNumber, err)
		}
		return []Ayah{}
	}
	return slices.Clone(ayahs)
}
