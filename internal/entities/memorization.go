package entities

import (
	"fmt"
	"time"
)

// DateKeyLayout is the layout of daily log keys (local calendar day).
const DateKeyLayout = "2006-01-02"

// DefaultMasteryLevel is used when the caller does not supply one.
const DefaultMasteryLevel = 1.0

// AyahRef identifies one ayah.
type AyahRef struct {
	SurahNumber int `json:"surahNumber"`
	AyahNumber  int `json:"ayahNumber"`
}

func (r AyahRef) String() string {
	return fmt.Sprintf("%d:%d", r.SurahNumber, r.AyahNumber)
}

// Valid reports whether both numbers are positive.
func (r AyahRef) Valid() bool {
	return r.SurahNumber > 0 && r.AyahNumber > 0
}

// MemorizedAyah is the record kept for every memorized ayah.
type MemorizedAyah struct {
	SurahNumber  int       `json:"surahNumber"`
	AyahNumber   int       `json:"ayahNumber"`
	JuzNumber    int       `json:"juzNumber"`
	MasteryLevel float64   `json:"masteryLevel,omitempty"`
	MemorizedAt  time.Time `json:"memorizedAt"`
}

func (m MemorizedAyah) Ref() AyahRef {
	return AyahRef{SurahNumber: m.SurahNumber, AyahNumber: m.AyahNumber}
}

// NormalizeMastery maps a caller-supplied level into (0, 1].
// Zero or negative means "unspecified" and becomes full mastery.
func NormalizeMastery(level float64) float64 {
	switch {
	case level <= 0:
		return DefaultMasteryLevel
	case level > 1:
		return 1
	default:
		return level
	}
}

// DailyLog maps a local date (YYYY-MM-DD) to the number of ayahs newly
// memorized on that day. Counts never decrease.
type DailyLog map[string]int

// Clone returns an independent copy.
func (l DailyLog) Clone() DailyLog {
	out := make(DailyLog, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// DateKey formats t as a daily log key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}
