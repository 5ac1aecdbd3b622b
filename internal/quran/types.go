// Package quran provides the immutable structural reference data: surahs,
// juz boundaries, the mapping between them and the lazily loaded ayah text.
//
// Data is read once at startup from a directory laid out as
//
//	surah.json            # surah list with ayah counts and juz ranges
//	juz.json              # juz list with start/end boundaries
//	surah/surah_<n>.json  # ayah text of surah n, keyed "verse_<k>"
//
// Every lookup is a pure read over the loaded data. Unknown numbers resolve
// to zero values, empty slices or documented fallbacks; nothing panics.
package quran

// Canonical totals of the complete text.
const (
	TotalAyahs  = 6236
	TotalSurahs = 114
	TotalJuz    = 30
)

// Bismillah opens every surah except the ninth.
const Bismillah = "بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ"

// ShowsBismillah reports whether a separate Bismillah heading precedes the
// surah's text. Surah 1 carries it as its first ayah.
func ShowsBismillah(surahNumber int) bool {
	return surahNumber != 1 && surahNumber != 9
}

type Surah struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	TitleAr   string     `json:"titleAr"`
	Place     string     `json:"place"`
	Type      string     `json:"type"`
	AyahCount int        `json:"ayahCount"`
	JuzRanges []JuzRange `json:"juzRanges"`
}

// JuzRange is the span of a surah's ayahs that falls into one juz.
type JuzRange struct {
	Juz       int `json:"juz"`
	StartAyah int `json:"startAyah"`
	EndAyah   int `json:"endAyah"`
}

// Len is the number of ayahs in the range.
func (r JuzRange) Len() int {
	return r.EndAyah - r.StartAyah + 1
}

// Contains reports whether ayah lies within the range (inclusive).
func (r JuzRange) Contains(ayah int) bool {
	return ayah >= r.StartAyah && ayah <= r.EndAyah
}

type Juz struct {
	Number     int `json:"number"`
	StartSurah int `json:"startSurah"`
	StartAyah  int `json:"startAyah"`
	EndSurah   int `json:"endSurah"`
	EndAyah    int `json:"endAyah"`
}

// SurahSegment is the span of one surah inside a juz.
type SurahSegment struct {
	SurahNumber int `json:"surahNumber"`
	StartAyah   int `json:"startAyah"`
	EndAyah     int `json:"endAyah"`
}

func (s SurahSegment) Len() int {
	return s.EndAyah - s.StartAyah + 1
}

type Ayah struct {
	SurahNumber int    `json:"surahNumber"`
	AyahNumber  int    `json:"ayahNumber"`
	Text        string `json:"text"`
}
