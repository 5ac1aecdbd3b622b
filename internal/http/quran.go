package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ImCitizen13/diyaa-al-quran/internal/quran"
	"github.com/ImCitizen13/diyaa-al-quran/internal/stats"
)

// QuranController serves the surah and juz browsing routes, annotated with
// the user's progress.
type QuranController struct {
	ref      QuranReference
	progress ProgressStore
	stats    StatsProvider
}

func NewQuranController(ref QuranReference, progress ProgressStore, stats StatsProvider) *QuranController {
	return &QuranController{ref: ref, progress: progress, stats: stats}
}

type SurahSummary struct {
	quran.Surah
	Progress stats.Progress `json:"progress"`
}

type AyahView struct {
	quran.Ayah
	Memorized    bool    `json:"memorized"`
	MasteryLevel float64 `json:"masteryLevel,omitempty"`
}

type SurahDetail struct {
	SurahSummary
	Bismillah string     `json:"bismillah,omitempty"`
	Ayahs     []AyahView `json:"ayahs"`
}

type JuzSummary struct {
	quran.Juz
	Progress stats.Progress `json:"progress"`
}

type JuzDetail struct {
	JuzSummary
	Surahs []quran.SurahSegment `json:"surahs"`
}

// ListSurahs handles GET /api/surahs
func (qc *QuranController) ListSurahs(c *gin.Context) {
	surahs := qc.ref.Surahs()
	out := make([]SurahSummary, 0, len(surahs))
	for _, s := range surahs {
		out = append(out, SurahSummary{Surah: s, Progress: qc.stats.SurahProgress(s.Number)})
	}
	c.JSON(http.StatusOK, gin.H{"surahs": out})
}

// GetSurah handles GET /api/surahs/:id
// Ayahs without loaded text are still listed so they can be marked.
func (qc *QuranController) GetSurah(c *gin.Context) {
	number, ok := parsePositiveParam(c, "id")
	if !ok {
		return
	}
	surah, ok := qc.ref.Surah(number)
	if !ok {
		respondNotFound(c, "surah")
		return
	}

	texts := make(map[int]string)
	for _, a := range qc.ref.Ayahs(number) {
		texts[a.AyahNumber] = a.Text
	}

	ayahs := make([]AyahView, 0, surah.AyahCount)
	for n := 1; n <= surah.AyahCount; n++ {
		view := AyahView{Ayah: quran.Ayah{SurahNumber: number, AyahNumber: n, Text: texts[n]}}
		if qc.progress.IsMemorized(number, n) {
			view.Memorized = true
			view.MasteryLevel = qc.progress.MasteryLevel(number, n)
		}
		ayahs = append(ayahs, view)
	}

	detail := SurahDetail{
		SurahSummary: SurahSummary{Surah: surah, Progress: qc.stats.SurahProgress(number)},
		Ayahs:        ayahs,
	}
	if quran.ShowsBismillah(number) {
		detail.Bismillah = quran.Bismillah
	}
	c.JSON(http.StatusOK, detail)
}

// ListJuz handles GET /api/juz
func (qc *QuranController) ListJuz(c *gin.Context) {
	juz := qc.ref.JuzList()
	out := make([]JuzSummary, 0, len(juz))
	for _, j := range juz {
		out = append(out, JuzSummary{Juz: j, Progress: qc.stats.JuzProgress(j.Number)})
	}
	c.JSON(http.StatusOK, gin.H{"juz": out})
}

// GetJuz handles GET /api/juz/:id
func (qc *QuranController) GetJuz(c *gin.Context) {
	number, ok := parsePositiveParam(c, "id")
	if !ok {
		return
	}
	juz, ok := qc.ref.Juz(number)
	if !ok {
		respondNotFound(c, "juz")
		return
	}

	segments := qc.ref.SurahsInJuz(number)
	if segments == nil {
		segments = []quran.SurahSegment{}
	}
	c.JSON(http.StatusOK, JuzDetail{
		JuzSummary: JuzSummary{Juz: juz, Progress: qc.stats.JuzProgress(number)},
		Surahs:     segments,
	})
}
