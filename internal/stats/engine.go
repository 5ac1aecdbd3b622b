// Package stats derives progress metrics from the memorized set and the
// Quran structure. Every call recomputes from current state.
package stats

import (
	"time"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
	"github.com/ImCitizen13/diyaa-al-quran/internal/quran"
)

// ProgressReader is the read side of progress.Store.
type ProgressReader interface {
	CountMemorized(surahNumber, startAyah, endAyah int) int
	MemorizedCount() int
	DailyCount(date string) int
	Settings() entities.Settings
}

// Reference is the structural data the engine aggregates over.
type Reference interface {
	Surah(number int) (quran.Surah, bool)
	Surahs() []quran.Surah
	JuzList() []quran.Juz
	SurahsInJuz(juzNumber int) []quran.SurahSegment
	TotalAyahsInJuz(juzNumber int) int
	TotalAyahs() int
}

// RecentDays is the window shown by the activity chart.
const RecentDays = 7

type Progress struct {
	Memorized  int     `json:"memorized"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

func newProgress(memorized, total int) Progress {
	p := Progress{Memorized: memorized, Total: total}
	if total > 0 {
		p.Percentage = float64(memorized) / float64(total)
	}
	return p
}

// Complete reports whether every ayah in scope is memorized.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Percentage >= 1
}

type OverallProgress struct {
	Progress
	SurahsComplete int `json:"surahsComplete"`
	JuzComplete    int `json:"juzComplete"`
}

type JuzProgress struct {
	JuzNumber int `json:"juzNumber"`
	Progress
}

type DayActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	// Label is the two-letter weekday abbreviation ("Mo").
	Label string `json:"label"`
}

type GoalProgress struct {
	TodayCount int     `json:"todayCount"`
	DailyGoal  int     `json:"dailyGoal"`
	Percentage float64 `json:"percentage"`
	Met        bool    `json:"met"`
}

type Dashboard struct {
	Overall        OverallProgress `json:"overall"`
	Streak         int             `json:"streak"`
	Goal           GoalProgress    `json:"goal"`
	RecentActivity []DayActivity   `json:"recentActivity"`
	Juz            []JuzProgress   `json:"juz"`
}

type Engine struct {
	progress ProgressReader
	ref      Reference
	now      func() time.Time
}

type Option func(*Engine)

// WithClock replaces time.Now. "Today" is the calendar day of the returned
// time in its own location.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(progress ProgressReader, ref Reference, opts ...Option) *Engine {
	e := &Engine{
		progress: progress,
		ref:      ref,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SurahProgress counts memorized ayahs 1..AyahCount. Unknown surahs yield
// zero progress.
func (e *Engine) SurahProgress(surahNumber int) Progress {
	surah, ok := e.ref.Surah(surahNumber)
	if !ok {
		return Progress{}
	}
	return newProgress(e.progress.CountMemorized(surahNumber, 1, surah.AyahCount), surah.AyahCount)
}

// JuzProgress sums memorized ayahs over every surah segment of the juz.
func (e *Engine) JuzProgress(juzNumber int) Progress {
	memorized := 0
	for _, seg := range e.ref.SurahsInJuz(juzNumber) {
		memorized += e.progress.CountMemorized(seg.SurahNumber, seg.StartAyah, seg.EndAyah)
	}
	return newProgress(memorized, e.ref.TotalAyahsInJuz(juzNumber))
}

// AllJuzProgress lists progress for every loaded juz in ascending order.
func (e *Engine) AllJuzProgress() []JuzProgress {
	list := e.ref.JuzList()
	out := make([]JuzProgress, 0, len(list))
	for _, j := range list {
		out = append(out, JuzProgress{JuzNumber: j.Number, Progress: e.JuzProgress(j.Number)})
	}
	return out
}

func (e *Engine) Overall() OverallProgress {
	overall := OverallProgress{
		Progress: newProgress(e.progress.MemorizedCount(), e.ref.TotalAyahs()),
	}
	for _, s := range e.ref.Surahs() {
		if e.SurahProgress(s.Number).Complete() {
			overall.SurahsComplete++
		}
	}
	for _, j := range e.ref.JuzList() {
		if e.JuzProgress(j.Number).Complete() {
			overall.JuzComplete++
		}
	}
	return overall
}

// Streak counts consecutive active days walking back from today. A day
// without activity today means a streak of 0.
func (e *Engine) Streak() int {
	day := e.today()
	streak := 0
	for e.progress.DailyCount(entities.DateKey(day)) > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func (e *Engine) TodayCount() int {
	return e.progress.DailyCount(entities.DateKey(e.today()))
}

// RecentActivity returns one entry per day for the last days days, oldest
// first and ending today. Days without activity have a zero count.
func (e *Engine) RecentActivity(days int) []DayActivity {
	if days <= 0 {
		return []DayActivity{}
	}
	today := e.today()
	out := make([]DayActivity, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := entities.DateKey(day)
		out = append(out, DayActivity{
			Date:  key,
			Count: e.progress.DailyCount(key),
			Label: day.Weekday().String()[:2],
		})
	}
	return out
}

func (e *Engine) GoalProgress() GoalProgress {
	goal := e.progress.Settings().DailyGoal
	today := e.TodayCount()
	gp := GoalProgress{TodayCount: today, DailyGoal: goal}
	if goal > 0 {
		gp.Percentage = float64(today) / float64(goal)
		if gp.Percentage > 1 {
			gp.Percentage = 1
		}
		gp.Met = today >= goal
	}
	return gp
}

func (e *Engine) Dashboard() Dashboard {
	return Dashboard{
		Overall:        e.Overall(),
		Streak:         e.Streak(),
		Goal:           e.GoalProgress(),
		RecentActivity: e.RecentActivity(RecentDays),
		Juz:            e.AllJuzProgress(),
	}
}

// today is noon of the current local day, so AddDate stays on calendar days
// across DST shifts.
func (e *Engine) today() time.Time {
	now := e.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, now.Location())
}
