package entities

// Snapshot is the shareable export of all progress data.
type Snapshot struct {
	MemorizedAyahs []MemorizedAyah `json:"memorizedAyahs"`
	DailyLog       DailyLog        `json:"dailyLog"`
	Settings       Settings        `json:"settings"`
	ExportedAt     string          `json:"exportedAt"`
}
