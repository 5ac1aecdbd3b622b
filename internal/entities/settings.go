package entities

// DefaultDailyGoal is the daily goal used until the user picks one.
const DefaultDailyGoal = 5

// DailyGoalOptions are the goals offered by the settings screen.
var DailyGoalOptions = []int{1, 3, 5, 10, 15, 20}

type Settings struct {
	DailyGoal            int  `json:"dailyGoal"`
	WalkthroughCompleted bool `json:"walkthroughCompleted"`
}

func DefaultSettings() Settings {
	return Settings{DailyGoal: DefaultDailyGoal}
}

// SettingsPatch carries a partial settings update; nil fields are left alone.
type SettingsPatch struct {
	DailyGoal            *int  `json:"dailyGoal,omitempty"`
	WalkthroughCompleted *bool `json:"walkthroughCompleted,omitempty"`
}

// Apply merges the patch into s. Non-positive goals are ignored.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.DailyGoal != nil && *p.DailyGoal > 0 {
		s.DailyGoal = *p.DailyGoal
	}
	if p.WalkthroughCompleted != nil {
		s.WalkthroughCompleted = *p.WalkthroughCompleted
	}
	return s
}

// ReminderConfig is the daily reminder schedule, in local time.
type ReminderConfig struct {
	Enabled bool `json:"enabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{Enabled: false, Hour: 20, Minute: 0}
}

// Valid reports whether hour and minute form a wall-clock time.
func (r ReminderConfig) Valid() bool {
	return r.Hour >= 0 && r.Hour <= 23 && r.Minute >= 0 && r.Minute <= 59
}
