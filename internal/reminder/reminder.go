// Package reminder builds the daily memorization reminder and hands it to a
// Notifier. Platform delivery lives behind the Notifier interface.
package reminder

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/ImCitizen13/diyaa-al-quran/internal/stats"
)

const Title = "Diyaa Al-Quran"

var messages = []string{
	"Time for your daily Quran memorization! Your streak awaits.",
	"Keep the light growing. Open Diyaa Al-Quran to continue your Hifz journey.",
	"Your memorization goal for today is waiting. Let's keep the streak alive!",
	"A few minutes of Hifz can light your path. Start now!",
	"Don't break your streak! Open the app to memorize today's Ayahs.",
}

type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Notifier delivers a reminder.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier writes reminders to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, msg Message) error {
	log.Printf("[REMINDER] %s: %s", msg.Title, msg.Body)
	return nil
}

// ProgressReader is what the reminder needs to know about today.
type ProgressReader interface {
	GoalProgress() stats.GoalProgress
	Streak() int
}

type Reminder struct {
	progress ProgressReader
	notifier Notifier
	pick     func(n int) int
}

func New(progress ProgressReader, notifier Notifier) *Reminder {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Reminder{
		progress: progress,
		notifier: notifier,
		pick:     rand.IntN,
	}
}

// Run sends a reminder unless today's goal is already met. It reports
// whether a reminder was sent.
func (r *Reminder) Run(ctx context.Context) (bool, error) {
	goal := r.progress.GoalProgress()
	if goal.Met {
		log.Printf("[REMINDER] Daily goal met (%d/%d), skipping", goal.TodayCount, goal.DailyGoal)
		return false, nil
	}

	msg := Compose(goal, r.progress.Streak(), r.pick)
	if err := r.notifier.Notify(ctx, msg); err != nil {
		return false, fmt.Errorf("send reminder: %w", err)
	}
	return true, nil
}

// Compose picks one of the fixed reminder texts and adds what is left of
// today's goal and the current streak.
func Compose(goal stats.GoalProgress, streak int, pick func(n int) int) Message {
	body := messages[pick(len(messages))]

	if remaining := goal.DailyGoal - goal.TodayCount; remaining > 0 {
		body += fmt.Sprintf(" %d of %d ayahs left for today.", remaining, goal.DailyGoal)
	}
	switch {
	case streak == 1:
		body += " Current streak: 1 day."
	case streak > 1:
		body += fmt.Sprintf(" Current streak: %d days.", streak)
	}

	return Message{Title: Title, Body: body}
}
