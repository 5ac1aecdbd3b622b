package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ImCitizen13/diyaa-al-quran/internal/stats"
)

func NewStatsCommand(opts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show memorization progress, streak and daily goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			dashboard := app.Stats.Dashboard()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(dashboard)
			}
			writeDashboard(cmd.OutOrStdout(), dashboard)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dashboard as JSON")
	return cmd
}

func writeDashboard(w io.Writer, d stats.Dashboard) {
	o := d.Overall
	fmt.Fprintf(w, "Memorized: %d / %d ayahs (%s)\n", o.Memorized, o.Total, percent(o.Percentage))
	fmt.Fprintf(w, "Surahs complete: %d\n", o.SurahsComplete)
	fmt.Fprintf(w, "Juz complete: %d\n", o.JuzComplete)
	fmt.Fprintf(w, "Streak: %s\n", pluralDays(d.Streak))

	fmt.Fprintf(w, "Today: %d / %d ayahs", d.Goal.TodayCount, d.Goal.DailyGoal)
	if d.Goal.Met {
		fmt.Fprint(w, " (goal met)")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\nLast %d days:\n", len(d.RecentActivity))
	for _, day := range d.RecentActivity {
		fmt.Fprintf(w, "  %s %s %3d\n", day.Date, day.Label, day.Count)
	}

	fmt.Fprintln(w, "\nJuz:")
	for _, j := range d.Juz {
		fmt.Fprintf(w, "  %2d  %d/%d (%s)\n", j.JuzNumber, j.Memorized, j.Total, percent(j.Percentage))
	}
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
