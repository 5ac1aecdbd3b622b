package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
	"github.com/ImCitizen13/diyaa-al-quran/internal/quran"
)

// SurahLookup resolves surah numbers to their ayah counts.
type SurahLookup interface {
	Surah(number int) (quran.Surah, bool)
}

func NewMemorizeCommand(opts *RootOptions) *cobra.Command {
	var mastery float64

	cmd := &cobra.Command{
		Use:   "memorize <surah[:ayah[-ayah]]>...",
		Short: "Mark ayahs as memorized",
		Long: `Mark ayahs as memorized. Each argument is a whole surah ("2"),
a single ayah ("2:255") or an inclusive range ("2:1-5").`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mastery < 0 || mastery > 1 {
				return fmt.Errorf("--mastery must be between 0 and 1")
			}

			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			var entries []entities.AyahRef
			for _, arg := range args {
				refs, err := ParseAyahSpec(arg, app.Quran)
				if err != nil {
					return err
				}
				entries = append(entries, refs...)
			}

			added := app.Store.Memorize(entries, mastery)
			goal := app.Stats.GoalProgress()
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d ayahs (today %d / %d)\n",
				added, len(entries), goal.TodayCount, goal.DailyGoal)
			return nil
		},
	}

	cmd.Flags().Float64Var(&mastery, "mastery", 0, "mastery level in (0, 1]; 0 means full mastery")
	return cmd
}

func NewForgetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <surah:ayah>",
		Short: "Remove an ayah from the memorized set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			surah, ayah, err := parseRef(args[0])
			if err != nil {
				return err
			}

			app, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if !app.Store.IsMemorized(surah, ayah) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d:%d was not memorized\n", surah, ayah)
				return nil
			}
			app.Store.Unmemorize(surah, ayah)
			fmt.Fprintf(cmd.OutOrStdout(), "Forgot %d:%d\n", surah, ayah)
			return nil
		},
	}
}

// ParseAyahSpec expands "S", "S:A" or "S:A-B" into ayah references checked
// against the surah's ayah count.
func ParseAyahSpec(spec string, surahs SurahLookup) ([]entities.AyahRef, error) {
	surahPart, ayahPart, hasAyah := strings.Cut(strings.TrimSpace(spec), ":")

	number, err := strconv.Atoi(surahPart)
	if err != nil || number <= 0 {
		return nil, fmt.Errorf("invalid surah in %q", spec)
	}
	surah, ok := surahs.Surah(number)
	if !ok {
		return nil, fmt.Errorf("unknown surah %d", number)
	}

	start, end := 1, surah.AyahCount
	if hasAyah {
		startPart, endPart, isRange := strings.Cut(ayahPart, "-")
		if start, err = strconv.Atoi(startPart); err != nil {
			return nil, fmt.Errorf("invalid ayah in %q", spec)
		}
		end = start
		if isRange {
			if end, err = strconv.Atoi(endPart); err != nil {
				return nil, fmt.Errorf("invalid ayah range in %q", spec)
			}
		}
	}
	if start < 1 || end < start || end > surah.AyahCount {
		return nil, fmt.Errorf("ayahs %d-%d out of range for surah %d (1-%d)", start, end, number, surah.AyahCount)
	}

	refs := make([]entities.AyahRef, 0, end-start+1)
	for a := start; a <= end; a++ {
		refs = append(refs, entities.AyahRef{SurahNumber: number, AyahNumber: a})
	}
	return refs, nil
}

func parseRef(s string) (int, int, error) {
	surahPart, ayahPart, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("expected surah:ayah, got %q", s)
	}
	surah, err1 := strconv.Atoi(surahPart)
	ayah, err2 := strconv.Atoi(ayahPart)
	if err1 != nil || err2 != nil || surah <= 0 || ayah <= 0 {
		return 0, 0, fmt.Errorf("expected surah:ayah, got %q", s)
	}
	return surah, ayah, nil
}
