package progress

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

func TestStore_ExportSnapshot(t *testing.T) {
	t.Run("matches golden document", func(t *testing.T) {
		store, _ := setupTestStore(t)
		store.Memorize(refs([2]int{1, 2}, [2]int{1, 1}), 0.5)
		store.UpdateSettings(entities.SettingsPatch{DailyGoal: intPtr(10)})

		out, err := store.ExportSnapshot()
		require.NoError(t, err)

		g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
		g.Assert(t, "export_snapshot", []byte(out+"\n"))
	})

	t.Run("empty store exports empty collections", func(t *testing.T) {
		store, _ := setupTestStore(t)

		out, err := store.ExportSnapshot()
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"memorizedAyahs": [],
			"dailyLog": {},
			"settings": {"dailyGoal": 5, "walkthroughCompleted": false},
			"exportedAt": "2026-10-17T09:30:00Z"
		}`, out)
	})
}

func TestParseSnapshot(t *testing.T) {
	t.Run("rejects invalid json", func(t *testing.T) {
		_, err := ParseSnapshot([]byte(`{"memorizedAyahs": [`))
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("rejects documents without progress fields", func(t *testing.T) {
		_, err := ParseSnapshot([]byte(`{"hello": "world"}`))
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("accepts partial document", func(t *testing.T) {
		snap, err := ParseSnapshot([]byte(`{"dailyLog": {"2026-10-01": 3}}`))
		require.NoError(t, err)
		assert.Equal(t, 3, snap.DailyLog["2026-10-01"])
		assert.Empty(t, snap.MemorizedAyahs)
	})
}

func TestStore_Restore(t *testing.T) {
	t.Run("export then restore into a fresh store reproduces state", func(t *testing.T) {
		source, _ := setupTestStore(t)
		source.Memorize(refs([2]int{1, 1}, [2]int{2, 12}, [2]int{4, 6}), 0.8)
		source.UpdateSettings(entities.SettingsPatch{DailyGoal: intPtr(15), WalkthroughCompleted: boolPtr(true)})
		out, err := source.ExportSnapshot()
		require.NoError(t, err)

		snap, err := ParseSnapshot([]byte(out))
		require.NoError(t, err)
		target, storage := setupTestStore(t)
		restored := target.Restore(snap)
		flush(t, target)

		assert.Equal(t, 3, restored)
		assert.Equal(t, source.Records(), target.Records())
		assert.Equal(t, source.DailyLog(), target.DailyLog())
		assert.Equal(t, source.Settings(), target.Settings())
		assert.Equal(t, 3, storage.Len())
	})

	t.Run("replaces existing state", func(t *testing.T) {
		store, _ := setupTestStore(t)
		store.Memorize(refs([2]int{3, 1}), 1)

		store.Restore(&entities.Snapshot{
			MemorizedAyahs: []entities.MemorizedAyah{{SurahNumber: 1, AyahNumber: 7}},
		})

		assert.False(t, store.IsMemorized(3, 1))
		assert.True(t, store.IsMemorized(1, 7))
		assert.Empty(t, store.DailyLog())
		assert.Equal(t, entities.DefaultSettings(), store.Settings())
	})

	t.Run("drops invalid duplicate and non-positive entries", func(t *testing.T) {
		store, _ := setupTestStore(t)

		n := store.Restore(&entities.Snapshot{
			MemorizedAyahs: []entities.MemorizedAyah{
				{SurahNumber: 2, AyahNumber: 15, MasteryLevel: 0.3},
				{SurahNumber: 2, AyahNumber: 15, MasteryLevel: 0.9},
				{SurahNumber: 0, AyahNumber: 1},
			},
			DailyLog: entities.DailyLog{"2026-10-01": 2, "2026-10-02": 0, "2026-10-03": -4},
			Settings: entities.Settings{DailyGoal: -1},
		})

		assert.Equal(t, 1, n)
		assert.Equal(t, 0.3, store.MasteryLevel(2, 15))
		assert.Equal(t, 2, store.Records()[0].JuzNumber)
		assert.Equal(t, entities.DailyLog{"2026-10-01": 2}, store.DailyLog())
		assert.Equal(t, entities.DefaultDailyGoal, store.Settings().DailyGoal)
	})

	t.Run("restored state survives reload", func(t *testing.T) {
		store, storage := setupTestStore(t)
		store.Restore(&entities.Snapshot{
			MemorizedAyahs: []entities.MemorizedAyah{{SurahNumber: 1, AyahNumber: 1, JuzNumber: 1, MasteryLevel: 1, MemorizedAt: testNow}},
			DailyLog:       entities.DailyLog{"2026-10-17": 1},
			Settings:       entities.Settings{DailyGoal: 3},
		})
		flush(t, store)

		reloaded := NewStore(storage, loadTestQuran(t))
		defer reloaded.Close()
		reloaded.Load(context.Background())

		assert.Equal(t, store.Records(), reloaded.Records())
		assert.Equal(t, 3, reloaded.Settings().DailyGoal)
	})
}
