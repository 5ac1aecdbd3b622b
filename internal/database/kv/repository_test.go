package kv

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	repo, _, cleanup := setupTestGorm(t)
	return repo, cleanup
}

func setupTestGorm(t *testing.T) (*Repository, *gorm.DB, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "kv.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.KeyValue{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}

	return repo, db, cleanup
}

func TestRepository_GetItem_Missing(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	value, ok, err := repo.GetItem(context.Background(), entities.KeyMemorized)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestRepository_SetItem_New(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	err := repo.SetItem(ctx, entities.KeySettings, `{"dailyGoal":5}`)
	require.NoError(t, err)

	value, ok, err := repo.GetItem(ctx, entities.KeySettings)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"dailyGoal":5}`, value)
}

func TestRepository_SetItem_Replace(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SetItem(ctx, entities.KeyDailyLog, `{"2026-10-16":1}`))
	require.NoError(t, repo.SetItem(ctx, entities.KeyDailyLog, `{"2026-10-16":1,"2026-10-17":4}`))

	value, _, err := repo.GetItem(ctx, entities.KeyDailyLog)
	require.NoError(t, err)
	assert.Equal(t, `{"2026-10-16":1,"2026-10-17":4}`, value)

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{entities.KeyDailyLog}, keys)
}

func TestRepository_SetItem_LargeBlob(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	blob := make([]byte, 512*1024)
	for i := range blob {
		blob[i] = 'a' + byte(i%26)
	}
	require.NoError(t, repo.SetItem(ctx, entities.KeyMemorized, string(blob)))

	value, ok, err := repo.GetItem(ctx, entities.KeyMemorized)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, value, len(blob))
}

func TestRepository_RemoveItem(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SetItem(ctx, entities.KeyMemorized, `[]`))
	require.NoError(t, repo.RemoveItem(ctx, entities.KeyMemorized))

	_, ok, err := repo.GetItem(ctx, entities.KeyMemorized)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.RemoveItem(ctx, "never_set"))
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_SetItem_KeepsRowIdentity(t *testing.T) {
	repo, db, cleanup := setupTestGorm(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SetItem(ctx, entities.KeySettings, `{"dailyGoal":5}`))
	first, err := repo.Get(ctx, entities.KeySettings)
	require.NoError(t, err)

	require.NoError(t, repo.SetItem(ctx, entities.KeySettings, `{"dailyGoal":9}`))
	second, err := repo.Get(ctx, entities.KeySettings)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, `{"dailyGoal":9}`, second.Value)

	var count int64
	require.NoError(t, db.Model(&entities.KeyValue{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_SetItem_ConcurrentNewKey(t *testing.T) {
	repo, db, cleanup := setupTestGorm(t)
	defer cleanup()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	ctx := context.Background()

	for round := 0; round < 5; round++ {
		key := fmt.Sprintf("applock_%d", round)
		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- repo.SetItem(ctx, key, fmt.Sprintf("v%d", i))
			}(i)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
		_, ok, err := repo.GetItem(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
