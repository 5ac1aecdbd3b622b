package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ImCitizen13/diyaa-al-quran/internal/progress"
	"github.com/ImCitizen13/diyaa-al-quran/internal/quran"
	"github.com/ImCitizen13/diyaa-al-quran/internal/stats"
	"github.com/ImCitizen13/diyaa-al-quran/internal/storage/memstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

type testApp struct {
	router  *gin.Engine
	quran   *quran.Provider
	store   *progress.Store
	engine  *stats.Engine
	storage *memstore.Store
}

func setupTestApp(t *testing.T, mutate ...func(*RouterConfig)) *testApp {
	t.Helper()

	provider, err := quran.LoadDir("../quran/testdata/quran")
	require.NoError(t, err)

	clock := func() time.Time { return testNow }
	storage := memstore.New()
	store := progress.NewStore(storage, provider, progress.WithClock(clock))
	store.Load(context.Background())
	t.Cleanup(store.Close)

	engine := stats.NewEngine(store, provider, stats.WithClock(clock))

	cfg := RouterConfig{
		Quran:    provider,
		Progress: store,
		Stats:    engine,
		Version:  "test",
	}
	for _, m := range mutate {
		m(&cfg)
	}

	return &testApp{
		router:  NewRouter(cfg),
		quran:   provider,
		store:   store,
		engine:  engine,
		storage: storage,
	}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

