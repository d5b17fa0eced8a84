package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audimew-storefront/config"
	"audimew-storefront/internal/api"
	"audimew-storefront/internal/db"
	"audimew-storefront/internal/devapi"
	"audimew-storefront/internal/listing"
	"audimew-storefront/internal/mirror"
	"audimew-storefront/internal/model"
	"audimew-storefront/internal/mw"
	"audimew-storefront/internal/pager"
	"audimew-storefront/internal/remote"
	"audimew-storefront/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newStore(t *testing.T) store.Store {
	t.Helper()
	gormDB, err := db.Init(&config.DatabaseConfig{DSN: "file::memory:", MaxOpenConns: 1}, zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	s := store.NewGormStore(gormDB, zap.NewNop())
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

// startBackend serves the seeded catalog and returns a client for it.
func startBackend(t *testing.T, now time.Time) (*config.Config, *remote.Client) {
	t.Helper()
	s := newStore(t)
	require.NoError(t, store.Seed(context.Background(), s, now))

	server := httptest.NewServer(devapi.NewRouter(s, zap.NewNop()))
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Remote.BaseURL = server.URL + "/api"
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.ApplyDefaults()
	return cfg, remote.NewClient(cfg.Remote, zap.NewNop())
}

// TestCatalogBrowsing drives a product list view against the stub API, from
// the first load through a category switch and a page change.
func TestCatalogBrowsing(t *testing.T) {
	cfg, client := startBackend(t, time.Now())
	ctx := context.Background()

	view := listing.New[model.Product](client.ListProducts, listing.Options{
		Name:         "products",
		PageSize:     cfg.Catalog.PageSize,
		Categories:   cfg.Catalog.Categories,
		EmptyMessage: listing.ProductsEmptyMessage,
	}, zap.NewNop())

	snap, err := view.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.AllCategory, snap.SelectedCategory)
	assert.Equal(t, 37, snap.Result.TotalCount)
	assert.Equal(t, 4, snap.Result.TotalPage)
	assert.Len(t, snap.Result.DTOList, 12)
	assert.Len(t, snap.Pager.Pages, 4)
	assert.Nil(t, snap.Pager.Prev)
	assert.Equal(t, &pager.Control{Label: "다음", Page: 2}, snap.Pager.Next)
	assert.True(t, snap.Pager.Pages[0].Current)
	assert.False(t, snap.Empty)

	snap, err = view.SelectPage(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.CurrentPage)
	assert.Equal(t, 4, snap.Result.Current)
	assert.Len(t, snap.Result.DTOList, 1)
	assert.Equal(t, &pager.Control{Label: "이전", Page: 3}, snap.Pager.Prev)
	assert.Nil(t, snap.Pager.Next)
	require.Len(t, snap.Pager.Pages, 4)
	for _, pc := range snap.Pager.Pages {
		assert.Equal(t, pc.Page == 4, pc.Current, "page %d", pc.Page)
	}

	snap, err = view.SelectCategory(ctx, "앰프")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Equal(t, 10, snap.Result.TotalCount)
	for _, p := range snap.Result.DTOList {
		assert.Equal(t, "앰프", p.Category)
	}
	assert.Zero(t, view.Dropped())
}

func TestConcertBooking(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	cfg, client := startBackend(t, now)
	ctx := context.Background()

	view := listing.New[model.Concert](client.ListConcerts, listing.Options{
		Name:         "concerts",
		PageSize:     cfg.Events.PageSize,
		Categories:   cfg.Events.Categories,
		EmptyMessage: listing.ConcertsEmptyMessage,
	}, zap.NewNop())

	snap, err := view.SelectCategory(ctx, "클래식")
	require.NoError(t, err)
	assert.Equal(t, 6, snap.Result.TotalCount)
	require.NotEmpty(t, snap.Result.DTOList)
	for _, c := range snap.Result.DTOList {
		assert.Equal(t, "클래식", c.Category)
	}

	first := snap.Result.DTOList[0]
	sc, err := client.ConcertSchedule(ctx, first.Cno, first.StartTime)
	require.NoError(t, err)
	assert.Equal(t, first.Cno, sc.Cno)
	assert.Equal(t, 100-int(first.Cno), sc.Remaining)

	_, err = client.ConcertSchedule(ctx, first.Cno, "2000-01-01T00:00:00")
	var statusErr *remote.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

// TestStorefrontOverStub runs the BFF against the stub API with one session.
func TestStorefrontOverStub(t *testing.T) {
	cfg, client := startBackend(t, time.Now())
	h := api.NewHandler(cfg, client, api.NewSessionStore(cfg, client, zap.NewNop()), zap.NewNop())
	router := api.NewRouter(h)

	do := func(method, target, sid string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, target, &buf)
		req.Header.Set("Content-Type", "application/json")
		if sid != "" {
			req.Header.Set(mw.SessionHeader, sid)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	type list struct {
		SelectedCategory string            `json:"selectedCategory"`
		CurrentPage      int               `json:"currentPage"`
		TotalCount       int               `json:"totalCount"`
		Items            []api.ProductCard `json:"items"`
	}
	decode := func(w *httptest.ResponseRecorder) list {
		var l list
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
		return l
	}

	w := do(http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sid := w.Header().Get(mw.SessionHeader)
	require.NotEmpty(t, sid)
	assert.Equal(t, 37, decode(w).TotalCount)

	w = do(http.MethodPost, "/api/products/category", sid, map[string]string{"category": "스피커"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	l := decode(w)
	assert.Equal(t, "스피커", l.SelectedCategory)
	assert.Equal(t, 9, l.TotalCount)

	// The selection survives in the session.
	w = do(http.MethodGet, "/api/products", sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "스피커", decode(w).SelectedCategory)

	w = do(http.MethodGet, "/api/products/5", sid, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(http.MethodGet, "/api/products/11", sid, nil)
	assert.Equal(t, http.StatusGone, w.Code)
}

// TestMirrorCopiesCatalog mirrors the stub API into a second database.
func TestMirrorCopiesCatalog(t *testing.T) {
	_, client := startBackend(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	dst := newStore(t)
	ctx := context.Background()

	svc := mirror.NewService(config.MirrorConfig{PageSize: 10, Workers: 3, MaxPages: 100, Interval: time.Minute}, client, dst, zap.NewNop())
	stats, err := svc.SyncOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 37, stats.Products)
	assert.Equal(t, 24, stats.Concerts)

	res, err := dst.ListProducts(ctx, model.PageRequest{Page: 1, Size: 12, Category: "앰프"})
	require.NoError(t, err)
	assert.Equal(t, 10, res.TotalCount)

	c, err := dst.ReadConcert(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "클래식", c.Category)
	assert.Equal(t, model.Amount("₩71,500"), c.Cprice)
}
