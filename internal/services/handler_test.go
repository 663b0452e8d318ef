package services

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cawebsite-backend/internal/cache"
	"cawebsite-backend/internal/validation"
	"github.com/go-chi/chi/v5"
)

type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memoryCache) DeletePrefix(ctx context.Context, prefix string) error {
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
		}
	}
	return nil
}

func newTestHandler(repo *fakeRepo, c cache.Cache) *Handler {
	manager := NewManager(repo, time.UTC)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(manager, validation.New(), log, c, time.Minute, nil)
}

func requestWithID(method, target, id string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminDeleteInvalidatesListAndSitemapCaches(t *testing.T) {
	repo := newFakeRepo()
	item, err := NewManager(repo, time.UTC).Create(context.Background(), CreateRequest{
		Title:       "Audit",
		Description: "Statutory audit",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	c := newMemoryCache()
	c.data[listCacheKey] = []byte(`{"items":[]}`)
	c.data[cache.SitemapKey] = []byte("<urlset/>")

	h := newTestHandler(repo, c)
	w := httptest.NewRecorder()
	h.AdminDelete(w, requestWithID(http.MethodDelete, "/api/admin/services/"+item.ID, item.ID))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if _, ok := c.data[listCacheKey]; ok {
		t.Fatalf("list cache entry survived delete")
	}
	if _, ok := c.data[cache.SitemapKey]; ok {
		t.Fatalf("sitemap cache entry survived delete")
	}
}

func TestAdminCreateInvalidatesSitemapCache(t *testing.T) {
	c := newMemoryCache()
	c.data[cache.SitemapKey] = []byte("<urlset/>")

	h := newTestHandler(newFakeRepo(), c)
	w := httptest.NewRecorder()
	body := strings.NewReader(`{"title":"Payroll","description":"Payroll management"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/admin/services", body)
	r.Header.Set("Content-Type", "application/json")
	h.AdminCreate(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if _, ok := c.data[cache.SitemapKey]; ok {
		t.Fatalf("sitemap cache entry survived create")
	}
}
