package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igcatalog/internal/model"
)

type fakeRequestStore struct {
	created []string
	reqs    map[string]*model.CatalogRequest
}

func (f *fakeRequestStore) Create(handle string) (string, error) {
	f.created = append(f.created, handle)
	return "req-1", nil
}

func (f *fakeRequestStore) Get(id string) (*model.CatalogRequest, error) {
	return f.reqs[id], nil
}

type fakeProductReader struct {
	list []model.Product
	byID map[string]*model.Product
}

func (f *fakeProductReader) ListRecent(_ context.Context, limit int) ([]model.Product, error) {
	if len(f.list) > limit {
		return f.list[:limit], nil
	}
	return f.list, nil
}

func (f *fakeProductReader) GetByID(_ context.Context, id string) (*model.Product, error) {
	return f.byID[id], nil
}

type fakeCache struct {
	products    []model.Product
	hit         bool
	sets        int
	invalidated atomic.Int32
}

func (f *fakeCache) GetProducts(context.Context) ([]model.Product, bool) {
	return f.products, f.hit
}

func (f *fakeCache) SetProducts(_ context.Context, products []model.Product) {
	f.sets++
	f.products = products
}

func (f *fakeCache) Invalidate(context.Context) { f.invalidated.Add(1) }

type fakeScraper struct {
	posts []model.ScrapedPost
}

func (f *fakeScraper) ScrapePosts(string, int) ([]model.ScrapedPost, error) {
	return f.posts, nil
}

type fakeProcessor struct {
	processed int
	done      chan struct{}
	gotID     string
	gotPosts  []model.ScrapedPost
}

func (f *fakeProcessor) ProcessPosts(_ context.Context, requestID string, posts []model.ScrapedPost) (int, error) {
	f.gotID = requestID
	f.gotPosts = posts
	close(f.done)
	return f.processed, nil
}

func newTestHandler() (*Handler, *fakeRequestStore, *fakeProductReader, *fakeCache, *fakeProcessor) {
	requests := &fakeRequestStore{reqs: map[string]*model.CatalogRequest{}}
	products := &fakeProductReader{byID: map[string]*model.Product{}}
	cache := &fakeCache{}
	processor := &fakeProcessor{processed: 2, done: make(chan struct{})}
	h := &Handler{
		Requests:   requests,
		Products:   products,
		Cache:      cache,
		Scraper:    &fakeScraper{posts: []model.ScrapedPost{{ID: "1"}, {ID: "2"}}},
		Pipeline:   processor,
		PostsLimit: 30,
	}
	return h, requests, products, cache, processor
}

func TestCreateRequest(t *testing.T) {
	h, requests, _, cache, processor := newTestHandler()
	router := NewRouter(h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/requests", strings.NewReader(`{"handle": "lojaexemplo"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp createRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, []string{"lojaexemplo"}, requests.created)

	// O pipeline roda em background depois da resposta
	select {
	case <-processor.done:
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline não foi disparado")
	}
	assert.Equal(t, "req-1", processor.gotID)
	assert.Len(t, processor.gotPosts, 2)

	assert.Eventually(t, func() bool { return cache.invalidated.Load() == 1 },
		2*time.Second, 10*time.Millisecond)
}

func TestCreateRequestMissingHandle(t *testing.T) {
	h, _, _, _, _ := newTestHandler()
	router := NewRouter(h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/requests", strings.NewReader(`{}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProductsCacheMiss(t *testing.T) {
	h, _, products, cache, _ := newTestHandler()
	products.list = []model.Product{
		{ID: "p1", ProductName: "Nike sneakers", Price: 25000},
		{ID: "p2", ProductName: "Polo azul", Price: 12000},
	}
	router := NewRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Nike sneakers", got[0].ProductName)
	assert.Equal(t, 1, cache.sets, "listagem deve ser cacheada")
}

func TestListProductsCacheHit(t *testing.T) {
	h, _, _, cache, _ := newTestHandler()
	cache.hit = true
	cache.products = []model.Product{{ID: "p1", ProductName: "Do cache", Price: 1000}}
	router := NewRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Do cache", got[0].ProductName)
	assert.Equal(t, 0, cache.sets)
}

func TestListProductsEmpty(t *testing.T) {
	h, _, _, _, _ := newTestHandler()
	router := NewRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetProduct(t *testing.T) {
	h, _, products, _, _ := newTestHandler()
	products.byID["p1"] = &model.Product{ID: "p1", ProductName: "Nike sneakers", Price: 25000}
	router := NewRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/products/p1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(25000), got.Price)
}

func TestGetProductNotFound(t *testing.T) {
	h, _, _, _, _ := newTestHandler()
	router := NewRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/products/nope", nil))

	// Ausência é 404 sem corpo de erro
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, strings.TrimSpace(rec.Body.String()))
}

func TestGetRequestStatus(t *testing.T) {
	h, requests, _, _, _ := newTestHandler()
	requests.reqs["req-1"] = &model.CatalogRequest{ID: "req-1", Handle: "loja", Status: model.StatusPending}
	router := NewRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/requests/req-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.CatalogRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, model.StatusPending, got.Status)
}
