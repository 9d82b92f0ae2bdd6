package scrape

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igcatalog/internal/model"
)

func TestScrapePosts(t *testing.T) {
	var gotToken string
	var gotInput actorInput

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		json.NewDecoder(r.Body).Decode(&gotInput)
		json.NewEncoder(w).Encode([]model.ScrapedPost{
			{ID: "1", Caption: "Zapatillas $25.000", DisplayURL: "http://img/1.jpg", URL: "http://ig/1"},
			{ID: "2", Caption: "DM for price", DisplayURL: "http://img/2.jpg", URL: "http://ig/2"},
		})
	}))
	defer srv.Close()

	c := New("tok-1")
	c.BaseURL = srv.URL

	posts, err := c.ScrapePosts("lojaexemplo", 30)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "tok-1", gotToken)
	assert.Equal(t, []string{"https://www.instagram.com/lojaexemplo/"}, gotInput.DirectURLs)
	assert.Equal(t, 30, gotInput.ResultsLimit)
	assert.Equal(t, "Zapatillas $25.000", posts[0].Caption)
}

func TestScrapePostsEnrichesEmptyItems(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/acts/apify~instagram-scraper/run-sync-get-dataset-items", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.ScrapedPost{
			{ID: "1", URL: srv.URL + "/p/abc"},
		})
	})
	mux.HandleFunc("/p/abc", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:description" content="Polo azul $12.000">
			<meta property="og:image" content="http://cdn/polo.jpg">
		</head></html>`))
	})

	c := New("tok")
	c.BaseURL = srv.URL

	posts, err := c.ScrapePosts("loja", 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Polo azul $12.000", posts[0].Caption)
	assert.Equal(t, "http://cdn/polo.jpg", posts[0].DisplayURL)
}

func TestScrapePostsActorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "actor morreu", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New("tok")
	c.BaseURL = srv.URL

	_, err := c.ScrapePosts("loja", 10)
	assert.ErrorContains(t, err, "apify status 502")
}
