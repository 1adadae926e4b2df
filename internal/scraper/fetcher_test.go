package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhunt-app/jobhunt-be/shared/logger"
)

func newFetcher(t *testing.T, baseURL string) *Fetcher {
	t.Helper()
	return NewFetcher(Config{
		BaseURL:  baseURL,
		APIKey:   "test-key",
		Platform: "adzuna",
	}, logger.NewDefault().Logger)
}

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "business analyst", r.URL.Query().Get("what"))

		resp := searchResponse{
			Results: []searchResult{
				{
					ID:          "abc-1",
					Title:       "Business Analyst",
					Description: "Analyze business things",
					Company:     displayName{DisplayName: "Acme"},
					Location:    displayName{DisplayName: "New York, NY"},
					SalaryMin:   90000,
					SalaryMax:   120000,
					RedirectURL: "https://example.com/jobs/abc-1",
					Created:     "2026-08-20T00:00:00Z",
				},
			},
			Count: 1,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	fetcher := newFetcher(t, server.URL)

	postings, err := fetcher.Fetch(context.Background(), "business analyst", "new york", 0)

	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "Business Analyst", postings[0].Title)
	assert.Equal(t, "Acme", postings[0].Company)
	assert.Equal(t, "https://example.com/jobs/abc-1", postings[0].SourceURL)
	assert.Equal(t, float64(90000), postings[0].SalaryMin)
}

func TestFetcher_FetchPagination(t *testing.T) {
	pagesServed := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++

		// Two full pages, then an empty one.
		count := fetchPageSize
		if pagesServed > 2 {
			count = 0
		}

		results := make([]searchResult, count)
		for i := range results {
			results[i] = searchResult{
				ID:          fmt.Sprintf("job-%d-%d", pagesServed, i),
				Title:       "Analyst",
				RedirectURL: fmt.Sprintf("https://example.com/%d/%d", pagesServed, i),
			}
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Results: results, Count: count})
	}))
	defer server.Close()

	fetcher := newFetcher(t, server.URL)

	postings, err := fetcher.Fetch(context.Background(), "analyst", "", 0)

	require.NoError(t, err)
	assert.Len(t, postings, 2*fetchPageSize)
	assert.Equal(t, 3, pagesServed)
}

func TestFetcher_FetchLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := make([]searchResult, fetchPageSize)
		for i := range results {
			results[i] = searchResult{ID: fmt.Sprintf("job-%d", i)}
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Results: results})
	}))
	defer server.Close()

	fetcher := newFetcher(t, server.URL)

	postings, err := fetcher.Fetch(context.Background(), "analyst", "", 10)

	require.NoError(t, err)
	assert.Len(t, postings, 10)
}

func TestFetcher_MissingAPIKeySkips(t *testing.T) {
	fetcher := NewFetcher(Config{BaseURL: "http://unused", Platform: "adzuna"}, logger.NewDefault().Logger)

	postings, err := fetcher.Fetch(context.Background(), "analyst", "", 0)

	require.NoError(t, err)
	assert.Nil(t, postings)
}

func TestFetcher_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := newFetcher(t, server.URL)

	_, err := fetcher.Fetch(context.Background(), "analyst", "", 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
