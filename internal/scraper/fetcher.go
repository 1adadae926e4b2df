// Package scraper fetches raw job postings from a job-board JSON API.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	fetchPageSize = 50
	fetchMaxPages = 3
)

// Posting is a raw job listing as returned by the board, before
// normalization.
type Posting struct {
	ExternalID   string
	Title        string
	Company      string
	Location     string
	Description  string
	SalaryMin    float64
	SalaryMax    float64
	SourceURL    string
	ContractType string
	PublishedAt  string
}

// Fetcher pulls postings from a job-board search API. When APIKey is
// empty, Fetch returns (nil, nil) so a scrape round is skipped rather
// than failed.
type Fetcher struct {
	baseURL      string
	apiKey       string
	platform     string
	requestDelay time.Duration
	client       *http.Client
	logger       *slog.Logger
}

type Config struct {
	BaseURL        string
	APIKey         string
	Platform       string
	RequestTimeout time.Duration
	RequestDelay   time.Duration
}

func NewFetcher(cfg Config, logger *slog.Logger) *Fetcher {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Fetcher{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		platform:     cfg.Platform,
		requestDelay: cfg.RequestDelay,
		client:       &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// Platform names the source board for scraped rows.
func (f *Fetcher) Platform() string {
	return f.platform
}

type searchResponse struct {
	Results []searchResult `json:"results"`
	Count   int            `json:"count"`
}

type searchResult struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Company      displayName `json:"company"`
	Location     displayName `json:"location"`
	SalaryMin    float64     `json:"salary_min"`
	SalaryMax    float64     `json:"salary_max"`
	RedirectURL  string      `json:"redirect_url"`
	Created      string      `json:"created"`
	ContractTime string      `json:"contract_time"`
	ContractType string      `json:"contract_type"`
}

type displayName struct {
	DisplayName string `json:"display_name"`
}

// Fetch retrieves postings matching the query and location, paging until
// results run out or the page cap is reached.
func (f *Fetcher) Fetch(ctx context.Context, query, location string, limit int) ([]Posting, error) {
	if f.apiKey == "" {
		f.logger.Warn("scraper API key not set, skipping fetch",
			slog.String("platform", f.platform),
		)
		return nil, nil
	}

	var postings []Posting

	for page := 1; page <= fetchMaxPages; page++ {
		batch, err := f.fetchPage(ctx, query, location, page)
		if err != nil {
			return postings, fmt.Errorf("page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}

		postings = append(postings, batch...)
		if limit > 0 && len(postings) >= limit {
			postings = postings[:limit]
			break
		}
		if len(batch) < fetchPageSize {
			break
		}

		if f.requestDelay > 0 {
			select {
			case <-time.After(f.requestDelay):
			case <-ctx.Done():
				return postings, ctx.Err()
			}
		}
	}

	f.logger.Info("fetched postings",
		slog.String("platform", f.platform),
		slog.String("query", query),
		slog.Int("count", len(postings)),
	)

	return postings, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, query, location string, page int) ([]Posting, error) {
	endpoint := fmt.Sprintf("%s/search/%d", f.baseURL, page)

	params := url.Values{}
	params.Set("api_key", f.apiKey)
	params.Set("results_per_page", strconv.Itoa(fetchPageSize))
	params.Set("what", query)
	params.Set("where", location)
	params.Set("sort_by", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%s rate limit: %d", f.platform, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d: %s", f.platform, resp.StatusCode, string(body))
	}

	var apiResp searchResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	postings := make([]Posting, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		postings = append(postings, Posting{
			ExternalID:   r.ID,
			Title:        r.Title,
			Company:      r.Company.DisplayName,
			Location:     r.Location.DisplayName,
			Description:  r.Description,
			SalaryMin:    r.SalaryMin,
			SalaryMax:    r.SalaryMax,
			SourceURL:    r.RedirectURL,
			ContractType: r.ContractType,
			PublishedAt:  r.Created,
		})
	}

	return postings, nil
}
