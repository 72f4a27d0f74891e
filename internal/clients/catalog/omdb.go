package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// popularKeyword drives the popular listing. OMDb has no popularity endpoint,
// so the listing is a fixed keyword search.
const popularKeyword = "marvel"

type Movie struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type MovieDetails struct {
	Movie
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	ImdbRating string `json:"imdbRating"`
}

type SearchResult struct {
	Movies       []Movie
	TotalResults int
}

// Client talks to the OMDb HTTP API.
type Client struct {
	log          *slog.Logger
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	retriesCount int
}

func New(log *slog.Logger, baseURL, apiKey string, timeout time.Duration, retriesCount int) *Client {
	if retriesCount < 1 {
		retriesCount = 1
	}
	return &Client{
		log:          log,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: timeout},
		retriesCount: retriesCount,
	}
}

func (c *Client) fetch(ctx context.Context, params url.Values, dst any) error {
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "/?" + params.Encode()
	var lastErr error
	for i := 0; i < c.retriesCount; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("unexpected status %s", resp.Status)
			continue
		}
		err = json.NewDecoder(resp.Body).Decode(dst)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUpstream, lastErr)
}

type searchResponse struct {
	Search       []Movie `json:"Search"`
	TotalResults string  `json:"totalResults"`
	Response     string  `json:"Response"`
	Error        string  `json:"Error"`
}

func (c *Client) search(ctx context.Context, keyword string, page int) (*SearchResult, error) {
	params := url.Values{}
	params.Set("s", keyword)
	params.Set("type", "movie")
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	var body searchResponse
	if err := c.fetch(ctx, params, &body); err != nil {
		return nil, err
	}
	if body.Response == "False" {
		// OMDb reports an empty result set as an error payload.
		return &SearchResult{Movies: []Movie{}}, nil
	}
	totalResults, _ := strconv.Atoi(body.TotalResults)
	return &SearchResult{Movies: body.Search, TotalResults: totalResults}, nil
}

func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	const op = "catalog.Client.Search"
	log := c.log.With("op", op, "query", query, "page", page)
	if strings.TrimSpace(query) == "" {
		return &SearchResult{Movies: []Movie{}}, nil
	}
	result, err := c.search(ctx, query, page)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return result, nil
}

func (c *Client) Popular(ctx context.Context, page int) (*SearchResult, error) {
	const op = "catalog.Client.Popular"
	log := c.log.With("op", op, "page", page)
	if page < 1 {
		page = 1
	}
	result, err := c.search(ctx, popularKeyword, page)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return result, nil
}

func (c *Client) Get(ctx context.Context, imdbID string) (*MovieDetails, error) {
	const op = "catalog.Client.Get"
	log := c.log.With("op", op, "imdb_id", imdbID)
	params := url.Values{}
	params.Set("i", imdbID)
	var body struct {
		MovieDetails
		Response string `json:"Response"`
		Error    string `json:"Error"`
	}
	if err := c.fetch(ctx, params, &body); err != nil {
		log.Error(err.Error())
		return nil, err
	}
	if body.Error != "" {
		log.Info("movie not found in catalog")
		return nil, ErrMovieNotFound
	}
	return &body.MovieDetails, nil
}
