// Package catalog provides read-only access to the external movie/TV
// metadata service. Client reports errors explicitly; Reader wraps it with
// the never-fail contract the page handlers rely on.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/movix/backend/internal/config"
	model "github.com/movix/backend/internal/model/catalog"
)

// Client talks to the catalog service over HTTP. Every call is a single
// attempt bounded by the configured client timeout.
type Client struct {
	cfg        config.CatalogConfig
	httpClient *http.Client
}

// NewClient builds a catalog client from config.
func NewClient(cfg config.CatalogConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// get performs one catalog request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.cfg.APIKey)

	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call catalog api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catalog api returned %s for %s: %s", resp.Status, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response for %s: %w", path, err)
	}

	return nil
}

func (c *Client) listPage(ctx context.Context, path string, page int, extra url.Values) (model.Page, error) {
	params := url.Values{}
	for key, values := range extra {
		for _, v := range values {
			params.Add(key, v)
		}
	}
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	var result model.Page
	if err := c.get(ctx, path, params, &result); err != nil {
		return model.Page{}, err
	}
	if result.Results == nil {
		result.Results = []model.Item{}
	}
	return result, nil
}

// TrendingMovies lists movies trending this week.
func (c *Client) TrendingMovies(ctx context.Context, page int) (model.Page, error) {
	return c.listPage(ctx, "/trending/movie/week", page, nil)
}

// PopularMovies lists popular movies.
func (c *Client) PopularMovies(ctx context.Context, page int) (model.Page, error) {
	return c.listPage(ctx, "/movie/popular", page, nil)
}

// TopRatedMovies lists top rated movies.
func (c *Client) TopRatedMovies(ctx context.Context, page int) (model.Page, error) {
	return c.listPage(ctx, "/movie/top_rated", page, nil)
}

// UpcomingMovies lists upcoming movies.
func (c *Client) UpcomingMovies(ctx context.Context, page int) (model.Page, error) {
	return c.listPage(ctx, "/movie/upcoming", page, nil)
}

// TrendingTVShows lists TV shows trending this week.
func (c *Client) TrendingTVShows(ctx context.Context, page int) (model.Page, error) {
	return c.listPage(ctx, "/trending/tv/week", page, nil)
}

// PopularTVShows lists popular TV shows.
func (c *Client) PopularTVShows(ctx context.Context, page int) (model.Page, error) {
	return c.listPage(ctx, "/tv/popular", page, nil)
}

// TopRatedTVShows lists top rated TV shows.
func (c *Client) TopRatedTVShows(ctx context.Context, page int) (model.Page, error) {
	return c.listPage(ctx, "/tv/top_rated", page, nil)
}

// SimilarMovies lists titles similar to the given movie.
func (c *Client) SimilarMovies(ctx context.Context, movieID int64, page int) (model.Page, error) {
	return c.listPage(ctx, fmt.Sprintf("/movie/%d/similar", movieID), page, nil)
}

// SearchMulti searches movies, TV shows and people in one query. Consumers
// filter the mixed result set down to the media kinds they care about.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (model.Page, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	return c.listPage(ctx, "/search/multi", page, params)
}

// MovieDetails fetches a movie with videos, credits and similar titles
// appended in the same call.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (*model.Details, error) {
	params := url.Values{}
	params.Set("append_to_response", "videos,credits,similar")

	var details model.Details
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// TVShowDetails fetches a TV show with videos, credits and similar titles
// appended in the same call.
func (c *Client) TVShowDetails(ctx context.Context, tvID int64) (*model.Details, error) {
	params := url.Values{}
	params.Set("append_to_response", "videos,credits,similar")

	var details model.Details
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", tvID), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// MovieCredits fetches the cast and crew of a movie.
func (c *Client) MovieCredits(ctx context.Context, movieID int64) (model.Credits, error) {
	var credits model.Credits
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil, &credits); err != nil {
		return model.Credits{}, err
	}
	if credits.Cast == nil {
		credits.Cast = []model.CreditEntry{}
	}
	if credits.Crew == nil {
		credits.Crew = []model.CreditEntry{}
	}
	return credits, nil
}

// MovieVideos fetches the trailers and clips attached to a movie.
func (c *Client) MovieVideos(ctx context.Context, movieID int64) (model.VideoList, error) {
	var videos model.VideoList
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), nil, &videos); err != nil {
		return model.VideoList{}, err
	}
	if videos.Results == nil {
		videos.Results = []model.Video{}
	}
	return videos, nil
}

// ImageURL resolves a poster path fragment into a full image URL.
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return "/placeholder-movie.jpg"
	}
	if size == "" {
		size = "w500"
	}
	return fmt.Sprintf("%s/%s%s", strings.TrimSuffix(c.cfg.ImageBaseURL, "/"), size, path)
}

// BackdropURL resolves a backdrop path fragment into a full image URL.
func (c *Client) BackdropURL(path, size string) string {
	if path == "" {
		return "/placeholder-backdrop.jpg"
	}
	if size == "" {
		size = "original"
	}
	return fmt.Sprintf("%s/%s%s", strings.TrimSuffix(c.cfg.ImageBaseURL, "/"), size, path)
}
