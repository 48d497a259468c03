package catalog

import (
	"context"
	"log"

	model "github.com/movix/backend/internal/model/catalog"
)

// Reader applies the uniform degradation contract on top of Client: every
// call catches transport and upstream errors, logs them, and returns an
// empty-shaped default. Callers can treat every catalog read as
// always-succeeds-with-possibly-empty-data. Real outages are therefore only
// visible in the server log, which is the accepted trade-off.
type Reader struct {
	client *Client
}

// NewReader wraps a catalog client.
func NewReader(client *Client) *Reader {
	return &Reader{client: client}
}

func (r *Reader) safePage(name string, page model.Page, err error) model.Page {
	if err != nil {
		log.Printf("[catalog] %s failed: %v", name, err)
		return model.EmptyPage()
	}
	return page
}

// TrendingMovies returns trending movies, or an empty page on failure.
func (r *Reader) TrendingMovies(ctx context.Context, page int) model.Page {
	result, err := r.client.TrendingMovies(ctx, page)
	return r.safePage("trending movies", result, err)
}

// PopularMovies returns popular movies, or an empty page on failure.
func (r *Reader) PopularMovies(ctx context.Context, page int) model.Page {
	result, err := r.client.PopularMovies(ctx, page)
	return r.safePage("popular movies", result, err)
}

// TopRatedMovies returns top rated movies, or an empty page on failure.
func (r *Reader) TopRatedMovies(ctx context.Context, page int) model.Page {
	result, err := r.client.TopRatedMovies(ctx, page)
	return r.safePage("top rated movies", result, err)
}

// UpcomingMovies returns upcoming movies, or an empty page on failure.
func (r *Reader) UpcomingMovies(ctx context.Context, page int) model.Page {
	result, err := r.client.UpcomingMovies(ctx, page)
	return r.safePage("upcoming movies", result, err)
}

// TrendingTVShows returns trending TV shows, or an empty page on failure.
func (r *Reader) TrendingTVShows(ctx context.Context, page int) model.Page {
	result, err := r.client.TrendingTVShows(ctx, page)
	return r.safePage("trending tv shows", result, err)
}

// PopularTVShows returns popular TV shows, or an empty page on failure.
func (r *Reader) PopularTVShows(ctx context.Context, page int) model.Page {
	result, err := r.client.PopularTVShows(ctx, page)
	return r.safePage("popular tv shows", result, err)
}

// TopRatedTVShows returns top rated TV shows, or an empty page on failure.
func (r *Reader) TopRatedTVShows(ctx context.Context, page int) model.Page {
	result, err := r.client.TopRatedTVShows(ctx, page)
	return r.safePage("top rated tv shows", result, err)
}

// SimilarMovies returns similar titles, or an empty page on failure.
func (r *Reader) SimilarMovies(ctx context.Context, movieID int64, page int) model.Page {
	result, err := r.client.SimilarMovies(ctx, movieID, page)
	return r.safePage("similar movies", result, err)
}

// SearchMulti returns mixed movie/TV/person results, or an empty page on
// failure.
func (r *Reader) SearchMulti(ctx context.Context, query string, page int) model.Page {
	result, err := r.client.SearchMulti(ctx, query, page)
	return r.safePage("multi search", result, err)
}

// MovieDetails returns a movie's full record, or nil on failure.
func (r *Reader) MovieDetails(ctx context.Context, movieID int64) *model.Details {
	details, err := r.client.MovieDetails(ctx, movieID)
	if err != nil {
		log.Printf("[catalog] movie details failed: %v", err)
		return nil
	}
	return details
}

// TVShowDetails returns a TV show's full record, or nil on failure.
func (r *Reader) TVShowDetails(ctx context.Context, tvID int64) *model.Details {
	details, err := r.client.TVShowDetails(ctx, tvID)
	if err != nil {
		log.Printf("[catalog] tv show details failed: %v", err)
		return nil
	}
	return details
}

// MovieCredits returns a movie's cast and crew, or empty credits on failure.
func (r *Reader) MovieCredits(ctx context.Context, movieID int64) model.Credits {
	credits, err := r.client.MovieCredits(ctx, movieID)
	if err != nil {
		log.Printf("[catalog] movie credits failed: %v", err)
		return model.EmptyCredits()
	}
	return credits
}

// MovieVideos returns a movie's videos, or an empty list on failure.
func (r *Reader) MovieVideos(ctx context.Context, movieID int64) model.VideoList {
	videos, err := r.client.MovieVideos(ctx, movieID)
	if err != nil {
		log.Printf("[catalog] movie videos failed: %v", err)
		return model.EmptyVideoList()
	}
	return videos
}
