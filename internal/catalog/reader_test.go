package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	model "github.com/movix/backend/internal/model/catalog"
)

// deadReader points at a server that has already been shut down, so every
// call fails at the transport level.
func deadReader(t *testing.T) *Reader {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	return NewReader(NewClient(testConfig(server.URL)))
}

func TestReaderListingsDefaultOnTransportFailure(t *testing.T) {
	reader := deadReader(t)
	ctx := context.Background()

	listings := map[string]func() model.Page{
		"trending movies":    func() model.Page { return reader.TrendingMovies(ctx, 1) },
		"popular movies":     func() model.Page { return reader.PopularMovies(ctx, 1) },
		"top rated movies":   func() model.Page { return reader.TopRatedMovies(ctx, 1) },
		"upcoming movies":    func() model.Page { return reader.UpcomingMovies(ctx, 1) },
		"trending tv shows":  func() model.Page { return reader.TrendingTVShows(ctx, 1) },
		"popular tv shows":   func() model.Page { return reader.PopularTVShows(ctx, 1) },
		"top rated tv shows": func() model.Page { return reader.TopRatedTVShows(ctx, 1) },
		"similar movies":     func() model.Page { return reader.SimilarMovies(ctx, 603, 1) },
		"multi search":       func() model.Page { return reader.SearchMulti(ctx, "dune", 1) },
	}

	for name, call := range listings {
		page := call()
		if page.Results == nil || len(page.Results) != 0 {
			t.Fatalf("%s: expected empty results, got %+v", name, page.Results)
		}
		if page.TotalPages != 0 {
			t.Fatalf("%s: expected 0 total pages, got %d", name, page.TotalPages)
		}
	}
}

func TestReaderDetailsNilOnFailure(t *testing.T) {
	reader := deadReader(t)
	ctx := context.Background()

	if details := reader.MovieDetails(ctx, 603); details != nil {
		t.Fatalf("expected nil details, got %+v", details)
	}
	if details := reader.TVShowDetails(ctx, 1399); details != nil {
		t.Fatalf("expected nil tv details, got %+v", details)
	}
}

func TestReaderCreditsAndVideosDefaultsOnFailure(t *testing.T) {
	reader := deadReader(t)
	ctx := context.Background()

	credits := reader.MovieCredits(ctx, 603)
	if credits.Cast == nil || credits.Crew == nil {
		t.Fatalf("expected empty-shaped credits, got %+v", credits)
	}
	if len(credits.Cast) != 0 || len(credits.Crew) != 0 {
		t.Fatalf("expected no entries, got %+v", credits)
	}

	videos := reader.MovieVideos(ctx, 603)
	if videos.Results == nil || len(videos.Results) != 0 {
		t.Fatalf("expected empty video list, got %+v", videos)
	}
}

func TestReaderPassesThroughSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"Dune"}],"total_pages":1,"total_results":1}`))
	}))
	defer server.Close()

	reader := NewReader(NewClient(testConfig(server.URL)))
	page := reader.PopularMovies(context.Background(), 1)
	if len(page.Results) != 1 || page.Results[0].Title != "Dune" {
		t.Fatalf("expected populated page, got %+v", page)
	}
}
