// Package catalog exposes the read-only catalog endpoints behind the
// landing page rails, the navbar live search, and the detail pages.
package catalog

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/movix/backend/internal/catalog"
	model "github.com/movix/backend/internal/model/catalog"
	"github.com/movix/backend/pkg/utils"
)

// Handler serves catalog reads. Every listing response follows the
// never-fail contract: failures surface as empty result sets, not errors.
type Handler struct {
	reader *catalog.Reader
}

// New creates the catalog handler.
func New(reader *catalog.Reader) *Handler {
	return &Handler{reader: reader}
}

// RegisterRoutes mounts the catalog endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/home", h.handleHome)
	r.Get("/search", h.handleSearch)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/trending", h.listPage(h.reader.TrendingMovies))
		r.Get("/popular", h.listPage(h.reader.PopularMovies))
		r.Get("/top_rated", h.listPage(h.reader.TopRatedMovies))
		r.Get("/upcoming", h.listPage(h.reader.UpcomingMovies))
		r.Get("/{id}", h.handleMovieDetails)
		r.Get("/{id}/credits", h.handleMovieCredits)
		r.Get("/{id}/videos", h.handleMovieVideos)
		r.Get("/{id}/similar", h.handleSimilarMovies)
	})

	r.Route("/tv", func(r chi.Router) {
		r.Get("/trending", h.listPage(h.reader.TrendingTVShows))
		r.Get("/popular", h.listPage(h.reader.PopularTVShows))
		r.Get("/top_rated", h.listPage(h.reader.TopRatedTVShows))
		r.Get("/{id}", h.handleTVShowDetails)
	})
}

// homeResponse bundles the four landing page rails.
type homeResponse struct {
	Trending model.Page `json:"trending"`
	Popular  model.Page `json:"popular"`
	TopRated model.Page `json:"topRated"`
	Upcoming model.Page `json:"upcoming"`
}

// handleHome fetches the four rails concurrently. Each fetch safe-defaults
// independently, so one failing rail never blocks or empties the others.
func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var home homeResponse
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		home.Trending = h.reader.TrendingMovies(ctx, 1)
	}()
	go func() {
		defer wg.Done()
		home.Popular = h.reader.PopularMovies(ctx, 1)
	}()
	go func() {
		defer wg.Done()
		home.TopRated = h.reader.TopRatedMovies(ctx, 1)
	}()
	go func() {
		defer wg.Done()
		home.Upcoming = h.reader.UpcomingMovies(ctx, 1)
	}()

	wg.Wait()

	utils.RespondJSON(w, http.StatusOK, home)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		utils.RespondError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	page := h.reader.SearchMulti(r.Context(), query, pageParam(r))
	utils.RespondJSON(w, http.StatusOK, page)
}

func (h *Handler) listPage(list func(context.Context, int) model.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, list(r.Context(), pageParam(r)))
	}
}

func (h *Handler) handleMovieDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	details := h.reader.MovieDetails(r.Context(), id)
	if details == nil {
		utils.RespondError(w, http.StatusNotFound, "movie not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, details)
}

func (h *Handler) handleTVShowDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	details := h.reader.TVShowDetails(r.Context(), id)
	if details == nil {
		utils.RespondError(w, http.StatusNotFound, "tv show not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, details)
}

func (h *Handler) handleMovieCredits(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.reader.MovieCredits(r.Context(), id))
}

func (h *Handler) handleMovieVideos(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.reader.MovieVideos(r.Context(), id))
}

func (h *Handler) handleSimilarMovies(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.reader.SimilarMovies(r.Context(), id, pageParam(r)))
}

func pageParam(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		utils.RespondError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
