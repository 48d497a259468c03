// Package catalog defines the typed records exchanged with the external
// movie/TV metadata service. The service owns this data; we only display it.
package catalog

// Item is one movie or TV entry as it appears in listing and search results.
// Movies carry Title/ReleaseDate, TV shows carry Name/FirstAirDate.
type Item struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	MediaType    string  `json:"media_type,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// Page is the page-numbered envelope around listing and search results.
type Page struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// EmptyPage is the safe default returned when a listing or search call fails.
func EmptyPage() Page {
	return Page{Results: []Item{}}
}

// Genre is a named genre attached to title details.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreditEntry is one cast or crew member on a title.
type CreditEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	Job         string `json:"job,omitempty"`
	ProfilePath string `json:"profile_path"`
}

// Credits groups the cast and crew of a title.
type Credits struct {
	Cast []CreditEntry `json:"cast"`
	Crew []CreditEntry `json:"crew"`
}

// EmptyCredits is the safe default returned when a credits call fails.
func EmptyCredits() Credits {
	return Credits{Cast: []CreditEntry{}, Crew: []CreditEntry{}}
}

// Video is a trailer/teaser/clip attached to a title.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideoList wraps the videos attached to a title.
type VideoList struct {
	Results []Video `json:"results"`
}

// EmptyVideoList is the safe default returned when a videos call fails.
func EmptyVideoList() VideoList {
	return VideoList{Results: []Video{}}
}

// Details is the full record for a single title, fetched with videos,
// credits and similar titles appended in one call.
type Details struct {
	Item
	Tagline          string     `json:"tagline"`
	Status           string     `json:"status"`
	Runtime          int        `json:"runtime,omitempty"`
	NumberOfSeasons  int        `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int        `json:"number_of_episodes,omitempty"`
	Genres           []Genre    `json:"genres"`
	Videos           *VideoList `json:"videos,omitempty"`
	Credits          *Credits   `json:"credits,omitempty"`
	Similar          *Page      `json:"similar,omitempty"`
}
