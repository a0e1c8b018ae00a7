package models

// Film is a single catalog record. The store assigns ID on insert; it is
// stable for the record's lifetime and never reused after deletion.
type Film struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Year       string   `json:"year"`
	Rating     string   `json:"rating"`
	Genres     []string `json:"genres"`
	Country    string   `json:"country"`
	Embed      string   `json:"embed"`
	Synopsis   string   `json:"synopsis"`
	Duration   string   `json:"duration"`
	Poster     string   `json:"poster,omitempty"`
	UploadedAt string   `json:"uploadedAt,omitempty"`
	UpdatedAt  string   `json:"updatedAt,omitempty"`
}

// FilmUpsert captures the caller-supplied fields for a create or update.
// Zero-value fields are treated as "not provided" on merge updates; a nil
// Genres slice leaves the stored genres untouched.
type FilmUpsert struct {
	Title    string   `json:"title"`
	Year     string   `json:"year"`
	Rating   string   `json:"rating"`
	Genres   []string `json:"genres"`
	Country  string   `json:"country"`
	Embed    string   `json:"embed"`
	Synopsis string   `json:"synopsis"`
	Duration string   `json:"duration"`
	Poster   string   `json:"poster,omitempty"`
}

// Stats summarises the full collection: a total plus frequency tables by
// genre, country, year and rating bucket (integer floor of the rating).
type Stats struct {
	TotalFilms int            `json:"totalFilms"`
	Genres     map[string]int `json:"genres"`
	Countries  map[string]int `json:"countries"`
	Years      map[string]int `json:"years"`
	Ratings    map[int]int    `json:"ratings"`
}
