package records

// Series is a resolved series identity held locally.
//
// CatalogID is the TMDB id, or 0 for a series the user pinned locally
// without a catalog match.
type Series struct {
	ID             string
	CatalogID      int64
	Name           string
	NormalizedName string
	FirstAirYear   string
}

// Episode is one entry of a series' episode index.
type Episode struct {
	ID      string
	Season  int
	Episode int
	Title   string
	AirDate string
}

// WatchEvent is one recorded viewing of an episode.
type WatchEvent struct {
	ID         string
	SeriesID   string
	SeriesName string
	Season     int
	Episode    int
	RawTitle   string
	WatchedOn  string
	Source     string
	Method     string
	Confidence float64
	DedupeKey  string
}
