package domain

// MediaType distinguishes catalog sections.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"

	// MediaTypePeople is searchable but cannot be reviewed or favorited.
	MediaTypePeople MediaType = "people"
)

// Valid reports whether the media type is one the catalog serves.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// Searchable reports whether the catalog can search this type.
func (m MediaType) Searchable() bool {
	return m.Valid() || m == MediaTypePeople
}
