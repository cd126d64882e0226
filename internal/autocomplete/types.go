package autocomplete

// Suggestion is one completion candidate returned by the autocomplete service.
// Empty strings mean the field was absent from the response.
type Suggestion struct {
	Label      string `json:"label,omitempty"`      // Display text
	SearchName string `json:"searchName,omitempty"` // Text inserted on commit (mirrors Label)
	Antecedent string `json:"antecedent,omitempty"` // Original term for aliased tags
	Category   int    `json:"category"`             // Numeric tag category, 0 when unknown
	Type       string `json:"type,omitempty"`       // "tag", "tag-alias", "metatag", ...
	PostCount  string `json:"post_count,omitempty"` // Pre-formatted count, e.g. "1.2M"
}

// InsertText returns the text a commit should splice into the input.
func (s Suggestion) InsertText() string {
	if s.SearchName != "" {
		return s.SearchName
	}
	return s.Label
}

// Tag categories as encoded in the link class of each menu item.
const (
	CategoryGeneral   = 0
	CategoryArtist    = 1
	CategoryCopyright = 3
	CategoryCharacter = 4
	CategoryMeta      = 5
)

// CategoryName returns a human-readable name for a tag category
func CategoryName(category int) string {
	switch category {
	case CategoryGeneral:
		return "general"
	case CategoryArtist:
		return "artist"
	case CategoryCopyright:
		return "copyright"
	case CategoryCharacter:
		return "character"
	case CategoryMeta:
		return "meta"
	default:
		return "unknown"
	}
}
