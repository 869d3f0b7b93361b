// Package media defines shared types for the spacearchive application.
package media

// Kind is the upstream media type of a record.
type Kind string

const (
	Image Kind = "image"
	Video Kind = "video"
	Audio Kind = "audio"
)

// Record is one upstream search hit's data block, as received.
type Record struct {
	NASAID       string   `json:"nasa_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	DateCreated  string   `json:"date_created"`
	MediaType    Kind     `json:"media_type"`
	Center       string   `json:"center,omitempty"`
	Photographer string   `json:"photographer,omitempty"`
	Location     string   `json:"location,omitempty"`
}

// Item is a Record with display fields derived once at normalization time.
type Item struct {
	Record

	ID               string `json:"id"`
	Thumbnail        string `json:"thumbnail,omitempty"` // First link offered by upstream
	FormattedDate    string `json:"formatted_date"`
	ShortDescription string `json:"short_description"`
}

// Link is one entry of a hit's links list.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Render string `json:"render,omitempty"`
}

// Metadata is the decoded body of a metadata lookup.
type Metadata map[string]any
