// Package provider defines the interface for media search providers
// and the NASA Image and Video Library implementation.
package provider

import (
	"context"

	"spacearchive/internal/media"
)

// SearchParams are the query parameters of one search request.
type SearchParams struct {
	Query     string `json:"q"`
	MediaType string `json:"media_type,omitempty"` // image, video, audio; "all" or empty means any
	YearStart string `json:"year_start,omitempty"`
	YearEnd   string `json:"year_end,omitempty"`
	Center    string `json:"center,omitempty"`
	NASAID    string `json:"nasa_id,omitempty"`
	Page      int    `json:"page,omitempty"`
	PageSize  int    `json:"page_size,omitempty"`
}

// SearchPage is one page of normalized results.
type SearchPage struct {
	Items     []media.Item
	Hits      int // Hits in the envelope, including any that could not be normalized
	TotalHits int // Upstream's total_hits; informational only
}

// Provider is the interface that media search providers must implement.
type Provider interface {
	// Search returns one page of results.
	Search(ctx context.Context, params SearchParams) (*SearchPage, error)

	// Assets returns the classified asset locators of an item.
	Assets(ctx context.Context, id string) (media.AssetBundle, error)

	// Metadata returns the upstream metadata document of an item.
	Metadata(ctx context.Context, id string) (media.Metadata, error)

	// Captions returns the captions locator or text of an item.
	Captions(ctx context.Context, id string) (string, error)
}
