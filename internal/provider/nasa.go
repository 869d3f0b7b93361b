package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"spacearchive/internal/media"
)

// DefaultBaseURL is the public NASA Image and Video Library API.
const DefaultBaseURL = "https://images-api.nasa.gov"

// FeaturedPageSize is the page size used for featured content.
const FeaturedPageSize = 12

var featuredQueries = []string{
	"hubble",
	"mars",
	"earth",
	"international space station",
	"apollo",
}

var suggestions = []string{
	"hubble telescope",
	"mars rover",
	"earth from space",
	"apollo missions",
	"international space station",
	"saturn",
	"jupiter",
	"nebula",
	"galaxy",
	"astronaut",
	"spacewalk",
	"lunar surface",
	"solar system",
	"black hole",
	"space shuttle",
}

// NASA implements Provider for the NASA Image and Video Library.
type NASA struct {
	t *Transport
}

// NewNASA creates a NASA provider on top of t.
func NewNASA(t *Transport) *NASA {
	return &NASA{t: t}
}

// searchEnvelope is the /search response body.
type searchEnvelope struct {
	Collection struct {
		Items []struct {
			Href  string         `json:"href"`
			Data  []media.Record `json:"data"`
			Links []media.Link   `json:"links"`
		} `json:"items"`
		Metadata struct {
			TotalHits int `json:"total_hits"`
		} `json:"metadata"`
	} `json:"collection"`
}

// assetEnvelope is the /asset/{id} response body.
type assetEnvelope struct {
	Collection struct {
		Items []struct {
			Href string `json:"href"`
		} `json:"items"`
	} `json:"collection"`
}

// Search returns one page of results for params.
func (n *NASA) Search(ctx context.Context, params SearchParams) (*SearchPage, error) {
	q := map[string]string{
		"q":          params.Query,
		"year_start": params.YearStart,
		"year_end":   params.YearEnd,
		"center":     params.Center,
		"nasa_id":    params.NASAID,
	}
	if mt := strings.ToLower(params.MediaType); mt != "all" {
		q["media_type"] = mt
	}
	if params.Page > 0 {
		q["page"] = strconv.Itoa(params.Page)
	}
	if params.PageSize > 0 {
		q["page_size"] = strconv.Itoa(params.PageSize)
	}

	var env searchEnvelope
	if err := n.t.getJSON(ctx, "/search", q, &env); err != nil {
		return nil, err
	}

	page := &SearchPage{
		Hits:      len(env.Collection.Items),
		TotalHits: env.Collection.Metadata.TotalHits,
		Items:     make([]media.Item, 0, len(env.Collection.Items)),
	}
	for _, hit := range env.Collection.Items {
		if len(hit.Data) == 0 {
			continue
		}
		var first string
		if len(hit.Links) > 0 {
			first = hit.Links[0].Href
		}
		page.Items = append(page.Items, media.Normalize(hit.Data[0], first))
	}
	return page, nil
}

// Assets returns the classified asset list of id.
func (n *NASA) Assets(ctx context.Context, id string) (media.AssetBundle, error) {
	endpoint, err := itemEndpoint("asset", id)
	if err != nil {
		return nil, err
	}

	var env assetEnvelope
	if err := n.t.getJSON(ctx, endpoint, nil, &env); err != nil {
		return nil, fmt.Errorf("getting assets: %w", err)
	}

	hrefs := make([]string, 0, len(env.Collection.Items))
	for _, it := range env.Collection.Items {
		hrefs = append(hrefs, it.Href)
	}
	return media.Classify(hrefs), nil
}

// Metadata returns the metadata document of id.
func (n *NASA) Metadata(ctx context.Context, id string) (media.Metadata, error) {
	endpoint, err := itemEndpoint("metadata", id)
	if err != nil {
		return nil, err
	}

	var md media.Metadata
	if err := n.t.getJSON(ctx, endpoint, nil, &md); err != nil {
		return nil, fmt.Errorf("getting metadata: %w", err)
	}
	return md, nil
}

// Captions returns the captions of id: a JSON string body verbatim, the
// "location" field of an object body, or the raw JSON otherwise.
func (n *NASA) Captions(ctx context.Context, id string) (string, error) {
	endpoint, err := itemEndpoint("captions", id)
	if err != nil {
		return "", err
	}

	body, err := n.t.Get(ctx, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("getting captions: %w", err)
	}
	return captionsText(body), nil
}

// Featured searches a randomly chosen featured query for images.
func (n *NASA) Featured(ctx context.Context) (*SearchPage, error) {
	return n.Search(ctx, SearchParams{
		Query:     featuredQueries[rand.IntN(len(featuredQueries))],
		MediaType: string(media.Image),
		PageSize:  FeaturedPageSize,
	})
}

// Suggestions returns popular search queries.
func Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}

// itemEndpoint builds "/<kind>/<escaped id>".
func itemEndpoint(kind, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("media ID cannot be empty")
	}
	return "/" + kind + "/" + url.PathEscape(id), nil
}

func captionsText(body json.RawMessage) string {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	var obj struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && obj.Location != "" {
		return obj.Location
	}
	return string(body)
}
