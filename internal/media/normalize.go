package media

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ShortDescriptionLen is the longest description kept verbatim.
const ShortDescriptionLen = 150

const ellipsis = "…"

// dateLayouts are tried in order when parsing date_created.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalize builds the display item for one record. firstLink is the href of
// the hit's first link, or empty when upstream offered none.
func Normalize(raw Record, firstLink string) Item {
	return Item{
		Record:           raw,
		ID:               raw.NASAID,
		Thumbnail:        firstLink,
		FormattedDate:    FormatDate(raw.DateCreated),
		ShortDescription: Truncate(raw.Description, ShortDescriptionLen),
	}
}

// FormatDate renders an ISO-8601 timestamp as "January 2, 2006" (UTC).
// Unparseable input is returned verbatim.
func FormatDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("January 2, 2006")
		}
	}
	return s
}

// Truncate shortens s to at most max runes, cutting back to the last space
// inside the limit and appending an ellipsis. Without a space past the first
// rune the cut is hard.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	cut := string([]rune(s)[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		return cut[:i] + ellipsis
	}
	return cut + ellipsis
}

// PlainText strips HTML markup from upstream descriptions, which often carry
// anchors and line breaks. Input without markup is returned unchanged.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("br").ReplaceWithHtml("\n")
	return strings.TrimSpace(doc.Text())
}
