// Package ui renders search results and media details for the terminal and
// runs the interactive browser.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spacearchive/internal/detail"
	"spacearchive/internal/media"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2A93B"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D8FA9"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5484D"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// slotOrder is the display order of asset slots.
var slotOrder = []media.Slot{
	media.Original, media.Large, media.Medium, media.Small,
	media.Thumb, media.Preview, media.Captions,
}

// FormatDisplayTitle creates a one-line display string for a result.
func FormatDisplayTitle(it media.Item) string {
	parts := []string{it.Title}
	if it.FormattedDate != "" {
		parts = append(parts, fmt.Sprintf("(%s)", it.FormattedDate))
	}
	if it.MediaType != "" {
		parts = append(parts, fmt.Sprintf("[%s]", it.MediaType))
	}
	return strings.Join(parts, " ")
}

// RenderDetail renders an item and its aggregated details, wrapped to width
// (0 disables wrapping).
func RenderDetail(it media.Item, st detail.State, width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(it.Title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(it.ID))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label+":"), value)
	}
	field("Date", it.FormattedDate)
	field("Type", string(it.MediaType))
	field("Center", it.Center)
	field("Photographer", it.Photographer)
	field("Location", it.Location)
	if len(it.Keywords) > 0 {
		field("Keywords", strings.Join(it.Keywords, ", "))
	}

	if desc := media.PlainText(it.Description); desc != "" {
		b.WriteString("\n")
		style := lipgloss.NewStyle()
		if width > 0 {
			style = style.Width(width)
		}
		b.WriteString(style.Render(desc))
		b.WriteString("\n")
	}

	if st.Loading {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Loading details…"))
		b.WriteString("\n")
		return b.String()
	}

	if st.Err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(st.Err))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Assets"))
	b.WriteString("\n")
	if len(st.Assets) == 0 {
		b.WriteString(dimStyle.Render("  none available"))
		b.WriteString("\n")
	}
	for _, slot := range slotOrder {
		if loc, ok := st.Assets[slot]; ok {
			fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", slot)), loc)
		}
	}

	if st.Metadata != nil {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Metadata"))
		b.WriteString("\n")
		keys := make([]string, 0, len(st.Metadata))
		for k := range st.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s %v\n", labelStyle.Render(k+":"), st.Metadata[k])
		}
	}

	if st.Captions != "" {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Captions:"), st.Captions)
	}

	return b.String()
}
