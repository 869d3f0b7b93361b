package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"spacearchive/internal/detail"
	"spacearchive/internal/media"
	"spacearchive/internal/provider"
	"spacearchive/internal/ui"
)

var detailCmd = &cobra.Command{
	Use:   "detail <nasa-id>",
	Short: "Show assets, metadata and captions of an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetail,
}

func runDetail(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx := cmd.Context()

	p, err := newProvider(newClient())
	if err != nil {
		return err
	}

	debugf("fetching details for %s", id)
	st := detail.New(p, slog.Default()).Fetch(ctx, id)

	if flagJSON {
		if err := writeJSON(os.Stdout, st); err != nil {
			return err
		}
	} else {
		width := 0
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
		fmt.Println(ui.RenderDetail(lookupItem(ctx, p, id), st, width))
	}

	if st.Err != "" {
		return errors.New(st.Err)
	}
	return nil
}

// lookupItem finds the search record of id. The detail view still renders
// with only the ID when the lookup fails.
func lookupItem(ctx context.Context, p provider.Provider, id string) media.Item {
	page, err := p.Search(ctx, provider.SearchParams{NASAID: id})
	if err != nil {
		debugf("record lookup for %s failed: %v", id, err)
		return media.Item{ID: id, Record: media.Record{Title: id}}
	}
	for _, it := range page.Items {
		if it.ID == id {
			return it
		}
	}
	return media.Item{ID: id, Record: media.Record{Title: id}}
}
