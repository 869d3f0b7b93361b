package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spacearchive/internal/provider"
)

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show featured images from a random popular topic",
	Args:  cobra.NoArgs,
	RunE:  runFeatured,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "List popular search queries",
	Args:  cobra.NoArgs,
	RunE:  runSuggest,
}

func runFeatured(cmd *cobra.Command, args []string) error {
	p, err := newProvider(newClient())
	if err != nil {
		return err
	}

	page, err := p.Featured(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching featured content: %w", err)
	}

	if flagJSON {
		return writeJSON(os.Stdout, page.Items)
	}
	if len(page.Items) == 0 {
		fmt.Println("No featured content found.")
		return nil
	}
	printItems(os.Stdout, page.Items)
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	s := provider.Suggestions()
	if flagJSON {
		return writeJSON(os.Stdout, s)
	}
	for _, q := range s {
		fmt.Println(q)
	}
	return nil
}
