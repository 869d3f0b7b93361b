package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"spacearchive/internal/download"
	"spacearchive/internal/media"
)

var (
	flagSize   string
	flagOutput string
)

var downloadCmd = &cobra.Command{
	Use:   "download <nasa-id>",
	Short: "Download an asset of an item",
	Long: `Download one asset of an item. Without --size the best available
rendition is chosen (original, large, medium, small, thumb, preview).`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&flagSize, "size", "s", "", "Asset slot: original | large | medium | small | thumb | preview | captions")
	downloadCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output directory (default: download_dir from config)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx := cmd.Context()

	order := media.DownloadOrder
	if flagSize != "" {
		slot, ok := media.ParseSlot(flagSize)
		if !ok {
			return fmt.Errorf("unknown asset size %q", flagSize)
		}
		order = []media.Slot{slot}
	}

	dir := flagOutput
	if dir == "" {
		var err error
		dir, err = cfg.ExpandDownloadDir()
		if err != nil {
			return fmt.Errorf("resolving download directory: %w", err)
		}
	}

	client := newClient()
	p, err := newProvider(client)
	if err != nil {
		return err
	}

	bundle, err := p.Assets(ctx, id)
	if err != nil {
		return err
	}
	slot, loc, ok := bundle.Best(order)
	if !ok {
		if flagSize != "" {
			return fmt.Errorf("no %s asset for %s", flagSize, id)
		}
		return fmt.Errorf("no downloadable asset for %s", id)
	}

	debugf("downloading %s asset %s", slot, loc)
	path, err := download.Download(ctx, client, loc, dir, "")
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"id": id, "slot": string(slot), "url": loc, "path": path})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s) to %s\n", id, slot, path)
	return nil
}
