// Package download saves a single media asset to disk. The output path is
// validated against directory traversal and the file is written atomically
// (temp file + rename) so an interrupted download leaves nothing behind.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"spacearchive/internal/httputil"
)

// Download fetches assetURL into outputDir and returns the written path.
// When name is empty the filename is taken from the URL.
func Download(ctx context.Context, client *http.Client, assetURL, outputDir, name string) (string, error) {
	if name == "" {
		name = httputil.FilenameFromURL(assetURL)
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath, err := httputil.SafeDownloadPath(absDir, name)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	resp, err := httputil.Get(ctx, client, assetURL, "*/*")
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", assetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned status %d for %s", resp.StatusCode, assetURL)
	}

	tmpFile, err := os.CreateTemp(absDir, ".download-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing %s: %w", outputPath, err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming download: %w", err)
	}

	return outputPath, nil
}
