package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("JPEGDATA"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path, err := Download(context.Background(), srv.Client(), srv.URL+"/image/PIA1/PIA1~orig.jpg", dir, "")
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}

	if path != filepath.Join(dir, "PIA1~orig.jpg") {
		t.Errorf("path = %q, want %q", path, filepath.Join(dir, "PIA1~orig.jpg"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "JPEGDATA" {
		t.Errorf("content = %q, want JPEGDATA", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the downloaded file, found %d entries", len(entries))
	}
}

func TestDownloadSanitizesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path, err := Download(context.Background(), srv.Client(), srv.URL+"/a.jpg", dir, "../../escape.jpg")
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("download escaped %q: %q", dir, path)
	}
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	if _, err := Download(context.Background(), srv.Client(), srv.URL+"/missing.jpg", dir, ""); err == nil {
		t.Fatal("expected error for 404")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed download left %d files behind", len(entries))
	}
}
