package httputil

import (
	"path/filepath"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid HTTPS", "https://images-api.nasa.gov/search", false},
		{"HTTP allowed", "http://images-assets.nasa.gov/image/a/a~orig.jpg", false},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"data scheme rejected", "data:text/html,<h1>Hi</h1>", true},
		{"FTP rejected", "ftp://example.com/file", true},
		{"empty string", "", true},
		{"no host", "https://", true},
		{"relative", "/search?q=mars", true},
		{"valid with port", "http://127.0.0.1:8080/path", false},
		{"valid with query", "https://example.com/path?q=test&a=b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"normal filename", "PIA12345~orig.jpg", "PIA12345~orig.jpg"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"directory components", "/home/user/secret.txt", "secret.txt"},
		{"null bytes", "image\x00.jpg", "image.jpg"},
		{"Windows special chars", "image<>:\"|?*.jpg", "image_______.jpg"},
		{"double dots", "image..jpg", "image_jpg"},
		{"empty string", "", "untitled"},
		{"just dots", "..", "_"},
		{"just dot", ".", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeDownloadPath(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"normal", "a~orig.jpg", "a~orig.jpg"},
		{"path traversal attempt", "../../etc/passwd", "passwd"},
		{"shell injection", "$(whoami).jpg", "$(whoami).jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := SafeDownloadPath(dir, tt.filename)
			if err != nil {
				t.Fatalf("SafeDownloadPath(%q) error = %v", tt.filename, err)
			}
			if path != filepath.Join(dir, tt.want) {
				t.Errorf("SafeDownloadPath(%q) = %q, want %q", tt.filename, path, filepath.Join(dir, tt.want))
			}
		})
	}
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://images-assets.nasa.gov/image/PIA1/PIA1~orig.jpg", "PIA1~orig.jpg"},
		{"https://example.com/a%20b.jpg?x=1", "a b.jpg"},
		{"https://example.com/", ""},
		{"https://example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FilenameFromURL(tt.input)
			if got != tt.expected {
				t.Errorf("FilenameFromURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
