package checksum

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SHA-256 of "hello world".
const helloHash = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.tar.gz")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildURL(t *testing.T) {
	got := BuildURL("https://example.com/workflow-1.0.0-Linux-x86_64.tar.gz")
	want := "https://example.com/workflow-1.0.0-Linux-x86_64.tar.gz.sha256"
	if got != want {
		t.Errorf("BuildURL() = %q, want %q", got, want)
	}
}

func TestFileSHA256(t *testing.T) {
	path := writeTempFile(t, "hello world")

	got, err := FileSHA256(path)
	if err != nil {
		t.Fatalf("FileSHA256() error = %v", err)
	}
	if got != helloHash {
		t.Errorf("FileSHA256() = %q, want %q", got, helloHash)
	}
}

func TestFileSHA256Missing(t *testing.T) {
	if _, err := FileSHA256(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("FileSHA256() error = nil, want error")
	}
}

func TestParseHash(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "bare hash",
			content: helloHash,
			want:    helloHash,
		},
		{
			name:    "hash with filename",
			content: helloHash + "  workflow-1.0.0-Linux-x86_64.tar.gz",
			want:    helloHash,
		},
		{
			name:    "trailing newline",
			content: helloHash + "\n",
			want:    helloHash,
		},
		{
			name:    "leading blank line",
			content: "\n" + helloHash + "  archive.tar.gz\n",
			want:    helloHash,
		},
		{
			name:    "empty content",
			content: "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			content: "  \n\t\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHash(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHash() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHash() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	path := writeTempFile(t, "hello world")

	if err := Verify(path, helloHash); err != nil {
		t.Errorf("Verify() with matching hash error = %v", err)
	}
	if err := Verify(path, strings.ToUpper(helloHash)); err != nil {
		t.Errorf("Verify() is case sensitive: %v", err)
	}

	err := Verify(path, strings.Repeat("0", 64))
	if err == nil {
		t.Fatal("Verify() with wrong hash error = nil, want error")
	}
	if !strings.Contains(err.Error(), "checksum mismatch") {
		t.Errorf("Verify() error = %q, want checksum mismatch", err)
	}
}
