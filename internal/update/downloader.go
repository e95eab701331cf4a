package update

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/zevwings/workflow/internal/checksum"
	"github.com/zevwings/workflow/internal/httpx"
	"github.com/zevwings/workflow/internal/output"
)

// errChecksumNotFound signals that no checksum file is published for a
// release. It is handled as a warning, never surfaced as an error.
var errChecksumNotFound = errors.New("checksum file not published")

const downloadChunkSize = 32 * 1024

// HTTPAcquirer downloads release archives over HTTP and verifies them
// against their published checksum.
type HTTPAcquirer struct {
	client *http.Client
	retry  httpx.RetryConfig

	// progress receives the inline progress rendering; nil disables it.
	progress io.Writer
}

// NewAcquirer creates an acquirer with progress reporting on stdout.
func NewAcquirer() *HTTPAcquirer {
	return &HTTPAcquirer{
		client:   httpx.NewClient(),
		retry:    httpx.DefaultRetryConfig(),
		progress: os.Stdout,
	}
}

// Download streams the archive at url to dest. A stale file at dest is
// removed first. The body is written in fixed-size chunks so arbitrarily
// large archives never load into memory.
func (a *HTTPAcquirer) Download(url, dest string) error {
	log.Debug("downloading archive", "url", url, "dest", dest)

	return httpx.Retry(a.retry, "downloading update package", func() error {
		if _, err := os.Stat(dest); err == nil {
			if err := os.Remove(dest); err != nil {
				log.Debug("failed to remove stale download", "path", dest, "error", err)
			}
		}

		resp, err := a.client.Get(url)
		if err != nil {
			return fmt.Errorf("failed to send download request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
		}

		f, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", dest, err)
		}
		defer func() { _ = f.Close() }()

		total := resp.ContentLength
		if total > 0 {
			output.Info("File size: %s", formatSize(uint64(total)))
		}

		pw := &progressWriter{out: a.progress, total: total}
		buf := make([]byte, downloadChunkSize)
		if _, err := io.CopyBuffer(io.MultiWriter(f, pw), resp.Body, buf); err != nil {
			return fmt.Errorf("failed to write download: %w", err)
		}
		pw.finish()
		return nil
	})
}

// VerifyArchive checks the archive against the checksum published at
// checksumURL. A missing checksum file degrades to a warning: the expected
// URL and the archive's actual hash are shown so the user can compare by
// hand. Every other fetch failure, and any hash mismatch, is a hard error.
func (a *HTTPAcquirer) VerifyArchive(archivePath, checksumURL string) error {
	output.Info("Verifying file integrity...")

	content, err := a.fetchChecksum(checksumURL)
	if err != nil {
		if errors.Is(err, errChecksumNotFound) {
			output.Warning("No checksum published for this release")
			output.Warning("  Expected checksum URL: %s", checksumURL)
			if actual, hashErr := checksum.FileSHA256(archivePath); hashErr == nil {
				output.Warning("  Actual SHA256 of the download: %s", actual)
			}
			output.Warning("  Continuing without integrity verification")
			return nil
		}
		return fmt.Errorf("failed to download checksum file: %w", err)
	}

	expected, err := checksum.ParseHash(content)
	if err != nil {
		return fmt.Errorf("failed to parse checksum file: %w", err)
	}

	if err := checksum.Verify(archivePath, expected); err != nil {
		return err
	}
	output.Success("File integrity verified")
	return nil
}

func (a *HTTPAcquirer) fetchChecksum(url string) (string, error) {
	var content string
	err := httpx.Retry(a.retry, "downloading checksum file", func() error {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", httpx.UserAgent)

		resp, err := a.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to send checksum request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode == http.StatusOK:
			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read checksum response: %w", err)
			}
			content = string(data)
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return httpx.Permanent(errChecksumNotFound)
		default:
			return fmt.Errorf("checksum download failed: HTTP %d", resp.StatusCode)
		}
	})
	return content, err
}

// progressWriter renders inline download progress as bytes pass through it.
type progressWriter struct {
	out     io.Writer
	total   int64
	written int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	p.render()
	return len(b), nil
}

func (p *progressWriter) render() {
	if p.out == nil {
		return
	}
	if p.total > 0 {
		percent := float64(p.written) / float64(p.total) * 100
		fmt.Fprintf(p.out, "\rDownloading... %5.1f%% (%s / %s)",
			percent, formatSize(uint64(p.written)), formatSize(uint64(p.total)))
		return
	}
	fmt.Fprintf(p.out, "\rDownloading... %s", formatSize(uint64(p.written)))
}

func (p *progressWriter) finish() {
	if p.out == nil {
		return
	}
	p.render()
	fmt.Fprintln(p.out)
}

// formatSize renders a byte count as B/KB/MB/GB.
func formatSize(bytes uint64) string {
	const (
		kb = 1 << 10
		mb = kb << 10
		gb = mb << 10
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
