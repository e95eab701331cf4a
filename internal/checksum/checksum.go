// Package checksum computes and verifies SHA-256 digests of release archives.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// BuildURL derives the checksum file URL published next to a release asset.
func BuildURL(url string) string {
	return url + ".sha256"
}

// FileSHA256 returns the hex-encoded SHA-256 digest of the file at path. The
// file is streamed, never loaded into memory whole.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ParseHash extracts the digest from checksum file content, which is either
// a bare hash or the conventional "hash  filename" line.
func ParseHash(content string) (string, error) {
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("invalid checksum file format")
}

// Verify compares the file's digest against the expected hash.
func Verify(path, expected string) error {
	actual, err := FileSHA256(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", path, expected, actual)
	}
	return nil
}
