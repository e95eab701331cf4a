package update

import (
	"fmt"
	"runtime"
	"strings"
)

// DetectPlatform returns the release platform identifier used in archive
// file names, e.g. "macOS-AppleSilicon".
func DetectPlatform() (string, error) {
	switch runtime.GOOS + "/" + runtime.GOARCH {
	case "darwin/amd64":
		return "macOS-Intel", nil
	case "darwin/arm64":
		return "macOS-AppleSilicon", nil
	case "linux/amd64":
		return "Linux-x86_64", nil
	case "linux/arm64":
		return "Linux-arm64", nil
	case "windows/amd64":
		return "Windows-x86_64", nil
	case "windows/arm64":
		return "Windows-arm64", nil
	default:
		return "", fmt.Errorf("unsupported platform: %s/%s", runtime.GOOS, runtime.GOARCH)
	}
}

// ArchiveExt returns the archive extension for a platform: .zip for the
// Windows family, .tar.gz otherwise.
func ArchiveExt(platform string) string {
	if strings.HasPrefix(platform, "Windows") {
		return ".zip"
	}
	return ".tar.gz"
}
