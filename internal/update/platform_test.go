package update

import "testing"

func TestArchiveExt(t *testing.T) {
	tests := []struct {
		platform string
		want     string
	}{
		{"Windows-x86_64", ".zip"},
		{"Windows-x64", ".zip"},
		{"Windows-arm64", ".zip"},
		{"macOS-arm64", ".tar.gz"},
		{"macOS-AppleSilicon", ".tar.gz"},
		{"macOS-Intel", ".tar.gz"},
		{"Linux-x86_64", ".tar.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			if got := ArchiveExt(tt.platform); got != tt.want {
				t.Errorf("ArchiveExt(%q) = %q, want %q", tt.platform, got, tt.want)
			}
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	// The test host must be one of the supported platforms.
	platform, err := DetectPlatform()
	if err != nil {
		t.Fatalf("DetectPlatform() error = %v", err)
	}
	if platform == "" {
		t.Error("DetectPlatform() returned empty platform")
	}
}
