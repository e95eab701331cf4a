package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/zevwings/workflow/internal/httpx"
)

// Release is the subset of the GitHub release response the updater needs.
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// GitHubResolver resolves release targets against the GitHub API.
type GitHubResolver struct {
	owner string
	repo  string
	token string

	client *http.Client
	retry  httpx.RetryConfig

	// Injectable for tests.
	apiBase      string
	downloadBase string
}

// NewGitHubResolver creates a resolver for the given repository.
func NewGitHubResolver(owner, repo string) *GitHubResolver {
	return &GitHubResolver{
		owner:        owner,
		repo:         repo,
		client:       httpx.NewClient(),
		retry:        httpx.DefaultRetryConfig(),
		apiBase:      "https://api.github.com",
		downloadBase: "https://github.com",
	}
}

// WithToken sets an optional GitHub token for authentication.
func (r *GitHubResolver) WithToken(token string) *GitHubResolver {
	r.token = token
	return r
}

// Resolve determines the target version and its download URLs. An explicit
// version is used verbatim (after stripping a leading "v"); otherwise the
// latest release is fetched from the API.
func (r *GitHubResolver) Resolve(explicitVersion, platform string) (*Target, error) {
	version := Normalize(explicitVersion)
	if version == "" {
		release, err := r.Latest()
		if err != nil {
			return nil, err
		}
		version = Normalize(release.TagName)
	}

	ext := ArchiveExt(platform)
	downloadURL := fmt.Sprintf("%s/%s/%s/releases/download/v%s/workflow-%s-%s%s",
		r.downloadBase, r.owner, r.repo, version, version, platform, ext)

	log.Debug("resolved release target", "version", version, "url", downloadURL)

	return &Target{
		Version:     version,
		Platform:    platform,
		Ext:         ext,
		DownloadURL: downloadURL,
		ChecksumURL: downloadURL + ".sha256",
	}, nil
}

// Latest fetches the latest release metadata from the API.
func (r *GitHubResolver) Latest() (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", r.apiBase, r.owner, r.repo)

	var release *Release
	err := httpx.Retry(r.retry, "fetching latest release", func() error {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", httpx.UserAgent)
		req.Header.Set("Accept", "application/vnd.github+json")
		if r.token != "" {
			req.Header.Set("Authorization", "Bearer "+r.token)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to reach GitHub API: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			err := r.statusError(resp)
			// Client errors will not change on retry; server errors might.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return httpx.Permanent(err)
			}
			return err
		}

		var rel Release
		if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
			return httpx.Permanent(fmt.Errorf("failed to decode release metadata: %w", err))
		}
		release = &rel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return release, nil
}

// statusError maps a non-200 API response to an actionable message.
func (r *GitHubResolver) statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return fmt.Errorf("GitHub API rate limit exceeded (resets at %s); configure github.token in settings or set GITHUB_TOKEN to raise the limit",
				rateLimitReset(resp))
		}
		return fmt.Errorf("GitHub API access forbidden (HTTP %d): check your network and token permissions", resp.StatusCode)
	case http.StatusNotFound:
		return fmt.Errorf("release or repository not found: %s/%s", r.owner, r.repo)
	default:
		return fmt.Errorf("failed to fetch latest release: HTTP %d", resp.StatusCode)
	}
}

func rateLimitReset(resp *http.Response) string {
	if sec, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		return time.Unix(sec, 0).Local().Format("15:04:05")
	}
	return "unknown"
}
