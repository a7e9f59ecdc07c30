package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kpauljoseph/pdfreview/pkg/logger"
	"github.com/kpauljoseph/pdfreview/pkg/version"
)

const (
	DefaultReleasesURL = "https://api.github.com/repos/kpauljoseph/pdfreview/releases/latest"
	userAgent          = "PDFReview-Updater"
)

// Update describes the newest release compared with the running build.
type Update struct {
	CurrentVersion string
	LatestVersion  string
	UpdateMessage  string
	DownloadURL    string
	IsAvailable    bool
}

// latestRelease holds the fields read from the GitHub releases API.
type latestRelease struct {
	TagName string `json:"tag_name"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

type Checker struct {
	client         *http.Client
	releasesURL    string
	currentVersion string
	logger         *logger.Logger
}

type Option func(*Checker)

func WithReleasesURL(url string) Option {
	return func(c *Checker) {
		c.releasesURL = url
	}
}

// WithCurrentVersion overrides the version baked in at build time.
func WithCurrentVersion(v string) Option {
	return func(c *Checker) {
		c.currentVersion = v
	}
}

func NewChecker(logger *logger.Logger, options ...Option) *Checker {
	c := &Checker{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		releasesURL:    DefaultReleasesURL,
		currentVersion: version.Version,
		logger:         logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// CheckForUpdates asks GitHub for the latest release.
func (c *Checker) CheckForUpdates(ctx context.Context) (*Update, error) {
	c.logger.Debug("Checking for updates...")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releasesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch GitHub release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release latestRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode GitHub release: %w", err)
	}

	currentVersion := strings.TrimPrefix(c.currentVersion, "v")
	latestVersion := strings.TrimPrefix(release.TagName, "v")

	return &Update{
		CurrentVersion: currentVersion,
		LatestVersion:  latestVersion,
		UpdateMessage:  release.Body,
		DownloadURL:    release.HTMLURL,
		IsAvailable:    CompareVersions(currentVersion, latestVersion) < 0,
	}, nil
}

// CompareVersions returns:
//
//	-1 if v1 < v2
//	 0 if v1 == v2
//	 1 if v1 > v2
//
// Numeric parts compare as numbers, so 1.10 is newer than 1.9.
func CompareVersions(v1, v2 string) int {
	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	for i := 0; i < len(parts1) && i < len(parts2); i++ {
		if c := comparePart(parts1[i], parts2[i]); c != 0 {
			return c
		}
	}

	if len(parts1) < len(parts2) {
		return -1
	}
	if len(parts1) > len(parts2) {
		return 1
	}
	return 0
}

func comparePart(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
