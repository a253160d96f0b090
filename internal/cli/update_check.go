package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/outfitterhq/outfitter/internal/settings"
	"github.com/outfitterhq/outfitter/internal/version"
)

// UpdateCache stores the result of the last release lookup.
type UpdateCache struct {
	LatestVersion string    `json:"latest_version"`
	CheckedAt     time.Time `json:"checked_at"`
}

// updateCheckState holds the deferred-notification state for one run.
type updateCheckState struct {
	mu                  sync.Mutex
	pendingNotification string
	quiet               bool
	skip                bool
}

var updateState = &updateCheckState{}

const (
	// updateCacheFileName is the cache file under the user cache dir.
	updateCacheFileName = "update-check.json"

	// updateCheckInterval is the minimum time between release lookups.
	updateCheckInterval = 24 * time.Hour

	// updateCheckEnvVar disables update checks when set to anything.
	updateCheckEnvVar = "OUTFITTER_NO_UPDATE_CHECK"

	releasesAPIURL = "https://api.github.com/repos/outfitterhq/outfitter/releases/latest"
)

// Test seams.
var (
	fetchLatestVersionFunc = fetchLatestVersion
	timeNowFunc            = time.Now
	loadSettingsFunc       = settings.Load

	// updateCacheBasePath overrides the cache directory for testing.
	updateCacheBasePath string
)

// initUpdateCheck reads the cache, prepares any pending notification,
// and starts a background release lookup when the cache is stale. It
// never blocks the command.
func initUpdateCheck(quiet bool) {
	updateState.mu.Lock()
	updateState.quiet = quiet
	updateState.skip = false
	updateState.pendingNotification = ""
	updateState.mu.Unlock()

	if isUpdateCheckDisabled() {
		return
	}

	// Dev builds have no release to compare against.
	if Version == "dev" {
		return
	}

	cache, _ := readUpdateCache()
	if cache != nil && cache.LatestVersion != "" {
		if hasNewerVersion(Version, cache.LatestVersion) {
			updateState.mu.Lock()
			updateState.pendingNotification = cache.LatestVersion
			updateState.mu.Unlock()
		}
	}

	if shouldCheckForUpdate(cache) {
		go backgroundUpdateCheck()
	}
}

// skipUpdateNotification suppresses the notification for this run.
// Used for commands like completion whose output is consumed by other
// programs.
func skipUpdateNotification() {
	updateState.mu.Lock()
	updateState.skip = true
	updateState.mu.Unlock()
}

// showUpdateNotification displays the pending notification, if any.
// Called at the end of Execute via defer.
func showUpdateNotification() {
	updateState.mu.Lock()
	notification := updateState.pendingNotification
	quiet := updateState.quiet
	skip := updateState.skip
	updateState.mu.Unlock()

	if notification == "" || quiet || skip {
		return
	}

	out.UpdateNotification(notification)
}

// backgroundUpdateCheck fetches the latest version and refreshes the
// cache. Runs in a goroutine and silently ignores all errors.
func backgroundUpdateCheck() {
	latest, err := fetchLatestVersionFunc()
	if err != nil {
		return
	}

	_ = writeUpdateCache(&UpdateCache{
		LatestVersion: latest,
		CheckedAt:     timeNowFunc(),
	})
}

func readUpdateCache() (*UpdateCache, error) {
	path, err := getUpdateCachePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cache UpdateCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}

	return &cache, nil
}

func writeUpdateCache(cache *UpdateCache) error {
	path, err := getUpdateCachePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(cache)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func getUpdateCachePath() (string, error) {
	base := updateCacheBasePath
	if base == "" {
		var err error
		base, err = os.UserCacheDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(base, "outfitter", updateCacheFileName), nil
}

// isUpdateCheckDisabled reports whether the env var or the user
// settings turn the check off. The env var wins.
func isUpdateCheckDisabled() bool {
	if os.Getenv(updateCheckEnvVar) != "" {
		return true
	}
	return !loadSettingsFunc().IsUpdateCheckEnabled()
}

// shouldCheckForUpdate reports whether the cache is stale enough to
// warrant a new lookup.
func shouldCheckForUpdate(cache *UpdateCache) bool {
	if cache == nil {
		return true
	}
	return timeNowFunc().Sub(cache.CheckedAt) >= updateCheckInterval
}

// hasNewerVersion reports whether latest is newer than current.
// Unparseable versions never notify.
func hasNewerVersion(current, latest string) bool {
	cmp, err := version.Compare(current, latest)
	if err != nil {
		return false
	}
	return cmp < 0
}

// fetchLatestVersion asks the GitHub API for the newest release tag.
func fetchLatestVersion() (string, error) {
	req, err := http.NewRequest(http.MethodGet, releasesAPIURL, nil)
	if err != nil {
		return "", err
	}

	// GitHub API requires a User-Agent header
	req.Header.Set("User-Agent", "outfitter-cli")
	req.Header.Set("Accept", "application/vnd.github+json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github API returned status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to parse GitHub API response: %w", err)
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
