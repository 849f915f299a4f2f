package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var ErrCheckFailed = errors.New("version check failed")

// Fetcher returns the latest published version.
type Fetcher interface {
	Latest(ctx context.Context) (Version, error)
}

// HTTPFetcher reads the current release from a PostgREST endpoint.
type HTTPFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPFetcher creates a fetcher with the given request timeout.
func NewHTTPFetcher(baseURL, apiKey string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

type currentVersionResponse struct {
	Versions *struct {
		Major int     `json:"major"`
		Minor int     `json:"minor"`
		Patch int     `json:"patch"`
		Meta  *string `json:"meta"`
	} `json:"versions"`
}

// Latest implements Fetcher.
func (f *HTTPFetcher) Latest(ctx context.Context) (Version, error) {
	url := f.BaseURL + "/rest/v1/current_version?select=versions(major,minor,patch,meta)"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Version{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", f.APIKey)
	req.Header.Set("Authorization", "Bearer "+f.APIKey)
	req.Header.Set("Accept", "application/vnd.pgrst.object+json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Version{}, fmt.Errorf("fetching current version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Version{}, fmt.Errorf("fetching current version: status %d", resp.StatusCode)
	}

	var body currentVersionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Version{}, fmt.Errorf("decoding current version: %w", err)
	}
	if body.Versions == nil {
		return Version{}, errors.New("no version data in response")
	}
	v := Version{Major: body.Versions.Major, Minor: body.Versions.Minor, Patch: body.Versions.Patch}
	if body.Versions.Meta != nil {
		v.Meta = *body.Versions.Meta
	}
	return v, nil
}

// Result is the outcome of a check.
type Result struct {
	Outdated bool
	Local    string
	Latest   string // "unknown" when the check failed
	Err      error
}

// Checker compares a local version against a Fetcher.
type Checker struct {
	Local   string
	Fetcher Fetcher
}

// Check fetches the latest version and compares. Any failure reports the
// build as outdated with Err wrapping ErrCheckFailed.
func (c *Checker) Check(ctx context.Context) Result {
	res := Result{Local: c.Local, Latest: "unknown"}

	fail := func(err error) Result {
		res.Outdated = true
		res.Err = fmt.Errorf("%w: %w", ErrCheckFailed, err)
		slog.Error("version check failed", "local", c.Local, "error", err)
		return res
	}

	local, err := Parse(c.Local)
	if err != nil {
		return fail(err)
	}
	if c.Fetcher == nil {
		return fail(errors.New("no fetcher configured"))
	}
	latest, err := c.Fetcher.Latest(ctx)
	if err != nil {
		return fail(err)
	}

	res.Latest = latest.String()
	res.Outdated = IsOutdated(local, latest)
	slog.Info("version check", "local", c.Local, "latest", res.Latest, "outdated", res.Outdated)
	return res
}
