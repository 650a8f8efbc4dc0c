// Package github talks to the GitHub release API and scopes the optional
// bearer credential to GitHub-operated hostnames.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/logging"
	"github.com/arthur-debert/aidd/pkg/settings"
)

const userAgent = "aidd"

// release is the subset of the releases/latest payload we consume
type release struct {
	TagName    string `json:"tag_name"`
	TarballURL string `json:"tarball_url"`
}

// Client resolves bare repository references against the hosting API
type Client struct {
	// APIURL is the API base, e.g. https://api.github.com
	APIURL string
	// Token is the optional bearer credential
	Token string
	// HTTPClient defaults to http.DefaultClient
	HTTPClient *http.Client
}

// NewClient builds a Client from settings
func NewClient(s *settings.Settings) *Client {
	return &Client{
		APIURL: s.GitHub.APIURL,
		Token:  s.GitHub.Token,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// ResolveLatestRelease returns the tarball URL of the latest release of
// owner/repo.
func (c *Client) ResolveLatestRelease(ctx context.Context, owner, repo string) (string, error) {
	logger := logging.GetLogger("github.release")

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.APIURL, owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrReleaseLookup,
			"failed to build release request for %s/%s", owner, repo)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrReleaseLookup,
			"release lookup for %s/%s failed", owner, repo)
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Debug().
		Str("repo", owner+"/"+repo).
		Int("status", resp.StatusCode).
		Msg("Release lookup response")

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return "", errors.Newf(errors.ErrRateLimited,
			"GitHub API rate limit hit for %s/%s, set %s to raise the limit",
			owner, repo, settings.EnvGitHubToken)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", errors.Newf(errors.ErrReleaseLookup,
			"release lookup for %s/%s returned HTTP %d (a private repository requires %s)",
			owner, repo, resp.StatusCode, settings.EnvGitHubToken)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrReleaseLookup,
			"failed to read release response for %s/%s", owner, repo)
	}

	var rel release
	if err := json.Unmarshal(body, &rel); err != nil {
		return "", errors.Wrapf(err, errors.ErrReleaseLookup,
			"failed to parse release response for %s/%s", owner, repo)
	}
	if rel.TarballURL == "" {
		return "", errors.Newf(errors.ErrReleaseLookup,
			"latest release of %s/%s has no tarball URL", owner, repo)
	}

	return rel.TarballURL, nil
}
