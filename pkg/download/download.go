// Package download fetches a scaffold archive and extracts it into the
// scoped download directory via an external tar process.
package download

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"

	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/logging"
	"github.com/arthur-debert/aidd/pkg/settings"
)

// Fetcher downloads archives over HTTPS, attaching the credential only for
// hostnames on the fixed GitHub allow-list. The scoping keeps the token from
// leaking to third-party mirrors that may host a tarball.
type Fetcher struct {
	// Token is the optional bearer credential
	Token string
	// AllowedHosts are the hostnames the credential may be sent to
	AllowedHosts []string
	// HTTPClient defaults to http.DefaultClient
	HTTPClient *http.Client
	// Stderr receives the extraction process diagnostics, os.Stderr when nil
	Stderr io.Writer
}

// NewFetcher builds a Fetcher from settings
func NewFetcher(s *settings.Settings) *Fetcher {
	return &Fetcher{
		Token:        s.GitHub.Token,
		AllowedHosts: s.GitHub.Hosts,
	}
}

func (f *Fetcher) httpClient() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}
	return http.DefaultClient
}

func (f *Fetcher) stderr() io.Writer {
	if f.Stderr != nil {
		return f.Stderr
	}
	return os.Stderr
}

// Download fetches rawURL and extracts the gzip tarball into dest, stripping
// the single leading directory component release archives carry. dest must
// already exist and be empty.
func (f *Fetcher) Download(ctx context.Context, rawURL, dest string) error {
	logger := logging.GetLogger("download")

	body, err := f.fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	logger.Debug().Str("url", rawURL).Int("bytes", len(body)).Msg("Archive fetched")

	return f.extract(ctx, body, dest)
}

// fetch reads the full archive into memory; release tarballs are small
func (f *Fetcher) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownload, "invalid download URL %s", rawURL)
	}
	if f.Token != "" && f.hostAllowed(req.URL) {
		req.Header.Set("Authorization", "Bearer "+f.Token)
	}

	resp, err := f.httpClient().Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownload, "failed to download %s", rawURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf(errors.ErrDownload,
			"download of %s returned HTTP %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownload, "failed to read %s", rawURL)
	}
	return body, nil
}

func (f *Fetcher) hostAllowed(u *url.URL) bool {
	for _, host := range f.AllowedHosts {
		if u.Hostname() == host {
			return true
		}
	}
	return false
}

// extract pipes the archive bytes to tar, which strips the leading root
// directory component and writes into dest.
func (f *Fetcher) extract(ctx context.Context, archive []byte, dest string) error {
	cmd := exec.CommandContext(ctx, "tar", "-xz", "--strip-components=1", "-C", dest)
	cmd.Stdin = bytes.NewReader(archive)
	cmd.Stderr = f.stderr()

	// Stdin is a buffered reader, so a broken pipe surfaces through Run
	// rather than crashing the caller.
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return errors.Newf(errors.ErrExtract,
				"tar exited with status %d while extracting into %s", exitErr.ExitCode(), dest)
		}
		return errors.Wrapf(err, errors.ErrExtract, "failed to run tar for %s", dest)
	}
	return nil
}
