package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Remote is a remote repository, possibly with credentials
type Remote struct {
	ID       string
	URL      string
	Username string
	Password string
}

// IsFile reports whether the remote is a file: URL
func (r Remote) IsFile() bool {
	return strings.HasPrefix(r.URL, "file:")
}

// IsLocalhost reports whether the remote lives on this machine, which
// external:* mirror patterns never match
func (r Remote) IsLocalhost() bool {
	if r.IsFile() {
		return true
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

func newHTTPClient(timeout time.Duration, retries int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = &leveledLogger{logger: logging.GetLogger("repository.http")}
	if timeout > 0 {
		client.HTTPClient.Timeout = timeout
	}
	return client
}

// leveledLogger routes retryablehttp logging into zerolog
type leveledLogger struct {
	logger zerolog.Logger
}

func (l *leveledLogger) Error(msg string, kv ...interface{}) { l.log(l.logger.Warn(), msg, kv) }
func (l *leveledLogger) Warn(msg string, kv ...interface{})  { l.log(l.logger.Debug(), msg, kv) }
func (l *leveledLogger) Info(msg string, kv ...interface{})  { l.log(l.logger.Trace(), msg, kv) }
func (l *leveledLogger) Debug(msg string, kv ...interface{}) { l.log(l.logger.Trace(), msg, kv) }

func (l *leveledLogger) log(e *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.Interface(fmt.Sprint(kv[i]), kv[i+1])
	}
	e.Msg(msg)
}

// fetch reads a repository relative path from a remote. A missing file is
// an ErrNotFound error.
func (c *Client) fetch(ctx context.Context, remote Remote, rel string) ([]byte, error) {
	if remote.IsFile() {
		return readFileRemote(remote, rel)
	}
	if c.offline {
		return nil, errors.Newf(errors.ErrRepository, "offline, not contacting %s", remote.ID)
	}

	target := strings.TrimSuffix(remote.URL, "/") + "/" + rel
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepository, "invalid repository URL %s", target)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if remote.Username != "" {
		req.SetBasicAuth(remote.Username, remote.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepository, "request to %s failed", remote.ID).
			WithDetail("url", target)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.Newf(errors.ErrNotFound, "%s not found in %s", rel, remote.ID).
			WithDetail("url", target)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.Newf(errors.ErrRepository, "%s returned %s for %s", remote.ID, resp.Status, rel).
			WithDetail("url", target).
			WithDetail("status", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepository, "failed to read %s from %s", rel, remote.ID)
	}
	return data, nil
}

func readFileRemote(remote Remote, rel string) ([]byte, error) {
	u, err := url.Parse(remote.URL)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepository, "invalid repository URL %s", remote.URL)
	}
	base := u.Path
	if base == "" {
		base = u.Opaque
	}
	p := filepath.Join(filepath.FromSlash(base), filepath.FromSlash(rel))
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "%s not found in %s", rel, remote.ID).
				WithDetail("path", p)
		}
		return nil, errors.Wrapf(err, errors.ErrRepository, "failed to read %s", p)
	}
	return data, nil
}

// writeLocal stores data at path through a temp file and a rename
func writeLocal(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.part")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}
