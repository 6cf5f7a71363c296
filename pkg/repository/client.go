package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/arthur-debert/xgappup/pkg/version"
	"github.com/hashicorp/go-retryablehttp"
)

// LocalMetadataFile is the metadata Maven writes for locally installed artifacts
const LocalMetadataFile = "maven-metadata-local.xml"

// Options configures a Client
type Options struct {
	Remotes         []Remote
	LocalRepository string
	Offline         bool
	Timeout         time.Duration
	Retries         int
	UserAgent       string
}

// Client resolves versions and artifacts against a local repository and
// an ordered list of remotes. It is safe for concurrent use.
type Client struct {
	remotes   []Remote
	local     string
	offline   bool
	userAgent string
	http      *retryablehttp.Client
}

// NewClient builds a Client
func NewClient(opts Options) *Client {
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "xgappup"
	}
	remotes := make([]Remote, len(opts.Remotes))
	copy(remotes, opts.Remotes)

	return &Client{
		remotes:   remotes,
		local:     opts.LocalRepository,
		offline:   opts.Offline,
		userAgent: userAgent,
		http:      newHTTPClient(opts.Timeout, opts.Retries),
	}
}

// Remotes returns the remotes in lookup order
func (c *Client) Remotes() []Remote {
	out := make([]Remote, len(c.remotes))
	copy(out, c.remotes)
	return out
}

// LocalRepository returns the local repository directory
func (c *Client) LocalRepository() string { return c.local }

// Offline reports whether remote HTTP access is disabled
func (c *Client) Offline() bool { return c.offline }

// ResolveVersionRange lists every version of group:artifact known to the
// local repository and the remotes. A remote that fails is skipped; the
// call fails only when every remote failed and nothing was found locally.
func (c *Client) ResolveVersionRange(ctx context.Context, group, artifact string) (*version.Set, error) {
	logger := logging.GetLogger("repository").With().
		Str("group", group).
		Str("artifact", artifact).
		Logger()

	set := c.localVersions(group, artifact)

	attempted, failed := 0, 0
	var lastErr error
	for _, remote := range c.remotes {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrRepository, "version resolution cancelled")
		}

		if c.offline && !remote.IsFile() {
			set = set.Union(c.cachedRemoteVersions(group, artifact, remote))
			continue
		}

		attempted++
		data, err := c.fetch(ctx, remote, MetadataPath(group, artifact))
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrNotFound) {
				logger.Trace().Str("remote", remote.ID).Msg("No metadata")
				continue
			}
			failed++
			lastErr = err
			logger.Warn().Err(err).Str("remote", remote.ID).Msg("Remote repository failed")
			continue
		}

		md, err := ParseMetadata(data)
		if err != nil {
			failed++
			lastErr = err
			logger.Warn().Err(err).Str("remote", remote.ID).Msg("Unreadable metadata")
			continue
		}

		found := version.ParseSet(md.Versions...)
		logger.Debug().Str("remote", remote.ID).Int("versions", found.Len()).Msg("Read metadata")
		set = set.Union(found)

		if !remote.IsFile() && c.local != "" {
			cache := filepath.Join(c.local, filepath.FromSlash(GroupPath(group)), artifact, remoteMetadataFile(remote))
			if err := writeLocal(cache, data); err != nil {
				logger.Debug().Err(err).Str("path", cache).Msg("Could not cache metadata")
			}
		}
	}

	if attempted > 0 && failed == attempted && set.Empty() {
		return nil, errors.Wrapf(lastErr, errors.ErrRepository, "every repository failed for %s:%s", group, artifact).
			WithDetail("group", group).
			WithDetail("artifact", artifact)
	}
	return set, nil
}

// ResolveArtifact returns the local path of the artifact file, downloading
// it into the local repository when needed
func (c *Client) ResolveArtifact(ctx context.Context, a Artifact) (string, error) {
	logger := logging.GetLogger("repository").With().Str("artifact", a.String()).Logger()

	localPath := filepath.Join(c.local, filepath.FromSlash(a.Path()))
	if c.local != "" {
		if info, err := os.Stat(localPath); err == nil && !info.IsDir() && !a.IsSnapshot() {
			logger.Trace().Str("path", localPath).Msg("Found in local repository")
			return localPath, nil
		}
	}

	var lastErr error
	for _, remote := range c.remotes {
		if err := ctx.Err(); err != nil {
			return "", errors.Wrap(err, errors.ErrArtifactResolve, "artifact resolution cancelled")
		}
		if c.offline && !remote.IsFile() {
			continue
		}

		rel := a.Path()
		if a.IsSnapshot() {
			rel = c.snapshotPath(ctx, remote, a)
		}

		data, err := c.fetch(ctx, remote, rel)
		if err != nil {
			lastErr = err
			logger.Debug().Err(err).Str("remote", remote.ID).Msg("Artifact not available")
			continue
		}

		if c.local == "" {
			return "", errors.New(errors.ErrArtifactResolve, "no local repository to store artifacts in")
		}
		if err := writeLocal(localPath, data); err != nil {
			return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to store %s", a).
				WithDetail("path", localPath)
		}
		logger.Debug().Str("remote", remote.ID).Str("path", localPath).Msg("Downloaded artifact")
		return localPath, nil
	}

	// a snapshot already in the local repository is better than nothing
	if a.IsSnapshot() && c.local != "" {
		if _, err := os.Stat(localPath); err == nil {
			return localPath, nil
		}
	}

	if lastErr == nil {
		lastErr = errors.New(errors.ErrNotFound, "no repository to resolve from")
	}
	return "", errors.Wrapf(lastErr, errors.ErrArtifactResolve, "could not resolve %s", a).
		WithDetail("artifact", a.String())
}

func (c *Client) snapshotPath(ctx context.Context, remote Remote, a Artifact) string {
	data, err := c.fetch(ctx, remote, a.VersionMetadataPath())
	if err != nil {
		return a.Path()
	}
	md, err := ParseMetadata(data)
	if err != nil {
		return a.Path()
	}
	if fileVersion := md.SnapshotFileVersion(a); fileVersion != "" {
		return a.PathFor(fileVersion)
	}
	return a.Path()
}

// localVersions reads versions installed in the local repository
func (c *Client) localVersions(group, artifact string) *version.Set {
	set := version.NewSet()
	if c.local == "" {
		return set
	}
	dir := filepath.Join(c.local, filepath.FromSlash(GroupPath(group)), artifact)

	if data, err := os.ReadFile(filepath.Join(dir, LocalMetadataFile)); err == nil {
		if md, err := ParseMetadata(data); err == nil {
			set = set.Union(version.ParseSet(md.Versions...))
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return set
	}
	var found []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		jar := NewJar(group, artifact, e.Name())
		if _, err := os.Stat(filepath.Join(c.local, filepath.FromSlash(jar.Path()))); err == nil {
			found = append(found, e.Name())
		}
	}
	return set.Union(version.ParseSet(found...))
}

func (c *Client) cachedRemoteVersions(group, artifact string, remote Remote) *version.Set {
	if c.local == "" {
		return nil
	}
	cache := filepath.Join(c.local, filepath.FromSlash(GroupPath(group)), artifact, remoteMetadataFile(remote))
	data, err := os.ReadFile(cache)
	if err != nil {
		return nil
	}
	md, err := ParseMetadata(data)
	if err != nil {
		return nil
	}
	return version.ParseSet(md.Versions...)
}

func remoteMetadataFile(remote Remote) string {
	return "maven-metadata-" + strings.ReplaceAll(remote.ID, "/", "_") + ".xml"
}
