package resolver

import (
	"context"
	"sync"

	"github.com/arthur-debert/xgappup/pkg/logging"
	"github.com/arthur-debert/xgappup/pkg/repository"
	"github.com/arthur-debert/xgappup/pkg/version"
	"golang.org/x/sync/errgroup"
)

// Default probe settings
const (
	DefaultMarkerFile  = "creole.xml"
	DefaultConcurrency = 4
)

// Repository is what the resolver needs from an artifact repository
type Repository interface {
	ResolveVersionRange(ctx context.Context, group, artifact string) (*version.Set, error)
	ResolveArtifact(ctx context.Context, a repository.Artifact) (string, error)
}

// Bootstrap creates the repository session on first use
type Bootstrap func() (Repository, error)

// Options configures the probe
type Options struct {
	MarkerFile  string
	Concurrency int
}

// Resolver resolves and probes plugin versions. It is safe for concurrent use.
type Resolver struct {
	bootstrap   Bootstrap
	markerFile  string
	concurrency int

	sessionMu sync.Mutex
	session   Repository

	cacheMu sync.Mutex
	cache   map[string]*version.Set
}

// New returns a Resolver that bootstraps its repository lazily. Only a
// successful bootstrap is kept; a failed one is retried on the next call.
func New(bootstrap Bootstrap, opts Options) *Resolver {
	if opts.MarkerFile == "" {
		opts.MarkerFile = DefaultMarkerFile
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Resolver{
		bootstrap:   bootstrap,
		markerFile:  opts.MarkerFile,
		concurrency: opts.Concurrency,
		cache:       make(map[string]*version.Set),
	}
}

// NewWithRepository returns a Resolver over an existing repository
func NewWithRepository(repo Repository, opts Options) *Resolver {
	return New(func() (Repository, error) { return repo, nil }, opts)
}

// ResolveVersions returns the probed versions of group:artifact, or nil
// when there are none
func (r *Resolver) ResolveVersions(ctx context.Context, group, artifact string) *version.Set {
	logger := logging.GetLogger("resolver").With().
		Str("group", group).
		Str("artifact", artifact).
		Logger()

	key := group + ":" + artifact
	r.cacheMu.Lock()
	cached, ok := r.cache[key]
	r.cacheMu.Unlock()
	if ok {
		logger.Trace().Msg("Resolution cache hit")
		return cached
	}

	repo, err := r.repository()
	if err != nil {
		logger.Warn().Err(err).Msg("Repository session unavailable")
		return nil
	}

	candidates, err := repo.ResolveVersionRange(ctx, group, artifact)
	if err != nil {
		logger.Warn().Err(err).Msg("Version range resolution failed")
		return nil
	}

	var result *version.Set
	if !candidates.Empty() {
		done := logging.LogOperationStart(logger, "probe")
		result = r.probeAll(ctx, repo, group, artifact, candidates)
		done()
	}
	if result.Empty() {
		result = nil
	}

	if ctx.Err() == nil {
		r.cacheMu.Lock()
		r.cache[key] = result
		r.cacheMu.Unlock()
	}

	logger.Debug().
		Int("candidates", candidates.Len()).
		Int("compatible", result.Len()).
		Msg("Resolved versions")
	return result
}

func (r *Resolver) probeAll(ctx context.Context, repo Repository, group, artifact string, candidates *version.Set) *version.Set {
	logger := logging.GetLogger("resolver")
	versions := candidates.Versions()
	ok := make([]bool, len(versions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, v := range versions {
		g.Go(func() error {
			if err := r.probe(gctx, repo, group, artifact, v); err != nil {
				logger.Warn().
					Err(err).
					Str("group", group).
					Str("artifact", artifact).
					Str("version", v.String()).
					Msg("Dropping incompatible version")
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	return candidates.Filter(func(i int, _ version.Version) bool { return ok[i] })
}

func (r *Resolver) probe(ctx context.Context, repo Repository, group, artifact string, v version.Version) error {
	path, err := repo.ResolveArtifact(ctx, repository.NewJar(group, artifact, v.String()))
	if err != nil {
		return err
	}
	return ProbeJar(path, r.markerFile)
}

// Probe checks a single version, for callers that already know which one they want
func (r *Resolver) Probe(ctx context.Context, group, artifact string, v version.Version) error {
	repo, err := r.repository()
	if err != nil {
		return err
	}
	return r.probe(ctx, repo, group, artifact, v)
}

func (r *Resolver) repository() (Repository, error) {
	r.sessionMu.Lock()
	defer r.sessionMu.Unlock()

	if r.session != nil {
		return r.session, nil
	}
	repo, err := r.bootstrap()
	if err != nil {
		return nil, err
	}
	r.session = repo
	return repo, nil
}
