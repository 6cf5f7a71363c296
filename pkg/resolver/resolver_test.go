package resolver_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/repository"
	"github.com/arthur-debert/xgappup/pkg/resolver"
	"github.com/arthur-debert/xgappup/pkg/testutil"
	"github.com/arthur-debert/xgappup/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const group = "uk.ac.gate.plugins"

func serverResolver(t *testing.T, s *testutil.MavenServer) *resolver.Resolver {
	t.Helper()
	client := repository.NewClient(repository.Options{
		Remotes:         []repository.Remote{{ID: "gate", URL: s.URL}},
		LocalRepository: t.TempDir(),
	})
	return resolver.NewWithRepository(client, resolver.Options{Concurrency: 3})
}

func TestResolveVersions(t *testing.T) {
	ctx := context.Background()

	t.Run("all_versions_compatible", func(t *testing.T) {
		s := testutil.NewMavenServer(t)
		s.AddPlugin(t, group, "tools", "1.0", "1.1", "2.0")

		set := serverResolver(t, s).ResolveVersions(ctx, group, "tools")
		require.NotNil(t, set)
		assert.Equal(t, []string{"1.0", "1.1", "2.0"}, set.Strings())
		highest, _ := set.Highest()
		assert.Equal(t, "2.0", highest.String())
	})

	t.Run("bad_versions_are_dropped", func(t *testing.T) {
		s := testutil.NewMavenServer(t)
		s.AddPlugin(t, group, "tools", "1.0", "3.0")
		s.AddVersion(group, "tools", "1.1", testutil.PlainJar(t))
		s.AddVersion(group, "tools", "1.2", testutil.BrokenJar())
		s.AddVersion(group, "tools", "1.3", nil)
		s.AddPlugin(t, group, "tools", "2.0")
		s.FailVersion(group, "tools", "2.0")

		set := serverResolver(t, s).ResolveVersions(ctx, group, "tools")
		require.NotNil(t, set)
		assert.Equal(t, []string{"1.0", "3.0"}, set.Strings())
	})

	t.Run("unknown_artifact_is_nil", func(t *testing.T) {
		s := testutil.NewMavenServer(t)
		assert.Nil(t, serverResolver(t, s).ResolveVersions(ctx, "bogus.group", "bogus-artifact"))
	})

	t.Run("no_compatible_versions_is_nil", func(t *testing.T) {
		s := testutil.NewMavenServer(t)
		s.AddVersion(group, "library", "1.0", testutil.PlainJar(t))
		assert.Nil(t, serverResolver(t, s).ResolveVersions(ctx, group, "library"))
	})

	t.Run("unreachable_repository_is_nil", func(t *testing.T) {
		s := testutil.NewMavenServer(t)
		s.SetDown(true)
		assert.Nil(t, serverResolver(t, s).ResolveVersions(ctx, group, "tools"))
	})

	t.Run("results_are_cached", func(t *testing.T) {
		s := testutil.NewMavenServer(t)
		s.AddPlugin(t, group, "tools", "1.0")
		r := serverResolver(t, s)

		first := r.ResolveVersions(ctx, group, "tools")
		requests := len(s.Requests())
		second := r.ResolveVersions(ctx, group, "tools")

		assert.Equal(t, first.Strings(), second.Strings())
		assert.Equal(t, requests, len(s.Requests()))
	})
}

type fakeRepo struct {
	versions *version.Set
	jar      string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	mu          sync.Mutex
	probed      []string
}

func (f *fakeRepo) ResolveVersionRange(ctx context.Context, group, artifact string) (*version.Set, error) {
	return f.versions, nil
}

func (f *fakeRepo) ResolveArtifact(ctx context.Context, a repository.Artifact) (string, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		old := f.maxInFlight.Load()
		if n <= old || f.maxInFlight.CompareAndSwap(old, n) {
			break
		}
	}
	f.mu.Lock()
	f.probed = append(f.probed, a.Version)
	f.mu.Unlock()
	return f.jar, nil
}

func TestResolveVersions_BoundedConcurrency(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "plugin.jar")
	require.NoError(t, os.WriteFile(jar, testutil.PluginJar(t), 0644))

	raw := make([]string, 20)
	for i := range raw {
		raw[i] = "1." + string(rune('a'+i))
	}
	repo := &fakeRepo{versions: version.ParseSet(raw...), jar: jar}
	r := resolver.NewWithRepository(repo, resolver.Options{Concurrency: 2})

	set := r.ResolveVersions(context.Background(), group, "tools")
	assert.Equal(t, 20, set.Len())
	assert.Len(t, repo.probed, 20)
	assert.LessOrEqual(t, repo.maxInFlight.Load(), int32(2))
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewMavenServer(t)
	s.AddPlugin(t, group, "tools", "1.0")
	s.AddPlugin(t, group, "other", "2.0")

	calls := 0
	fail := true
	r := resolver.New(func() (resolver.Repository, error) {
		calls++
		if fail {
			return nil, errors.New(errors.ErrSettings, "broken settings.xml")
		}
		return repository.NewClient(repository.Options{
			Remotes:         []repository.Remote{{ID: "gate", URL: s.URL}},
			LocalRepository: t.TempDir(),
		}), nil
	}, resolver.Options{})

	assert.Nil(t, r.ResolveVersions(ctx, group, "tools"), "bootstrap failure means no versions")

	fail = false
	assert.NotNil(t, r.ResolveVersions(ctx, group, "tools"), "failed bootstrap is retried")
	assert.NotNil(t, r.ResolveVersions(ctx, group, "other"))
	assert.Equal(t, 2, calls, "successful bootstrap is kept")
}

func TestProbeJar(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, data, 0644))
		return p
	}

	assert.NoError(t, resolver.ProbeJar(write("good.jar", testutil.PluginJar(t)), "creole.xml"))

	err := resolver.ProbeJar(write("plain.jar", testutil.PlainJar(t)), "creole.xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProbeFailed), "marker must be at the root")

	err = resolver.ProbeJar(write("broken.jar", testutil.BrokenJar()), "creole.xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProbeFailed))

	err = resolver.ProbeJar(filepath.Join(dir, "missing.jar"), "creole.xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProbeFailed))
}
