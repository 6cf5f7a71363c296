package upgrade

import (
	"context"
	"sync"
	"testing"

	"github.com/arthur-debert/xgappup/pkg/document"
	"github.com/arthur-debert/xgappup/pkg/version"
	"github.com/stretchr/testify/require"
)

// fakeResolver serves fixed version lists keyed by "group:artifact"
type fakeResolver struct {
	mu       sync.Mutex
	versions map[string][]string
	calls    []string
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{versions: make(map[string][]string)}
}

func (f *fakeResolver) with(group, artifact string, versions ...string) *fakeResolver {
	f.versions[group+":"+artifact] = versions
	return f
}

func (f *fakeResolver) ResolveVersions(ctx context.Context, group, artifact string) *version.Set {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := group + ":" + artifact
	f.calls = append(f.calls, key)
	raw, ok := f.versions[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return version.ParseSet(raw...)
}

func parseDoc(t *testing.T, xml string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(xml))
	require.NoError(t, err)
	return doc
}

func suggest(t *testing.T, doc *document.Document, r VersionResolver) []*Path {
	t.Helper()
	paths, err := Suggest(context.Background(), doc, r, SuggestOptions{IncludeUnresolved: true})
	require.NoError(t, err)
	return paths
}

func render(t *testing.T, doc *document.Document) string {
	t.Helper()
	out, err := doc.Bytes()
	require.NoError(t, err)
	return string(out)
}
