package mcpserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/erraggy/oasmodels/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestInput_ResolveFile(t *testing.T) {
	manifestCache.reset()
	path := testutil.WriteTempFile(t, "shop.yaml", testutil.ShopManifestYAML)

	loaded, err := manifestInput{File: path}.resolve()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.scan.Groups, 2)
	assert.Equal(t, 4, loaded.source.Catalog().Len())
}

func TestManifestInput_ResolveContent(t *testing.T) {
	manifestCache.reset()

	loaded, err := manifestInput{Content: testutil.ShopManifestYAML}.resolve()
	require.NoError(t, err)
	assert.Len(t, loaded.scan.Groups, 2)
	assert.Empty(t, loaded.ignorable)
}

func TestManifestInput_ResolveNoneProvided(t *testing.T) {
	_, err := manifestInput{}.resolve()
	assert.ErrorContains(t, err, "exactly one of file or content must be provided")
}

func TestManifestInput_ResolveMultipleProvided(t *testing.T) {
	_, err := manifestInput{File: "foo.yaml", Content: "bar"}.resolve()
	assert.ErrorContains(t, err, "exactly one of file or content must be provided")
}

func TestManifestInput_ResolveFileNotFound(t *testing.T) {
	manifestCache.reset()
	_, err := manifestInput{File: "/nonexistent/shop.yaml"}.resolve()
	assert.Error(t, err)
}

func TestManifestInput_InvalidManifest(t *testing.T) {
	manifestCache.reset()
	_, err := manifestInput{Content: "types: []\n"}.resolve()
	assert.Error(t, err)
	assert.Equal(t, 0, manifestCache.size(), "failed loads are not cached")
}

func TestManifestInput_InlineSizeLimit(t *testing.T) {
	old := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	t.Cleanup(func() { cfg.MaxInlineSize = old })

	_, err := manifestInput{Content: testutil.ShopManifestYAML}.resolve()
	assert.ErrorContains(t, err, "exceeds maximum")
}

func TestManifestCache_HitOnSameFile(t *testing.T) {
	manifestCache.reset()
	path := testutil.WriteTempFile(t, "shop.yaml", testutil.ShopManifestYAML)
	input := manifestInput{File: path}

	loaded1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, manifestCache.size())

	loaded2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, loaded1, loaded2, "expected same pointer from cache hit")
}

func TestManifestCache_MissOnModifiedFile(t *testing.T) {
	manifestCache.reset()
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testutil.ShopManifestYAML), 0644))

	input := manifestInput{File: path}
	loaded1, err := input.resolve()
	require.NoError(t, err)
	assert.Len(t, loaded1.scan.Groups, 2)

	trimmed := testutil.ShopManifestYAML[:strings.Index(testutil.ShopManifestYAML, "  - name: receipts")]
	require.NoError(t, os.WriteFile(path, []byte(trimmed), 0644))

	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	loaded2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, loaded1, loaded2)
	assert.Len(t, loaded2.scan.Groups, 1)
}

func TestManifestCache_ContentHash(t *testing.T) {
	manifestCache.reset()
	input := manifestInput{Content: testutil.ShopManifestYAML}

	loaded1, err := input.resolve()
	require.NoError(t, err)
	loaded2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, loaded1, loaded2)
}

func TestManifestCache_Disabled(t *testing.T) {
	manifestCache.reset()
	old := cfg.CacheEnabled
	cfg.CacheEnabled = false
	t.Cleanup(func() { cfg.CacheEnabled = old })

	input := manifestInput{Content: testutil.ShopManifestYAML}
	loaded1, err := input.resolve()
	require.NoError(t, err)
	loaded2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, loaded1, loaded2)
	assert.Equal(t, 0, manifestCache.size())
}

func TestManifestCache_LRUEviction(t *testing.T) {
	manifestCache.reset()

	var firstKey string
	for i := range 11 {
		content := "groups:\n  - name: g" + string(rune('a'+i)) + "\n    operations: []\n"
		input := manifestInput{Content: content}
		if i == 0 {
			firstKey = makeCacheKey(input)
		}
		_, err := input.resolve()
		require.NoError(t, err)
	}

	assert.Equal(t, 10, manifestCache.size())
	assert.Nil(t, manifestCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestManifestCache_Sweep(t *testing.T) {
	manifestCache.reset()
	manifestCache.putWithTTL("stale", &loadedManifest{}, -time.Second)
	manifestCache.putWithTTL("fresh", &loadedManifest{}, time.Hour)

	manifestCache.sweep()

	assert.Equal(t, 1, manifestCache.size())
	assert.NotNil(t, manifestCache.get("fresh"))
	assert.Nil(t, manifestCache.get("stale"))
}

func TestMakeCacheKey(t *testing.T) {
	assert.Empty(t, makeCacheKey(manifestInput{}))
	assert.Empty(t, makeCacheKey(manifestInput{File: "/nonexistent/shop.yaml"}))
	assert.True(t, strings.HasPrefix(makeCacheKey(manifestInput{Content: "x"}), "content:"))

	path := testutil.WriteTempFile(t, "shop.yaml", testutil.ShopManifestYAML)
	assert.True(t, strings.HasPrefix(makeCacheKey(manifestInput{File: path}), "file:"))
}
