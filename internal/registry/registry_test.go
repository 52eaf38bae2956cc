package registry_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danlester/mcpdoc/internal/registry"
	"github.com/danlester/mcpdoc/internal/sources"
)

func remoteSource(name string) sources.DocSource {
	return sources.DocSource{
		Name:    name,
		LlmsTxt: fmt.Sprintf("https://%s.example.com/llms.txt", name),
	}
}

func TestRegistry_Add(t *testing.T) {
	t.Parallel()

	reg := registry.New(sources.NewResolver(sources.DefaultMaxToolNameLength))

	resolved, err := reg.Add(remoteSource("alpha"))
	require.NoError(t, err)
	assert.Equal(t, "fetch_docs_alpha", resolved.ToolName)

	resolved, err = reg.Add(remoteSource("beta"))
	require.NoError(t, err)
	assert.Equal(t, "fetch_docs_beta", resolved.ToolName)

	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "beta", list[1].Name)
}

func TestRegistry_Add_DuplicateName(t *testing.T) {
	t.Parallel()

	reg := registry.New(sources.NewResolver(sources.DefaultMaxToolNameLength))

	_, err := reg.Add(remoteSource("alpha"))
	require.NoError(t, err)

	_, err = reg.Add(remoteSource("alpha"))
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrDuplicateToolName)

	// The failed add must not mutate anything.
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, []string{"fetch_docs_alpha"}, reg.BoundNames())
}

func TestRegistry_Add_TruncationCollision(t *testing.T) {
	t.Parallel()

	// With a tight cap every name truncates to the same tool name.
	reg := registry.New(sources.NewResolver(10))

	_, err := reg.Add(remoteSource("alpha"))
	require.NoError(t, err)

	_, err = reg.Add(remoteSource("beta"))
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrDuplicateToolName)

	list := reg.List()
	require.Len(t, list, 1)
	assert.Equal(t, "alpha", list[0].Name)
}

func TestRegistry_Remove(t *testing.T) {
	t.Parallel()

	reg := registry.New(sources.NewResolver(sources.DefaultMaxToolNameLength))

	_, err := reg.Add(remoteSource("alpha"))
	require.NoError(t, err)
	_, err = reg.Add(remoteSource("beta"))
	require.NoError(t, err)

	toolName, removed := reg.Remove("alpha")
	assert.True(t, removed)
	assert.Equal(t, "fetch_docs_alpha", toolName)

	list := reg.List()
	require.Len(t, list, 1)
	assert.Equal(t, "beta", list[0].Name)
	assert.Equal(t, []string{"fetch_docs_beta"}, reg.BoundNames())

	// Removing again is an idempotent no-op.
	_, removed = reg.Remove("alpha")
	assert.False(t, removed)
	assert.Equal(t, 1, reg.Len())

	// The released name can be reused.
	_, err = reg.Add(remoteSource("alpha"))
	require.NoError(t, err)
}

func TestRegistry_Find(t *testing.T) {
	t.Parallel()

	reg := registry.New(sources.NewResolver(sources.DefaultMaxToolNameLength))

	_, err := reg.Add(remoteSource("alpha"))
	require.NoError(t, err)

	resolved, ok := reg.Find("alpha")
	require.True(t, ok)
	assert.Equal(t, "fetch_docs_alpha", resolved.ToolName)

	_, ok = reg.Find("missing")
	assert.False(t, ok)
}

// The bound-name set must always equal exactly the tool names derivable from
// the current sequence, across any interleaving of adds and removes.
func TestRegistry_BoundNamesMatchSequence(t *testing.T) {
	t.Parallel()

	resolver := sources.NewResolver(sources.DefaultMaxToolNameLength)
	reg := registry.New(resolver)
	rng := rand.New(rand.NewSource(42))

	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("source%02d", i)
	}

	for step := 0; step < 500; step++ {
		name := names[rng.Intn(len(names))]
		if rng.Intn(2) == 0 {
			_, _ = reg.Add(remoteSource(name))
		} else {
			_, _ = reg.Remove(name)
		}

		expected := make([]string, 0, reg.Len())
		for _, src := range reg.List() {
			resolved, err := resolver.Resolve(src)
			require.NoError(t, err)
			expected = append(expected, resolved.ToolName)
		}
		actual := reg.BoundNames()
		sort.Strings(expected)
		sort.Strings(actual)
		require.Equal(t, expected, actual, "bound names diverged from sequence at step %d", step)
	}
}
