package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danlester/mcpdoc/internal/config"
	"github.com/danlester/mcpdoc/internal/sources"
)

func TestStore_Load_MissingFileSelfHeals(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	store := config.NewStore(path)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// The file must now exist and contain an empty list.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestStore_Load_Corrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
	}{
		{name: "not JSON", contents: "not json at all"},
		{name: "JSON object instead of array", contents: `{"name": "x"}`},
		{name: "array of non-objects", contents: `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.contents), 0o600))

			_, err := config.NewStore(path).Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrConfigCorrupt)
		})
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		snapshot []sources.DocSource
	}{
		{name: "empty list", snapshot: []sources.DocSource{}},
		{name: "nil list", snapshot: nil},
		{
			name: "full descriptors",
			snapshot: []sources.DocSource{
				{Name: "LangGraph", LlmsTxt: "https://langchain-ai.github.io/langgraph/llms.txt"},
				{Name: "Local", LlmsTxt: "/tmp/llms.txt", Description: "local docs"},
			},
		},
		{
			name: "non-ASCII names",
			snapshot: []sources.DocSource{
				{Name: "ドキュメント", LlmsTxt: "https://example.jp/llms.txt", Description: "日本語"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.json")
			store := config.NewStore(path)

			require.NoError(t, store.Save(tt.snapshot))

			loaded, err := store.Load()
			require.NoError(t, err)

			expected := tt.snapshot
			if expected == nil {
				expected = []sources.DocSource{}
			}
			assert.Equal(t, expected, loaded)
		})
	}
}

func TestStore_Save_Format(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	store := config.NewStore(path)

	require.NoError(t, store.Save([]sources.DocSource{
		{Name: "ドキュメント", LlmsTxt: "https://example.jp/a?b=1&c=<2>"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	// 2-space indentation, non-ASCII and HTML-significant characters unescaped.
	assert.Contains(t, text, "\n  {")
	assert.Contains(t, text, "ドキュメント")
	assert.Contains(t, text, "a?b=1&c=<2>")
	assert.False(t, strings.Contains(text, `\u`), "expected no unicode escapes in %q", text)
}

func TestStore_Disabled(t *testing.T) {
	t.Parallel()

	store := config.NewStore("")
	assert.False(t, store.Enabled())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, store.Save([]sources.DocSource{{Name: "x", LlmsTxt: "https://example.com/llms.txt"}}))
}

func TestStore_Save_FailsWhenDirectoryMissing(t *testing.T) {
	t.Parallel()

	store := config.NewStore(filepath.Join(t.TempDir(), "missing", "config.json"))
	err := store.Save(nil)
	require.Error(t, err)
}
