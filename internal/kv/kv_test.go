package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behavior every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetMany(ctx, map[string][]byte{
		"general.autoSave":       []byte("true"),
		"general.maxRecentItems": []byte("12"),
	}))

	v, ok, err := s.Get(ctx, "general.autoSave")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", string(v))

	require.NoError(t, s.SetMany(ctx, map[string][]byte{"general.autoSave": []byte("false")}))
	v, _, err = s.Get(ctx, "general.autoSave")
	require.NoError(t, err)
	assert.Equal(t, "false", string(v))

	require.NoError(t, s.Delete(ctx, "general.autoSave", "never.set"))
	_, ok, err = s.Get(ctx, "general.autoSave")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.Get(ctx, "general.maxRecentItems")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "12", string(v))

	require.NoError(t, s.SetMany(ctx, nil))
	require.NoError(t, s.Delete(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	in := []byte("abc")
	require.NoError(t, m.SetMany(ctx, map[string][]byte{"k": in}))
	in[0] = 'z'

	out, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[0] = 'y'
	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	s, err := OpenFile(path, nil)
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.toml")

	s, err := OpenFile(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetMany(ctx, map[string][]byte{
		"appearance.selectedTheme": []byte("Dark"),
		"appearance.sidebarWidth":  []byte("300"),
	}))

	reopened, err := OpenFile(path, nil)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "appearance.selectedTheme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Dark", string(v))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	s, err := OpenFile(path, nil)
	require.NoError(t, err)
	_, ok, err := s.Get(context.Background(), "general.autoSave")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_RejectsBinaryValues(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "settings.toml"), nil)
	require.NoError(t, err)
	err = s.SetMany(context.Background(), map[string][]byte{"k": {0xff, 0xfe}})
	assert.Error(t, err)
}

func TestOpenFile_EmptyPath(t *testing.T) {
	_, err := OpenFile("  ", nil)
	assert.Error(t, err)
}

func TestRedisStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("APPSHELL_TEST_REDIS_URL")
	if url == "" {
		t.Skip("APPSHELL_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	s, err := OpenRedis(ctx, url, "appshell:test:"+t.Name()+":")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Delete(ctx, "general.autoSave", "general.maxRecentItems")
		_ = s.Close()
	})
	exerciseStore(t, s)
}

func TestOpenRedis_BadURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "://nope", "")
	assert.Error(t, err)
}
