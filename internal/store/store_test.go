package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/deck"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Sets().Save(ctx, "capitals", []deck.Entry{{Prompt: "France", Answer: "Paris"}}))
	require.NoError(t, s.Close())

	// Migration on an existing file is a no-op.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Sets().Load(ctx, "capitals")
	require.NoError(t, err)
	assert.Equal(t, []deck.Entry{{Prompt: "France", Answer: "Paris"}}, got)
}

func TestSetRepo_SaveLoad(t *testing.T) {
	repo := openTestStore(t).Sets()
	ctx := context.Background()

	entries := []deck.Entry{
		{Prompt: "2+2", Answer: "4"},
		{Prompt: "a, b", Answer: `"quoted"`},
		{Prompt: "2+2", Answer: "4"},
		{Prompt: "", Answer: " padded "},
	}
	require.NoError(t, repo.Save(ctx, "mixed", entries))

	got, err := repo.Load(ctx, "mixed")
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestSetRepo_SaveReplaces(t *testing.T) {
	repo := openTestStore(t).Sets()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s", []deck.Entry{{Prompt: "a", Answer: "1"}, {Prompt: "b", Answer: "2"}}))
	require.NoError(t, repo.Save(ctx, "s", []deck.Entry{{Prompt: "c", Answer: "3"}}))

	got, err := repo.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, []deck.Entry{{Prompt: "c", Answer: "3"}}, got)
}

func TestSetRepo_SaveLarge(t *testing.T) {
	repo := openTestStore(t).Sets()
	ctx := context.Background()

	entries := make([]deck.Entry, 2*insertBatch+7)
	for i := range entries {
		entries[i] = deck.Entry{Prompt: fmt.Sprintf("q%d", i), Answer: strconv.Itoa(i * i)}
	}
	require.NoError(t, repo.Save(ctx, "big", entries))

	got, err := repo.Load(ctx, "big")
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestSetRepo_SaveEmpty(t *testing.T) {
	repo := openTestStore(t).Sets()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "empty", nil))
	got, err := repo.Load(ctx, "empty")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSetRepo_LoadMissing(t *testing.T) {
	repo := openTestStore(t).Sets()
	_, err := repo.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, deck.ErrNotFound)
	assert.ErrorIs(t, err, deck.ErrIO)
}

func TestSetRepo_InvalidName(t *testing.T) {
	repo := openTestStore(t).Sets()
	ctx := context.Background()

	_, err := repo.Load(ctx, "")
	assert.ErrorIs(t, err, deck.ErrInvalidName)
	assert.ErrorIs(t, repo.Save(ctx, "", nil), deck.ErrInvalidName)
	assert.ErrorIs(t, repo.Delete(ctx, ""), deck.ErrInvalidName)
}

func TestSetRepo_List(t *testing.T) {
	repo := openTestStore(t).Sets()
	ctx := context.Background()

	sets, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sets)

	require.NoError(t, repo.Save(ctx, "zoology", []deck.Entry{{Prompt: "a", Answer: "b"}}))
	require.NoError(t, repo.Save(ctx, "algebra", []deck.Entry{{Prompt: "x", Answer: "1"}, {Prompt: "y", Answer: "2"}}))
	require.NoError(t, repo.Save(ctx, "blank", nil))

	sets, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []deck.SetInfo{
		{Name: "algebra", Entries: 2},
		{Name: "blank", Entries: 0},
		{Name: "zoology", Entries: 1},
	}, sets)
}

func TestSetRepo_Delete(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sets()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s", []deck.Entry{{Prompt: "a", Answer: "1"}}))
	require.NoError(t, repo.Delete(ctx, "s"))

	_, err := repo.Load(ctx, "s")
	assert.ErrorIs(t, err, deck.ErrNotFound)

	var cards int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM cards").Scan(&cards))
	assert.Zero(t, cards, "cards cascade with their set")

	assert.ErrorIs(t, repo.Delete(ctx, "s"), deck.ErrNotFound)
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "nested", "custom.db")
		t.Setenv("FLASHQUIZ_DB", p)

		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.DirExists(t, filepath.Dir(p))
	})

	t.Run("xdg data home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("FLASHQUIZ_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)

		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "flashquiz", "archive.db"), got)
		assert.DirExists(t, filepath.Join(dir, "flashquiz"))
	})
}
