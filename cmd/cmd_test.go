package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/session"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so tests don't leak settings.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func testDirs(t *testing.T) (setsDir, dbPath string) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("FLASHQUIZ_DB", "")
	return filepath.Join(root, "Questions"), filepath.Join(root, "archive.db")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "flashquiz (devel)\n", out)
}

func TestSets_AddShowDelete(t *testing.T) {
	dir, _ := testDirs(t)

	out, err := execute(t, "", "sets", "add", "math.txt", "2+2", "4", "--sets-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "math.txt now has 1 questions")

	_, err = execute(t, "", "sets", "add", "math.txt", "3+3", "6", "--sets-dir", dir)
	require.NoError(t, err)

	out, err = execute(t, "", "sets", "show", "math.txt", "--sets-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "   1  2+2, 4")
	assert.Contains(t, out, "   2  3+3, 6")

	out, err = execute(t, "", "sets", "delete", "math.txt", "1", "--sets-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2+2, 4")

	entries, err := deck.NewDir(dir).Load(context.Background(), "math.txt")
	require.NoError(t, err)
	assert.Equal(t, []deck.Entry{{Prompt: "3+3", Answer: "6"}}, entries)
}

func TestSets_DeleteOutOfRange(t *testing.T) {
	dir, _ := testDirs(t)
	_, err := execute(t, "", "sets", "add", "math.txt", "2+2", "4", "--sets-dir", dir)
	require.NoError(t, err)

	_, err = execute(t, "", "sets", "delete", "math.txt", "5", "--sets-dir", dir)
	assert.ErrorIs(t, err, session.ErrRange)
}

func TestSets_List(t *testing.T) {
	dir, _ := testDirs(t)

	out, err := execute(t, "", "sets", "list", "--sets-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No sets in")

	_, err = execute(t, "", "sets", "add", "capitals.csv", "France", "Paris", "--sets-dir", dir)
	require.NoError(t, err)
	out, err = execute(t, "", "sets", "list", "--sets-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "capitals.csv")
}

func TestPlay_Console(t *testing.T) {
	dir, _ := testDirs(t)
	require.NoError(t, deck.NewDir(dir).Save(context.Background(), "math.txt", []deck.Entry{
		{Prompt: "2+2", Answer: "4"},
		{Prompt: "3+3", Answer: "6"},
	}))

	out, err := execute(t, "4\n5\n6\n", "play", "math.txt", "--learn", "--sets-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Incorrect. The answer is: 6")
	assert.Contains(t, out, "Review pass 2")
	assert.Contains(t, out, "Passes:    2")
}

func TestPlay_MissingSet(t *testing.T) {
	dir, _ := testDirs(t)
	_, err := execute(t, "", "play", "nope.txt", "--sets-dir", dir)
	assert.ErrorIs(t, err, deck.ErrNotFound)
}

func TestArchive_ImportExport(t *testing.T) {
	dir, db := testDirs(t)
	ctx := context.Background()
	entries := []deck.Entry{{Prompt: "hola", Answer: "hello"}}
	require.NoError(t, deck.NewDir(dir).Save(ctx, "vocab.txt", entries))

	out, err := execute(t, "", "archive", "import", "vocab.txt", "--sets-dir", dir, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "vocab.txt: 1 questions")

	out, err = execute(t, "", "archive", "list", "--sets-dir", dir, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "vocab.txt")

	// Play straight from the archive.
	out, err = execute(t, "hello\n", "play", "vocab.txt", "--archive", "--sets-dir", dir, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Correct!")

	exportDir := filepath.Join(t.TempDir(), "export")
	_, err = execute(t, "", "archive", "export", "vocab.txt", "--sets-dir", exportDir, "--db", db)
	require.NoError(t, err)
	got, err := deck.NewDir(exportDir).Load(ctx, "vocab.txt")
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	_, err = execute(t, "", "archive", "remove", "vocab.txt", "--sets-dir", dir, "--db", db)
	require.NoError(t, err)
	_, err = execute(t, "", "archive", "remove", "vocab.txt", "--sets-dir", dir, "--db", db)
	assert.ErrorIs(t, err, deck.ErrNotFound)
}

func TestPlayConfig_FlagsOverrideDefaults(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().Bool("no-fail", false, "")
	c.Flags().Bool("learn", false, "")
	c.Flags().Bool("random", false, "")
	c.Flags().Bool("timed", false, "")
	require.NoError(t, c.Flags().Parse([]string{"--timed", "--random=false"}))

	cfg := playConfig(c, session.Config{Randomize: true, LearnMode: true})
	assert.Equal(t, session.Config{LearnMode: true, Timed: true}, cfg)
}
