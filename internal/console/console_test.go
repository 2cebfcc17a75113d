package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/session"
)

func loadedEngine(t *testing.T, entries []deck.Entry) *session.Engine {
	t.Helper()
	src := deck.NewDir(t.TempDir())
	ctx := context.Background()
	require.NoError(t, src.Save(ctx, "math.txt", entries))
	e := session.New(src)
	require.NoError(t, e.Load(ctx, "math.txt"))
	return e
}

var arithmetic = []deck.Entry{
	{Prompt: "2+2", Answer: "4"},
	{Prompt: "3+3", Answer: "6"},
}

func TestRun_PlainSession(t *testing.T) {
	e := loadedEngine(t, arithmetic)
	var out bytes.Buffer

	sum, err := Run(context.Background(), e, session.Config{}, strings.NewReader("4\n7\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 1, sum.Incorrect)
	assert.Equal(t, session.PhaseIdle, e.Phase())

	text := out.String()
	assert.Contains(t, text, "[2 left] 2+2")
	assert.Contains(t, text, "Correct!")
	assert.Contains(t, text, "Incorrect. The answer is: 6")
}

func TestRun_CRLFInput(t *testing.T) {
	e := loadedEngine(t, arithmetic)
	sum, err := Run(context.Background(), e, session.Config{}, strings.NewReader("4\r\n6\r\n"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Correct)
}

func TestRun_LongAnswerLine(t *testing.T) {
	e := loadedEngine(t, arithmetic)
	var out bytes.Buffer

	long := strings.Repeat("x", 200*1024)
	sum, err := Run(context.Background(), e, session.Config{}, strings.NewReader(long+"\n6\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 1, sum.Incorrect)
	assert.Contains(t, out.String(), "The answer is: 4")
}

func TestRun_LearnMode(t *testing.T) {
	e := loadedEngine(t, arithmetic)
	var out bytes.Buffer

	sum, err := Run(context.Background(), e, session.Config{LearnMode: true}, strings.NewReader("4\n0\n6\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Passes)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 0, sum.Incorrect)
	assert.Contains(t, out.String(), "Review pass 2: 1 missed questions.")
}

func TestRun_NoFail(t *testing.T) {
	e := loadedEngine(t, arithmetic)
	var out bytes.Buffer

	sum, err := Run(context.Background(), e, session.Config{NoFail: true}, strings.NewReader("4\n0\n4\n6\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Correct)
	assert.Contains(t, out.String(), "Starting over.")
}

func TestRun_QuitEarly(t *testing.T) {
	e := loadedEngine(t, arithmetic)
	sum, err := Run(context.Background(), e, session.Config{}, strings.NewReader("4\n:q\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, session.PhaseIdle, e.Phase())
}

func TestRun_InputExhausted(t *testing.T) {
	e := loadedEngine(t, arithmetic)
	_, err := Run(context.Background(), e, session.Config{}, strings.NewReader("4\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrQuit)
}

func TestRun_EmptySet(t *testing.T) {
	e := loadedEngine(t, []deck.Entry{})
	_, err := Run(context.Background(), e, session.Config{}, strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
	assert.Equal(t, session.PhaseIdle, e.Phase())
}

func TestRun_Cancelled(t *testing.T) {
	e := loadedEngine(t, arithmetic)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, e, session.Config{}, strings.NewReader("4\n6\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, session.PhaseIdle, e.Phase())
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	PrintSummary(&out, session.Summary{
		SetName:   "math.txt",
		Correct:   3,
		Incorrect: 1,
		Passes:    2,
		Timed:     true,
		Elapsed:   12340 * time.Millisecond,
	})

	text := out.String()
	assert.Contains(t, text, "Correct:   3")
	assert.Contains(t, text, "Accuracy:  75%")
	assert.Contains(t, text, "Passes:    2")
	assert.Contains(t, text, "Time:      12.3s")
}
