// Package console runs a quiz over plain stdin and stdout, for terminals
// where the full-screen UI is unwanted.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/flashquiz/internal/session"
)

// ErrQuit is returned when the player ends the session early.
var ErrQuit = errors.New("session ended early")

// quitCommand typed as an answer ends the session.
const quitCommand = ":q"

// maxAnswerBytes caps a single answer line.
const maxAnswerBytes = 1 << 20

// Run quizzes engine's loaded set with cfg, reading one answer per line from
// in. It returns the session summary; when in runs out or the player quits,
// the summary covers the answers given so far and the error is ErrQuit.
func Run(ctx context.Context, engine *session.Engine, cfg session.Config, in io.Reader, out io.Writer) (session.Summary, error) {
	if engine.Len() == 0 {
		return session.Summary{}, fmt.Errorf("set %q has no questions", engine.Name())
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxAnswerBytes)
	engine.Start(cfg)
	fmt.Fprintf(out, "%s: %d questions. Type %s to stop.\n\n", engine.Name(), engine.Len(), quitCommand)

	for {
		if err := ctx.Err(); err != nil {
			engine.EndSession()
			return session.Summary{}, err
		}

		prompt, err := engine.CurrentQuestion()
		if err != nil {
			return engine.EndSession(), err
		}
		fmt.Fprintf(out, "[%d left] %s\n> ", engine.Remaining(), prompt)

		if !scanner.Scan() {
			fmt.Fprintln(out)
			sum := engine.EndSession()
			if err := scanner.Err(); err != nil {
				return sum, fmt.Errorf("read answer: %w", err)
			}
			return sum, ErrQuit
		}
		response := strings.TrimRight(scanner.Text(), "\r")
		if response == quitCommand {
			return engine.EndSession(), ErrQuit
		}

		corrective, ok, err := engine.SubmitAnswer(response)
		if err != nil {
			return engine.EndSession(), err
		}
		if ok {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Incorrect. The answer is: %s\n", corrective)
		}

		switch engine.Advance() {
		case session.OutcomeRestart:
			fmt.Fprintln(out, "\nMissed one in no-fail mode. Starting over.")
		case session.OutcomeReview:
			fmt.Fprintf(out, "\nReview pass %d: %d missed questions.\n", engine.Pass(), engine.Remaining())
		case session.OutcomeFinished:
			return engine.EndSession(), nil
		}
		fmt.Fprintln(out)
	}
}

// PrintSummary writes the end-of-session report.
func PrintSummary(out io.Writer, sum session.Summary) {
	fmt.Fprintf(out, "\n%s\n", sum.SetName)
	fmt.Fprintf(out, "  Correct:   %d\n", sum.Correct)
	fmt.Fprintf(out, "  Incorrect: %d\n", sum.Incorrect)
	fmt.Fprintf(out, "  Accuracy:  %.0f%%\n", sum.Accuracy()*100)
	if sum.Passes > 1 {
		fmt.Fprintf(out, "  Passes:    %d\n", sum.Passes)
	}
	if sum.Timed {
		fmt.Fprintf(out, "  Time:      %s\n", sum.Elapsed.Round(100*time.Millisecond))
	}
}
