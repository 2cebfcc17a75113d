package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/flashquiz/internal/deck"
)

var (
	// ErrState reports an operation that is invalid in the engine's current phase.
	ErrState = errors.New("invalid session state")

	// ErrRange reports an entry index outside the question set.
	ErrRange = errors.New("index out of range")
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used for timed sessions.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand sets the random source used by Shuffle.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger attaches a logger for load, save, and pass transitions.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine owns one question set and the progress of a quiz over it.
//
// The master list is the loaded set and is the only list edits touch. Each
// pass quizzes a private snapshot (the active list): the whole master list on
// a first pass, the missed entries on a review pass. Edits made while a pass
// is running therefore only show up once the next session starts.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	src  deck.Source
	name string

	master    []deck.Entry
	active    []deck.Entry
	order     []int
	correct   []deck.Entry
	incorrect []deck.Entry

	phase     Phase
	pass      int
	cfg       Config
	sessionID string
	startedAt time.Time

	now func() time.Time
	rng *rand.Rand
	log *zap.Logger
}

// New creates an Engine that loads and saves sets through src.
func New(src deck.Source, opts ...Option) *Engine {
	e := &Engine{
		src:    src,
		master: []deck.Entry{},
		active: []deck.Entry{},
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the master list with the named set. On failure the previous
// master list is kept. A running pass keeps quizzing its own snapshot.
func (e *Engine) Load(ctx context.Context, name string) error {
	entries, err := e.src.Load(ctx, name)
	if err != nil {
		e.log.Warn("load failed", zap.String("set", name), zap.Error(err))
		return err
	}

	e.name = name
	e.master = deck.Clone(entries)
	if e.phase == PhaseIdle {
		e.active = deck.Clone(e.master)
	}
	e.log.Info("set loaded", zap.String("set", name), zap.Int("entries", len(e.master)))
	return nil
}

// Save writes the master list to dest, overwriting it.
func (e *Engine) Save(ctx context.Context, dest string) error {
	if err := e.src.Save(ctx, dest, deck.Clone(e.master)); err != nil {
		e.log.Warn("save failed", zap.String("set", dest), zap.Error(err))
		return err
	}
	e.log.Info("set saved", zap.String("set", dest), zap.Int("entries", len(e.master)))
	return nil
}

// Reset starts a pass over the active list in its stored order.
// A pass counter still at zero becomes 1.
func (e *Engine) Reset() {
	if e.pass == 0 {
		e.pass = 1
	}
	e.order = make([]int, len(e.active))
	for i := range e.order {
		e.order[i] = i
	}
	e.correct = []deck.Entry{}
	e.incorrect = []deck.Entry{}

	e.phase = PhaseInPass
	if len(e.order) == 0 {
		e.phase = PhaseComplete
	}
}

// Shuffle permutes the questions left in the current pass uniformly at random.
func (e *Engine) Shuffle() {
	for i := len(e.order) - 1; i > 0; i-- {
		j := e.intN(i + 1)
		e.order[i], e.order[j] = e.order[j], e.order[i]
	}
}

func (e *Engine) intN(n int) int {
	if e.rng != nil {
		return e.rng.IntN(n)
	}
	return rand.IntN(n)
}

// CurrentQuestion returns the prompt at the head of the pass.
func (e *Engine) CurrentQuestion() (string, error) {
	if len(e.order) == 0 {
		return "", fmt.Errorf("%w: no question remaining (phase %s)", ErrState, e.phase)
	}
	return e.active[e.order[0]].Prompt, nil
}

// SubmitAnswer grades response against the current entry by exact string
// comparison and consumes it. On a miss the correct answer is returned for
// display; on a match ok is true and corrective is empty.
func (e *Engine) SubmitAnswer(response string) (corrective string, ok bool, err error) {
	if len(e.order) == 0 {
		return "", false, fmt.Errorf("%w: no question remaining (phase %s)", ErrState, e.phase)
	}

	entry := e.active[e.order[0]]
	e.order = e.order[1:]

	if response == entry.Answer {
		e.correct = append(e.correct, entry)
		ok = true
	} else {
		e.incorrect = append(e.incorrect, entry)
		corrective = entry.Answer
	}

	if len(e.order) == 0 {
		e.phase = PhaseComplete
		e.log.Debug("pass complete",
			zap.String("session", e.sessionID),
			zap.Int("pass", e.pass),
			zap.Int("correct", len(e.correct)),
			zap.Int("incorrect", len(e.incorrect)),
		)
	}
	return corrective, ok, nil
}

// BeginReviewPass makes the missed entries the active list and resets. It
// returns false, changing nothing, when there were no misses.
func (e *Engine) BeginReviewPass() bool {
	if len(e.incorrect) == 0 {
		return false
	}
	e.active = deck.Clone(e.incorrect)
	e.pass++
	e.Reset()
	e.log.Debug("review pass started",
		zap.String("session", e.sessionID),
		zap.Int("pass", e.pass),
		zap.Int("questions", len(e.active)),
	)
	return true
}

// AddQuestion appends entry to the master list.
func (e *Engine) AddQuestion(entry deck.Entry) {
	e.master = append(e.master, entry)
	e.syncIdle()
}

// DeleteQuestion removes the master-list entry at index.
func (e *Engine) DeleteQuestion(index int) error {
	if index < 0 || index >= len(e.master) {
		return fmt.Errorf("%w: index %d, set has %d entries", ErrRange, index, len(e.master))
	}
	e.master = slices.Delete(e.master, index, index+1)
	e.syncIdle()
	return nil
}

// syncIdle keeps the active list equal to the master list while no pass runs.
func (e *Engine) syncIdle() {
	if e.phase == PhaseIdle {
		e.active = deck.Clone(e.master)
	}
}

// Start begins a session over the whole master list using cfg.
func (e *Engine) Start(cfg Config) {
	e.cfg = cfg
	e.sessionID = uuid.NewString()
	e.startFirstPass()
	e.log.Info("session started",
		zap.String("session", e.sessionID),
		zap.String("set", e.name),
		zap.Int("questions", len(e.active)),
		zap.Bool("no_fail", cfg.NoFail),
		zap.Bool("learn_mode", cfg.LearnMode),
		zap.Bool("randomize", cfg.Randomize),
		zap.Bool("timed", cfg.Timed),
	)
}

func (e *Engine) startFirstPass() {
	e.active = deck.Clone(e.master)
	e.pass = 1
	e.startedAt = time.Time{}
	if e.cfg.Timed {
		e.startedAt = e.now()
	}
	e.Reset()
	if e.cfg.Randomize {
		e.Shuffle()
	}
}

// Advance applies the session modes after an answer and reports what the
// caller should show next.
func (e *Engine) Advance() Outcome {
	if e.cfg.NoFail && len(e.incorrect) > 0 {
		e.log.Debug("miss in no-fail mode, restarting", zap.String("session", e.sessionID))
		e.startFirstPass()
		return OutcomeRestart
	}
	if len(e.order) > 0 {
		return OutcomeContinue
	}
	if e.cfg.LearnMode && e.BeginReviewPass() {
		if e.cfg.Randomize {
			e.Shuffle()
		}
		return OutcomeReview
	}
	return OutcomeFinished
}

// Elapsed returns the running time of a timed session, or zero.
func (e *Engine) Elapsed() time.Duration {
	if !e.cfg.Timed || e.startedAt.IsZero() {
		return 0
	}
	return e.now().Sub(e.startedAt)
}

// EndSession summarizes the session and returns the engine to idle. The
// final pass's correct and incorrect lists stay readable until the next pass.
func (e *Engine) EndSession() Summary {
	sum := Summary{
		SetName:   e.name,
		SessionID: e.sessionID,
		Correct:   len(e.correct),
		Incorrect: len(e.incorrect),
		Total:     len(e.active),
		Passes:    e.pass,
		Timed:     e.cfg.Timed,
		Elapsed:   e.Elapsed(),
	}

	e.order = nil
	e.phase = PhaseIdle
	e.active = deck.Clone(e.master)
	e.startedAt = time.Time{}

	e.log.Info("session ended",
		zap.String("session", sum.SessionID),
		zap.Int("correct", sum.Correct),
		zap.Int("incorrect", sum.Incorrect),
		zap.Int("passes", sum.Passes),
		zap.Duration("elapsed", sum.Elapsed),
	)
	return sum
}

// Name returns the name of the loaded set.
func (e *Engine) Name() string { return e.name }

// Entries returns a copy of the master list.
func (e *Engine) Entries() []deck.Entry { return deck.Clone(e.master) }

// Len returns the number of entries in the master list.
func (e *Engine) Len() int { return len(e.master) }

// Active returns a copy of the list quizzed by the current pass.
func (e *Engine) Active() []deck.Entry { return deck.Clone(e.active) }

// Correct returns the entries answered correctly in the current pass.
func (e *Engine) Correct() []deck.Entry { return deck.Clone(e.correct) }

// Incorrect returns the entries missed in the current pass.
func (e *Engine) Incorrect() []deck.Entry { return deck.Clone(e.incorrect) }

func (e *Engine) CorrectCount() int   { return len(e.correct) }
func (e *Engine) IncorrectCount() int { return len(e.incorrect) }

// Remaining returns how many questions are left in the current pass.
func (e *Engine) Remaining() int { return len(e.order) }

func (e *Engine) Phase() Phase      { return e.phase }
func (e *Engine) Pass() int         { return e.pass }
func (e *Engine) Config() Config    { return e.cfg }
func (e *Engine) SessionID() string { return e.sessionID }
