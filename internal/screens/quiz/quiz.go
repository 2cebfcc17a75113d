package quiz

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/results"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
)

// QuizScreen runs the passes of a session started on the engine.
type QuizScreen struct {
	engine *session.Engine
	input  components.TextInput

	question           string
	passTotal          int
	showingFeedback    bool
	showingQuitConfirm bool
	lastPrompt         string
	lastResponse       string
	corrective         string
	notice             string
	elapsed            time.Duration
	finished           bool
	errMsg             string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeCapturer = (*QuizScreen)(nil)

// New creates a QuizScreen for a session already started on engine.
func New(engine *session.Engine) *QuizScreen {
	s := &QuizScreen{
		engine: engine,
		input:  components.NewTextInput("Type your answer...", 0),
	}
	s.loadQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Init()}
	if s.engine.Config().Timed {
		cmds = append(cmds, tickCmd())
	}
	if s.engine.Remaining() == 0 {
		cmds = append(cmds, s.finish())
	}
	return tea.Batch(cmds...)
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// CapturesEscape is always true: Esc asks before abandoning the session.
func (s *QuizScreen) CapturesEscape() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick()

	case feedbackDoneMsg:
		s.showingFeedback = false
		return s, s.advance()

	case quitConfirmedMsg:
		s.finished = true
		s.engine.EndSession()
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if !s.showingFeedback && !s.showingQuitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return quitConfirmedMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	// Corrective answer: any key dismisses.
	if s.showingFeedback {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "enter":
		return s.submitAnswer()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submitAnswer grades the typed answer. A miss shows the correct answer
// before the session moves on.
func (s *QuizScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	response := s.input.Value()
	if response == "" {
		return s, nil
	}

	s.notice = ""
	corrective, ok, err := s.engine.SubmitAnswer(response)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.lastPrompt = s.question
	s.lastResponse = response
	if !ok {
		s.corrective = corrective
		s.showingFeedback = true
		s.input.Submit(false)
		return s, nil
	}
	s.notice = "✓ Correct"
	return s, s.advance()
}

// advance asks the engine what follows the last answer.
func (s *QuizScreen) advance() tea.Cmd {
	switch s.engine.Advance() {
	case session.OutcomeRestart:
		s.notice = "Missed one in no-fail mode. Starting over."
	case session.OutcomeReview:
		s.notice = fmt.Sprintf("Review pass %d: %d missed questions", s.engine.Pass(), s.engine.Remaining())
	case session.OutcomeFinished:
		return s.finish()
	}
	s.loadQuestion()
	s.input.Reset()
	return s.input.Focus()
}

func (s *QuizScreen) loadQuestion() {
	q, err := s.engine.CurrentQuestion()
	if err != nil {
		s.question = ""
		return
	}
	s.question = q
	s.passTotal = len(s.engine.Active())
}

// finish closes the session and swaps the quiz for its results.
func (s *QuizScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	s.finished = true
	cfg := s.engine.Config()
	sum := s.engine.EndSession()

	engine := s.engine
	replay := func() screen.Screen {
		engine.Start(cfg)
		return New(engine)
	}
	next := results.New(sum, cfg, replay)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *QuizScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.finished {
		return s, nil
	}
	s.elapsed = s.engine.Elapsed()
	return s, tickCmd()
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
