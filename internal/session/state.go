package session

// Phase is the engine's position in a quiz session.
type Phase int

const (
	PhaseIdle     Phase = iota // No pass running
	PhaseInPass                // Questions remain in the current pass
	PhaseComplete              // Current pass fully answered
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInPass:
		return "in-pass"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// Config selects the quiz modes for a session.
type Config struct {
	// NoFail restarts the session from the first question on any miss.
	NoFail bool

	// LearnMode re-asks missed questions in review passes until none are missed.
	LearnMode bool

	// Randomize shuffles the question order at the start of every pass.
	Randomize bool

	// Timed records the wall-clock duration of the session.
	Timed bool
}

// Outcome tells the caller what happened after an answer was recorded.
type Outcome int

const (
	OutcomeContinue Outcome = iota // Show the next question of the same pass
	OutcomeRestart                 // A miss in no-fail mode restarted the session
	OutcomeReview                  // A review pass over missed questions began
	OutcomeFinished                // Nothing left to ask; call EndSession
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeRestart:
		return "restart"
	case OutcomeReview:
		return "review"
	case OutcomeFinished:
		return "finished"
	}
	return "unknown"
}
