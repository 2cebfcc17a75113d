package session

import "time"

// Summary holds the data displayed when a session ends.
type Summary struct {
	SetName   string
	SessionID string
	Correct   int // correct answers in the final pass
	Incorrect int // incorrect answers in the final pass
	Total     int // questions in the final pass
	Passes    int
	Timed     bool
	Elapsed   time.Duration // zero unless Timed
}

// Accuracy returns the fraction of final-pass questions answered correctly.
func (s Summary) Accuracy() float64 {
	answered := s.Correct + s.Incorrect
	if answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(answered)
}
