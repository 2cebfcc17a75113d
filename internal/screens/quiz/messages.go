package quiz

import "time"

// timerTickMsg is sent every second while a timed session runs.
type timerTickMsg time.Time

// feedbackDoneMsg is sent when the corrective answer is dismissed.
type feedbackDoneMsg struct{}

// quitConfirmedMsg is sent when the player ends the session early.
type quitConfirmedMsg struct{}
