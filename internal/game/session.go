package game

import "github.com/Garsondee/Fly-Squasher/internal/level"

// State is the session phase.
type State int

const (
	StateStart State = iota
	StatePlaying
	StatePaused
	StateLevelClear
	StateGameOver
	StateVictory
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateLevelClear:
		return "LEVEL_CLEAR"
	case StateGameOver:
		return "GAME_OVER"
	case StateVictory:
		return "VICTORY"
	}
	return "UNKNOWN"
}

// Transition describes one state change. FreshLevel is set when entering
// PLAYING requires a newly initialised level (everything except a resume).
type Transition struct {
	From, To   State
	Level      int
	FreshLevel bool
}

// Session is the top-level state machine: which screen is showing and which
// level is current. Listeners run synchronously on every transition.
type Session struct {
	state     State
	level     int
	listeners []func(Transition)
}

// NewSession returns a session on the START screen at level 1.
func NewSession() *Session {
	return &Session{state: StateStart, level: 1}
}

// OnTransition registers fn to run after every state change.
func (s *Session) OnTransition(fn func(Transition)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) State() State { return s.state }
func (s *Session) Level() int   { return s.level }

// Start begins a run at level 1 from the START, GAME_OVER or VICTORY screens.
func (s *Session) Start() bool {
	return s.StartAt(1)
}

// StartAt begins a run at level n, for practice and debugging. It fails on
// the same screens as Start and for levels outside the table.
func (s *Session) StartAt(n int) bool {
	if _, err := level.ConfigFor(n); err != nil {
		return false
	}
	switch s.state {
	case StateStart, StateGameOver, StateVictory:
		s.level = n
		s.transition(StatePlaying, true)
		return true
	}
	return false
}

// LevelCleared moves PLAYING to LEVEL_CLEAR.
func (s *Session) LevelCleared() bool {
	if s.state != StatePlaying {
		return false
	}
	s.transition(StateLevelClear, false)
	return true
}

// GameOver moves PLAYING to GAME_OVER.
func (s *Session) GameOver() bool {
	if s.state != StatePlaying {
		return false
	}
	s.transition(StateGameOver, false)
	return true
}

// NextLevel leaves LEVEL_CLEAR: on to the next level, or VICTORY after the last.
func (s *Session) NextLevel() bool {
	if s.state != StateLevelClear {
		return false
	}
	if level.IsLast(s.level) {
		s.transition(StateVictory, false)
		return true
	}
	s.level++
	s.transition(StatePlaying, true)
	return true
}

// Pause freezes a level in progress.
func (s *Session) Pause() bool {
	if s.state != StatePlaying {
		return false
	}
	s.transition(StatePaused, false)
	return true
}

// Resume continues a paused level where it stopped.
func (s *Session) Resume() bool {
	if s.state != StatePaused {
		return false
	}
	s.transition(StatePlaying, false)
	return true
}

func (s *Session) transition(to State, fresh bool) {
	t := Transition{From: s.state, To: to, Level: s.level, FreshLevel: fresh}
	s.state = to
	for _, fn := range s.listeners {
		fn(t)
	}
}
