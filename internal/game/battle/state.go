package battle

import "fmt"

// State is the lifecycle state of a session.
type State uint8

const (
	StateInProgress State = iota
	StateVictory          // enemy died
	StateDefeat           // player died
	StateAborted          // cancelled between phases
)

var stateNames = [...]string{
	StateInProgress: "IN_PROGRESS",
	StateVictory:    "VICTORY",
	StateDefeat:     "DEFEAT",
	StateAborted:    "ABORTED",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// Terminal reports whether no further phase may run.
func (s State) Terminal() bool { return s != StateInProgress }

// ParseState resolves a stored state name.
func ParseState(s string) (State, error) {
	for i, n := range stateNames {
		if n == s {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("unknown battle state %q", s)
}
