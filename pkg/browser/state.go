// Package browser is the interactive result browser: an explicit state
// machine over one diagnostic report, driven by menu selections.
//
// Front-ends (the line prompter, the promptui prompter and the TUI) only
// feed events in; every state change goes through Transition.
package browser

import (
	"errors"
	"fmt"
)

// State is a browser state.
type State int

const (
	Summary State = iota
	DetailOne
	DetailAll
	Rerun
	Clean
	Quit
)

var stateNames = [...]string{
	Summary:   "summary",
	DetailOne: "detail-one",
	DetailAll: "detail-all",
	Rerun:     "rerun",
	Clean:     "clean",
	Quit:      "quit",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether the session ends in s.
func (s State) Terminal() bool { return s == Clean || s == Quit }

// Event is an input to the state machine: a menu choice, an
// acknowledgement, or the outcome of a rerun.
type Event int

const (
	ChooseDetailOne Event = iota + 1
	ChooseSummary
	ChooseDetailAll
	ChooseRerun
	ChooseQuit
	Ack
	RerunClean
	RerunIssues
)

var eventNames = map[Event]string{
	ChooseDetailOne: "choose-detail-one",
	ChooseSummary:   "choose-summary",
	ChooseDetailAll: "choose-detail-all",
	ChooseRerun:     "choose-rerun",
	ChooseQuit:      "choose-quit",
	Ack:             "ack",
	RerunClean:      "rerun-clean",
	RerunIssues:     "rerun-issues",
}

func (e Event) String() string {
	if n, ok := eventNames[e]; ok {
		return n
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// ErrInvalidTransition is returned for an event the current state does not
// accept.
var ErrInvalidTransition = errors.New("invalid transition")

var transitions = map[State]map[Event]State{
	Summary: {
		ChooseDetailOne: DetailOne,
		ChooseSummary:   Summary,
		ChooseDetailAll: DetailAll,
		ChooseRerun:     Rerun,
		ChooseQuit:      Quit,
	},
	DetailOne: {Ack: Summary},
	DetailAll: {Ack: Summary},
	Rerun: {
		RerunClean:  Clean,
		RerunIssues: Summary,
	},
}

// Transition returns the state reached from `from` on ev.
func Transition(from State, ev Event) (State, error) {
	if to, ok := transitions[from][ev]; ok {
		return to, nil
	}
	return from, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, from, ev)
}
