package compiler

import (
	"github.com/james-lomax/the-last-compiler/internal/naming"
	"github.com/james-lomax/the-last-compiler/internal/prompt"
)

// State is a stage of a single compile request.
//
//	START -> RENDERED -> INVOKED -> REGISTERED
//	                            \-> FAILED
type State string

const (
	StateStart      State = "start"
	StateRendered   State = "rendered"
	StateInvoked    State = "invoked"
	StateRegistered State = "registered"
	StateFailed     State = "failed"
)

var transitions = map[State][]State{
	StateStart:    {StateRendered},
	StateRendered: {StateInvoked},
	StateInvoked:  {StateRegistered, StateFailed},
}

// CanTransition reports whether from -> to is a legal step.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s.
func (s State) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Result describes a compile request as it progressed.
type Result struct {
	RunID    string
	SpecPath string
	Module   naming.ModuleID
	State    State
	History  []State

	// Prompt is set once the prompt has been rendered.
	Prompt *prompt.Prompt

	// AgentExitCode is set once the agent has run.
	AgentExitCode int

	// ManifestChanged is false when the entry was already registered.
	ManifestChanged bool
}

func (r *Result) advance(to State) {
	if !CanTransition(r.State, to) {
		panic("compiler: illegal transition " + string(r.State) + " -> " + string(to))
	}
	r.State = to
	r.History = append(r.History, to)
}
