// Package nfa assembles a non-deterministic finite automaton from a
// parsed token specification using Thompson's construction. States,
// edges and automaton handles live in bounded pools and are addressed
// by allocation index; combinators mutate handles through the pools so
// the result is visible to every alias.
package nfa

import (
	"github.com/lexnfa/lexnfa/errors"
)

type StateType int

const (
	Start StateType = iota
	Internal
	Accepting
)

// Epsilon is the empty transition; the zero byte is not a legal
// alphabet symbol.
const Epsilon byte = 0

type State struct {
	Edges []int
	Type  StateType
	mark  bool
}

type Edge struct {
	Target int
	Symbol byte
}

// NFA identifies one automaton by its start and its unique accepting
// state. Combinators rewrite these fields in place; states abandoned on
// the way stay in the pool unreferenced.
type NFA struct {
	Start, Accept int
}

type Pools struct {
	states []State
	edges  []Edge
	nfas   []NFA

	edgesPerState int
}

func NewPools(maxStates, maxEdges, edgesPerState, maxNFAs int) *Pools {
	return &Pools{
		states:        make([]State, 0, maxStates),
		edges:         make([]Edge, 0, maxEdges),
		nfas:          make([]NFA, 0, maxNFAs),
		edgesPerState: edgesPerState,
	}
}

func (p *Pools) NewState(t StateType) (int, error) {
	if len(p.states) == cap(p.states) {
		return -1, errors.Format(errors.CapacityExceededError, "NFA state pool is out of memory")
	}
	p.states = append(p.states, State{Type: t})
	return len(p.states) - 1, nil
}

func (p *Pools) NewEdge(target int, symbol byte) (int, error) {
	if len(p.edges) == cap(p.edges) {
		return -1, errors.Format(errors.CapacityExceededError, "NFA edge pool is out of memory")
	}
	p.edges = append(p.edges, Edge{target, symbol})
	return len(p.edges) - 1, nil
}

// NewNFA allocates a fresh start/accepting state pair and a handle for
// it.
func (p *Pools) NewNFA() (int, error) {
	start, e := p.NewState(Start)
	if e != nil {
		return -1, e
	}
	accept, e := p.NewState(Accepting)
	if e != nil {
		return -1, e
	}
	return p.newHandle(start, accept)
}

func (p *Pools) newHandle(start, accept int) (int, error) {
	if len(p.nfas) == cap(p.nfas) {
		return -1, errors.Format(errors.CapacityExceededError, "NFA handle pool is out of memory")
	}
	p.nfas = append(p.nfas, NFA{start, accept})
	return len(p.nfas) - 1, nil
}

func (p *Pools) addEdge(from, target int, symbol byte) error {
	s := &p.states[from]
	if len(s.Edges) >= p.edgesPerState {
		return errors.Format(errors.CapacityExceededError, "state %d has too many outgoing edges", from)
	}

	ei, e := p.NewEdge(target, symbol)
	if e != nil {
		return e
	}
	s.Edges = append(s.Edges, ei)
	return nil
}

func (p *Pools) State(i int) *State {
	return &p.states[i]
}

func (p *Pools) Edge(i int) *Edge {
	return &p.edges[i]
}

func (p *Pools) NFA(i int) *NFA {
	return &p.nfas[i]
}

func (p *Pools) StateCount() int {
	return len(p.states)
}

func (p *Pools) EdgeCount() int {
	return len(p.edges)
}

func (p *Pools) NFACount() int {
	return len(p.nfas)
}

// ResetMarks clears the visit marks left behind by Dump and WriteDot so
// another traversal can run.
func (p *Pools) ResetMarks() {
	for i := range p.states {
		p.states[i].mark = false
	}
}
