package nfa

import (
	"fmt"
	"io"
)

// WriteDot renders the automaton behind handle h as a Graphviz digraph:
// start and accepting states as filled boxes, epsilon edges labelled
// "eps". Visited states are marked and the marks are not reset.
func (p *Pools) WriteDot(w io.Writer, h int) {
	fmt.Fprintln(w, "digraph NFA {")
	p.writeDotState(w, p.nfas[h].Start)
	fmt.Fprintln(w, "}")
}

func (p *Pools) writeDotState(w io.Writer, stateIdx int) {
	s := &p.states[stateIdx]
	if s.mark {
		return
	}
	s.mark = true

	switch s.Type {
	case Start:
		fmt.Fprintf(w, "\tS%d [shape=box,style=filled,color=green];\n", stateIdx)
	case Accepting:
		fmt.Fprintf(w, "\tS%d [shape=box,style=filled,color=red];\n", stateIdx)
	}

	for _, ei := range s.Edges {
		edge := p.edges[ei]
		if edge.Symbol == Epsilon {
			fmt.Fprintf(w, "\tS%d -> S%d [label=\"eps\"];\n", stateIdx, edge.Target)
		} else {
			fmt.Fprintf(w, "\tS%d -> S%d [label=\"%c\"];\n", stateIdx, edge.Target, edge.Symbol)
		}
	}

	for _, ei := range s.Edges {
		p.writeDotState(w, p.edges[ei].Target)
	}
}
