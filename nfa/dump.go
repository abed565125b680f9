package nfa

import (
	"fmt"
	"io"
)

// Dump writes a plain-text listing of the automaton behind handle h,
// one state per paragraph. It shares the visit marks with WriteDot;
// call ResetMarks before reusing either on the same pools.
func (p *Pools) Dump(w io.Writer, h int) {
	p.dumpState(w, p.nfas[h].Start)
}

func (p *Pools) dumpState(w io.Writer, stateIdx int) {
	s := &p.states[stateIdx]
	if s.mark {
		return
	}
	s.mark = true

	fmt.Fprintf(w, "State %d", stateIdx)
	switch s.Type {
	case Start:
		fmt.Fprint(w, " <start>")
	case Accepting:
		fmt.Fprint(w, " <accept>")
	}
	fmt.Fprintln(w)

	for _, ei := range s.Edges {
		edge := p.edges[ei]
		if edge.Symbol == Epsilon {
			fmt.Fprintf(w, "\t==(eps)==> State %d\n", edge.Target)
		} else {
			fmt.Fprintf(w, "\t==(Symbol %c)==> State %d\n", edge.Symbol, edge.Target)
		}
	}

	for _, ei := range s.Edges {
		p.dumpState(w, p.edges[ei].Target)
	}
}
