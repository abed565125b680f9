package nfa

// The combinators below are the primitive constructions of Thompson's
// algorithm ("Engineering a Compiler", section 2.4.2). The binary ones
// are destructive: the first handle becomes the combined automaton and
// the second is abandoned in place.

// SingleSymbol builds an automaton accepting exactly one symbol:
//
//	>(s) --sym--> ((a))
func (p *Pools) SingleSymbol(symbol byte) (int, error) {
	h, e := p.NewNFA()
	if e != nil {
		return -1, e
	}

	n := p.NFA(h)
	e = p.addEdge(n.Start, n.Accept, symbol)
	if e != nil {
		return -1, e
	}
	return h, nil
}

// TerminalChain builds a chain automaton for a multi-byte terminal, one
// byte-labelled edge per byte. The terminal must not be empty.
func (p *Pools) TerminalChain(term []byte) (int, error) {
	if len(term) == 0 {
		panic("cannot build an NFA for an empty terminal")
	}

	start, e := p.NewState(Start)
	if e != nil {
		return -1, e
	}

	prev := start
	for _, b := range term {
		next, e := p.NewState(Internal)
		if e != nil {
			return -1, e
		}
		e = p.addEdge(prev, next, b)
		if e != nil {
			return -1, e
		}
		prev = next
	}
	p.states[prev].Type = Accepting

	return p.newHandle(start, prev)
}

// Concat appends automaton b to automaton a:
//
//	>(as) --> ((aa)) --eps--> (bs) --> ((ba))
//
// a's handle covers the result; b's is abandoned.
func (p *Pools) Concat(a, b int) error {
	if a == b {
		panic("cannot concatenate an NFA to itself")
	}

	na, nb := p.NFA(a), p.NFA(b)
	p.states[na.Accept].Type = Internal
	e := p.addEdge(na.Accept, nb.Start, Epsilon)
	if e != nil {
		return e
	}
	p.states[nb.Start].Type = Internal
	na.Accept = nb.Accept
	return nil
}

// Or joins automata a and b under a fresh start/accepting pair:
//
//	       eps--> (as) ... ((aa)) --eps
//	>(s) --|                         |--> ((acc))
//	       eps--> (bs) ... ((ba)) --eps
//
// a's handle covers the result; b's is abandoned.
func (p *Pools) Or(a, b int) error {
	if a == b {
		panic("cannot alternate an NFA with itself")
	}

	newStart, e := p.NewState(Start)
	if e != nil {
		return e
	}
	newAccept, e := p.NewState(Accepting)
	if e != nil {
		return e
	}

	na, nb := p.NFA(a), p.NFA(b)
	aStart, aAccept := na.Start, na.Accept
	bStart, bAccept := nb.Start, nb.Accept
	for _, s := range []int{aStart, aAccept, bStart, bAccept} {
		p.states[s].Type = Internal
	}

	e = p.addEdge(newStart, aStart, Epsilon)
	if e != nil {
		return e
	}
	e = p.addEdge(newStart, bStart, Epsilon)
	if e != nil {
		return e
	}
	e = p.addEdge(aAccept, newAccept, Epsilon)
	if e != nil {
		return e
	}
	e = p.addEdge(bAccept, newAccept, Epsilon)
	if e != nil {
		return e
	}

	na.Start, na.Accept = newStart, newAccept
	return nil
}

// Closure builds the Kleene closure of automaton a:
//
//	         +-------------eps------------+
//	         |                            v
//	>(s) --eps--> (as) ... ((aa)) --eps--> ((acc))
//	               ^              |
//	               +-----eps------+
//
// a's handle is rewritten to the new endpoints.
func (p *Pools) Closure(a int) error {
	newStart, e := p.NewState(Start)
	if e != nil {
		return e
	}
	newAccept, e := p.NewState(Accepting)
	if e != nil {
		return e
	}

	n := p.NFA(a)
	aStart, aAccept := n.Start, n.Accept
	p.states[aStart].Type = Internal
	p.states[aAccept].Type = Internal

	e = p.addEdge(newStart, aStart, Epsilon)
	if e != nil {
		return e
	}
	e = p.addEdge(newStart, newAccept, Epsilon)
	if e != nil {
		return e
	}
	e = p.addEdge(aAccept, aStart, Epsilon)
	if e != nil {
		return e
	}
	e = p.addEdge(aAccept, newAccept, Epsilon)
	if e != nil {
		return e
	}

	n.Start, n.Accept = newStart, newAccept
	return nil
}
