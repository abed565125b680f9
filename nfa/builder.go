package nfa

import (
	"github.com/lexnfa/lexnfa/config"
	"github.com/lexnfa/lexnfa/errors"
	"github.com/lexnfa/lexnfa/regex"
)

type builder struct {
	p  *Pools
	rx *regex.Pools
	// non-terminal index to NFA handle, -1 until built
	memo []int
}

// Build compiles every non-terminal into its own automaton in
// definition order, then unions them into the automaton of index 0.
// It returns the pools, the master handle and the per-non-terminal
// handle table.
func Build(rx *regex.Pools, limits config.Limits) (*Pools, int, []int, error) {
	p, handles, e := Compile(rx, limits)
	if e != nil {
		return nil, -1, nil, e
	}

	master, e := p.Union(handles)
	if e != nil {
		return nil, -1, nil, e
	}
	return p, master, handles, nil
}

// Compile builds one automaton per non-terminal, in definition order,
// and returns the handle table. The automata are still separate; Union
// folds them together.
func Compile(rx *regex.Pools, limits config.Limits) (*Pools, []int, error) {
	total := rx.NonTermCount()
	if total == 0 {
		return nil, nil, errors.Format(errors.UndefinedNonTermError,
			"the specification defines no non-terminals")
	}

	b := &builder{
		p:    NewPools(limits.NFAStates, limits.NFAEdges, limits.EdgesPerState, limits.NFAs),
		rx:   rx,
		memo: make([]int, total),
	}
	for i := range b.memo {
		b.memo[i] = -1
	}

	for i := 0; i < total; i++ {
		if b.memo[i] >= 0 {
			continue
		}
		_, e := b.buildNonTerm(i)
		if e != nil {
			return nil, nil, e
		}
	}

	return b.p, b.memo, nil
}

// Union folds all handles into the first one with Or, left to right,
// and returns it. The other automata are absorbed.
func (p *Pools) Union(handles []int) (int, error) {
	for i := 1; i < len(handles); i++ {
		e := p.Or(handles[0], handles[i])
		if e != nil {
			return -1, e
		}
	}
	return handles[0], nil
}

func (b *builder) buildNonTerm(ntIdx int) (int, error) {
	if b.memo[ntIdx] >= 0 {
		return b.memo[ntIdx], nil
	}

	nt := b.rx.NonTerm(ntIdx)
	if nt.Expr < 0 {
		return -1, errors.Format(errors.UndefinedNonTermError,
			"non-terminal %q is referenced but never defined", nt.Name)
	}

	// reserve the handle before descending so that recursive references
	// resolve instead of looping
	h, e := b.p.NewNFA()
	if e != nil {
		return -1, e
	}
	b.memo[ntIdx] = h

	r, e := b.buildExpr(nt.Expr)
	if e != nil {
		return -1, e
	}

	built := b.p.NFA(r)
	reserved := b.p.NFA(h)
	reserved.Start, reserved.Accept = built.Start, built.Accept
	return h, nil
}

func (b *builder) buildExpr(exprIdx int) (int, error) {
	expr := b.rx.Expr(exprIdx)
	op1, e := b.buildOperand(expr.Op1)
	if e != nil {
		return -1, e
	}

	switch expr.Type {
	case regex.NoOp:

	case regex.Or:
		op2, e := b.buildOperand(expr.Op2)
		if e != nil {
			return -1, e
		}
		e = b.p.Or(op1, op2)
		if e != nil {
			return -1, e
		}

	case regex.And:
		op2, e := b.buildOperand(expr.Op2)
		if e != nil {
			return -1, e
		}
		e = b.p.Concat(op1, op2)
		if e != nil {
			return -1, e
		}

	case regex.ZeroOrMore:
		e = b.p.Closure(op1)
		if e != nil {
			return -1, e
		}
	}

	return op1, nil
}

func (b *builder) buildOperand(op regex.Operand) (int, error) {
	switch op.Kind {
	case regex.NestedExpr:
		return b.buildExpr(op.Index)
	case regex.NonTermRef:
		// the memoised automaton stays pristine for the union; the
		// combinators would absorb it, so a reference gets a copy
		h, e := b.buildNonTerm(op.Index)
		if e != nil {
			return -1, e
		}
		return b.cloneNFA(h)
	case regex.Terminal:
		return b.p.TerminalChain(b.rx.Term(op.Index))
	}
	panic("expression operand slot is empty")
}

// cloneNFA copies every state and edge reachable from h's endpoints
// into fresh pool slots and returns a handle to the copy.
func (b *builder) cloneNFA(h int) (int, error) {
	n := b.p.NFA(h)
	start, accept := n.Start, n.Accept

	order := []int{start}
	if accept != start {
		order = append(order, accept)
	}
	mapping := map[int]int{start: -1, accept: -1}
	for i := 0; i < len(order); i++ {
		for _, ei := range b.p.State(order[i]).Edges {
			target := b.p.Edge(ei).Target
			_, seen := mapping[target]
			if !seen {
				mapping[target] = -1
				order = append(order, target)
			}
		}
	}

	for _, old := range order {
		fresh, e := b.p.NewState(b.p.State(old).Type)
		if e != nil {
			return -1, e
		}
		mapping[old] = fresh
	}
	for _, old := range order {
		for _, ei := range b.p.State(old).Edges {
			edge := b.p.Edge(ei)
			e := b.p.addEdge(mapping[old], mapping[edge.Target], edge.Symbol)
			if e != nil {
				return -1, e
			}
		}
	}

	return b.p.newHandle(mapping[start], mapping[accept])
}
