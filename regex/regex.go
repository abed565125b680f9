// Package regex holds the parsed form of a token specification: a table
// of named non-terminals, a forest of expression nodes and a byte pool
// of decoded terminals. All three stores are bounded pools addressed by
// allocation index; nothing is ever freed.
package regex

import (
	"github.com/lexnfa/lexnfa/errors"
)

type OpType int

const (
	NoOp OpType = iota
	Or
	And
	ZeroOrMore
)

type OperandKind int

const (
	Nothing OperandKind = iota
	NestedExpr
	NonTermRef
	Terminal
)

// Operand is one slot of an expression node. Index is interpreted
// against the pool named by Kind: the expression pool, the non-terminal
// table or the terminal byte pool.
type Operand struct {
	Kind  OperandKind
	Index int
}

var none = Operand{Nothing, -1}

// Expr is one node of a body's right-descending chain. Op1 holds a leaf
// or a nested closure, Op2 either continues the chain or is Nothing on
// the final node.
type Expr struct {
	Type     OpType
	Op1, Op2 Operand
}

type NonTerm struct {
	Name string
	// Index of the defining expression, -1 until the definition is parsed.
	Expr int
	// False for a non-terminal that has only been referenced so far.
	Complete bool
	Index    int
}

// Pools bundles the three parser-side stores. Allocation returns the
// pre-increment index; index 0 is a valid handle.
type Pools struct {
	nonTerms []NonTerm
	exprs    []Expr
	terms    []byte

	nameLimit int
}

func NewPools(maxNonTerms, nameLimit, maxExprs, maxTermBytes int) *Pools {
	return &Pools{
		nonTerms:  make([]NonTerm, 0, maxNonTerms),
		exprs:     make([]Expr, 0, maxExprs),
		terms:     make([]byte, 0, maxTermBytes),
		nameLimit: nameLimit,
	}
}

// AllocExpr hands out the next free expression node, initialized to an
// empty chain terminator.
func (p *Pools) AllocExpr() (int, error) {
	if len(p.exprs) == cap(p.exprs) {
		return -1, errors.Format(errors.CapacityExceededError, "expression pool is out of memory")
	}
	p.exprs = append(p.exprs, Expr{Type: NoOp, Op1: none, Op2: none})
	return len(p.exprs) - 1, nil
}

// ReleaseExpr rolls the pool cursor back over the most recent node. The
// body parser allocates one node ahead and returns the unused slot when
// the operand loop ends.
func (p *Pools) ReleaseExpr() {
	p.exprs = p.exprs[:len(p.exprs)-1]
}

func (p *Pools) Expr(i int) *Expr {
	return &p.exprs[i]
}

func (p *Pools) ExprCount() int {
	return len(p.exprs)
}

// AddNonTerm creates an incomplete entry for name and returns its index.
func (p *Pools) AddNonTerm(name string) (int, error) {
	if len(name) > p.nameLimit {
		return -1, errors.Format(errors.CapacityExceededError,
			"non-terminal name %q is longer than %d bytes", name, p.nameLimit)
	}
	if len(p.nonTerms) == cap(p.nonTerms) {
		return -1, errors.Format(errors.CapacityExceededError, "non-terminal table is full")
	}

	i := len(p.nonTerms)
	p.nonTerms = append(p.nonTerms, NonTerm{Name: name, Expr: -1, Index: i})
	return i, nil
}

// FindNonTerm returns the index of name or -1.
func (p *Pools) FindNonTerm(name string) int {
	for i := range p.nonTerms {
		if p.nonTerms[i].Name == name {
			return i
		}
	}
	return -1
}

func (p *Pools) NonTerm(i int) *NonTerm {
	return &p.nonTerms[i]
}

func (p *Pools) NonTermCount() int {
	return len(p.nonTerms)
}

// InternTerm stores the decoded bytes of a terminal followed by a NUL
// and returns the offset at which they begin.
func (p *Pools) InternTerm(decoded []byte) (int, error) {
	if len(p.terms)+len(decoded)+1 > cap(p.terms) {
		return -1, errors.Format(errors.CapacityExceededError, "terminal pool is out of memory")
	}

	off := len(p.terms)
	p.terms = append(p.terms, decoded...)
	p.terms = append(p.terms, 0)
	return off, nil
}

// Term returns the bytes of the terminal starting at off, without the
// trailing NUL.
func (p *Pools) Term(off int) []byte {
	end := off
	for p.terms[end] != 0 {
		end++
	}
	return p.terms[off:end:end]
}

func (p *Pools) TermBytes() int {
	return len(p.terms)
}
