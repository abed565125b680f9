package regex

import (
	"strings"
)

// ExprString renders the expression chain rooted at index i as a
// parenthesised infix string, for diagnostics and tests.
func (p *Pools) ExprString(i int) string {
	var b strings.Builder
	p.writeExpr(&b, i)
	return b.String()
}

func (p *Pools) writeExpr(b *strings.Builder, i int) {
	e := p.Expr(i)
	b.WriteByte('(')
	p.writeOperand(b, e.Op1)

	switch e.Type {
	case Or:
		b.WriteString(" | ")
	case And:
		b.WriteString(" & ")
	case ZeroOrMore:
		b.WriteByte('*')
	}

	p.writeOperand(b, e.Op2)
	b.WriteByte(')')
}

func (p *Pools) writeOperand(b *strings.Builder, op Operand) {
	switch op.Kind {
	case NestedExpr:
		p.writeExpr(b, op.Index)
	case NonTermRef:
		b.WriteByte('$')
		b.WriteString(p.NonTerm(op.Index).Name)
	case Terminal:
		b.Write(p.Term(op.Index))
	}
}
