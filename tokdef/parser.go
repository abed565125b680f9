// Package tokdef parses a token specification: one non-terminal
// definition of the form "$name := body" per line, where the body is a
// regex over terminals and other non-terminals built from alternation
// (|), juxtaposition and postfix closure (*).
package tokdef

import (
	"io"

	"go.uber.org/zap"

	"github.com/lexnfa/lexnfa/config"
	"github.com/lexnfa/lexnfa/errors"
	"github.com/lexnfa/lexnfa/regex"
	"github.com/lexnfa/lexnfa/source"
)

const (
	escapeChar  = '@'
	commentChar = '!'
)

var escapeMap = map[byte]byte{
	'_': ' ',
	'@': '@',
	'|': '|',
	'*': '*',
	'$': '$',
}

var nothing = regex.Operand{Kind: regex.Nothing, Index: -1}

type Parser struct {
	sc    *source.Scanner
	pools *regex.Pools
	log   *zap.Logger
	line  []byte
	pos   int
}

// Parse reads a whole specification from r and fills the pools. Every
// definition line adds one completed non-terminal; names referenced
// before their definition are stubbed and completed later.
func Parse(r io.Reader, pools *regex.Pools, limits config.Limits, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	p := &Parser{sc: source.New(r, limits.LineLen), pools: pools, log: log}
	for {
		line, fetched, e := p.sc.Scan()
		if e != nil {
			return e
		}
		if !fetched {
			return nil
		}

		p.line = line
		p.pos = 0
		e = p.parseLine()
		if e != nil {
			return e
		}
	}
}

func (p *Parser) parseLine() error {
	p.skipSpace()
	if p.eol() || p.cur() == commentChar {
		return nil
	}

	ntIdx, e := p.parseHeader()
	if e != nil {
		return e
	}

	e = p.parseBody(ntIdx)
	if e != nil {
		return e
	}

	p.pools.NonTerm(ntIdx).Complete = true
	return nil
}

func (p *Parser) parseHeader() (int, error) {
	if p.cur() != '$' {
		return -1, malformedHeaderError(p.sc.Pos(), string(p.line[p.pos:]))
	}
	p.advance()

	nameStart := p.pos
	for !p.eol() && !isSpace(p.cur()) {
		p.advance()
	}
	if p.pos == nameStart {
		return -1, emptyNameError(p.sc.Pos())
	}
	if p.eol() {
		return -1, missingDefinitionError(p.sc.Pos())
	}

	name := string(p.line[nameStart:p.pos])
	ntIdx := p.pools.FindNonTerm(name)
	if ntIdx >= 0 {
		if p.pools.NonTerm(ntIdx).Complete {
			return -1, redefinitionError(p.sc.Pos(), name)
		}
	} else {
		var e error
		ntIdx, e = p.pools.AddNonTerm(name)
		if e != nil {
			return -1, p.locate(e)
		}
	}

	p.skipSpace()
	if p.eol() || p.cur() != ':' {
		return -1, missingDefinitionError(p.sc.Pos())
	}
	p.advance()
	if p.eol() || p.cur() != '=' {
		return -1, missingDefinitionError(p.sc.Pos())
	}
	p.advance()

	p.skipSpace()
	if p.eol() {
		return -1, missingDefinitionError(p.sc.Pos())
	}

	return ntIdx, nil
}

// parseBody threads expression nodes into a right-descending chain via
// Op2. A node holding a closed operand represents the closure alone and
// is wrapped into a fresh parent node that carries on the chain, so the
// closure binds tighter than concatenation and alternation:
// "a b* c" parses as (a & ((b*) & (c))).
func (p *Parser) parseBody(ntIdx int) error {
	root, e := p.pools.AllocExpr()
	if e != nil {
		return p.locate(e)
	}
	p.pools.NonTerm(ntIdx).Expr = root

	cur, prev := root, root
	for {
		op, e := p.parseOperand()
		if e != nil {
			return e
		}
		if op.Kind == regex.Nothing {
			break
		}

		node := p.pools.Expr(cur)
		node.Type = p.parseOperator()
		node.Op1 = op

		if node.Type == regex.ZeroOrMore {
			node.Op2 = nothing

			parent, e := p.pools.AllocExpr()
			if e != nil {
				return p.locate(e)
			}
			wrapper := p.pools.Expr(parent)
			wrapper.Type = p.parseOperator()
			wrapper.Op1 = regex.Operand{Kind: regex.NestedExpr, Index: cur}

			if cur == prev {
				// closure on the first operand: the wrapper takes over as root
				p.pools.NonTerm(ntIdx).Expr = parent
			} else {
				p.pools.Expr(prev).Op2 = regex.Operand{Kind: regex.NestedExpr, Index: parent}
			}
			cur = parent
		}

		// speculatively chain a successor node; the last one is returned
		// to the pool after the loop
		next, e := p.pools.AllocExpr()
		if e != nil {
			return p.locate(e)
		}
		p.pools.Expr(cur).Op2 = regex.Operand{Kind: regex.NestedExpr, Index: next}
		prev = cur
		cur = next
	}

	p.pools.ReleaseExpr()
	last := p.pools.Expr(prev)
	last.Op2 = nothing
	if last.Type == regex.Or || last.Type == regex.And {
		return danglingOperatorError(p.sc.Pos())
	}

	return nil
}

// parseOperand reads a maximal run of non-space bytes and classifies it.
// A Nothing operand means the line is exhausted.
func (p *Parser) parseOperand() (regex.Operand, error) {
	p.skipSpace()
	if p.eol() {
		return nothing, nil
	}
	if p.cur() == '|' || p.cur() == '*' {
		return nothing, danglingOperatorError(p.sc.Pos())
	}

	start := p.pos
	startCol := p.sc.Col()
	for !p.eol() && !isSpace(p.cur()) {
		p.advance()
	}

	// a trailing * is a closure operator, not part of the operand,
	// unless the byte before it is the escape character
	if p.line[p.pos-1] == '*' && (p.pos-start < 2 || p.line[p.pos-2] != escapeChar) {
		p.pos--
		p.sc.Rewind(1)
	}

	run := p.line[start:p.pos]
	if run[0] == '$' {
		if len(run) == 1 {
			return nothing, emptyNameError(p.sc.Pos())
		}

		name := string(run[1:])
		ntIdx := p.pools.FindNonTerm(name)
		if ntIdx < 0 {
			var e error
			ntIdx, e = p.pools.AddNonTerm(name)
			if e != nil {
				return nothing, p.locate(e)
			}
		}
		return regex.Operand{Kind: regex.NonTermRef, Index: ntIdx}, nil
	}

	decoded, e := p.decodeTerm(run, startCol)
	if e != nil {
		return nothing, e
	}
	off, e := p.pools.InternTerm(decoded)
	if e != nil {
		return nothing, p.locate(e)
	}
	return regex.Operand{Kind: regex.Terminal, Index: off}, nil
}

func (p *Parser) parseOperator() regex.OpType {
	p.skipSpace()
	if p.eol() {
		return regex.NoOp
	}

	switch p.cur() {
	case '|':
		p.advance()
		return regex.Or
	case '*':
		p.advance()
		return regex.ZeroOrMore
	}

	// already looking at the next operand
	return regex.And
}

// decodeTerm resolves escape sequences in a terminal run. Each @x pair
// consumes two input bytes and emits one; an unrecognized pair emits x
// with a warning, a trailing @ is fatal.
func (p *Parser) decodeTerm(run []byte, startCol int) ([]byte, error) {
	decoded := make([]byte, 0, len(run))
	for i := 0; i < len(run); i++ {
		b := run[i]
		if b != escapeChar {
			decoded = append(decoded, b)
			continue
		}

		if i == len(run)-1 {
			return nil, incompleteEscapeError(p.sc.At(startCol + i))
		}

		i++
		c, known := escapeMap[run[i]]
		if !known {
			p.log.Warn("unrecognized escape sequence",
				zap.Int("line", p.sc.Line()),
				zap.Int("col", startCol+i-1),
				zap.String("seq", string(run[i-1:i+1])))
			c = run[i]
		}
		decoded = append(decoded, c)
	}

	return decoded, nil
}

func (p *Parser) locate(e error) error {
	ee, is := e.(*errors.Error)
	if is && ee.Line == 0 {
		ee.Line = p.sc.Line()
		ee.Col = p.sc.Col()
	}
	return e
}

func (p *Parser) eol() bool {
	return p.pos >= len(p.line)
}

func (p *Parser) cur() byte {
	return p.line[p.pos]
}

func (p *Parser) advance() {
	p.pos++
	p.sc.Advance(1)
}

func (p *Parser) skipSpace() {
	for !p.eol() && isSpace(p.cur()) {
		p.advance()
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\v', '\f', '\r':
		return true
	}
	return false
}
