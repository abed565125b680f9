package nfa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lexnfa/lexnfa/config"
	err "github.com/lexnfa/lexnfa/errors"
	"github.com/lexnfa/lexnfa/regex"
	"github.com/lexnfa/lexnfa/tokdef"
)

func parseSpec(t *testing.T, src string) *regex.Pools {
	t.Helper()
	l := config.Default()
	rx := regex.NewPools(l.NonTerms, l.NameLen, l.Exprs, l.TermBytes)
	require.NoError(t, tokdef.Parse(strings.NewReader(src), rx, l, zap.NewNop()))
	return rx
}

func build(t *testing.T, src string) (*Pools, int) {
	t.Helper()
	p, master, _, e := Build(parseSpec(t, src), config.Default())
	require.NoError(t, e)
	return p, master
}

func TestBuildSingleTerminal(t *testing.T) {
	p, master := build(t, "$x := a")

	states := reachable(p, master)
	require.Len(t, states, 2)
	requireEndpoints(t, p, master)
	require.Equal(t, 0, countEdges(p, states, Epsilon))
	require.Equal(t, 1, countEdges(p, states, 'a'))
	require.True(t, accepts(p, master, "a"))
	require.False(t, accepts(p, master, ""))
}

func TestBuildTerminalChainLength(t *testing.T) {
	p, master := build(t, "$x := while")
	require.Len(t, reachable(p, master), len("while")+1)
	require.True(t, accepts(p, master, "while"))
}

func TestBuildAlternation(t *testing.T) {
	p, master := build(t, "$x := a | b")

	states := reachable(p, master)
	require.Len(t, states, 6)
	require.Equal(t, 4, countEdges(p, states, Epsilon))
	require.Equal(t, 1, countEdges(p, states, 'a'))
	require.Equal(t, 1, countEdges(p, states, 'b'))
	requireEndpoints(t, p, master)

	for _, input := range []string{"a", "b"} {
		require.True(t, accepts(p, master, input), "input %q", input)
	}
	for _, input := range []string{"", "c", "ab", "aa"} {
		require.False(t, accepts(p, master, input), "input %q", input)
	}
}

func TestBuildClosureBindsToLastOperand(t *testing.T) {
	p, master := build(t, "$x := a b* c")

	for _, input := range []string{"ac", "abc", "abbc", "abbbbc"} {
		require.True(t, accepts(p, master, input), "input %q", input)
	}
	for _, input := range []string{"", "a", "c", "ab", "bc", "abcabc"} {
		require.False(t, accepts(p, master, input), "input %q", input)
	}
}

func TestBuildConcatenation(t *testing.T) {
	p, master := build(t, "$x := ab c")

	require.True(t, accepts(p, master, "abc"))
	require.False(t, accepts(p, master, "ab"))
	require.False(t, accepts(p, master, "c"))
}

func TestBuildEscapedTerminals(t *testing.T) {
	p, master := build(t, "$x := @_ | @@")

	require.True(t, accepts(p, master, " "))
	require.True(t, accepts(p, master, "@"))
	require.False(t, accepts(p, master, "_"))
	require.False(t, accepts(p, master, ""))
}

func TestBuildForwardReferenceIsMemoised(t *testing.T) {
	rx := parseSpec(t, "$x := $y\n$y := z\n")
	p, handles, e := Compile(rx, config.Default())
	require.NoError(t, e)
	require.Len(t, handles, 2)

	require.True(t, accepts(p, handles[0], "z"))
	require.True(t, accepts(p, handles[1], "z"))

	// y is built once, while parked under x's definition: two reserved
	// pairs, the two-state chain for z and its copy for the reference
	require.Equal(t, 8, p.StateCount())

	master, e := p.Union(handles)
	require.NoError(t, e)
	require.True(t, accepts(p, master, "z"))
	require.False(t, accepts(p, master, ""))
}

func TestBuildRepeatedReference(t *testing.T) {
	p, master := build(t, "$x := $y $y\n$y := ab\n")

	require.True(t, accepts(p, master, "abab"))
	require.True(t, accepts(p, master, "ab"))
	require.False(t, accepts(p, master, "abababab"))
	require.False(t, accepts(p, master, "aba"))
}

func TestBuildUnionOfDefinitions(t *testing.T) {
	p, master := build(t, "$num := 0*\n$if := if\n$plus := @_+@_\n")

	for _, input := range []string{"", "0", "000", "if", " + "} {
		require.True(t, accepts(p, master, input), "input %q", input)
	}
	for _, input := range []string{"i", "0if", "+"} {
		require.False(t, accepts(p, master, input), "input %q", input)
	}
	requireEndpoints(t, p, master)
}

func TestBuildNonTerminalConcatenation(t *testing.T) {
	p, master := build(t, "$digit := 0 | 1\n$pair := $digit $digit\n")

	for _, input := range []string{"0", "1", "00", "01", "10", "11"} {
		require.True(t, accepts(p, master, input), "input %q", input)
	}
	require.False(t, accepts(p, master, "010"))
}

func TestBuildUndefinedReference(t *testing.T) {
	_, _, _, e := Build(parseSpec(t, "$x := $y"), config.Default())
	require.Error(t, e)

	var ee *err.Error
	require.ErrorAs(t, e, &ee)
	require.Equal(t, err.UndefinedNonTermError, ee.Code)
}

func TestBuildEmptySpec(t *testing.T) {
	_, _, _, e := Build(parseSpec(t, "! nothing here\n"), config.Default())
	require.Error(t, e)
}

func TestBuildSelfReferenceTerminates(t *testing.T) {
	_, _, _, e := Build(parseSpec(t, "$x := $x"), config.Default())
	require.NoError(t, e)
}

func TestBuildOrderIndependentLanguages(t *testing.T) {
	first, m1 := build(t, "$a := x\n$b := y\n")
	second, m2 := build(t, "$b := y\n$a := x\n")

	for _, input := range []string{"x", "y", "", "xy"} {
		require.Equal(t,
			accepts(first, m1, input), accepts(second, m2, input),
			"input %q", input)
	}
}
