// Package config holds the capacity limits of the pools used by the
// parser and the NFA builder. All limits have defaults and may be tuned
// through a TOML file.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
)

type Limits struct {
	// Parser-side pools.
	NonTerms  int `toml:"non-terminals"`
	NameLen   int `toml:"name-length"`
	TermBytes int `toml:"terminal-bytes"`
	Exprs     int `toml:"expressions"`
	LineLen   int `toml:"line-length"`

	// NFA pools. Zero Exprs, NFAEdges or NFAs means "derive from the
	// others", see derive for the formulas.
	NFAStates     int `toml:"nfa-states"`
	NFAEdges      int `toml:"nfa-edges"`
	EdgesPerState int `toml:"edges-per-state"`
	NFAs          int `toml:"nfa-handles"`
}

func Default() Limits {
	l := Limits{
		NonTerms:      256,
		NameLen:       64,
		TermBytes:     8192,
		LineLen:       1024,
		NFAStates:     1024,
		EdgesPerState: 128,
	}
	l.derive()
	return l
}

// derive fills the limits that default to a multiple of another one.
// An average of 4 expression nodes per non-terminal is enough in
// practice. Each combinator adds at most 4 epsilon edges per node, and
// multi-character terminals expand to one edge per byte; a factor of 10
// covers both.
func (l *Limits) derive() {
	if l.Exprs == 0 {
		l.Exprs = 4 * l.NonTerms
	}
	if l.NFAs == 0 {
		l.NFAs = l.NFAStates / 4
	}
	if l.NFAEdges == 0 {
		l.NFAEdges = 10 * (l.Exprs + l.NonTerms)
	}
}

// Load reads limit overrides from a TOML file on top of the defaults.
func Load(path string) (Limits, error) {
	l := Limits{
		NonTerms:      256,
		NameLen:       64,
		TermBytes:     8192,
		LineLen:       1024,
		NFAStates:     1024,
		EdgesPerState: 128,
	}
	_, e := toml.DecodeFile(path, &l)
	if e != nil {
		return l, errors.Annotatef(e, "cannot load limits from %s", path)
	}

	l.derive()
	e = l.validate()
	return l, e
}

func (l Limits) validate() error {
	named := []struct {
		name  string
		value int
	}{
		{"non-terminals", l.NonTerms},
		{"name-length", l.NameLen},
		{"terminal-bytes", l.TermBytes},
		{"expressions", l.Exprs},
		{"line-length", l.LineLen},
		{"nfa-states", l.NFAStates},
		{"nfa-edges", l.NFAEdges},
		{"edges-per-state", l.EdgesPerState},
		{"nfa-handles", l.NFAs},
	}
	for _, n := range named {
		if n.value <= 0 {
			return errors.Errorf("limit %q must be positive, got %d", n.name, n.value)
		}
	}
	return nil
}
