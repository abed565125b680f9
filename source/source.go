// Package source reads a token specification one logical line at a time
// and tracks the position used for diagnostics.
package source

import (
	"bufio"
	"bytes"
	"io"

	perrors "github.com/pingcap/errors"

	"github.com/lexnfa/lexnfa/errors"
)

type Pos struct {
	line, col int
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}

// Scanner yields input lines up to a fixed maximum length. The column
// counter is advanced by the consumer as it works through the current
// line; reading the next line resets it.
type Scanner struct {
	r         *bufio.Reader
	limit     int
	line, col int
}

func New(r io.Reader, limit int) *Scanner {
	return &Scanner{r: bufio.NewReaderSize(r, limit+1), limit: limit}
}

// Scan reads the next line, without its trailing newline. It returns
// false when the input is exhausted.
func (s *Scanner) Scan() ([]byte, bool, error) {
	line, e := s.r.ReadBytes('\n')
	if e != nil && e != io.EOF {
		return nil, false, perrors.Annotate(e, "cannot read input")
	}
	if len(line) == 0 {
		return nil, false, nil
	}

	s.line++
	s.col = 0

	if len(line) > s.limit {
		return nil, false, errors.FormatPos(s.Pos(), errors.CapacityExceededError,
			"input line is longer than %d bytes", s.limit)
	}

	line = bytes.TrimRight(line, "\r\n")
	return line, true, nil
}

func (s *Scanner) Line() int {
	return s.line
}

func (s *Scanner) Col() int {
	return s.col
}

func (s *Scanner) Advance(n int) {
	s.col += n
}

func (s *Scanner) Rewind(n int) {
	s.col -= n
	if s.col < 0 {
		s.col = 0
	}
}

func (s *Scanner) Pos() Pos {
	return Pos{s.line, s.col}
}

// At reports the position of a given column on the current line.
func (s *Scanner) At(col int) Pos {
	return Pos{s.line, col}
}
