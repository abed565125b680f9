package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	l := Default()

	require.Equal(t, 256, l.NonTerms)
	require.Equal(t, 64, l.NameLen)
	require.Equal(t, 8192, l.TermBytes)
	require.Equal(t, 1024, l.LineLen)
	require.Equal(t, 1024, l.NFAStates)
	require.Equal(t, 128, l.EdgesPerState)

	// derived
	require.Equal(t, 4*256, l.Exprs)
	require.Equal(t, 1024/4, l.NFAs)
	require.Equal(t, 10*(4*256+256), l.NFAEdges)
}

func writeLimits(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "limits.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))
	return path
}

func TestLoadOverrides(t *testing.T) {
	path := writeLimits(t, "non-terminals = 16\nnfa-states = 64\n")

	l, e := Load(path)
	require.NoError(t, e)
	require.Equal(t, 16, l.NonTerms)
	require.Equal(t, 64, l.NFAStates)
	require.Equal(t, 64, l.NameLen)

	// derived limits follow the overrides
	require.Equal(t, 64, l.Exprs)
	require.Equal(t, 16, l.NFAs)
	require.Equal(t, 800, l.NFAEdges)
}

func TestLoadExplicitDerived(t *testing.T) {
	path := writeLimits(t, "expressions = 10\n")

	l, e := Load(path)
	require.NoError(t, e)
	require.Equal(t, 10, l.Exprs)
	require.Equal(t, 10*(10+256), l.NFAEdges)
}

func TestLoadRejectsNonPositive(t *testing.T) {
	path := writeLimits(t, "terminal-bytes = -1\n")

	_, e := Load(path)
	require.Error(t, e)
}

func TestLoadMissingFile(t *testing.T) {
	_, e := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, e)
}
