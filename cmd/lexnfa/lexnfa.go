/*
lexnfa is a console utility translating a token specification into a
Graphviz rendering of the NFA accepting the union of all defined
non-terminals. Usage is

	lexnfa [-c <file>] [-o <file>] [--only <name>] [-v] < spec

The specification is read from standard input; one definition of the
form "$name := body" per line, "!" starts a comment line. The DOT graph
goes to standard output (or the -o file), diagnostics to standard
error.
*/
package main

import (
	"bytes"
	"fmt"
	"os"

	perrors "github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lexnfa/lexnfa/config"
	"github.com/lexnfa/lexnfa/nfa"
	"github.com/lexnfa/lexnfa/regex"
	"github.com/lexnfa/lexnfa/tokdef"
)

var (
	configFile  string
	outFileName string
	onlyName    string
	verbose     bool
)

func main() {
	cmd := &cobra.Command{
		Use:           "lexnfa",
		Short:         "translate a token specification into a Graphviz NFA",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "TOML file overriding the capacity limits")
	cmd.Flags().StringVarP(&outFileName, "output", "o", "", "output file name, default is standard output")
	cmd.Flags().StringVar(&onlyName, "only", "", "emit the automaton of one non-terminal instead of the union")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "dump parsed definitions and the automaton to standard error")

	e := cmd.Execute()
	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log, e := newLogger()
	if e != nil {
		return e
	}
	defer log.Sync()

	limits := config.Default()
	if configFile != "" {
		limits, e = config.Load(configFile)
		if e != nil {
			return e
		}
	}

	pools := regex.NewPools(limits.NonTerms, limits.NameLen, limits.Exprs, limits.TermBytes)
	e = tokdef.Parse(os.Stdin, pools, limits, log)
	if e != nil {
		return e
	}

	if verbose {
		for i := 0; i < pools.NonTermCount(); i++ {
			nt := pools.NonTerm(i)
			if nt.Complete {
				log.Debug("parsed non-terminal",
					zap.String("name", nt.Name),
					zap.String("expr", pools.ExprString(nt.Expr)))
			}
		}
	}

	machines, handles, e := nfa.Compile(pools, limits)
	if e != nil {
		return e
	}

	var h int
	if onlyName == "" {
		h, e = machines.Union(handles)
		if e != nil {
			return e
		}
	} else {
		i := pools.FindNonTerm(onlyName)
		if i < 0 {
			return fmt.Errorf("unknown non-terminal %q", onlyName)
		}
		h = handles[i]
	}

	if verbose {
		machines.Dump(os.Stderr, h)
		machines.ResetMarks()
	}

	var buf bytes.Buffer
	machines.WriteDot(&buf, h)

	if outFileName == "" {
		_, e = os.Stdout.Write(buf.Bytes())
		return perrors.Annotate(e, "cannot write output")
	}
	e = os.WriteFile(outFileName, buf.Bytes(), 0o666)
	return perrors.Annotatef(e, "cannot write %s", outFileName)
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}
