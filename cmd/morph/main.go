package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/morphdcg/dcg"
	"github.com/npillmayer/morphdcg/morph"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// grammarFlags locate a grammar: either a compiled grammar file or a
// description plus DCG text.
type grammarFlags struct {
	descr      string
	dcg        string
	compiled   string
	sequential bool
	maxPaths   int
}

func (gf *grammarFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&gf.descr, "descr", "d", "", "JSON description of the grammar (graphemes, root categories, …)")
	cmd.Flags().StringVarP(&gf.dcg, "dcg", "g", "", "DCG grammar file")
	cmd.Flags().StringVar(&gf.compiled, "grammar", "", "compiled grammar file (instead of --descr and --dcg)")
	cmd.Flags().BoolVar(&gf.sequential, "sequential", false, "compile root categories one after the other")
	cmd.Flags().IntVar(&gf.maxPaths, "max-paths", 0, "cap on analyses per word and category (0 = unlimited)")
}

// load compiles or loads the grammar.
func (gf *grammarFlags) load() (*morph.Grammar, error) {
	if gf.compiled != "" {
		g, err := morph.LoadFile(gf.compiled)
		if err != nil {
			return nil, err
		}
		if gf.maxPaths > 0 {
			g.SetMaxPaths(gf.maxPaths)
		}
		return g, nil
	}
	if gf.descr == "" || gf.dcg == "" {
		return nil, fmt.Errorf("need either --grammar or both --descr and --dcg")
	}
	f, err := os.Open(gf.descr)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	descr, err := dcg.LoadDescription(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gf.descr, err)
	}
	rules, err := dcg.LoadFile(gf.dcg)
	if err != nil {
		return nil, err
	}
	tracer().Infof("compiling %s for root categories %v", gf.dcg, descr.POS)
	return morph.Compile(rules, descr, morph.Options{
		Sequential: gf.sequential,
		MaxPaths:   gf.maxPaths,
	})
}

func main() {
	var tlevel string
	rootCmd := &cobra.Command{
		Use:           "morph",
		Short:         "Morphological analysis with simplified DCGs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initDisplay()
			gtrace.SyntaxTracer = gologadapter.New()
			level := traceLevel(tlevel)
			for _, key := range []string{"morphdcg.cli", "morphdcg.morph", "morphdcg.dcg", "morphdcg.fst"} {
				tracing.Select(key).SetTraceLevel(level)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&tlevel, "trace", "Error", "trace level [Debug|Info|Error]")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
