package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/npillmayer/morphdcg/fst"
	"github.com/npillmayer/morphdcg/morph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var gf grammarFlags
	var pos string
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump compiled transducers or the symbol table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gf.load()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if dumpFormat == "symbols" {
				return dumpSymbols(g.Symbols(), w)
			}
			roots := g.Categories()
			if pos != "" {
				roots = []string{pos}
			}
			for _, r := range roots {
				A, err := g.Transducer(r)
				if err != nil {
					return err
				}
				switch dumpFormat {
				case "dot":
					if err := fst.WriteDot(A, g.Symbols(), w, r); err != nil {
						return fmt.Errorf("write dot: %w", err)
					}
				case "table":
					fmt.Fprintf(w, "%s: %d states, %d arcs\n", r, A.NumStates(), A.NumArcs())
					if err := dumpArcs(A, g, w); err != nil {
						return err
					}
				default:
					return fmt.Errorf("unknown format: %s (expected dot, table, or symbols)", dumpFormat)
				}
			}
			return nil
		},
	}
	gf.register(cmd)
	cmd.Flags().StringVarP(&pos, "pos", "p", "", "root category to dump (default all)")
	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "table", "output format (dot, table, symbols)")

	return cmd
}

func dumpArcs(A *fst.Automaton, g *morph.Grammar, w io.Writer) error {
	syms := g.Symbols()
	table := tablewriter.NewWriter(w)
	table.Header("From", "In", "Out", "To", "Final")
	for s := 0; s < A.NumStates(); s++ {
		from := fst.StateID(s)
		for _, a := range A.Arcs(from) {
			final := ""
			if A.IsFinal(a.To) {
				final = "*"
			}
			if err := table.Append([]string{
				stateName(A, from), syms.Name(a.In), syms.Name(a.Out), stateName(A, a.To), final,
			}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

func dumpSymbols(syms *fst.SymbolTable, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Label", "Name", "Kind")
	var err error
	syms.Each(func(l fst.Label, name string) {
		kind := "label"
		switch {
		case l == fst.Eps:
			kind = "epsilon"
		case syms.IsSurface(l):
			kind = "grapheme"
		}
		if e := table.Append([]string{strconv.Itoa(int(l)), name, kind}); e != nil && err == nil {
			err = e
		}
	})
	if err != nil {
		return err
	}
	return table.Render()
}

func stateName(A *fst.Automaton, s fst.StateID) string {
	if s == A.Start() {
		return "→" + strconv.Itoa(int(s))
	}
	return strconv.Itoa(int(s))
}
