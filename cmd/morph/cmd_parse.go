package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/npillmayer/morphdcg/morph"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var gf grammarFlags
	var simpleguess bool
	var pos []string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "parse [word …]",
		Short: "Analyse words given as arguments, or one per line on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gf.load()
			if err != nil {
				return err
			}
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()
			p := &printer{g: g, pos: pos, simpleguess: simpleguess, timeout: timeout, out: out}
			if len(args) > 0 {
				for _, w := range args {
					if err := p.print(w); err != nil {
						return err
					}
				}
				return nil
			}
			return p.printAll(cmd.InOrStdin())
		},
	}
	gf.register(cmd)
	cmd.Flags().BoolVar(&simpleguess, "simpleguess", false, "print only the simplified analysis with the shortest stem")
	cmd.Flags().StringSliceVarP(&pos, "pos", "p", nil, "root categories to try (default all)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "time budget per word (0 = none)")

	return cmd
}

type printer struct {
	g           *morph.Grammar
	pos         []string
	simpleguess bool
	timeout     time.Duration
	out         io.Writer
}

func (p *printer) printAll(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		word := strings.TrimSpace(sc.Text())
		if word == "" {
			continue
		}
		if err := p.print(word); err != nil {
			return err
		}
	}
	return sc.Err()
}

// print writes "word<TAB>analyses" for a single word.
func (p *printer) print(word string) error {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	an, err := p.g.Analyze(ctx, word, p.pos...)
	if err != nil {
		return fmt.Errorf("analysing %q: %w", word, err)
	}
	if an.Truncated {
		tracer().Infof("analyses of %q truncated", word)
	}
	if p.simpleguess {
		best := ""
		if simple := p.g.SimplifyAll(an.Parses); len(simple) > 0 {
			best = morph.Best(simple)
		}
		_, err = fmt.Fprintf(p.out, "%s\t%s\n", word, best)
		return err
	}
	_, err = fmt.Fprintf(p.out, "%s\t%s\n", word, strings.Join(an.Parses, " "))
	return err
}
