package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/morphdcg/fst"
	"github.com/npillmayer/morphdcg/morph"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	var gf grammarFlags

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Analyse words interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gf.load()
			if err != nil {
				return err
			}
			repl, err := readline.New("morph> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp := &Intp{g: g, repl: repl}
			pterm.Info.Println("Welcome to the morph REPL")
			pterm.Info.Println(fmt.Sprintf("Root categories: %s", strings.Join(g.Categories(), ", ")))
			tracer().Infof("Quit with <ctrl>D")
			intp.REPL()
			return nil
		},
	}
	gf.register(cmd)

	return cmd
}

// Intp is our interpreter object
type Intp struct {
	g    *morph.Grammar
	repl *readline.Instance
	pos  []string // root categories to try, all if empty
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval evaluates a single line of input. Lines starting with ':' are commands,
// everything else is a word to analyse.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.analyse(line)
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":pos":
		intp.pos = args
		if len(args) == 0 {
			pterm.Info.Println("trying all root categories")
		} else {
			pterm.Info.Println(fmt.Sprintf("trying root categories %v", args))
		}
		return false, nil
	case ":simple", ":best", ":check":
		if len(args) != 1 {
			return false, fmt.Errorf("%s needs exactly one word", cmd)
		}
	default:
		return false, fmt.Errorf("unknown command %s (try :pos, :simple, :best, :check, :quit)", cmd)
	}
	word := args[0]
	switch cmd {
	case ":simple":
		simple, err := intp.g.ParseSimple(word, intp.pos...)
		if err != nil {
			return false, err
		}
		for _, s := range simple {
			pterm.Info.Println(s)
		}
		if len(simple) == 0 {
			pterm.Info.Println("no analysis")
		}
	case ":best":
		best, ok, err := intp.g.BestGuess(word, intp.pos...)
		if err != nil {
			return false, err
		}
		if !ok {
			pterm.Info.Println("no analysis")
		} else {
			pterm.Info.Println(fmt.Sprintf("%s\t%s", word, best))
		}
	case ":check":
		for _, r := range intp.roots() {
			ok, err := accepts(intp.g, r, word)
			if err != nil {
				return false, err
			}
			pterm.Info.Println(fmt.Sprintf("%s: %v", r, ok))
		}
	}
	return false, nil
}

func (intp *Intp) roots() []string {
	if len(intp.pos) > 0 {
		return intp.pos
	}
	return intp.g.Categories()
}

// analyse prints all analyses of a word as a tree of morphs.
func (intp *Intp) analyse(word string) error {
	parses, err := intp.g.Parse(word, intp.pos...)
	if err != nil {
		return err
	}
	if len(parses) == 0 {
		pterm.Info.Println(fmt.Sprintf("no analysis for %q", word))
		return nil
	}
	ll := pterm.LeveledList{pterm.LeveledListItem{Level: 0, Text: word}}
	for _, p := range parses {
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: p})
		for _, m := range segments(p) {
			ll = append(ll, pterm.LeveledListItem{Level: 2, Text: m.String()})
		}
	}
	tracer().Debugf("|ll| = %d", len(ll))
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
	return nil
}

// accepts checks if the input tape of a root category's transducer accepts a word.
func accepts(g *morph.Grammar, pos, word string) (bool, error) {
	A, err := g.Transducer(pos)
	if err != nil {
		return false, err
	}
	var input []fst.Label
	for _, r := range word {
		l, ok := g.Symbols().Resolve(string(r))
		if !ok {
			return false, nil
		}
		input = append(input, l)
	}
	return fst.Project(A, false).Accepts(input), nil
}

// morph segment of a parse: a label and the graphemes following it.
type segment struct {
	Label   string
	Surface string
}

func (s segment) String() string {
	if s.Surface == "" {
		return s.Label
	}
	return s.Label + ": " + s.Surface
}

// segments splits a parse into labels and the graphemes following them.
// Graphemes before the first label get an empty label.
func segments(parse string) []segment {
	var segs []segment
	for len(parse) > 0 {
		if parse[0] == '<' {
			if end := strings.IndexByte(parse, '>'); end > 0 {
				segs = append(segs, segment{Label: parse[1:end]})
				parse = parse[end+1:]
				continue
			}
		}
		next := strings.IndexByte(parse[1:], '<')
		text := parse
		if next >= 0 {
			text = parse[:next+1]
		}
		if len(segs) == 0 {
			segs = append(segs, segment{})
		}
		segs[len(segs)-1].Surface += text
		parse = parse[len(text):]
	}
	return segs
}
