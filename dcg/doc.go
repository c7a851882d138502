/*
Package dcg reads simplified Definite Clause Grammars and their descriptions.

A simplified DCG is a set of rules where every category either expands into
literal surface symbols (a terminal rule) or into other categories (a
non-terminal rule), never both:

    % nouns
    N    --> pre, stem.
    pre  --> [u,m].
    stem --> [n,t,u].

Bracketed bodies are terminal alternatives. Every character inside the brackets
is a surface symbol (a grapheme); commas are separators only. Repeated heads
add alternatives. Lines starting with '%' are comments. Category names consist
of ASCII letters, digits and underscores; graphemes may be any character.

Categories referenced but never defined are open-class categories: they match
one or more arbitrary graphemes.

A Description completes a grammar: it names the alphabet of graphemes, the root
categories to compile, renaming of labels per root category and boundary
labels. Descriptions are read from JSON:

    {
      "graphs":     "abcdefghijklmnopqrstuvwxyz",
      "pos":        ["N"],
      "renamesyms": { "N": [["pre", "pf"], ["nroot", "_"]] },
      "bounds":     ["b"]
    }

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package dcg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphdcg.dcg'.
func tracer() tracing.Trace {
	return tracing.Select("morphdcg.dcg")
}
