/*
Package morph compiles simplified Definite Clause Grammars into finite-state
transducers and uses them for morphological analysis of words.

Compilation

A grammar is compiled from a rule table and a description (see package dcg):

    g, err := morph.Compile(rules, descr, morph.Options{})

Every root category of the description is compiled into a separate
transducer:

    1. every non-terminal category reachable from the root is built as an
       acceptor over category labels (a recursive transition network)
    2. non-terminal categories are substituted into the root, keeping the
       category label in front of its expansion
    3. terminal categories and open-class categories are substituted
    4. labels are renamed as configured
    5. graphemes are moved to the input tape, labels to the output tape

After each step the automaton is normalized (epsilon removal, determinization
and minimization). Recursive categories are reported as grammar errors.

Parsing

Parsing a word composes an acceptor for the word with the transducer of each
requested root category and enumerates all successful paths:

    parses, err := g.Parse("umntu")
    // [ "<N><iv>u<npf>m<noun>ntu" ]

Labels are enclosed in angle brackets and precede the graphemes they cover.
ParseSimple and BestGuess reduce parses to a bracketed stem, as in "um{ntu}".

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package morph

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphdcg.morph'.
func tracer() tracing.Trace {
	return tracing.Select("morphdcg.morph")
}
