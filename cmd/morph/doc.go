/*
Command morph compiles simplified Definite Clause Grammars and analyses words
with them.

Usage:

    morph parse   --descr nouns.json --dcg nouns.dcg  < words.txt
    morph parse   --grammar nouns.mdcg --simpleguess umuntu abantu
    morph compile --descr nouns.json --dcg nouns.dcg -o nouns.mdcg
    morph dump    --grammar nouns.mdcg --pos N --format dot > N.dot
    morph repl    --grammar nouns.mdcg
    morph serve   --grammar nouns.mdcg --addr :8080

Without the --simpleguess flag, parse prints every analysis of a word,
separated by blanks, after the word and a tab. With --simpleguess it prints
the simplified analysis with the shortest stem.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'morphdcg.cli'
func tracer() tracing.Trace {
	return tracing.Select("morphdcg.cli")
}
