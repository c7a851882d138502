/*
Package morphdcg is a toolbox for morphological analysis with hand-written
grammars.

Grammars are given in a simplified form of Definite Clause Grammar: every rule
either expands a category into a literal sequence of surface symbols
(graphemes), or into a sequence of other categories, never both. Such a
grammar is compiled into one finite-state transducer per part-of-speech
category. The transducers read graphemes and emit category markers, thus
segmenting and labelling words. Package structure is as follows:

■ fst: Package fst implements unweighted finite-state automata and transducers,
together with the operations needed for grammar compilation (epsilon removal,
determinization, minimization, composition, replacement).

■ dcg: Package dcg holds the rule table and the description of how to interpret
it, and loads both from their textual forms.

■ morph: Package morph compiles a rule table into transducers and parses words
with them.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package morphdcg
