package morph

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/cnf/structhash"
	"github.com/edsrzf/mmap-go"
	"github.com/npillmayer/morphdcg/fst"
)

// magic starts every file of a compiled grammar.
var magic = []byte("MDCG\x01")

const formatVersion = 1

// grammarData is the serialized form of a grammar.
type grammarData struct {
	Symbols     []string // in label order, starting with epsilon
	Roots       []string
	Transducers []fst.Snapshot // in order of Roots
	Bounds      []string
	Stems       []string
	Affixes     []string
	MaxPaths    int
}

type envelope struct {
	Fingerprint string
	Data        grammarData
}

func (g *Grammar) data() grammarData {
	d := grammarData{
		Symbols:  g.syms.Names(),
		Roots:    g.roots,
		Bounds:   g.bounds,
		Stems:    g.stems,
		Affixes:  g.affixes,
		MaxPaths: g.opts.MaxPaths,
	}
	for _, r := range g.roots {
		d.Transducers = append(d.Transducers, g.fsts[r].Snapshot())
	}
	return d
}

// Fingerprint returns a hash over the compiled transducers and configuration
// of the grammar. Grammars compiled from the same input have the same
// fingerprint.
func (g *Grammar) Fingerprint() (string, error) {
	return fingerprint(g.data())
}

func fingerprint(d grammarData) (string, error) {
	return structhash.Hash(d, formatVersion)
}

// WriteTo writes the compiled grammar in a compressed binary format.
func (g *Grammar) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := cw.Write(magic); err != nil {
		return cw.n, err
	}
	d := g.data()
	fp, err := fingerprint(d)
	if err != nil {
		return cw.n, fmt.Errorf("fingerprinting grammar: %w", err)
	}
	zw := gzip.NewWriter(cw)
	if err := gob.NewEncoder(zw).Encode(envelope{Fingerprint: fp, Data: d}); err != nil {
		return cw.n, fmt.Errorf("encoding grammar: %w", err)
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	tracer().Infof("grammar written, %d bytes, fingerprint %s", cw.n, fp)
	return cw.n, nil
}

// Read reads a grammar written by WriteTo.
func Read(r io.Reader) (*Grammar, error) {
	head := make([]byte, len(magic))
	if _, err := io.ReadFull(r, head); err != nil || !bytes.Equal(head, magic) {
		return nil, fmt.Errorf("not a compiled grammar")
	}
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading compiled grammar: %w", err)
	}
	defer zr.Close()
	var env envelope
	if err := gob.NewDecoder(zr).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding compiled grammar: %w", err)
	}
	fp, err := fingerprint(env.Data)
	if err != nil {
		return nil, err
	}
	if fp != env.Fingerprint {
		return nil, fmt.Errorf("compiled grammar is corrupt: fingerprint %s, expected %s", fp, env.Fingerprint)
	}
	return fromData(env.Data)
}

func fromData(d grammarData) (*Grammar, error) {
	if len(d.Symbols) == 0 || len(d.Roots) != len(d.Transducers) {
		return nil, fmt.Errorf("compiled grammar is inconsistent")
	}
	syms := fst.NewSymbolTable()
	for i, name := range d.Symbols[1:] {
		if l := syms.Define(name); int(l) != i+1 {
			return nil, fmt.Errorf("compiled grammar has duplicate symbol %q", name)
		}
	}
	g := &Grammar{
		syms:    syms,
		roots:   d.Roots,
		fsts:    make(map[string]*fst.Automaton, len(d.Roots)),
		bounds:  d.Bounds,
		stems:   d.Stems,
		affixes: d.Affixes,
		opts:    Options{MaxPaths: d.MaxPaths},
	}
	for i, r := range d.Roots {
		A, err := fst.FromSnapshot(d.Transducers[i])
		if err != nil {
			return nil, fmt.Errorf("compiled transducer for %q: %w", r, err)
		}
		g.fsts[r] = A
	}
	g.init()
	return g, nil
}

// SaveFile writes the compiled grammar to a file.
func (g *Grammar) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if _, err := g.WriteTo(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a compiled grammar from a file. The file is memory mapped
// while decoding.
func LoadFile(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%s: not a compiled grammar", path)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}
	defer m.Unmap()
	g, err := Read(bytes.NewReader(m))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
