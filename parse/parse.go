// Package parse provides the tolerant MML deserializer.
//
// Parse never rejects input: unmatched markers, stray text and missing
// closers are healed by wrapping loose content into synthetic leaves
// and by a final pruning pass, so every parse yields a well-formed
// tree. Even "" produces a valid root-only document.
package parse

import (
	"strings"

	"github.com/mml-format/go-mml/debug"
	"github.com/mml-format/go-mml/dom"
	"github.com/mml-format/go-mml/format"
)

// Parse converts MML text into a document.
func Parse(text string, opts ...Option) *dom.Document {
	o := &parseOpts{prune: true, fragments: true}
	for _, f := range opts {
		f(o)
	}
	p := &parser{doc: dom.New(), stack: []string{dom.RootID}}
	for _, line := range strings.Split(text, "\n") {
		p.line(line)
	}
	p.finish()
	if o.prune {
		p.doc.Prune()
	}
	if o.fragments {
		p.extractFragments()
	}
	return p.doc
}

type parser struct {
	doc   *dom.Document
	stack []string // open containers, root at the bottom
	loose []string
	leaf  string // id of the open leaf, "" when none
	body  []string
}

func (p *parser) top() string { return p.stack[len(p.stack)-1] }

// line dispatches one input line, in priority order: container open,
// leaf open, leaf close, container close, content.
func (p *parser) line(line string) {
	if m := format.ContainerRE.FindStringSubmatch(line); m != nil {
		p.flushLoose(p.top())
		p.closeLeaf()
		attrs := format.ParseAttrs(m[2])
		if m[1] == dom.RootID {
			_ = p.doc.SetAttributes(dom.RootID, attrs)
			return
		}
		id := p.healID(m[1], "c")
		n := &dom.Node{ID: id, Kind: dom.ContainerKind, Attrs: attrs}
		_ = p.doc.Attach(n, p.top())
		p.stack = append(p.stack, id)
		return
	}
	if m := format.LeafRE.FindStringSubmatch(line); m != nil {
		p.flushLoose(p.top())
		p.closeLeaf()
		id := p.healID(m[1], "n")
		n := &dom.Node{ID: id, Kind: dom.LeafKind, Attrs: format.ParseAttrs(m[2])}
		_ = p.doc.Attach(n, p.top())
		p.leaf = id
		p.body = nil
		return
	}
	if format.LeafEndRE.MatchString(line) {
		if p.leaf == "" && debug.Parse() {
			debug.Logf("parse: dropping stray leaf closer\n")
		}
		p.closeLeaf()
		return
	}
	if format.ContainerEndRE.MatchString(line) {
		p.flushLoose(p.top())
		p.closeLeaf()
		if len(p.stack) > 1 {
			p.stack = p.stack[:len(p.stack)-1]
		} else if debug.Parse() {
			debug.Logf("parse: dropping container closer at root\n")
		}
		return
	}
	if p.leaf != "" {
		p.body = append(p.body, line)
		return
	}
	p.loose = append(p.loose, line)
}

// finish flushes the trailing state: a still-open leaf keeps its
// accumulated content, trailing loose text is wrapped under the root.
func (p *parser) finish() {
	p.closeLeaf()
	p.flushLoose(dom.RootID)
}

// healID returns the marker id, or a fresh one when the marker reuses
// an id already in the index.
func (p *parser) healID(id, prefix string) string {
	if !p.doc.Exists(id) {
		return id
	}
	healed := p.doc.NewID(prefix)
	if debug.Parse() {
		debug.Logf("parse: duplicate id %q healed to %q\n", id, healed)
	}
	return healed
}

func (p *parser) closeLeaf() {
	if p.leaf == "" {
		return
	}
	_ = p.doc.SetContent(p.leaf, strings.TrimSpace(strings.Join(p.body, "\n")))
	p.leaf = ""
	p.body = nil
}

// flushLoose wraps accumulated loose lines into a synthetic leaf under
// parentID; whitespace-only accumulations produce nothing.
func (p *parser) flushLoose(parentID string) {
	if len(p.loose) == 0 {
		return
	}
	text := strings.TrimSpace(strings.Join(p.loose, "\n"))
	p.loose = nil
	if text == "" {
		return
	}
	n := &dom.Node{ID: p.doc.NewID("n"), Kind: dom.LeafKind, Content: text}
	_ = p.doc.Attach(n, parentID)
}

func (p *parser) extractFragments() {
	for _, id := range p.doc.IDs() {
		if k, err := p.doc.KindOf(id); err != nil || k != dom.LeafKind {
			continue
		}
		_ = p.doc.ExtractFragments(id)
		if debug.Fragments() {
			frags, _ := p.doc.Fragments(id, "")
			for name, instances := range frags {
				debug.Logf("fragments: %s: %q x%d\n", id, name, len(instances))
			}
		}
	}
}
