// Package mml ties the MML engine together: parse text into a document
// tree, mutate it through the dom and query packages, and serialize it
// back. The engine consumes and produces plain text only; storage and
// transport belong to callers.
package mml

import (
	"github.com/mml-format/go-mml/dom"
	"github.com/mml-format/go-mml/encode"
	"github.com/mml-format/go-mml/parse"
)

// Load parses MML text into a document. Malformed input is healed, not
// rejected.
func Load(text string) *dom.Document {
	return parse.Parse(text)
}

// Dump serializes a document back to MML text.
func Dump(d *dom.Document) string {
	return encode.MustString(d)
}

// Heal runs one parse/serialize pass. The result is a fixed point:
// healing it again returns it unchanged.
func Heal(text string) string {
	return Dump(Load(text))
}
