// Package encode serializes MML documents back to text.
//
// For any tree parsed from well-formed input, encoding and reparsing
// reproduces an isomorphic tree. For healed malformed input the encoded
// form is a fixed point: it reparses to the same healed tree.
package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/mml-format/go-mml/dom"
	"github.com/mml-format/go-mml/format"
)

// Encode writes the whole document as MML text, without a trailing
// newline.
func Encode(d *dom.Document, w io.Writer) error {
	return EncodeNode(d, dom.RootID, w)
}

// EncodeNode writes the subtree rooted at id. Containers emit an open
// marker, their children, and a close marker; leaves emit their raw
// content between markers without recursing (fragments are already
// embedded in the content). A fragment targeted directly emits one
// marker triple per stored instance.
func EncodeNode(d *dom.Document, id string, w io.Writer) error {
	lines, err := nodeLines(d, id, nil)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func nodeLines(d *dom.Document, id string, lines []string) ([]string, error) {
	n, ok := d.Node(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", dom.ErrNotFound, id)
	}
	switch n.Kind {
	case dom.FragmentKind:
		for _, inst := range n.Instances {
			lines = append(lines,
				format.FragmentOpen(n.Name),
				inst,
				format.FragmentClose(n.Name))
		}
	case dom.LeafKind:
		lines = append(lines,
			format.OpenMarker(format.TagLeaf, n.ID, n.Attrs),
			n.Content,
			format.CloseMarker(format.TagLeaf))
	default:
		lines = append(lines, format.OpenMarker(format.TagContainer, n.ID, n.Attrs))
		var err error
		for _, cid := range n.Children {
			if lines, err = nodeLines(d, cid, lines); err != nil {
				return nil, err
			}
		}
		lines = append(lines, format.CloseMarker(format.TagContainer))
	}
	return lines, nil
}

// String returns the encoded document.
func String(d *dom.Document) (string, error) {
	sb := &strings.Builder{}
	if err := Encode(d, sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// MustString is String for contexts where encoding cannot fail.
func MustString(d *dom.Document) string {
	s, err := String(d)
	if err != nil {
		panic(err)
	}
	return s
}
