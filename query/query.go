// Package query provides a chainable, filtering and bulk-editing view
// over an MML document.
//
// A Query holds a reference to one document and an ordered set of
// matched ids, initially every id in document order. Filters are
// non-destructive: each returns a fresh view sharing the document, so
// earlier views remain usable as branch points. Bulk operations mutate
// the underlying document directly and return the same view for
// chaining. The query never stores node data itself.
package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mml-format/go-mml/debug"
	"github.com/mml-format/go-mml/dom"
)

type Query struct {
	doc *dom.Document
	ids []string
}

// New returns a view over doc matching every node id.
func New(doc *dom.Document) *Query {
	return &Query{doc: doc, ids: doc.IDs()}
}

// Reset widens the view back to every node id, returning a fresh view.
func (q *Query) Reset() *Query {
	return New(q.doc)
}

func (q *Query) with(ids []string) *Query {
	return &Query{doc: q.doc, ids: ids}
}

func (q *Query) filter(pred func(id string) bool) *Query {
	var out []string
	for _, id := range q.ids {
		if pred(id) {
			out = append(out, id)
		}
	}
	if debug.Query() {
		debug.Logf("query: %d -> %d ids\n", len(q.ids), len(out))
	}
	return q.with(out)
}

// Where narrows to nodes carrying every given attribute key/value pair.
func (q *Query) Where(attrs map[string]string) *Query {
	return q.filter(func(id string) bool {
		m, err := q.doc.Attributes(id)
		if err != nil {
			return false
		}
		for k, v := range attrs {
			if got, ok := m[k]; !ok || got != v {
				return false
			}
		}
		return true
	})
}

// WhereIn narrows to nodes whose attribute value for key is one of
// values.
func (q *Query) WhereIn(key string, values []string) *Query {
	return q.filter(func(id string) bool {
		m, err := q.doc.Attributes(id)
		if err != nil {
			return false
		}
		v, ok := m[key]
		return ok && slices.Contains(values, v)
	})
}

// WhereContains narrows to nodes whose attribute value for key contains
// substr; an absent key reads as "".
func (q *Query) WhereContains(key, substr string) *Query {
	return q.filter(func(id string) bool {
		m, err := q.doc.Attributes(id)
		if err != nil {
			return false
		}
		return strings.Contains(m[key], substr)
	})
}

// WhereContainer narrows to members of a container's subtree: its full
// recursive descendant set, or its direct children only.
func (q *Query) WhereContainer(containerID string, recursive bool) *Query {
	var member map[string]bool
	if recursive {
		member = toSet(q.doc.Descendants(containerID))
	} else {
		children, err := q.doc.Children(containerID)
		if err != nil {
			children = nil
		}
		member = toSet(children)
	}
	return q.filter(func(id string) bool { return member[id] })
}

// WhereKind narrows to nodes of one kind.
func (q *Query) WhereKind(kind dom.Kind) *Query {
	return q.filter(func(id string) bool {
		k, err := q.doc.KindOf(id)
		return err == nil && k == kind
	})
}

// WhereFragment narrows to leaves carrying a fragment with the given
// name.
func (q *Query) WhereFragment(name string) *Query {
	return q.filter(func(id string) bool {
		frags, err := q.doc.Fragments(id, name)
		if err != nil {
			return false
		}
		_, ok := frags[name]
		return ok
	})
}

// WhereFunc narrows with a caller-supplied predicate over id and
// attributes.
func (q *Query) WhereFunc(pred func(id string, attrs map[string]string) bool) *Query {
	return q.filter(func(id string) bool {
		m, err := q.doc.Attributes(id)
		if err != nil {
			return false
		}
		return pred(id, m)
	})
}

// WhereNot excludes the given ids.
func (q *Query) WhereNot(ids ...string) *Query {
	excluded := toSet(ids)
	return q.filter(func(id string) bool { return !excluded[id] })
}

func toSet(ids []string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// SetAttributes merges attrs into every matched node; ids deleted since
// matching are skipped.
func (q *Query) SetAttributes(attrs map[string]string) *Query {
	for _, id := range q.ids {
		_ = q.doc.SetAttributes(id, attrs)
	}
	return q
}

// SetContent rewrites every matched leaf's content through transform;
// non-leaf matches are skipped.
func (q *Query) SetContent(transform func(content string, attrs map[string]string) string) *Query {
	for _, id := range q.ids {
		if k, err := q.doc.KindOf(id); err != nil || k != dom.LeafKind {
			continue
		}
		content, err := q.doc.Content(id)
		if err != nil {
			continue
		}
		attrs, err := q.doc.Attributes(id)
		if err != nil {
			continue
		}
		_ = q.doc.SetContent(id, transform(content, attrs))
	}
	return q
}

// Delete removes every matched node and empties the view, returning the
// matched count. Ids already removed as descendants of an earlier
// deletion in the same batch are tolerated.
func (q *Query) Delete() int {
	count := len(q.ids)
	for _, id := range q.ids {
		if q.doc.Exists(id) {
			_ = q.doc.Delete(id)
		}
	}
	q.ids = nil
	return count
}

// MoveTo appends every matched node to the target container, which must
// exist and be a container; matched ids no longer present, and moves
// that would break the tree shape, are skipped.
func (q *Query) MoveTo(containerID string) (*Query, error) {
	k, err := q.doc.KindOf(containerID)
	if err != nil {
		return nil, err
	}
	if k != dom.ContainerKind {
		return nil, fmt.Errorf("%w: %q is not a container", dom.ErrInvalidOp, containerID)
	}
	for _, id := range q.ids {
		if !q.doc.Exists(id) {
			continue
		}
		_ = q.doc.Move(id, containerID, dom.AtEnd)
	}
	return q, nil
}

// SortSiblings sorts, once per distinct parent represented in the
// match set, that parent's full children list by the given attribute
// key, optionally reversed.
func (q *Query) SortSiblings(key string, reverse bool) *Query {
	var parents []string
	seen := map[string]bool{}
	for _, id := range q.ids {
		pid, err := q.doc.ParentOf(id)
		if err != nil || pid == "" || seen[pid] {
			continue
		}
		seen[pid] = true
		parents = append(parents, pid)
	}
	for _, pid := range parents {
		attr := func(id string) string {
			v, _ := q.doc.Attribute(id, key, "")
			return v
		}
		less := func(a, b string) bool { return attr(a) < attr(b) }
		if reverse {
			less = func(a, b string) bool { return attr(b) < attr(a) }
		}
		_ = q.doc.SortChildren(pid, less)
	}
	return q
}

// IDs returns the matched ids in order.
func (q *Query) IDs() []string { return slices.Clone(q.ids) }

// Count returns the number of matched ids.
func (q *Query) Count() int { return len(q.ids) }

// First returns the first matched id.
func (q *Query) First() (string, bool) {
	if len(q.ids) == 0 {
		return "", false
	}
	return q.ids[0], true
}

// At returns the matched id at position i.
func (q *Query) At(i int) (string, bool) {
	if i < 0 || i >= len(q.ids) {
		return "", false
	}
	return q.ids[i], true
}

// Any reports whether any id matched.
func (q *Query) Any() bool { return len(q.ids) > 0 }

// Each calls f for every matched id.
func (q *Query) Each(f func(id string)) *Query {
	for _, id := range q.ids {
		f(id)
	}
	return q
}
