package dom

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// RootID is the reserved id of the document root. The root is always a
// container, always present, and is never deleted or moved.
const RootID = "root"

// AtEnd is the position sentinel for Move: append as last child.
const AtEnd = -1

// Document is one node store: an index from id to node plus the
// ownership edges recorded in each node's Children list.
type Document struct {
	nodes map[string]*Node
	gen   uint64
}

// New returns a document holding only the root container.
func New() *Document {
	root := &Node{
		ID:    RootID,
		Kind:  ContainerKind,
		Attrs: map[string]string{"type": "root"},
	}
	return &Document{nodes: map[string]*Node{RootID: root}}
}

// Generation returns a counter incremented on every successful
// mutation. External caching layers compare it to detect staleness.
func (d *Document) Generation() uint64 { return d.gen }

func (d *Document) bump() { d.gen++ }

func (d *Document) get(id string) (*Node, error) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return n, nil
}

// NewID generates an id unused in this document: the prefix plus a
// random hex suffix, regenerated on collision.
func (d *Document) NewID(prefix string) string {
	if prefix == "" {
		prefix = "x"
	}
	for {
		id := prefix + "_" + uuid.NewString()[:8]
		if _, ok := d.nodes[id]; !ok {
			return id
		}
	}
}

// Attach indexes n and appends it as the last child of parentID. The
// node must carry a fresh non-root id and no children; fragments may
// only attach under leaves, containers and leaves only under
// containers. Attach is the building block under CreateContainer and
// CreateLeaf and lets callers such as the parser pick their own ids.
func (d *Document) Attach(n *Node, parentID string) error {
	parent, err := d.get(parentID)
	if err != nil {
		return err
	}
	if n.ID == "" || n.ID == RootID {
		return fmt.Errorf("%w: bad node id %q", ErrInvalidOp, n.ID)
	}
	if _, ok := d.nodes[n.ID]; ok {
		return fmt.Errorf("%w: duplicate node id %q", ErrInvalidOp, n.ID)
	}
	if len(n.Children) != 0 {
		return fmt.Errorf("%w: node %q attached with children", ErrInvalidOp, n.ID)
	}
	switch n.Kind {
	case FragmentKind:
		if parent.Kind != LeafKind {
			return fmt.Errorf("%w: fragment %q under %s %q", ErrInvalidOp, n.ID, parent.Kind, parentID)
		}
	case ContainerKind, LeafKind:
		if parent.Kind != ContainerKind {
			return fmt.Errorf("%w: %s %q under %s %q", ErrInvalidOp, n.Kind, n.ID, parent.Kind, parentID)
		}
		if n.Attrs == nil {
			n.Attrs = map[string]string{}
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidOp, n.Kind)
	}
	n.Parent = parentID
	parent.Children = append(parent.Children, n.ID)
	d.nodes[n.ID] = n
	d.bump()
	return nil
}

// CreateContainer creates an empty container with a generated id as the
// last child of parentID.
func (d *Document) CreateContainer(parentID string, attrs map[string]string) (string, error) {
	n := &Node{ID: d.NewID("c"), Kind: ContainerKind, Attrs: maps.Clone(attrs)}
	if err := d.Attach(n, parentID); err != nil {
		return "", err
	}
	return n.ID, nil
}

// CreateLeaf creates a leaf holding content verbatim, with a generated
// id, as the last child of parentID.
func (d *Document) CreateLeaf(content, parentID string, attrs map[string]string) (string, error) {
	n := &Node{ID: d.NewID("n"), Kind: LeafKind, Content: content, Attrs: maps.Clone(attrs)}
	if err := d.Attach(n, parentID); err != nil {
		return "", err
	}
	return n.ID, nil
}

// Content returns a leaf's text content.
func (d *Document) Content(id string) (string, error) {
	n, err := d.get(id)
	if err != nil {
		return "", err
	}
	if n.Kind != LeafKind {
		return "", fmt.Errorf("%w: %q is a %s, not a leaf", ErrInvalidOp, id, n.Kind)
	}
	return n.Content, nil
}

// SetContent overwrites a leaf's text content.
func (d *Document) SetContent(id, content string) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	if n.Kind != LeafKind {
		return fmt.Errorf("%w: %q is a %s, not a leaf", ErrInvalidOp, id, n.Kind)
	}
	n.Content = content
	d.bump()
	return nil
}

// Attribute returns one attribute value, or def when the key is absent.
func (d *Document) Attribute(id, key, def string) (string, error) {
	n, err := d.get(id)
	if err != nil {
		return "", err
	}
	if v, ok := n.Attrs[key]; ok {
		return v, nil
	}
	return def, nil
}

// Attributes returns a copy of a node's attribute map.
func (d *Document) Attributes(id string) (map[string]string, error) {
	n, err := d.get(id)
	if err != nil {
		return nil, err
	}
	if n.Attrs == nil {
		return map[string]string{}, nil
	}
	return maps.Clone(n.Attrs), nil
}

// SetAttribute sets one attribute.
func (d *Document) SetAttribute(id, key, value string) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[key] = value
	d.bump()
	return nil
}

// SetAttributes merges attrs into a node's attribute map: existing keys
// are overwritten, others untouched.
func (d *Document) SetAttributes(id string, attrs map[string]string) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	maps.Copy(n.Attrs, attrs)
	d.bump()
	return nil
}

// DeleteAttribute removes one attribute; removing an absent key is a
// no-op.
func (d *Document) DeleteAttribute(id, key string) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	delete(n.Attrs, key)
	d.bump()
	return nil
}

// Children returns a node's ordered child ids.
func (d *Document) Children(id string) ([]string, error) {
	n, err := d.get(id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(n.Children), nil
}

// ParentOf returns a node's parent id, or "" for the root.
func (d *Document) ParentOf(id string) (string, error) {
	n, err := d.get(id)
	if err != nil {
		return "", err
	}
	return n.Parent, nil
}

// KindOf returns a node's kind.
func (d *Document) KindOf(id string) (Kind, error) {
	n, err := d.get(id)
	if err != nil {
		return 0, err
	}
	return n.Kind, nil
}

// Exists reports whether id is in the index.
func (d *Document) Exists(id string) bool {
	_, ok := d.nodes[id]
	return ok
}

// Node returns a deep copy of one node record, for read-only traversal
// by encoders and renderers. Mutations go through the Document API.
func (d *Document) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, false
	}
	return n.clone(), true
}

// Len returns the number of nodes in the index, root included.
func (d *Document) Len() int { return len(d.nodes) }

// IDs returns every node id in document order: root first, then a
// depth-first walk following child order.
func (d *Document) IDs() []string {
	ids := make([]string, 0, len(d.nodes))
	var walk func(id string)
	walk = func(id string) {
		ids = append(ids, id)
		for _, cid := range d.nodes[id].Children {
			walk(cid)
		}
	}
	walk(RootID)
	return ids
}

// Descendants returns the ids transitively owned by a container,
// depth-first, expanding containers in child order. A leaf's fragment
// children are regions of the leaf, not descendants of the enclosing
// container, and are not listed. A missing id yields an empty list.
func (d *Document) Descendants(id string) []string {
	n, ok := d.nodes[id]
	if !ok {
		return nil
	}
	var out []string
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, cid := range n.Children {
			out = append(out, cid)
			if c := d.nodes[cid]; c.Kind == ContainerKind {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// Delete removes id and all descendants from the index and detaches the
// subtree from its parent. No partial deletion state is observable.
func (d *Document) Delete(id string) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	if id == RootID {
		return fmt.Errorf("%w: cannot delete the root", ErrInvalidOp)
	}
	if parent, ok := d.nodes[n.Parent]; ok {
		parent.Children = slices.DeleteFunc(parent.Children, func(cid string) bool {
			return cid == id
		})
	}
	d.deleteSubtree(n)
	d.bump()
	return nil
}

func (d *Document) deleteSubtree(n *Node) {
	for _, cid := range n.Children {
		if c, ok := d.nodes[cid]; ok {
			d.deleteSubtree(c)
		}
	}
	delete(d.nodes, n.ID)
}

// Move detaches id from its parent and inserts it under newParentID at
// position (AtEnd or any out-of-range position appends). The
// destination must be a container; moves of the root, of fragments, or
// into the moved node's own subtree are refused.
func (d *Document) Move(id, newParentID string, position int) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	parent, err := d.get(newParentID)
	if err != nil {
		return err
	}
	if parent.Kind != ContainerKind {
		return fmt.Errorf("%w: %q is not a container", ErrInvalidOp, newParentID)
	}
	if id == RootID {
		return fmt.Errorf("%w: cannot move the root", ErrInvalidOp)
	}
	if n.Kind == FragmentKind {
		return fmt.Errorf("%w: cannot move fragment %q out of its leaf", ErrInvalidOp, id)
	}
	for p := parent; p != nil; p = d.nodes[p.Parent] {
		if p.ID == id {
			return fmt.Errorf("%w: cannot move %q into its own subtree", ErrInvalidOp, id)
		}
	}
	if old, ok := d.nodes[n.Parent]; ok {
		old.Children = slices.DeleteFunc(old.Children, func(cid string) bool {
			return cid == id
		})
	}
	if position < 0 || position >= len(parent.Children) {
		parent.Children = append(parent.Children, id)
	} else {
		parent.Children = slices.Insert(parent.Children, position, id)
	}
	n.Parent = newParentID
	d.bump()
	return nil
}

// SortChildren stably reorders a node's children by the caller-supplied
// comparison over child ids.
func (d *Document) SortChildren(id string, less func(a, b string) bool) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	slices.SortStableFunc(n.Children, func(a, b string) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
	d.bump()
	return nil
}

// Prune removes empty leaves and childless containers bottom-up. A leaf
// is empty when its content is "" or whitespace only. Fragments and the
// root are never pruned.
func (d *Document) Prune() {
	d.prune(d.nodes[RootID])
	d.bump()
}

func (d *Document) prune(n *Node) bool {
	var keep []string
	for _, cid := range n.Children {
		c := d.nodes[cid]
		if d.prune(c) {
			d.deleteSubtree(c)
		} else {
			keep = append(keep, cid)
		}
	}
	n.Children = keep
	switch {
	case n.ID == RootID:
		return false
	case n.Kind == FragmentKind:
		return false
	case n.Kind == LeafKind:
		return strings.TrimSpace(n.Content) == ""
	default:
		return len(n.Children) == 0
	}
}
