package dom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mml-format/go-mml/format"
)

// ExtractFragments re-scans a leaf's content and rebuilds its fragment
// children. Regions are collected left to right, non-overlapping; an
// opening marker whose next closing marker carries a different name is
// skipped, not matched. All regions sharing a name become one fragment
// child holding the ordered instance strings.
func (d *Document) ExtractFragments(id string) error {
	n, err := d.get(id)
	if err != nil {
		return err
	}
	if n.Kind != LeafKind {
		return fmt.Errorf("%w: %q is a %s, not a leaf", ErrInvalidOp, id, n.Kind)
	}
	var keep []string
	for _, cid := range n.Children {
		if c := d.nodes[cid]; c.Kind == FragmentKind {
			delete(d.nodes, cid)
		} else {
			keep = append(keep, cid)
		}
	}
	n.Children = keep
	instances, order := scanFragments(n.Content)
	for _, name := range order {
		f := &Node{
			ID:        d.NewID("f"),
			Kind:      FragmentKind,
			Name:      name,
			Instances: instances[name],
			Parent:    id,
		}
		n.Children = append(n.Children, f.ID)
		d.nodes[f.ID] = f
	}
	d.bump()
	return nil
}

func scanFragments(content string) (map[string][]string, []string) {
	found := map[string][]string{}
	var order []string
	pos := 0
	for pos < len(content) {
		loc := format.FragmentRE.FindStringSubmatchIndex(content[pos:])
		if loc == nil {
			break
		}
		name := content[pos+loc[2] : pos+loc[3]]
		start := pos + loc[1]
		eloc := format.FragmentEndRE.FindStringSubmatchIndex(content[start:])
		if eloc == nil || content[start+eloc[2]:start+eloc[3]] != name {
			pos = start
			continue
		}
		if _, ok := found[name]; !ok {
			order = append(order, name)
		}
		found[name] = append(found[name], strings.TrimSpace(content[start:start+eloc[0]]))
		pos = start + eloc[1]
	}
	return found, order
}

// Fragments returns a leaf's fragments as name to ordered instance
// list. With name "" all fragments are returned; an absent name yields
// an empty map, not an error.
func (d *Document) Fragments(leafID, name string) (map[string][]string, error) {
	n, err := d.get(leafID)
	if err != nil {
		return nil, err
	}
	res := map[string][]string{}
	for _, cid := range n.Children {
		c := d.nodes[cid]
		if c.Kind != FragmentKind {
			continue
		}
		if name != "" && c.Name != name {
			continue
		}
		res[c.Name] = slices.Clone(c.Instances)
	}
	return res, nil
}

// SetFragment rewrites the index-th instance (1-based) of the named
// fragment and regenerates the leaf's content, replacing occurrences
// rightmost-first so earlier offsets stay valid.
func (d *Document) SetFragment(leafID, name string, index int, content string) error {
	n, err := d.get(leafID)
	if err != nil {
		return err
	}
	var frag *Node
	for _, cid := range n.Children {
		if c := d.nodes[cid]; c.Kind == FragmentKind && c.Name == name {
			frag = c
			break
		}
	}
	if frag == nil {
		return fmt.Errorf("%w: fragment %q in %q", ErrNotFound, name, leafID)
	}
	if index < 1 || index > len(frag.Instances) {
		return fmt.Errorf("%w: fragment index %d out of range [1,%d]", ErrInvalidOp, index, len(frag.Instances))
	}
	frag.Instances[index-1] = content
	if n.Kind == LeafKind {
		d.refreshContent(n)
	}
	d.bump()
	return nil
}

func (d *Document) refreshContent(n *Node) {
	content := n.Content
	for _, cid := range n.Children {
		c := d.nodes[cid]
		if c.Kind != FragmentKind {
			continue
		}
		re := format.FragmentRegionRE(c.Name)
		locs := re.FindAllStringIndex(content, -1)
		for i := len(locs) - 1; i >= 0; i-- {
			if i >= len(c.Instances) {
				continue
			}
			rep := format.FragmentMarkup(c.Name, c.Instances[i])
			content = content[:locs[i][0]] + rep + content[locs[i][1]:]
		}
	}
	n.Content = content
}
