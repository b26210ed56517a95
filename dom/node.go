// Package dom provides the MML document tree: an id-indexed node store
// with a structural mutation API.
//
// A Document owns every node through its index; parent/child relations
// are expressed as id references, so no cyclic ownership exists. The
// node kinds form a closed set:
//
//   - ContainerKind: owns other nodes, carries attributes, no content
//   - LeafKind: carries text content and attributes; may own fragment
//     children describing regions of its own content
//   - FragmentKind: a named, possibly repeated sub-region of a leaf's
//     content, stored as an ordered list of instance strings
//
// Documents are not safe for unsynchronized concurrent mutation.
package dom

import (
	"fmt"
	"maps"
	"slices"
)

type Kind int

const (
	ContainerKind Kind = iota
	LeafKind
	FragmentKind
)

// Kinds enumerates all node kinds.
func Kinds() []Kind {
	return []Kind{ContainerKind, LeafKind, FragmentKind}
}

func (k Kind) String() string {
	d, err := k.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case ContainerKind:
		return []byte("container"), nil
	case LeafKind:
		return []byte("leaf"), nil
	case FragmentKind:
		return []byte("fragment"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a kind>", k)
	}
}

func (k *Kind) UnmarshalText(d []byte) error {
	pk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}

func ParseKind(v string) (Kind, error) {
	k, ok := map[string]Kind{
		"container": ContainerKind,
		"leaf":      LeafKind,
		"fragment":  FragmentKind,
	}[v]
	if ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidOp, v)
}

// Node is one record of the document tree. Content is meaningful only
// for LeafKind; Name and Instances only for FragmentKind. Children and
// Parent hold node ids, never pointers.
type Node struct {
	ID       string
	Kind     Kind
	Content  string
	Attrs    map[string]string
	Children []string
	Parent   string

	Name      string
	Instances []string
}

func (n *Node) clone() *Node {
	c := *n
	c.Attrs = maps.Clone(n.Attrs)
	c.Children = slices.Clone(n.Children)
	c.Instances = slices.Clone(n.Instances)
	return &c
}
