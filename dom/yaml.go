package dom

import (
	"fmt"
	"maps"

	"github.com/goccy/go-yaml"
)

// yamlNode is the interchange shape of one node. The tree form is
// self-describing and usable where no MML parsing support exists.
type yamlNode struct {
	ID        string            `yaml:"id"`
	Kind      Kind              `yaml:"kind"`
	Attrs     map[string]string `yaml:"attributes,omitempty"`
	Content   string            `yaml:"content,omitempty"`
	Name      string            `yaml:"name,omitempty"`
	Instances []string          `yaml:"instances,omitempty"`
	Children  []*yamlNode       `yaml:"children,omitempty"`
}

// ToYAML renders the whole tree as YAML, children nested under their
// parents in document order.
func ToYAML(d *Document) ([]byte, error) {
	return yaml.Marshal(d.yamlTree(RootID))
}

func (d *Document) yamlTree(id string) *yamlNode {
	n := d.nodes[id]
	y := &yamlNode{
		ID:        n.ID,
		Kind:      n.Kind,
		Attrs:     n.Attrs,
		Content:   n.Content,
		Name:      n.Name,
		Instances: n.Instances,
	}
	for _, cid := range n.Children {
		y.Children = append(y.Children, d.yamlTree(cid))
	}
	return y
}

// FromYAML rebuilds a document from the tree form produced by ToYAML,
// validating ids, kinds and parent/child rules on the way in.
func FromYAML(data []byte) (*Document, error) {
	root := &yamlNode{}
	if err := yaml.Unmarshal(data, root); err != nil {
		return nil, err
	}
	if root.ID != RootID || root.Kind != ContainerKind {
		return nil, fmt.Errorf("%w: tree root must be the %q container, got %s %q",
			ErrInvalidOp, RootID, root.Kind, root.ID)
	}
	d := New()
	if root.Attrs != nil {
		maps.Copy(d.nodes[RootID].Attrs, root.Attrs)
	}
	for _, c := range root.Children {
		if err := d.fromYAML(c, RootID); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Document) fromYAML(y *yamlNode, parentID string) error {
	n := &Node{
		ID:        y.ID,
		Kind:      y.Kind,
		Content:   y.Content,
		Attrs:     maps.Clone(y.Attrs),
		Name:      y.Name,
		Instances: y.Instances,
	}
	if err := d.Attach(n, parentID); err != nil {
		return err
	}
	for _, c := range y.Children {
		if err := d.fromYAML(c, y.ID); err != nil {
			return err
		}
	}
	return nil
}
