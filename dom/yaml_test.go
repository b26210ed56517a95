package dom

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type treeSnap struct {
	ID        string
	Kind      Kind
	Attrs     map[string]string
	Content   string
	Name      string
	Instances []string
	Children  []treeSnap
}

func takeSnap(t *testing.T, d *Document, id string) treeSnap {
	t.Helper()
	n, ok := d.Node(id)
	if !ok {
		t.Fatalf("snapshot: %q not indexed", id)
	}
	s := treeSnap{
		ID:        n.ID,
		Kind:      n.Kind,
		Attrs:     n.Attrs,
		Content:   n.Content,
		Name:      n.Name,
		Instances: n.Instances,
	}
	for _, cid := range n.Children {
		s.Children = append(s.Children, takeSnap(t, d, cid))
	}
	return s
}

func TestYAMLRoundTrip(t *testing.T) {
	d := New()
	c1 := mustContainer(t, d, RootID, map[string]string{"kind": "section"})
	mustLeaf(t, d, "hello\nworld", c1, map[string]string{"status": "draft"})
	frag := mustLeaf(t, d, `<!-- %item -->A<!-- /%item --><!-- %item -->B<!-- /%item -->`, c1, nil)
	if err := d.ExtractFragments(frag); err != nil {
		t.Fatal(err)
	}
	if err := d.SetAttribute(RootID, "version", "2"); err != nil {
		t.Fatal(err)
	}

	data, err := ToYAML(d)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := FromYAML(data)
	if err != nil {
		t.Fatal(err)
	}

	s1 := takeSnap(t, d, RootID)
	s2 := takeSnap(t, d2, RootID)
	if diff := cmp.Diff(s1, s2, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-orig +rebuilt):\n%s", diff)
	}
}

func TestToYAMLShape(t *testing.T) {
	d := New()
	mustLeaf(t, d, "hi", RootID, map[string]string{"status": "draft"})
	data, err := ToYAML(d)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"id: root", "kind: container", "kind: leaf", "content: hi", "status: draft"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFromYAMLValidation(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{
			name: "wrong root id",
			in:   "id: r2\nkind: container\n",
		},
		{
			name: "root not container",
			in:   "id: root\nkind: leaf\n",
		},
		{
			name: "leaf under leaf",
			in: strings.Join([]string{
				"id: root",
				"kind: container",
				"children:",
				"  - id: n1",
				"    kind: leaf",
				"    children:",
				"      - id: n2",
				"        kind: leaf",
				"",
			}, "\n"),
		},
		{
			name: "duplicate id",
			in: strings.Join([]string{
				"id: root",
				"kind: container",
				"children:",
				"  - id: n1",
				"    kind: leaf",
				"  - id: n1",
				"    kind: leaf",
				"",
			}, "\n"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromYAML([]byte(tt.in)); !errors.Is(err, ErrInvalidOp) {
				t.Errorf("err = %v, want ErrInvalidOp", err)
			}
		})
	}

	if _, err := FromYAML([]byte(":\tnot yaml")); err == nil {
		t.Error("no error for unparsable input")
	}
}

func TestFromYAMLMergesRootAttrs(t *testing.T) {
	in := "id: root\nkind: container\nattributes:\n  version: \"2\"\n"
	d, err := FromYAML([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := d.Attribute(RootID, "version", ""); v != "2" {
		t.Errorf("version = %q", v)
	}
	if v, _ := d.Attribute(RootID, "type", ""); v != "root" {
		t.Errorf("type = %q", v)
	}
}
