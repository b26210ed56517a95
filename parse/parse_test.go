package parse

import (
	"slices"
	"strings"
	"testing"

	"github.com/mml-format/go-mml/dom"
)

func TestParseEmpty(t *testing.T) {
	d := Parse("")
	if d.Len() != 1 {
		t.Fatalf("node count = %d", d.Len())
	}
	if !d.Exists(dom.RootID) {
		t.Fatal("root missing")
	}
	if v, _ := d.Attribute(dom.RootID, "type", ""); v != "root" {
		t.Errorf("root type attr = %q", v)
	}
}

func TestParseBasic(t *testing.T) {
	d := Parse(strings.Join([]string{
		`<!-- @c id="c1" kind="section" -->`,
		`<!-- @n id="n1" status="draft" -->`,
		`hello`,
		`world`,
		`<!-- /@n -->`,
		`<!-- /@c -->`,
	}, "\n"))

	if got, _ := d.Children(dom.RootID); !slices.Equal(got, []string{"c1"}) {
		t.Fatalf("root children = %v", got)
	}
	if v, _ := d.Attribute("c1", "kind", ""); v != "section" {
		t.Errorf("c1 kind attr = %q", v)
	}
	if got, _ := d.Children("c1"); !slices.Equal(got, []string{"n1"}) {
		t.Fatalf("c1 children = %v", got)
	}
	if content, _ := d.Content("n1"); content != "hello\nworld" {
		t.Errorf("content = %q", content)
	}
	if v, _ := d.Attribute("n1", "status", ""); v != "draft" {
		t.Errorf("n1 status attr = %q", v)
	}
}

func TestParseRootMarkerMergesAttrs(t *testing.T) {
	d := Parse(strings.Join([]string{
		`<!-- @c id="root" version="2" -->`,
		`<!-- @n id="n1" -->`,
		`x`,
		`<!-- /@n -->`,
		`<!-- /@c -->`,
	}, "\n"))

	if v, _ := d.Attribute(dom.RootID, "version", ""); v != "2" {
		t.Errorf("root version attr = %q", v)
	}
	if v, _ := d.Attribute(dom.RootID, "type", ""); v != "root" {
		t.Errorf("root type attr = %q", v)
	}
	// The root marker does not nest: n1 sits directly under root.
	if pid, _ := d.ParentOf("n1"); pid != dom.RootID {
		t.Errorf("n1 parent = %q", pid)
	}
}

func TestParseLooseContent(t *testing.T) {
	d := Parse(strings.Join([]string{
		`<!-- @c id="c1" -->`,
		`inside`,
		`<!-- /@c -->`,
		`trailing`,
	}, "\n"))

	c1Kids, _ := d.Children("c1")
	if len(c1Kids) != 1 {
		t.Fatalf("c1 children = %v", c1Kids)
	}
	if content, _ := d.Content(c1Kids[0]); content != "inside" {
		t.Errorf("wrapped content = %q", content)
	}

	rootKids, _ := d.Children(dom.RootID)
	if len(rootKids) != 2 {
		t.Fatalf("root children = %v", rootKids)
	}
	if content, _ := d.Content(rootKids[1]); content != "trailing" {
		t.Errorf("trailing content = %q", content)
	}
}

func TestParseWhitespaceLooseDropped(t *testing.T) {
	d := Parse(strings.Join([]string{
		`<!-- @c id="c1" -->`,
		``,
		`   `,
		`<!-- @n id="n1" -->`,
		`x`,
		`<!-- /@n -->`,
		``,
		`<!-- /@c -->`,
	}, "\n"))

	if got, _ := d.Children("c1"); !slices.Equal(got, []string{"n1"}) {
		t.Errorf("c1 children = %v, want only n1", got)
	}
}

func TestParseMissingContainerCloser(t *testing.T) {
	d := Parse(strings.Join([]string{
		`<!-- @c id="c1" -->`,
		`<!-- @n id="n1" -->`,
		`x`,
		`<!-- /@n -->`,
	}, "\n"))

	// The unterminated container keeps its subtree.
	if pid, _ := d.ParentOf("n1"); pid != "c1" {
		t.Errorf("n1 parent = %q", pid)
	}
	if pid, _ := d.ParentOf("c1"); pid != dom.RootID {
		t.Errorf("c1 parent = %q", pid)
	}
}

func TestParseMissingLeafCloser(t *testing.T) {
	d := Parse(strings.Join([]string{
		`<!-- @n id="n1" -->`,
		`x`,
		`y`,
	}, "\n"))

	if content, _ := d.Content("n1"); content != "x\ny" {
		t.Errorf("content = %q", content)
	}
}

func TestParseMarkerClosesOpenLeaf(t *testing.T) {
	d := Parse(strings.Join([]string{
		`<!-- @n id="n1" -->`,
		`first`,
		`<!-- @n id="n2" -->`,
		`second`,
		`<!-- /@n -->`,
	}, "\n"))

	if content, _ := d.Content("n1"); content != "first" {
		t.Errorf("n1 content = %q", content)
	}
	if content, _ := d.Content("n2"); content != "second" {
		t.Errorf("n2 content = %q", content)
	}
	if got, _ := d.Children(dom.RootID); !slices.Equal(got, []string{"n1", "n2"}) {
		t.Errorf("root children = %v", got)
	}
}

func TestParseStrayLeafCloser(t *testing.T) {
	d := Parse(strings.Join([]string{
		`x`,
		`<!-- /@n -->`,
		`y`,
	}, "\n"))

	kids, _ := d.Children(dom.RootID)
	if len(kids) != 1 {
		t.Fatalf("root children = %v", kids)
	}
	if content, _ := d.Content(kids[0]); content != "x\ny" {
		t.Errorf("content = %q", content)
	}
}

func TestParseStrayContainerCloser(t *testing.T) {
	d := Parse(strings.Join([]string{
		`a`,
		`<!-- /@c -->`,
		`b`,
	}, "\n"))

	kids, _ := d.Children(dom.RootID)
	if len(kids) != 2 {
		t.Fatalf("root children = %v", kids)
	}
	if content, _ := d.Content(kids[0]); content != "a" {
		t.Errorf("first = %q", content)
	}
	if content, _ := d.Content(kids[1]); content != "b" {
		t.Errorf("second = %q", content)
	}
}

func TestParseDuplicateIDHealed(t *testing.T) {
	d := Parse(strings.Join([]string{
		`<!-- @n id="n1" -->`,
		`first`,
		`<!-- /@n -->`,
		`<!-- @n id="n1" -->`,
		`second`,
		`<!-- /@n -->`,
	}, "\n"))

	kids, _ := d.Children(dom.RootID)
	if len(kids) != 2 {
		t.Fatalf("root children = %v", kids)
	}
	if kids[0] != "n1" {
		t.Errorf("first id = %q", kids[0])
	}
	if kids[1] == "n1" {
		t.Error("duplicate id not healed")
	}
	if content, _ := d.Content(kids[1]); content != "second" {
		t.Errorf("healed leaf content = %q", content)
	}
}

func TestParsePruning(t *testing.T) {
	input := strings.Join([]string{
		`<!-- @c id="c1" -->`,
		`<!-- @n id="n1" -->`,
		``,
		`<!-- /@n -->`,
		`<!-- /@c -->`,
		`<!-- @n id="n2" -->`,
		`kept`,
		`<!-- /@n -->`,
	}, "\n")

	d := Parse(input)
	if d.Exists("c1") || d.Exists("n1") {
		t.Error("empty subtree survived pruning")
	}
	if !d.Exists("n2") {
		t.Error("non-empty leaf pruned")
	}

	d = Parse(input, WithoutPruning())
	if !d.Exists("c1") || !d.Exists("n1") {
		t.Error("WithoutPruning still pruned")
	}
}

func TestParseFragments(t *testing.T) {
	input := strings.Join([]string{
		`<!-- @n id="n1" -->`,
		`<!-- %item -->A<!-- /%item --><!-- %item -->B<!-- /%item -->`,
		`<!-- /@n -->`,
	}, "\n")

	d := Parse(input)
	frags, err := d.Fragments("n1", "item")
	if err != nil {
		t.Fatal(err)
	}
	if got := frags["item"]; !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("instances = %v", got)
	}

	d = Parse(input, WithoutFragments())
	frags, _ = d.Fragments("n1", "")
	if len(frags) != 0 {
		t.Errorf("WithoutFragments extracted %v", frags)
	}
	// Markers stay inert in the content.
	content, _ := d.Content("n1")
	if !strings.Contains(content, "<!-- %item -->A") {
		t.Errorf("content = %q", content)
	}
}

func TestParseDocumentOrder(t *testing.T) {
	d := Parse(strings.Join([]string{
		`<!-- @c id="c1" -->`,
		`<!-- @n id="n1" -->`,
		`a`,
		`<!-- /@n -->`,
		`<!-- /@c -->`,
		`<!-- @c id="c2" -->`,
		`<!-- @n id="n2" -->`,
		`b`,
		`<!-- /@n -->`,
		`<!-- /@c -->`,
	}, "\n"))

	want := []string{dom.RootID, "c1", "n1", "c2", "n2"}
	if got := d.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs = %v, want %v", got, want)
	}
}
