package debug

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/mml-format/go-mml/dom"
)

func TestTree(t *testing.T) {
	color.NoColor = true

	d := dom.New()
	c1, err := d.CreateContainer(dom.RootID, map[string]string{"kind": "section"})
	if err != nil {
		t.Fatal(err)
	}
	n1, err := d.CreateLeaf("a very long piece of content that gets cut", c1, nil)
	if err != nil {
		t.Fatal(err)
	}
	frag, err := d.CreateLeaf(`<!-- %item -->A<!-- /%item -->`, c1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.ExtractFragments(frag); err != nil {
		t.Fatal(err)
	}

	out := Tree(d)
	lines := strings.Split(out, "\n")
	if lines[0] != "root/" {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(out, `[C] `+c1+` {kind="section"}`) {
		t.Errorf("container line missing in:\n%s", out)
	}
	if !strings.Contains(out, "(N) "+n1) {
		t.Errorf("leaf line missing in:\n%s", out)
	}
	if !strings.Contains(out, "a very long piece of...") {
		t.Errorf("snippet not truncated in:\n%s", out)
	}
	if !strings.Contains(out, "<F> item") {
		t.Errorf("fragment line missing in:\n%s", out)
	}
	if !strings.Contains(out, "└── ") || !strings.Contains(out, "├── ") {
		t.Errorf("connectors missing in:\n%s", out)
	}
}

func TestTreeEmptyDocument(t *testing.T) {
	color.NoColor = true
	if got := Tree(dom.New()); got != "root/" {
		t.Errorf("Tree = %q", got)
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "short", want: "short"},
		{in: "multi\nline", want: "multi line"},
		{in: strings.Repeat("x", 25), want: strings.Repeat("x", 20) + "..."},
	}
	for _, tt := range tests {
		if got := snippet(tt.in); got != tt.want {
			t.Errorf("snippet(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
