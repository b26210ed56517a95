package debug

import (
	"fmt"
	"strings"

	"github.com/mml-format/go-mml/dom"
	"github.com/mml-format/go-mml/format"

	"github.com/fatih/color"
)

var (
	impt = color.New(color.FgCyan).SprintFunc()
	info = color.New(color.FgHiBlack).SprintFunc()
)

// Tree renders the document as an ASCII tree, one node per line, with
// kind markers, attributes and content snippets. Colors follow
// color.NoColor.
func Tree(d *dom.Document) string {
	var lines []string
	root, _ := d.Node(dom.RootID)
	lines = append(lines, impt("root/"))
	for i, cid := range root.Children {
		lines = drawNode(d, cid, "", i == len(root.Children)-1, lines)
	}
	return strings.Join(lines, "\n")
}

func drawNode(d *dom.Document, id, prefix string, last bool, lines []string) []string {
	n, ok := d.Node(id)
	if !ok {
		return lines
	}
	connector := "├── "
	if last {
		connector = "└── "
	}
	attrs := ""
	if len(n.Attrs) > 0 {
		attrs = " " + impt("{"+format.FormatAttrs(n.Attrs)+"}")
	}
	switch n.Kind {
	case dom.ContainerKind:
		lines = append(lines, prefix+connector+impt("[C]")+" "+n.ID+attrs)
	case dom.FragmentKind:
		snips := make([]string, len(n.Instances))
		for i, inst := range n.Instances {
			snips[i] = snippet(inst)
		}
		lines = append(lines, fmt.Sprintf("%s%s%s %s %s",
			prefix, connector, info("<F>"), n.Name,
			info(fmt.Sprintf("%v [len: %d]", snips, len(snips)))))
		return lines
	default:
		content := ""
		if n.Content != "" {
			content = " " + info(fmt.Sprintf("[%d chars: %q]", len(n.Content), snippet(n.Content)))
		}
		lines = append(lines, prefix+connector+"(N) "+n.ID+attrs+content)
	}
	childPrefix := prefix + "│   "
	if last {
		childPrefix = prefix + "    "
	}
	for i, cid := range n.Children {
		lines = drawNode(d, cid, childPrefix, i == len(n.Children)-1, lines)
	}
	return lines
}

func snippet(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 20 {
		return s[:20] + "..."
	}
	return s
}
