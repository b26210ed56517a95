// Package format defines the MML marker grammar shared by the parser,
// the encoder and the fragment subsystem.
//
// MML embeds structure into plain text with HTML-comment markers:
//
//	<!-- @c id="c1" kind="section" -->   container open
//	<!-- /@c -->                         container close
//	<!-- @n id="n1" status="draft" -->   leaf open
//	<!-- /@n -->                         leaf close
//	<!-- %name -->text<!-- /%name -->    inline fragment, repeatable
//
// Structural markers are anchored at the start of a line; fragment
// markers occur inline within leaf content. Attribute values are opaque
// strings and may not contain double quotes.
package format

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

const (
	// TagContainer marks container nodes in open/close markers.
	TagContainer = "@c"
	// TagLeaf marks leaf (content-carrying) nodes.
	TagLeaf = "@n"
)

var (
	ContainerRE    = regexp.MustCompile(`^<!-- @c id="([^"]+)"(.*?)-->`)
	ContainerEndRE = regexp.MustCompile(`^<!-- /@c -->`)
	LeafRE         = regexp.MustCompile(`^<!-- @n id="([^"]+)"(.*?)-->`)
	LeafEndRE      = regexp.MustCompile(`^<!-- /@n -->`)

	FragmentRE    = regexp.MustCompile(`<!-- %(\w+) -->`)
	FragmentEndRE = regexp.MustCompile(`<!-- /%(\w+) -->`)

	attrRE = regexp.MustCompile(`(\w+)="([^"]*)"`)
)

// ParseAttrs extracts key="value" pairs from the attribute section of a
// marker. Text between pairs is ignored.
func ParseAttrs(s string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attrRE.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}

// FormatAttrs renders an attribute map as space-separated key="value"
// pairs, sorted by key so output is deterministic.
func FormatAttrs(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, attrs[k]))
	}
	return strings.Join(pairs, " ")
}

// OpenMarker renders the opening marker line for a container or leaf.
func OpenMarker(tag, id string, attrs map[string]string) string {
	if a := FormatAttrs(attrs); a != "" {
		return fmt.Sprintf("<!-- %s id=%q %s -->", tag, id, a)
	}
	return fmt.Sprintf("<!-- %s id=%q -->", tag, id)
}

// CloseMarker renders the closing marker line for a container or leaf.
func CloseMarker(tag string) string {
	return fmt.Sprintf("<!-- /%s -->", tag)
}

// FragmentOpen renders the inline opening marker for a named fragment.
func FragmentOpen(name string) string {
	return fmt.Sprintf("<!-- %%%s -->", name)
}

// FragmentClose renders the inline closing marker for a named fragment.
func FragmentClose(name string) string {
	return fmt.Sprintf("<!-- /%%%s -->", name)
}

// FragmentMarkup wraps content in an open/close fragment marker pair,
// for callers composing leaf content by hand.
func FragmentMarkup(name, content string) string {
	return FragmentOpen(name) + content + FragmentClose(name)
}

// FragmentRegionRE matches one whole fragment region for name,
// markers included, across newlines.
func FragmentRegionRE(name string) *regexp.Regexp {
	q := regexp.QuoteMeta(name)
	return regexp.MustCompile(`(?s)<!-- %` + q + ` -->.*?<!-- /%` + q + ` -->`)
}
