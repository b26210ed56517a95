package mml

import (
	"encoding/json"
	"fmt"

	"github.com/mml-format/go-mml/dom"

	jsonpatch "github.com/evanphx/json-patch"
)

// PatchAttributes applies an RFC 7386 JSON merge patch to a node's
// attribute bag: string values set keys, null removes them. All
// resulting values must be strings, since attribute values are opaque
// text.
func PatchAttributes(d *dom.Document, id string, mergePatch []byte) error {
	attrs, err := d.Attributes(id)
	if err != nil {
		return err
	}
	orig, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	merged, err := jsonpatch.MergePatch(orig, mergePatch)
	if err != nil {
		return err
	}
	var next map[string]string
	if err := json.Unmarshal(merged, &next); err != nil {
		return fmt.Errorf("%w: merge patch must yield string attributes: %v", dom.ErrInvalidOp, err)
	}
	for k := range attrs {
		if _, ok := next[k]; !ok {
			if err := d.DeleteAttribute(id, k); err != nil {
				return err
			}
		}
	}
	return d.SetAttributes(id, next)
}
