// Package blocks models the editor document whose blocks carry the class
// attribute being edited.
package blocks

import (
	"encoding/json"
	"fmt"
	"os"
)

const classNameAttr = "className"

// Document is a flat list of editor blocks, as exported by the editor.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// Block mirrors the fields of an editor block this tool needs. Attributes
// keeps every attribute so unknown ones round-trip.
type Block struct {
	ID         string         `json:"clientId,omitempty"`
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Supports   *Supports      `json:"supports,omitempty"`
}

type Supports struct {
	CustomClassName *bool `json:"customClassName,omitempty"`
}

// SupportsClassName reports whether the block accepts a custom class. Blocks
// that do not say otherwise do.
func (b Block) SupportsClassName() bool {
	if b.Supports == nil || b.Supports.CustomClassName == nil {
		return true
	}
	return *b.Supports.CustomClassName
}

// ClassName returns the class attribute or "".
func (b Block) ClassName() string {
	s, _ := b.Attributes[classNameAttr].(string)
	return s
}

// SetClassName stores v, or removes the attribute when v is empty.
func (b *Block) SetClassName(v string) {
	if v == "" {
		delete(b.Attributes, classNameAttr)
		return
	}
	if b.Attributes == nil {
		b.Attributes = map[string]any{}
	}
	b.Attributes[classNameAttr] = v
}

// Label is the display name of the block.
func (b Block) Label() string {
	if b.ID != "" {
		return fmt.Sprintf("%s (%s)", b.Name, b.ID)
	}
	return b.Name
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blocks: %w", err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse blocks JSON: %w", err)
	}
	for i, b := range d.Blocks {
		if b.Name == "" {
			return nil, fmt.Errorf("block %d has no name", i)
		}
	}
	return &d, nil
}

func Save(path string, d *Document) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone copies d deeply enough that attribute edits on the copy do not
// reach the original.
func Clone(d *Document) *Document {
	out := &Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		cp := b
		if b.Attributes != nil {
			cp.Attributes = make(map[string]any, len(b.Attributes))
			for k, v := range b.Attributes {
				cp.Attributes[k] = v
			}
		}
		if b.Supports != nil {
			s := *b.Supports
			cp.Supports = &s
		}
		out.Blocks[i] = cp
	}
	return out
}

// Change is a class attribute that differs between two documents.
type Change struct {
	Index  int
	Label  string
	Before string
	After  string
}

// Changes lists blocks whose class attribute differs. Both documents must
// come from the same source (same block order).
func Changes(before, after *Document) []Change {
	var out []Change
	for i := range after.Blocks {
		if i >= len(before.Blocks) {
			break
		}
		b, a := before.Blocks[i].ClassName(), after.Blocks[i].ClassName()
		if a != b {
			out = append(out, Change{Index: i, Label: after.Blocks[i].Label(), Before: b, After: a})
		}
	}
	return out
}
