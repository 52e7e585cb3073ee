package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CardOrder maps column names to ordered card ID lists. Unlike a Go map it
// remembers the order in which columns were added, so a descriptor that is
// parsed and re-serialized keeps its column keys where they were.
//
// The zero value is an empty order ready for use.
type CardOrder struct {
	columns []string
	ids     map[string][]string
}

// Columns returns the column keys in insertion order.
func (o CardOrder) Columns() []string {
	out := make([]string, len(o.columns))
	copy(out, o.columns)
	return out
}

// Has reports whether the order has a list for column.
func (o CardOrder) Has(column string) bool {
	_, ok := o.ids[column]
	return ok
}

// IDs returns a copy of the ID list for column. A missing column yields an
// empty list.
func (o CardOrder) IDs(column string) []string {
	ids := o.ids[column]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Set replaces the list for column, adding the column key at the end if it
// is new.
func (o *CardOrder) Set(column string, ids []string) {
	if o.ids == nil {
		o.ids = make(map[string][]string)
	}
	if _, ok := o.ids[column]; !ok {
		o.columns = append(o.columns, column)
	}
	list := make([]string, len(ids))
	copy(list, ids)
	o.ids[column] = list
}

// Append adds id to the end of column's list.
func (o *CardOrder) Append(column, id string) {
	o.Set(column, append(o.IDs(column), id))
}

// Insert places id at position in column's list. A position outside
// [0, len) appends instead.
func (o *CardOrder) Insert(column, id string, position int) {
	ids := o.IDs(column)
	if position < 0 || position >= len(ids) {
		o.Set(column, append(ids, id))
		return
	}
	ids = append(ids[:position], append([]string{id}, ids[position:]...)...)
	o.Set(column, ids)
}

// Remove deletes the first occurrence of id from column's list and reports
// whether anything was removed.
func (o *CardOrder) Remove(column, id string) bool {
	ids, ok := o.ids[column]
	if !ok {
		return false
	}
	for i, v := range ids {
		if v == id {
			o.ids[column] = append(ids[:i:i], ids[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll deletes every occurrence of id from every column and returns
// how many entries were removed.
func (o *CardOrder) RemoveAll(id string) int {
	removed := 0
	for _, col := range o.columns {
		ids := o.ids[col]
		kept := make([]string, 0, len(ids))
		for _, v := range ids {
			if v == id {
				removed++
				continue
			}
			kept = append(kept, v)
		}
		o.ids[col] = kept
	}
	return removed
}

// ColumnOf returns the first column, in key order, whose list contains id.
func (o CardOrder) ColumnOf(id string) (string, bool) {
	for _, col := range o.columns {
		for _, v := range o.ids[col] {
			if v == id {
				return col, true
			}
		}
	}
	return "", false
}

// Position returns the index of id within column's list, or -1.
func (o CardOrder) Position(column, id string) int {
	for i, v := range o.ids[column] {
		if v == id {
			return i
		}
	}
	return -1
}

// MarshalYAML emits the order as a mapping whose keys keep insertion order.
func (o CardOrder) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, col := range o.columns {
		ids := o.ids[col]
		if ids == nil {
			ids = []string{}
		}
		var key, val yaml.Node
		if err := key.Encode(col); err != nil {
			return nil, err
		}
		if err := val.Encode(ids); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping of column name to ID sequence. A null value
// is read as an empty list.
func (o *CardOrder) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("cardOrder must be a mapping (line %d)", value.Line)
	}
	*o = CardOrder{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var column string
		if err := keyNode.Decode(&column); err != nil {
			return fmt.Errorf("cardOrder key (line %d): %w", keyNode.Line, err)
		}
		ids := []string{}
		if !(valNode.Kind == yaml.ScalarNode && valNode.Tag == "!!null") {
			if valNode.Kind != yaml.SequenceNode {
				return fmt.Errorf("cardOrder[%q] must be a list (line %d)", column, valNode.Line)
			}
			if err := valNode.Decode(&ids); err != nil {
				return fmt.Errorf("cardOrder[%q]: %w", column, err)
			}
		}
		o.Set(column, ids)
	}
	return nil
}
