package board

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// ParseBoard decodes a board.yaml document. Shape checks run in a fixed
// order and the first violation is returned, wrapping types.ErrBoardInvalid.
func ParseBoard(data []byte) (*types.Board, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML: %v", types.ErrBoardInvalid, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: board.yaml must contain a mapping", types.ErrBoardInvalid)
	}
	root := doc.Content[0]

	if err := checkBoardShape(root); err != nil {
		return nil, err
	}

	var b types.Board
	if err := root.Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrBoardInvalid, err)
	}
	if b.Labels == nil {
		b.Labels = []types.Label{}
	}
	return &b, nil
}

func checkBoardShape(root *yaml.Node) error {
	name := mappingValue(root, "name")
	if name == nil || name.Kind != yaml.ScalarNode || name.Tag != "!!str" || name.Value == "" {
		return fmt.Errorf("%w: name must be a non-empty string", types.ErrBoardInvalid)
	}

	version := mappingValue(root, "version")
	var v int
	if version == nil || version.Kind != yaml.ScalarNode || version.Tag != "!!int" ||
		version.Decode(&v) != nil || v != types.BoardVersion {
		return fmt.Errorf("%w: version must be %d", types.ErrBoardInvalid, types.BoardVersion)
	}

	columns := mappingValue(root, "columns")
	if columns == nil || columns.Kind != yaml.SequenceNode || len(columns.Content) == 0 {
		return fmt.Errorf("%w: columns must be a non-empty list", types.ErrBoardInvalid)
	}

	labels := mappingValue(root, "labels")
	if labels == nil || labels.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: labels must be a list", types.ErrBoardInvalid)
	}

	cardOrder := mappingValue(root, "cardOrder")
	if cardOrder == nil || cardOrder.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: cardOrder must be a mapping", types.ErrBoardInvalid)
	}

	settings := mappingValue(root, "settings")
	if settings == nil || settings.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: settings must be a mapping", types.ErrBoardInvalid)
	}
	return nil
}

// mappingValue returns the value node for key, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// SerializeBoard encodes b as deterministic YAML: two-space indent, no line
// folding, no anchors, cardOrder columns in their stored order.
func SerializeBoard(b *types.Board) ([]byte, error) {
	out := *b
	if out.Columns == nil {
		out.Columns = []types.Column{}
	}
	if out.Labels == nil {
		out.Labels = []types.Label{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("encoding board: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding board: %w", err)
	}
	return buf.Bytes(), nil
}
