// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package emit

import (
	"fmt"

	"github.com/vespa-engine/jsonwriter/jsonwriter"
	"gopkg.in/yaml.v3"
)

// YAML writes the document rooted at node. Mapping entries keep their document order and scalars are typed by their
// resolved tag. An empty document is written as null.
func YAML(w *jsonwriter.Writer, node *yaml.Node) error {
	y := yamlEncoder{w: w, expanding: make(map[*yaml.Node]bool)}
	if err := y.encode(node); err != nil {
		return err
	}
	return w.Err()
}

type yamlEncoder struct {
	w         *jsonwriter.Writer
	expanding map[*yaml.Node]bool
}

func (y *yamlEncoder) encode(node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			y.w.NullValue()
			return nil
		}
		return y.encode(node.Content[0])
	case yaml.SequenceNode:
		y.w.StartArray()
		for _, item := range node.Content {
			if err := y.encode(item); err != nil {
				return err
			}
		}
		y.w.EndArray()
	case yaml.MappingNode:
		y.w.StartObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := y.key(node.Content[i])
			if err != nil {
				return err
			}
			y.w.Key(key)
			if err := y.encode(node.Content[i+1]); err != nil {
				return err
			}
		}
		y.w.EndObject()
	case yaml.AliasNode:
		if y.expanding[node.Alias] {
			return fmt.Errorf("line %d: recursive alias *%s", node.Line, node.Value)
		}
		y.expanding[node.Alias] = true
		defer delete(y.expanding, node.Alias)
		return y.encode(node.Alias)
	case yaml.ScalarNode:
		return y.scalar(node)
	default:
		return fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
	return nil
}

func (y *yamlEncoder) key(node *yaml.Node) (string, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping key must be a scalar", node.Line)
	}
	return node.Value, nil
}

func (y *yamlEncoder) scalar(node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!null":
		y.w.NullValue()
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		y.w.BoolValue(b)
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			y.w.LongValue(i)
			return nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		y.w.DoubleValue(f)
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		y.w.DoubleValue(f)
	default:
		y.w.StringValue(node.Value)
	}
	return nil
}
