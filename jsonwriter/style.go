// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jsonwriter

import "fmt"

type styleKind int

const (
	compactStyle styleKind = iota
	prettyStyle
	prettyTabsStyle
)

// DefaultIndentSize is the number of spaces per level used by a writer switched to pretty style without an explicit
// size.
const DefaultIndentSize = 4

// Style is the formatting mode of a Writer. The zero value is Compact.
type Style struct {
	kind styleKind
	size int
}

// Compact returns the style writing no whitespace between tokens.
func Compact() Style { return Style{kind: compactStyle} }

// Pretty returns the style placing every element on its own line, indented by size spaces per nesting level.
func Pretty(size int) Style {
	if size < 0 {
		size = 0
	}
	return Style{kind: prettyStyle, size: size}
}

// PrettyTabs returns the style placing every element on its own line, indented by one tab per nesting level.
func PrettyTabs() Style { return Style{kind: prettyTabsStyle} }

// IsCompact returns true if s writes no whitespace.
func (s Style) IsCompact() bool { return s.kind == compactStyle }

// IsTabs returns true if s indents with tabs.
func (s Style) IsTabs() bool { return s.kind == prettyTabsStyle }

// IndentSize returns the number of spaces per level for a Pretty style, and zero otherwise.
func (s Style) IndentSize() int {
	if s.kind == prettyStyle {
		return s.size
	}
	return 0
}

func (s Style) String() string {
	switch s.kind {
	case prettyStyle:
		return fmt.Sprintf("pretty(%d)", s.size)
	case prettyTabsStyle:
		return "tabs"
	default:
		return "compact"
	}
}

// ParseStyle returns the style named by name, one of "compact", "pretty" or "tabs". The indent size is used for
// "pretty" only.
func ParseStyle(name string, indentSize int) (Style, error) {
	switch name {
	case "compact":
		return Compact(), nil
	case "pretty":
		if indentSize < 1 {
			return Style{}, fmt.Errorf("indent size must be >= 1, got %d", indentSize)
		}
		return Pretty(indentSize), nil
	case "tabs":
		return PrettyTabs(), nil
	}
	return Style{}, fmt.Errorf("invalid style: %q", name)
}
