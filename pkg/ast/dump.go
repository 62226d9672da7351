package ast

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalIndentJSON renders node and its subtree as indented JSON.
func MarshalIndentJSON(node Node) ([]byte, error) {
	data, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("ast: encode json: %w", err)
	}
	return data, nil
}

// MarshalYAML renders node via its JSON form so field names and omissions
// match the JSON dump.
func MarshalYAML(node Node) ([]byte, error) {
	data, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("ast: encode json: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("ast: decode json: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("ast: encode yaml: %w", err)
	}
	return out, nil
}

// Fprint writes an indented outline of the tree, one node per line with its
// start position and a short summary of its scalar fields.
func Fprint(w io.Writer, node Node) error {
	p := &printer{w: w}
	Walk(p, node)
	return p.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) Visit(node Node) Visitor {
	if node == nil {
		p.depth--
		return nil
	}
	if p.err == nil {
		start := node.Span().Start
		line := fmt.Sprintf("%s%s %d:%d", strings.Repeat("  ", p.depth), node.NodeType(), start.Line, start.Column)
		if summary := Summary(node); summary != "" {
			line += " " + summary
		}
		_, p.err = fmt.Fprintln(p.w, line)
	}
	p.depth++
	return p
}

// Summary describes the scalar payload of a node, e.g. an identifier name or
// an operator.
func Summary(node Node) string {
	switch n := node.(type) {
	case *Identifier:
		return n.Name
	case *Literal:
		return fmt.Sprintf("%s %s", n.Kind, n.Raw)
	case *TemplateLiteral:
		return fmt.Sprintf("%q", strings.Join(n.Quasis, "${}"))
	case *VariableDeclaration:
		return string(n.Kind)
	case *BinaryExpression:
		return n.Operator
	case *LogicalExpression:
		return n.Operator
	case *UnaryExpression:
		return n.Operator
	case *AssignmentExpression:
		return n.Operator
	case *UpdateExpression:
		if n.Prefix {
			return n.Operator + "(prefix)"
		}
		return n.Operator + "(postfix)"
	case *MemberExpression:
		var flags []string
		if n.Computed {
			flags = append(flags, "computed")
		}
		if n.Optional {
			flags = append(flags, "optional")
		}
		return strings.Join(flags, " ")
	case *CallExpression:
		if n.Optional {
			return "optional"
		}
	case *FunctionDeclaration:
		return functionFlags(n.Async, n.Generator)
	case *FunctionExpression:
		return functionFlags(n.Async, n.Generator)
	case *ArrowFunctionExpression:
		return functionFlags(n.Async, false)
	case *ClassMethod:
		return string(n.Kind) + modifierSummary(n.Modifiers)
	case *ClassProperty:
		return strings.TrimSpace(modifierSummary(n.Modifiers))
	case *Parameter:
		var flags []string
		if n.Optional {
			flags = append(flags, "optional")
		}
		if n.Rest {
			flags = append(flags, "rest")
		}
		if n.IsProperty() {
			flags = append(flags, "property")
		}
		return strings.Join(flags, " ")
	case *KeywordType:
		return n.Keyword
	case *TypeReference:
		if len(n.Path) > 0 {
			return n.QualifiedName()
		}
	case *PropertySignature:
		if n.Optional {
			return "optional"
		}
	}
	return ""
}

func functionFlags(async, generator bool) string {
	switch {
	case async && generator:
		return "async generator"
	case async:
		return "async"
	case generator:
		return "generator"
	}
	return ""
}

func modifierSummary(m Modifiers) string {
	var parts []string
	if m.Access != AccessNone {
		parts = append(parts, string(m.Access))
	}
	if m.Static {
		parts = append(parts, "static")
	}
	if m.Readonly {
		parts = append(parts, "readonly")
	}
	if m.Abstract {
		parts = append(parts, "abstract")
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}
