package ast

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// Cover returns the span running from the start of first to the end of last.
func Cover(first, last Node) Span {
	return Span{Start: first.Span().Start, End: last.Span().End}
}

// Contains reports whether pos falls inside the span (end exclusive).
func (s Span) Contains(pos Position) bool {
	if pos.Line < s.Start.Line || pos.Line > s.End.Line {
		return false
	}
	if pos.Line == s.Start.Line && pos.Column < s.Start.Column {
		return false
	}
	if pos.Line == s.End.Line && pos.Column >= s.End.Column {
		return false
	}
	return true
}

// NodeAt returns the innermost node whose span contains pos, or nil.
func NodeAt(root Node, pos Position) Node {
	var found Node
	Inspect(root, func(n Node) bool {
		if n == nil {
			return false
		}
		if !n.Span().Contains(pos) {
			return n.NodeType() == NodeProgram
		}
		found = n
		return true
	})
	return found
}
