package typechecker

import (
	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
)

// binaryType returns the result of applying op to operands of the given
// types. Mismatched operands are reported and the operator's usual result
// type is assumed so checking can continue.
func (c *Checker) binaryType(op string, left, right Type, node ast.Node) Type {
	switch op {
	case "==", "!=", "===", "!==", "instanceof", "in":
		return Boolean
	case "+":
		switch {
		case isStringLike(left) || isStringLike(right):
			return String
		case isPermissive(left) || isPermissive(right):
			if isNumberLike(left) || isNumberLike(right) {
				return Number
			}
			return Any
		case isNumberLike(left) && isNumberLike(right):
			return Number
		case isBigIntLike(left) && isBigIntLike(right):
			return BigInt
		}
		c.reportOperator(op, left, right, node)
		return Number
	case "-", "*", "/", "%", "**", "&", "|", "^":
		leftOK := isPermissive(left) || isNumberLike(left)
		rightOK := isPermissive(right) || isNumberLike(right)
		switch {
		case leftOK && rightOK:
			return Number
		case isBigIntLike(left) && isBigIntLike(right):
			return BigInt
		}
		c.reportOperator(op, left, right, node)
		return Number
	case "<", "<=", ">", ">=":
		if isPermissive(left) || isPermissive(right) {
			return Boolean
		}
		numeric := func(t Type) bool { return isNumberLike(t) || isBigIntLike(t) }
		if (numeric(left) && numeric(right)) || (isStringLike(left) && isStringLike(right)) {
			return Boolean
		}
		c.reportOperator(op, left, right, node)
		return Boolean
	}
	return Unknown
}

func (c *Checker) reportOperator(op string, left, right Type, node ast.Node) {
	c.report(diagnostics.OperatorMismatch{Operator: op, Operands: []string{typeName(left), typeName(right)}}, node)
}

// logicalType types `&&`, `||` and `??`. Logical operators are boolean
// valued regardless of their operands.
func logicalType(op string) Type {
	switch op {
	case "&&", "||", "??":
		return Boolean
	}
	return Unknown
}
