// Package typechecker validates a resolved program against a structural type
// system. Annotations are lowered to canonical Type values, expression types
// are inferred bottom-up, and every failed compatibility check is recorded as
// a CompilerError while checking continues to the end of the tree.
//
// The central relation is assignability (see Assignable): Any and Unknown are
// both top and bottom, Never is bottom, literal types widen to their
// primitive, unions and intersections distribute, object shapes use width
// subtyping, functions are contravariant in their parameters and covariant in
// their return type, and arrays and tuples are covariant.
package typechecker
