package typechecker

// relation evaluates assignability. expand unfolds a named type into its
// structure and shape exposes the members of non-object types (strings,
// arrays, class statics); both are optional. inProgress holds the pairs
// currently being compared so recursive types are accepted coinductively.
type relation struct {
	expand     func(CustomType) (Type, bool)
	shape      func(Type) (ObjectType, bool)
	inProgress map[[2]string]bool
}

// Assignable reports whether a value of type source may be used where
// target is expected. Named types are compared by name only; use a Checker
// to compare them structurally.
func Assignable(source, target Type) bool {
	return newRelation(nil, nil).assignable(source, target)
}

func newRelation(expand func(CustomType) (Type, bool), shape func(Type) (ObjectType, bool)) *relation {
	return &relation{expand: expand, shape: shape, inProgress: make(map[[2]string]bool)}
}

func (r *relation) assignable(source, target Type) bool {
	if isPermissive(source) || isPermissive(target) {
		return true
	}
	if isNeverType(source) {
		return true
	}
	if isNeverType(target) {
		return false
	}
	if Equal(source, target) {
		return true
	}

	if src, ok := source.(CustomType); ok {
		if dst, ok := target.(CustomType); ok && src.TypeName == dst.TypeName && src.Decl == dst.Decl {
			if r.argumentsAssignable(src.Args, dst.Args) {
				return true
			}
			if src.Decl == nil {
				return false
			}
		}
	}
	key := [2]string{typeKey(source), typeKey(target)}
	if r.inProgress[key] {
		return true
	}
	if src, ok := source.(CustomType); ok {
		if expanded, ok := r.expandCustom(src); ok {
			return r.guarded(key, expanded, target)
		}
	}
	if dst, ok := target.(CustomType); ok {
		if expanded, ok := r.expandCustom(dst); ok {
			return r.guarded(key, source, expanded)
		}
	}

	if src, ok := source.(UnionType); ok {
		for _, member := range src.Members {
			if !r.assignable(member, target) {
				return false
			}
		}
		return true
	}
	if dst, ok := target.(IntersectionType); ok {
		for _, member := range dst.Members {
			if !r.assignable(source, member) {
				return false
			}
		}
		return true
	}
	if dst, ok := target.(UnionType); ok {
		for _, member := range dst.Members {
			if r.assignable(source, member) {
				return true
			}
		}
		return false
	}
	if src, ok := source.(IntersectionType); ok {
		for _, member := range src.Members {
			if r.assignable(member, target) {
				return true
			}
		}
		if merged, ok := r.mergeIntersection(src); ok {
			return r.assignable(merged, target)
		}
		return false
	}

	switch dst := target.(type) {
	case PrimitiveType:
		return r.primitiveAssignable(source, dst)
	case LiteralType:
		return false
	case ArrayType:
		switch src := source.(type) {
		case ArrayType:
			return r.assignable(src.Element, dst.Element)
		case TupleType:
			for _, elem := range src.Elements {
				if !r.assignable(elem, dst.Element) {
					return false
				}
			}
			return true
		}
		return false
	case TupleType:
		src, ok := source.(TupleType)
		if !ok || len(src.Elements) != len(dst.Elements) {
			return false
		}
		for i := range src.Elements {
			if !r.assignable(src.Elements[i], dst.Elements[i]) {
				return false
			}
		}
		return true
	case FunctionType:
		src, ok := source.(FunctionType)
		if !ok {
			return false
		}
		return r.functionAssignable(src, dst)
	case ObjectType:
		shape, ok := r.shapeOf(source)
		if !ok {
			return false
		}
		return r.objectAssignable(shape, dst)
	case ClassType:
		src, ok := source.(ClassType)
		return ok && src.Decl == dst.Decl
	case CustomType:
		return false
	}
	return false
}

func (r *relation) guarded(key [2]string, source, target Type) bool {
	r.inProgress[key] = true
	defer delete(r.inProgress, key)
	return r.assignable(source, target)
}

func (r *relation) expandCustom(t CustomType) (Type, bool) {
	if r.expand == nil || t.Decl == nil {
		return nil, false
	}
	return r.expand(t)
}

func (r *relation) argumentsAssignable(source, target []Type) bool {
	if len(source) != len(target) {
		return false
	}
	for i := range source {
		if !r.assignable(source[i], target[i]) {
			return false
		}
	}
	return true
}

func (r *relation) primitiveAssignable(source Type, target PrimitiveType) bool {
	switch src := source.(type) {
	case LiteralType:
		return src.Base == target.Kind
	case PrimitiveType:
		if target.Kind == PrimitiveVoid {
			return src.Kind == PrimitiveUndefined
		}
		return src.Kind == target.Kind
	}
	if target.Kind != PrimitiveObject {
		return false
	}
	switch source.(type) {
	case ObjectType, ArrayType, TupleType, FunctionType, ClassType, CustomType:
		return true
	}
	return false
}

// functionAssignable checks source where target is expected: source may not
// require more arguments than target supplies, parameters are compared
// contravariantly and the return type covariantly. A void target return
// accepts any source return.
func (r *relation) functionAssignable(source, target FunctionType) bool {
	if limit := target.MaxArgs(); limit >= 0 && source.MinArgs > limit {
		return false
	}
	for i, param := range target.Params {
		sourceParam, ok := paramAt(source, i)
		if !ok {
			break
		}
		if !r.assignable(param, sourceParam) {
			return false
		}
	}
	if target.Rest != nil {
		for i := len(target.Params); i < len(source.Params); i++ {
			if !r.assignable(target.Rest, source.Params[i]) {
				return false
			}
		}
		if source.Rest != nil && !r.assignable(target.Rest, source.Rest) {
			return false
		}
	}
	if isPrimitive(target.Return, PrimitiveVoid) {
		return true
	}
	return r.assignable(source.Return, target.Return)
}

// paramAt returns the type a function accepts at argument position i.
func paramAt(fn FunctionType, i int) (Type, bool) {
	if i < len(fn.Params) {
		return fn.Params[i], true
	}
	if fn.Rest != nil {
		return fn.Rest, true
	}
	return nil, false
}

// objectAssignable applies width subtyping: every property target requires
// must exist on source with an assignable type. Extra source properties are
// allowed.
func (r *relation) objectAssignable(source, target ObjectType) bool {
	for _, name := range target.PropertyNames() {
		want := target.Properties[name]
		have, ok := source.Properties[name]
		if !ok {
			if want.Optional {
				continue
			}
			return false
		}
		if have.Optional && !want.Optional {
			return false
		}
		expected := want.Type
		if want.Optional {
			expected = NewUnion(want.Type, Undefined)
		}
		if !r.assignable(have.Type, expected) {
			return false
		}
	}
	return true
}

func (r *relation) shapeOf(t Type) (ObjectType, bool) {
	if obj, ok := t.(ObjectType); ok {
		return obj, true
	}
	if r.shape != nil {
		return r.shape(t)
	}
	return ObjectType{}, false
}

// mergeIntersection folds the object-like members of an intersection into
// one shape.
func (r *relation) mergeIntersection(t IntersectionType) (ObjectType, bool) {
	merged := ObjectType{Properties: make(map[string]Property)}
	for _, member := range t.Members {
		if custom, ok := member.(CustomType); ok {
			if expanded, ok := r.expandCustom(custom); ok {
				member = expanded
			}
		}
		shape, ok := r.shapeOf(member)
		if !ok {
			return ObjectType{}, false
		}
		for name, prop := range shape.Properties {
			if existing, ok := merged.Properties[name]; ok {
				prop.Type = NewIntersection(existing.Type, prop.Type)
				prop.Optional = existing.Optional && prop.Optional
			}
			merged.Properties[name] = prop
		}
	}
	return merged, true
}
