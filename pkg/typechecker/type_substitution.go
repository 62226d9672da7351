package typechecker

func substituteFunctionType(fn FunctionType, subst map[string]Type) FunctionType {
	if len(subst) == 0 {
		return fn
	}
	params := make([]Type, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = substituteType(param, subst)
	}
	var rest Type
	if fn.Rest != nil {
		rest = substituteType(fn.Rest, subst)
	}
	typeParams := fn.TypeParams
	if len(typeParams) > 0 {
		filtered := make([]*TypeParameterType, 0, len(typeParams))
		for _, param := range typeParams {
			if _, ok := subst[param.ParameterName]; ok {
				continue
			}
			filtered = append(filtered, param)
		}
		typeParams = filtered
	}
	return FunctionType{
		TypeParams: typeParams,
		Params:     params,
		ParamNames: fn.ParamNames,
		MinArgs:    fn.MinArgs,
		Rest:       rest,
		Return:     substituteType(fn.Return, subst),
	}
}

func substituteType(t Type, subst map[string]Type) Type {
	if t == nil || len(subst) == 0 {
		return t
	}
	switch v := t.(type) {
	case TypeParameterType:
		if replacement, ok := subst[v.ParameterName]; ok {
			return replacement
		}
		return v
	case FunctionType:
		return substituteFunctionType(v, subst)
	case ArrayType:
		return ArrayType{Element: substituteType(v.Element, subst)}
	case TupleType:
		return TupleType{Elements: substituteTypes(v.Elements, subst)}
	case UnionType:
		return NewUnion(substituteTypes(v.Members, subst)...)
	case IntersectionType:
		return NewIntersection(substituteTypes(v.Members, subst)...)
	case ObjectType:
		props := make(map[string]Property, len(v.Properties))
		for name, prop := range v.Properties {
			prop.Type = substituteType(prop.Type, subst)
			props[name] = prop
		}
		return ObjectType{Properties: props}
	case CustomType:
		if len(v.Args) == 0 {
			return v
		}
		return CustomType{TypeName: v.TypeName, Args: substituteTypes(v.Args, subst), Decl: v.Decl}
	default:
		return t
	}
}

func substituteTypes(types []Type, subst map[string]Type) []Type {
	out := make([]Type, len(types))
	for i, t := range types {
		out[i] = substituteType(t, subst)
	}
	return out
}

// inferTypeArguments binds the type parameters named in params by matching
// the parameter type against the argument type. Only the first binding of a
// parameter wins; later occurrences are checked by assignability.
func inferTypeArguments(param, arg Type, params map[string]bool, bindings map[string]Type) {
	if param == nil || arg == nil {
		return
	}
	switch p := param.(type) {
	case TypeParameterType:
		if !params[p.ParameterName] {
			return
		}
		if _, bound := bindings[p.ParameterName]; !bound {
			bindings[p.ParameterName] = widen(arg)
		}
	case ArrayType:
		switch a := arg.(type) {
		case ArrayType:
			inferTypeArguments(p.Element, a.Element, params, bindings)
		case TupleType:
			inferTypeArguments(p.Element, NewUnion(a.Elements...), params, bindings)
		}
	case TupleType:
		if a, ok := arg.(TupleType); ok && len(a.Elements) == len(p.Elements) {
			for i := range p.Elements {
				inferTypeArguments(p.Elements[i], a.Elements[i], params, bindings)
			}
		}
	case FunctionType:
		if a, ok := arg.(FunctionType); ok {
			for i := range p.Params {
				if i < len(a.Params) {
					inferTypeArguments(p.Params[i], a.Params[i], params, bindings)
				}
			}
			inferTypeArguments(p.Return, a.Return, params, bindings)
		}
	case ObjectType:
		if a, ok := arg.(ObjectType); ok {
			for name, prop := range p.Properties {
				if other, ok := a.Properties[name]; ok {
					inferTypeArguments(prop.Type, other.Type, params, bindings)
				}
			}
		}
	case CustomType:
		if a, ok := arg.(CustomType); ok && a.TypeName == p.TypeName && len(a.Args) == len(p.Args) {
			for i := range p.Args {
				inferTypeArguments(p.Args[i], a.Args[i], params, bindings)
			}
		}
	case UnionType:
		for _, member := range p.Members {
			if _, ok := member.(TypeParameterType); ok {
				inferTypeArguments(member, nonNullable(arg), params, bindings)
			}
		}
	}
}
