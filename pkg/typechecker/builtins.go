package typechecker

// Ambient declarations for the names the resolver seeds into the global
// scope.

func method(ret Type, params ...Type) FunctionType {
	return FunctionType{Params: params, MinArgs: len(params), Return: ret}
}

// methodOpt is method with only the first required parameters mandatory.
func methodOpt(required int, ret Type, params ...Type) FunctionType {
	return FunctionType{Params: params, MinArgs: required, Return: ret}
}

func methodRest(ret Type, rest Type, params ...Type) FunctionType {
	return FunctionType{Params: params, MinArgs: len(params), Rest: rest, Return: ret}
}

func generic(f FunctionType, names ...string) FunctionType {
	for _, name := range names {
		f.TypeParams = append(f.TypeParams, &TypeParameterType{ParameterName: name})
	}
	return f
}

func tparam(name string) TypeParameterType { return TypeParameterType{ParameterName: name} }

func objectOf(props map[string]Type) ObjectType {
	obj := ObjectType{Properties: make(map[string]Property, len(props))}
	for name, t := range props {
		obj.Properties[name] = Property{Type: t}
	}
	return obj
}

func promiseOf(t Type) CustomType {
	return CustomType{TypeName: "Promise", Args: []Type{t}}
}

func errorShape() ObjectType {
	obj := objectOf(map[string]Type{"name": String, "message": String})
	obj.Properties["stack"] = Property{Type: String, Optional: true}
	return obj
}

var mathFunctions = []string{"abs", "floor", "ceil", "round", "sqrt", "cbrt", "sign", "trunc", "log", "log2", "log10", "exp", "sin", "cos", "tan", "asin", "acos", "atan"}

// builtinValueType returns the type of an ambient value. Names added with
// resolver.WithGlobals are untyped.
func builtinValueType(name string) Type {
	switch name {
	case "console":
		logger := methodRest(Void, Any)
		return objectOf(map[string]Type{"log": logger, "error": logger, "warn": logger, "info": logger, "debug": logger})
	case "Math":
		props := map[string]Type{
			"PI":     Number,
			"E":      Number,
			"random": method(Number),
			"pow":    method(Number, Number, Number),
			"atan2":  method(Number, Number, Number),
			"max":    methodRest(Number, Number),
			"min":    methodRest(Number, Number),
			"hypot":  methodRest(Number, Number),
		}
		for _, f := range mathFunctions {
			props[f] = method(Number, Number)
		}
		return objectOf(props)
	case "JSON":
		return objectOf(map[string]Type{
			"stringify": methodRest(String, Any, Any),
			"parse":     methodRest(Any, Any, String),
		})
	case "Object":
		return NewIntersection(methodOpt(0, Object, Any), objectOf(map[string]Type{
			"keys":    method(ArrayType{Element: String}, Any),
			"values":  method(ArrayType{Element: Any}, Any),
			"entries": method(ArrayType{Element: TupleType{Elements: []Type{String, Any}}}, Any),
			"assign":  methodRest(Any, Any, Any),
			"freeze":  generic(method(tparam("T"), tparam("T")), "T"),
		}))
	case "Array":
		return NewIntersection(methodRest(ArrayType{Element: Any}, Any), objectOf(map[string]Type{
			"isArray": method(Boolean, Any),
			"from":    methodRest(ArrayType{Element: Any}, Any, Any),
			"of":      generic(methodRest(ArrayType{Element: tparam("T")}, tparam("T")), "T"),
		}))
	case "String":
		return NewIntersection(methodOpt(0, String, Any), objectOf(map[string]Type{
			"fromCharCode": methodRest(String, Number),
		}))
	case "Number":
		return NewIntersection(methodOpt(0, Number, Any), objectOf(map[string]Type{
			"isInteger":         method(Boolean, Any),
			"isFinite":          method(Boolean, Any),
			"isNaN":             method(Boolean, Any),
			"isSafeInteger":     method(Boolean, Any),
			"parseFloat":        method(Number, String),
			"parseInt":          methodOpt(1, Number, String, Number),
			"MAX_SAFE_INTEGER":  Number,
			"MIN_SAFE_INTEGER":  Number,
			"MAX_VALUE":         Number,
			"MIN_VALUE":         Number,
			"EPSILON":           Number,
			"POSITIVE_INFINITY": Number,
			"NEGATIVE_INFINITY": Number,
			"NaN":               Number,
		}))
	case "Boolean":
		return methodOpt(0, Boolean, Any)
	case "Symbol":
		return methodOpt(0, Symbol, String)
	case "Promise":
		return objectOf(map[string]Type{
			"resolve": generic(method(promiseOf(tparam("T")), tparam("T")), "T"),
			"reject":  methodOpt(0, promiseOf(Never), Any),
			"all":     method(promiseOf(ArrayType{Element: Any}), ArrayType{Element: Any}),
			"race":    method(promiseOf(Any), ArrayType{Element: Any}),
		})
	case "Error", "TypeError", "RangeError":
		return methodOpt(0, errorShape(), String)
	case "Date":
		return objectOf(map[string]Type{"now": method(Number), "parse": method(Number, String)})
	case "RegExp", "Map", "Set":
		return Object
	case "NaN", "Infinity":
		return Number
	case "parseInt":
		return methodOpt(1, Number, String, Number)
	case "parseFloat":
		return method(Number, String)
	case "isNaN", "isFinite":
		return method(Boolean, Number)
	case "setTimeout":
		return methodRest(Number, Any, methodRest(Any, Any), Number)
	case "clearTimeout":
		return methodOpt(0, Void, Number)
	}
	return Any
}

// builtinConstructor returns the signature used by `new name(...)`.
func builtinConstructor(name string) (FunctionType, bool) {
	switch name {
	case "Promise":
		resolve := methodOpt(0, Void, tparam("T"))
		reject := methodOpt(0, Void, Any)
		return generic(method(promiseOf(tparam("T")), method(Void, resolve, reject)), "T"), true
	case "Map":
		return generic(methodOpt(0, CustomType{TypeName: "Map", Args: []Type{tparam("K"), tparam("V")}}, Any), "K", "V"), true
	case "Set":
		return generic(methodOpt(0, CustomType{TypeName: "Set", Args: []Type{tparam("T")}}, ArrayType{Element: tparam("T")}), "T"), true
	case "Error", "TypeError", "RangeError":
		return methodOpt(0, errorShape(), String), true
	case "Date":
		return methodRest(CustomType{TypeName: "Date"}, Any), true
	case "RegExp":
		return methodOpt(1, CustomType{TypeName: "RegExp"}, String, String), true
	case "Array":
		return methodRest(ArrayType{Element: Any}, Any), true
	case "Object":
		return method(Object), true
	}
	return FunctionType{}, false
}

// builtinTypeReference lowers a reference to an ambient type name. It
// reports false for ambient names that only denote values.
func (c *Checker) builtinTypeReference(name string, args []Type) (Type, bool) {
	arg := func(i int) Type {
		if i < len(args) && args[i] != nil {
			return args[i]
		}
		return Any
	}
	switch name {
	case "Array", "ReadonlyArray":
		return ArrayType{Element: arg(0)}, true
	case "Promise", "PromiseLike":
		return promiseOf(arg(0)), true
	case "Record":
		return CustomType{TypeName: "Record", Args: []Type{arg(0), arg(1)}}, true
	case "Map":
		return CustomType{TypeName: "Map", Args: []Type{arg(0), arg(1)}}, true
	case "Set":
		return CustomType{TypeName: "Set", Args: []Type{arg(0)}}, true
	case "Date", "RegExp":
		return CustomType{TypeName: name}, true
	case "Partial":
		shape, ok := c.shapeOf(c.resolveStructure(arg(0)))
		if !ok {
			return arg(0), true
		}
		partial := ObjectType{Properties: make(map[string]Property, len(shape.Properties))}
		for key, prop := range shape.Properties {
			prop.Optional = true
			partial.Properties[key] = prop
		}
		return partial, true
	case "Readonly":
		return arg(0), true
	case "Function":
		return methodRest(Any, Any), true
	case "String":
		return String, true
	case "Number":
		return Number, true
	case "Boolean":
		return Boolean, true
	case "Symbol":
		return Symbol, true
	case "Object":
		return Object, true
	case "Error", "TypeError", "RangeError":
		return errorShape(), true
	}
	return nil, false
}

// opaqueMember returns a member of an ambient generic type that has no
// structural declaration.
func opaqueMember(t CustomType, name string) (Type, bool) {
	arg := func(i int) Type {
		if i < len(t.Args) && t.Args[i] != nil {
			return t.Args[i]
		}
		return Any
	}
	switch t.TypeName {
	case "Promise":
		switch name {
		case "then":
			onFulfilled := method(tparam("U"), arg(0))
			return generic(methodOpt(0, promiseOf(tparam("U")), onFulfilled, method(Any, Any)), "U"), true
		case "catch":
			return methodOpt(0, promiseOf(arg(0)), method(Any, Any)), true
		case "finally":
			return methodOpt(0, promiseOf(arg(0)), method(Void)), true
		}
	case "Map":
		switch name {
		case "get":
			return method(NewUnion(arg(1), Undefined), arg(0)), true
		case "set":
			return method(t, arg(0), arg(1)), true
		case "has", "delete":
			return method(Boolean, arg(0)), true
		case "clear":
			return method(Void), true
		case "size":
			return Number, true
		case "forEach":
			return method(Void, methodOpt(0, Void, arg(1), arg(0))), true
		case "keys":
			return method(ArrayType{Element: arg(0)}), true
		case "values":
			return method(ArrayType{Element: arg(1)}), true
		}
	case "Set":
		switch name {
		case "add":
			return method(t, arg(0)), true
		case "has", "delete":
			return method(Boolean, arg(0)), true
		case "clear":
			return method(Void), true
		case "size":
			return Number, true
		case "forEach":
			return method(Void, methodOpt(0, Void, arg(0))), true
		}
	case "Record":
		return arg(1), true
	case "Date":
		switch name {
		case "getTime", "getFullYear", "getMonth", "getDate", "getDay", "getHours", "getMinutes", "getSeconds", "getMilliseconds", "valueOf":
			return method(Number), true
		case "toISOString", "toString", "toDateString", "toJSON":
			return method(String), true
		}
	case "RegExp":
		switch name {
		case "test":
			return method(Boolean, String), true
		case "exec":
			return method(NewUnion(ArrayType{Element: String}, Null), String), true
		case "source", "flags":
			return String, true
		case "lastIndex":
			return Number, true
		}
	}
	return nil, false
}

var stringMembers = map[string]Type{
	"length":      Number,
	"charAt":      method(String, Number),
	"charCodeAt":  method(Number, Number),
	"at":          method(NewUnion(String, Undefined), Number),
	"indexOf":     methodOpt(1, Number, String, Number),
	"lastIndexOf": methodOpt(1, Number, String, Number),
	"includes":    methodOpt(1, Boolean, String, Number),
	"startsWith":  methodOpt(1, Boolean, String, Number),
	"endsWith":    methodOpt(1, Boolean, String, Number),
	"slice":       methodOpt(0, String, Number, Number),
	"substring":   methodOpt(1, String, Number, Number),
	"toUpperCase": method(String),
	"toLowerCase": method(String),
	"trim":        method(String),
	"trimStart":   method(String),
	"trimEnd":     method(String),
	"padStart":    methodOpt(1, String, Number, String),
	"padEnd":      methodOpt(1, String, Number, String),
	"repeat":      method(String, Number),
	"split":       methodOpt(1, ArrayType{Element: String}, Any, Number),
	"replace":     method(String, Any, Any),
	"replaceAll":  method(String, Any, Any),
	"concat":      methodRest(String, String),
	"toString":    method(String),
	"valueOf":     method(String),
}

var numberMembers = map[string]Type{
	"toFixed":       methodOpt(0, String, Number),
	"toPrecision":   methodOpt(0, String, Number),
	"toExponential": methodOpt(0, String, Number),
	"toString":      methodOpt(0, String, Number),
	"valueOf":       method(Number),
}

var booleanMembers = map[string]Type{
	"toString": method(String),
	"valueOf":  method(Boolean),
}

var functionMembers = map[string]Type{
	"call":   methodRest(Any, Any),
	"apply":  methodOpt(0, Any, Any, ArrayType{Element: Any}),
	"bind":   methodRest(Any, Any),
	"length": Number,
	"name":   String,
}

// arrayMember returns the member name of an array with element type elem.
func arrayMember(elem Type, name string) (Type, bool) {
	self := ArrayType{Element: elem}
	predicate := methodOpt(1, Any, elem, Number, self)
	switch name {
	case "length":
		return Number, true
	case "push", "unshift":
		return methodRest(Number, elem), true
	case "pop", "shift":
		return method(NewUnion(elem, Undefined)), true
	case "at":
		return method(NewUnion(elem, Undefined), Number), true
	case "slice":
		return methodOpt(0, self, Number, Number), true
	case "splice":
		return methodRest(self, elem, Number, Number), true
	case "concat":
		return methodRest(self, Any), true
	case "join":
		return methodOpt(0, String, String), true
	case "indexOf", "lastIndexOf":
		return methodOpt(1, Number, elem, Number), true
	case "includes":
		return methodOpt(1, Boolean, elem, Number), true
	case "reverse":
		return method(self), true
	case "sort":
		return methodOpt(0, self, method(Number, elem, elem)), true
	case "forEach":
		return method(Void, methodOpt(1, Void, elem, Number, self)), true
	case "map":
		return generic(method(ArrayType{Element: tparam("U")}, methodOpt(1, tparam("U"), elem, Number, self)), "U"), true
	case "filter":
		return method(self, predicate), true
	case "find":
		return method(NewUnion(elem, Undefined), predicate), true
	case "findIndex":
		return method(Number, predicate), true
	case "some", "every":
		return method(Boolean, predicate), true
	case "reduce":
		reducer := methodOpt(2, tparam("U"), tparam("U"), elem, Number, self)
		return generic(methodOpt(1, tparam("U"), reducer, tparam("U")), "U"), true
	case "flat":
		return methodOpt(0, ArrayType{Element: Any}, Number), true
	case "fill":
		return methodOpt(1, self, elem, Number, Number), true
	case "keys":
		return method(ArrayType{Element: Number}), true
	case "toString":
		return method(String), true
	}
	return nil, false
}
