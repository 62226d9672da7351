package resolver

// builtinGlobals are the ambient names every program can reference. Most
// are values; those shared with builtinTypes also name a type.
var builtinGlobals = []string{
	"console",
	"Math",
	"JSON",
	"Object",
	"Array",
	"String",
	"Number",
	"Boolean",
	"Symbol",
	"Promise",
	"Error",
	"TypeError",
	"RangeError",
	"Date",
	"RegExp",
	"Map",
	"Set",
	"NaN",
	"Infinity",
	"globalThis",
	"parseInt",
	"parseFloat",
	"isNaN",
	"isFinite",
	"setTimeout",
	"clearTimeout",
}

// builtinTypes are ambient type names without a value counterpart.
var builtinTypes = []string{
	"ReadonlyArray",
	"Record",
	"Partial",
	"Readonly",
	"Function",
	"PromiseLike",
}

// constantGlobals cannot be assigned.
var constantGlobals = map[string]bool{
	"NaN":      true,
	"Infinity": true,
	"Math":     true,
	"JSON":     true,
}
