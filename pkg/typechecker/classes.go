package typechecker

import (
	"fmt"

	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/resolver"
)

func (c *Checker) classType(decl *ast.ClassDeclaration) ClassType {
	return ClassType{ClassName: decl.ID.Name, Decl: decl, Instance: c.instanceType(decl)}
}

// instanceType is the type of `this` inside decl: the class applied to its
// own type parameters.
func (c *Checker) instanceType(decl *ast.ClassDeclaration) CustomType {
	var args []Type
	for _, tp := range decl.TypeParams {
		args = append(args, c.typeParameter(tp))
	}
	return CustomType{TypeName: decl.ID.Name, Args: args, Decl: decl}
}

// superClass returns the class decl extends and the type arguments given to
// it.
func (c *Checker) superClass(decl *ast.ClassDeclaration) (*ast.ClassDeclaration, []Type, bool) {
	if decl.SuperClass == nil {
		return nil, nil, false
	}
	sym := c.scopes.References[decl.SuperClass]
	if sym == nil || sym.Kind != resolver.SymbolClass {
		return nil, nil, false
	}
	base, ok := sym.Node.(*ast.ClassDeclaration)
	if !ok || base == decl || c.classCycle(decl) {
		return nil, nil, false
	}
	args := make([]Type, len(decl.SuperTypeArgs))
	for i, arg := range decl.SuperTypeArgs {
		args[i] = c.lowerType(arg)
	}
	return base, c.completeTypeArgs(base.TypeParams, args), true
}

// classCycle reports whether decl appears in its own chain of base classes.
func (c *Checker) classCycle(decl *ast.ClassDeclaration) bool {
	seen := make(map[*ast.ClassDeclaration]bool)
	for cur := decl; cur.SuperClass != nil; {
		sym := c.scopes.References[cur.SuperClass]
		if sym == nil || sym.Kind != resolver.SymbolClass {
			return false
		}
		base, ok := sym.Node.(*ast.ClassDeclaration)
		if !ok {
			return false
		}
		if base == decl {
			return true
		}
		if seen[base] {
			return false
		}
		seen[base] = true
		cur = base
	}
	return false
}

// inheritedShape returns the instance or static shape of decl's base class
// with its type arguments applied.
func (c *Checker) inheritedShape(decl *ast.ClassDeclaration, static bool) map[string]Property {
	props := make(map[string]Property)
	base, args, ok := c.superClass(decl)
	if !ok {
		return props
	}
	var shape ObjectType
	if static {
		shape = c.classStaticShape(base)
	} else {
		shape = c.classInstanceShape(base)
	}
	if inherited, ok := substituteType(shape, typeArgBindings(base.TypeParams, args)).(ObjectType); ok {
		for name, prop := range inherited.Properties {
			props[name] = prop
		}
	}
	return props
}

// classInstanceShape computes the members of an instance of decl:
// inherited members, properties, parameter properties, methods and
// accessors. A provisional shape with untyped inferred members is cached
// first so members that refer to `this` see their siblings.
func (c *Checker) classInstanceShape(decl *ast.ClassDeclaration) ObjectType {
	if shape, ok := c.shapes[decl]; ok {
		return shape
	}
	if c.resolvingShapes[decl] {
		return ObjectType{Properties: map[string]Property{}}
	}
	c.resolvingShapes[decl] = true
	defer delete(c.resolvingShapes, decl)
	return c.buildClassShape(decl, false)
}

func (c *Checker) classStaticShape(decl *ast.ClassDeclaration) ObjectType {
	if shape, ok := c.staticShapes[decl]; ok {
		return shape
	}
	if c.resolvingStatics[decl] {
		return ObjectType{Properties: map[string]Property{}}
	}
	c.resolvingStatics[decl] = true
	defer delete(c.resolvingStatics, decl)
	return c.buildClassShape(decl, true)
}

func (c *Checker) buildClassShape(decl *ast.ClassDeclaration, static bool) ObjectType {
	props := c.inheritedShape(decl, static)
	shape := ObjectType{Properties: props}
	if static {
		c.staticShapes[decl] = shape
	} else {
		c.shapes[decl] = shape
	}
	defer c.pushClass(&classContext{decl: decl, static: static})()

	var pending []func()
	for _, member := range decl.Members {
		switch m := member.(type) {
		case *ast.ClassProperty:
			if m.Modifiers.Static != static {
				continue
			}
			prop := Property{Type: Any, Optional: m.Optional, Readonly: m.Modifiers.Readonly}
			if m.TypeAnnotation != nil {
				prop.Type = c.lowerType(m.TypeAnnotation)
			} else if m.Value != nil {
				pending = append(pending, func() {
					p := props[m.Key.Name]
					p.Type = c.classPropertyType(m)
					props[m.Key.Name] = p
				})
			}
			props[m.Key.Name] = prop
		case *ast.ClassMethod:
			if m.Kind == ast.MethodConstructor {
				if !static {
					c.addParameterProperties(props, m)
				}
				continue
			}
			if m.Modifiers.Static != static {
				continue
			}
			c.addMethodMember(props, m, &pending)
		}
	}
	for _, resolve := range pending {
		resolve()
	}
	return shape
}

func (c *Checker) addParameterProperties(props map[string]Property, ctor *ast.ClassMethod) {
	for _, param := range ctor.Params {
		if !param.IsProperty() || param.Name == nil {
			continue
		}
		t := c.parameterDeclaredType(param, nil, 0)
		if param.Optional && param.Default == nil {
			t = NewUnion(t, Undefined)
		}
		props[param.Name.Name] = Property{Type: t, Readonly: param.Modifiers.Readonly}
	}
}

// addMethodMember records a method or accessor. Members whose type depends
// on their body are typed any until the pending resolvers run.
func (c *Checker) addMethodMember(props map[string]Property, m *ast.ClassMethod, pending *[]func()) {
	fn, _ := functionLikeOf(m)
	name := m.Key.Name
	declared := c.declaredSignature(fn, nil)
	switch m.Kind {
	case ast.MethodGetter:
		t := declared.Return
		if t == nil {
			t = Any
			*pending = append(*pending, func() {
				p := props[name]
				p.Type = c.functionSignature(fn, nil).Return
				props[name] = p
			})
		}
		props[name] = Property{Type: t}
	case ast.MethodSetter:
		if existing, ok := props[name]; ok && c.hasOwnGetter(m, name) {
			props[name] = existing
			return
		}
		t := Type(Any)
		if len(declared.Params) > 0 {
			t = declared.Params[0]
		}
		props[name] = Property{Type: t}
	default:
		if declared.Return == nil {
			declared.Return = Any
			*pending = append(*pending, func() {
				p := props[name]
				p.Type = c.functionSignature(fn, nil)
				props[name] = p
			})
		}
		props[name] = Property{Type: declared, Optional: m.Optional}
	}
}

func (c *Checker) hasOwnGetter(setter *ast.ClassMethod, name string) bool {
	decl := c.methodOwners[setter]
	if decl == nil {
		return false
	}
	for _, member := range decl.Members {
		if m, ok := member.(*ast.ClassMethod); ok && m.Kind == ast.MethodGetter && m.Key.Name == name && m.Modifiers.Static == setter.Modifiers.Static {
			return true
		}
	}
	return false
}

// classPropertyType is the type of a property declaration: its annotation,
// or its widened initializer.
func (c *Checker) classPropertyType(m *ast.ClassProperty) Type {
	if t, ok := c.memberTypes[m]; ok {
		return t
	}
	var t Type = Any
	switch {
	case m.TypeAnnotation != nil:
		t = c.lowerType(m.TypeAnnotation)
	case m.Value != nil:
		c.memberTypes[m] = Any
		t = widen(c.expressionType(m.Value))
	}
	c.memberTypes[m] = t
	return t
}

// classConstructor is the signature `new` checks against. Without an own
// constructor the base class constructor is inherited.
func (c *Checker) classConstructor(decl *ast.ClassDeclaration) FunctionType {
	typeParams := c.lowerTypeParams(decl.TypeParams)
	instance := c.instanceType(decl)
	for _, member := range decl.Members {
		m, ok := member.(*ast.ClassMethod)
		if !ok || m.Kind != ast.MethodConstructor {
			continue
		}
		fn, _ := functionLikeOf(m)
		var sig FunctionType
		func() {
			defer c.pushClass(&classContext{decl: decl})()
			sig = c.declaredSignature(fn, nil)
		}()
		sig.TypeParams = typeParams
		sig.Return = instance
		return sig
	}
	if base, args, ok := c.superClass(decl); ok && !c.resolvingCtors[decl] {
		c.resolvingCtors[decl] = true
		inherited := c.classConstructor(base)
		delete(c.resolvingCtors, decl)
		sig := substituteFunctionType(inherited, typeArgBindings(base.TypeParams, args))
		sig.TypeParams = typeParams
		sig.Return = instance
		return sig
	}
	return FunctionType{TypeParams: typeParams, Return: instance}
}

// checkClass checks every member of decl, duplicate member names, overrides
// of base members and `implements` conformance.
func (c *Checker) checkClass(decl *ast.ClassDeclaration) {
	if c.classChecked[decl] {
		return
	}
	c.classChecked[decl] = true
	if sym := c.scopes.Declarations[decl]; sym != nil && sym.Node == decl {
		c.symbols[sym] = c.classType(decl)
	}
	c.lowerTypeParams(decl.TypeParams)
	if decl.SuperClass != nil {
		c.inferExpression(decl.SuperClass, nil)
		if c.classCycle(decl) {
			c.report(diagnostics.CircularReference{Name: decl.ID.Name, Base: true}, decl.ID)
		}
	}
	c.checkClassDuplicates(decl)

	instance := c.classInstanceShape(decl)
	c.classStaticShape(decl)
	inherited := c.inheritedShape(decl, false)

	for _, member := range decl.Members {
		switch m := member.(type) {
		case *ast.ClassProperty:
			func() {
				defer c.pushClass(&classContext{decl: decl, static: m.Modifiers.Static})()
				c.checkClassProperty(m)
			}()
		case *ast.ClassMethod:
			fn, _ := functionLikeOf(m)
			c.checkFunction(fn, nil)
		}
	}

	for _, member := range decl.Members {
		name, node, static := classMemberKey(member)
		if static || name == "" || name == "constructor" {
			continue
		}
		base, ok := inherited[name]
		if !ok {
			continue
		}
		own := instance.Properties[name]
		if !c.assignable(own.Type, base.Type) {
			context := fmt.Sprintf("property '%s' in class '%s' is incompatible with its base", name, decl.ID.Name)
			c.reportIncompatible(context, own.Type, base.Type, node)
		}
	}

	for _, ref := range decl.Implements {
		target := c.lowerType(ref)
		if isUnknownType(target) {
			continue
		}
		self := c.instanceType(decl)
		if !c.assignable(self, target) {
			context := fmt.Sprintf("class '%s' incorrectly implements '%s'", decl.ID.Name, ref.QualifiedName())
			c.reportIncompatible(context, self, target, ref)
		}
	}
}

func (c *Checker) checkClassProperty(m *ast.ClassProperty) {
	if m.TypeAnnotation == nil || m.Value == nil {
		c.classPropertyType(m)
		return
	}
	declared := c.lowerType(m.TypeAnnotation)
	value := c.inferExpression(m.Value, declared)
	if !c.assignable(value, declared) {
		c.reportIncompatible("incompatible initializer", value, declared, m.Value)
	}
	c.memberTypes[m] = declared
}

func classMemberKey(member ast.ClassMember) (string, ast.Node, bool) {
	switch m := member.(type) {
	case *ast.ClassProperty:
		return m.Key.Name, m.Key, m.Modifiers.Static
	case *ast.ClassMethod:
		if m.Kind == ast.MethodConstructor {
			return "constructor", m.Key, false
		}
		return m.Key.Name, m.Key, m.Modifiers.Static
	}
	return "", nil, false
}

// checkClassDuplicates reports members declared twice. A getter and a
// setter of the same name form one member.
func (c *Checker) checkClassDuplicates(decl *ast.ClassDeclaration) {
	type slot struct {
		getter, setter, other bool
	}
	seen := make(map[string]*slot)
	for _, member := range decl.Members {
		name, node, static := classMemberKey(member)
		if name == "" {
			continue
		}
		key := name
		if static {
			key = "static " + name
		}
		s, exists := seen[key]
		if !exists {
			s = &slot{}
			seen[key] = s
		}
		kind := "other"
		if m, ok := member.(*ast.ClassMethod); ok {
			switch m.Kind {
			case ast.MethodGetter:
				kind = "get"
			case ast.MethodSetter:
				kind = "set"
			}
		}
		duplicate := false
		switch kind {
		case "get":
			duplicate = s.getter || s.other
			s.getter = true
		case "set":
			duplicate = s.setter || s.other
			s.setter = true
		default:
			duplicate = exists
			s.other = true
		}
		if duplicate {
			c.report(diagnostics.DuplicateMember{Owner: decl.ID.Name, Name: name}, node)
		}
	}
}

// Interfaces

// interfaceShape merges the members of every extended type with the
// interface's own members, which take precedence.
func (c *Checker) interfaceShape(decl *ast.InterfaceDeclaration) ObjectType {
	if shape, ok := c.shapes[decl]; ok {
		return shape
	}
	if c.resolvingShapes[decl] {
		return ObjectType{Properties: map[string]Property{}}
	}
	c.resolvingShapes[decl] = true
	defer delete(c.resolvingShapes, decl)

	props := make(map[string]Property)
	extends := decl.Extends
	if c.interfaceCycle(decl) {
		extends = nil
	}
	for _, ext := range extends {
		if base, ok := c.shapeOf(c.resolveStructure(c.lowerType(ext))); ok {
			for name, prop := range base.Properties {
				props[name] = prop
			}
		}
	}
	for name, prop := range c.lowerTypeMembers(decl.Members).Properties {
		props[name] = prop
	}
	shape := ObjectType{Properties: props}
	c.shapes[decl] = shape
	return shape
}

// interfaceCycle reports whether decl is among the interfaces it extends,
// directly or through other interfaces.
func (c *Checker) interfaceCycle(decl *ast.InterfaceDeclaration) bool {
	seen := make(map[*ast.InterfaceDeclaration]bool)
	var visit func(cur *ast.InterfaceDeclaration) bool
	visit = func(cur *ast.InterfaceDeclaration) bool {
		for _, ext := range cur.Extends {
			sym := c.scopes.TypeReferences[ext]
			if sym == nil || sym.Kind != resolver.SymbolInterface {
				continue
			}
			base, ok := sym.Node.(*ast.InterfaceDeclaration)
			if !ok {
				continue
			}
			if base == decl {
				return true
			}
			if seen[base] {
				continue
			}
			seen[base] = true
			if visit(base) {
				return true
			}
		}
		return false
	}
	return visit(decl)
}

func typeMemberKey(member ast.TypeMember) (*ast.Identifier, bool) {
	switch m := member.(type) {
	case *ast.PropertySignature:
		return m.Key, false
	case *ast.MethodSignature:
		return m.Key, true
	}
	return nil, false
}

// checkInterface reports duplicate members and members that conflict with
// the extended types. Repeated method signatures are overloads.
func (c *Checker) checkInterface(decl *ast.InterfaceDeclaration) {
	c.lowerTypeParams(decl.TypeParams)
	c.interfaceShape(decl)
	c.checkTypeMemberDuplicates(decl.ID.Name, decl.Members)

	if c.interfaceCycle(decl) {
		c.report(diagnostics.CircularReference{Name: decl.ID.Name, Base: true}, decl.ID)
		return
	}

	own := c.lowerTypeMembers(decl.Members)
	for _, ext := range decl.Extends {
		target := c.lowerType(ext)
		base, ok := c.shapeOf(c.resolveStructure(target))
		if !ok {
			continue
		}
		for _, member := range decl.Members {
			key, _ := typeMemberKey(member)
			if key == nil {
				continue
			}
			inherited, ok := base.Properties[key.Name]
			if !ok {
				continue
			}
			mine := own.Properties[key.Name]
			if !c.assignable(mine.Type, inherited.Type) {
				context := fmt.Sprintf("interface '%s' incorrectly extends '%s'", decl.ID.Name, ext.QualifiedName())
				c.reportIncompatible(context, mine.Type, inherited.Type, key)
			}
		}
	}
}

func (c *Checker) checkTypeMemberDuplicates(owner string, members []ast.TypeMember) {
	methods := make(map[string]bool)
	seen := make(map[string]bool)
	for _, member := range members {
		key, isMethod := typeMemberKey(member)
		if key == nil {
			continue
		}
		if seen[key.Name] && !(isMethod && methods[key.Name]) {
			c.report(diagnostics.DuplicateMember{Owner: owner, Name: key.Name}, key)
		}
		seen[key.Name] = true
		if isMethod {
			methods[key.Name] = true
		} else {
			delete(methods, key.Name)
		}
	}
}
