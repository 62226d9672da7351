package typechecker

import "sort"

// NewUnion builds the canonical union of members: nested unions are
// flattened, never is dropped, any and unknown absorb everything, literals
// covered by their primitive are removed, duplicates collapse and members
// are sorted by key. An empty union is never; a single member is returned
// as is.
func NewUnion(members ...Type) Type {
	var flat []Type
	var add func(t Type)
	add = func(t Type) {
		if u, ok := t.(UnionType); ok {
			for _, member := range u.Members {
				add(member)
			}
			return
		}
		flat = append(flat, t)
	}
	for _, member := range members {
		if member == nil {
			member = Unknown
		}
		add(member)
	}

	bases := make(map[PrimitiveKind]bool)
	booleans := make(map[string]bool)
	for _, member := range flat {
		switch v := member.(type) {
		case PrimitiveType:
			switch v.Kind {
			case PrimitiveAny:
				return Any
			case PrimitiveUnknown:
				return Unknown
			}
			bases[v.Kind] = true
		case LiteralType:
			if v.Base == PrimitiveBoolean {
				booleans[v.Value] = true
			}
		}
	}
	if booleans["true"] && booleans["false"] {
		bases[PrimitiveBoolean] = true
		flat = append(flat, Boolean)
	}

	seen := make(map[string]bool, len(flat))
	normalized := make([]Type, 0, len(flat))
	for _, member := range flat {
		if isNeverType(member) {
			continue
		}
		if lit, ok := member.(LiteralType); ok && bases[lit.Base] {
			continue
		}
		key := typeKey(member)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, member)
	}
	switch len(normalized) {
	case 0:
		return Never
	case 1:
		return normalized[0]
	}
	sortMembers(normalized)
	return UnionType{Members: normalized}
}

// NewIntersection builds the canonical intersection of members. any
// absorbs, never annihilates, unknown is the identity.
func NewIntersection(members ...Type) Type {
	var flat []Type
	var add func(t Type)
	add = func(t Type) {
		if in, ok := t.(IntersectionType); ok {
			for _, member := range in.Members {
				add(member)
			}
			return
		}
		flat = append(flat, t)
	}
	for _, member := range members {
		if member != nil {
			add(member)
		}
	}
	seen := make(map[string]bool, len(flat))
	normalized := make([]Type, 0, len(flat))
	for _, member := range flat {
		switch {
		case isAnyType(member):
			return Any
		case isNeverType(member):
			return Never
		case isUnknownType(member):
			continue
		}
		key := typeKey(member)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, member)
	}
	switch len(normalized) {
	case 0:
		return Unknown
	case 1:
		return normalized[0]
	}
	sortMembers(normalized)
	return IntersectionType{Members: normalized}
}

func sortMembers(members []Type) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := orderKey(members[i]), orderKey(members[j])
		if a != b {
			return a < b
		}
		return typeKey(members[i]) < typeKey(members[j])
	})
}

// orderKey fixes the display order of union and intersection members.
func orderKey(t Type) string {
	switch v := t.(type) {
	case nil:
		return "<nil>"
	case LiteralType:
		return "lit:" + string(v.Base) + ":" + v.Value
	case TypeParameterType:
		return "param:" + v.ParameterName
	}
	return t.Name()
}
