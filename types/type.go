// Package types holds the static type handles attached to expressions and
// the fixed names of the predefined classes.
package types

type kind uint8

const (
	kindNone kind = iota
	kindClass
	kindSelf
)

// Type is either a concrete class or SELF_TYPE, the dynamic type of the
// receiver. SELF_TYPE is never a name: every comparison site has to branch
// on IsSelf and substitute the current class. The zero value is "no type"
// and marks an expression that has not been annotated.
type Type struct {
	kind kind
	name string
}

// Self is the self-referential type.
var Self = Type{kind: kindSelf}

// None is the zero Type.
var None = Type{}

// Class returns the handle of the named class.
func Class(name string) Type {
	return Type{kind: kindClass, name: name}
}

func (t Type) IsSelf() bool  { return t.kind == kindSelf }
func (t Type) IsValid() bool { return t.kind != kindNone }

// Name returns the class name, or "" for SELF_TYPE and None.
func (t Type) Name() string { return t.name }

// Is reports whether t is the concrete class name.
func (t Type) Is(name string) bool {
	return t.kind == kindClass && t.name == name
}

func (t Type) Equal(other Type) bool {
	return t.kind == other.kind && t.name == other.name
}

// Resolve maps SELF_TYPE to the current class and leaves classes untouched.
func (t Type) Resolve(current string) Type {
	if t.kind == kindSelf {
		return Class(current)
	}
	return t
}

func (t Type) String() string {
	switch t.kind {
	case kindSelf:
		return SelfTypeName
	case kindClass:
		return t.name
	default:
		return NoTypeName
	}
}
