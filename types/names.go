package types

const (
	// SelfTypeName is how SELF_TYPE is spelled in source.
	SelfTypeName = "SELF_TYPE"
	// NoTypeName renders an unannotated expression.
	NoTypeName = "_no_type"
)

// Names is the set of predefined identifiers the analyzer relies on. It is
// constructed once per analyzer and shared read-only by every component.
type Names struct {
	Object string
	IO     string
	Int    string
	String string
	Bool   string

	SelfType string
	Self     string

	EntryClass  string
	EntryMethod string

	// PrimSlot is the type of the hidden value slot of Int, Bool and String.
	PrimSlot string
	Val      string
	StrField string

	Abort     string
	TypeName  string
	Copy      string
	OutString string
	OutInt    string
	InString  string
	InInt     string
	Length    string
	Concat    string
	Substr    string

	// BasicFile is the file tag of the built-in classes.
	BasicFile string
}

// DefaultNames returns the names fixed by the language.
func DefaultNames() Names {
	return Names{
		Object: "Object",
		IO:     "IO",
		Int:    "Int",
		String: "String",
		Bool:   "Bool",

		SelfType: SelfTypeName,
		Self:     "self",

		EntryClass:  "Main",
		EntryMethod: "main",

		PrimSlot: "_prim_slot",
		Val:      "_val",
		StrField: "_str_field",

		Abort:     "abort",
		TypeName:  "type_name",
		Copy:      "copy",
		OutString: "out_string",
		OutInt:    "out_int",
		InString:  "in_string",
		InInt:     "in_int",
		Length:    "length",
		Concat:    "concat",
		Substr:    "substr",

		BasicFile: "<basic class>",
	}
}

// IsPrimitive reports whether name is one of the value classes Int, String
// and Bool. They cannot be inherited from and compare only with themselves.
func (n Names) IsPrimitive(name string) bool {
	return name == n.Int || name == n.String || name == n.Bool
}

// IsBasic reports whether name is one of the five built-in classes.
func (n Names) IsBasic(name string) bool {
	return name == n.Object || name == n.IO || n.IsPrimitive(name)
}

// Parse turns a declared type name into a handle.
func (n Names) Parse(name string) Type {
	if name == n.SelfType {
		return Self
	}
	return Class(name)
}

func (n Names) ObjectType() Type { return Class(n.Object) }
func (n Names) IntType() Type    { return Class(n.Int) }
func (n Names) BoolType() Type   { return Class(n.Bool) }
func (n Names) StringType() Type { return Class(n.String) }
