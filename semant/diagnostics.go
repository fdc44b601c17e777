package semant

import "fmt"

// ErrorKind classifies a semantic error.
type ErrorKind int

const (
	// Class hierarchy
	DuplicateClass ErrorKind = iota
	IllegalInheritance
	UndefinedParent
	InheritanceCycle
	MissingEntryClass
	MissingEntryMethod

	// Declarations
	DuplicateAttribute
	DuplicateMethod
	DuplicateFormal
	IncompatibleOverride
	UndefinedType
	IllegalSelfType

	// Expressions
	UndefinedIdentifier
	IllegalSelfAssignment
	IllegalSelfBinding
	TypeMismatch
	IllegalComparison
	UndefinedMethod
	ArityMismatch
	StaticDispatchViolation
	DuplicateBranchType
)

var kindNames = [...]string{
	"DuplicateClass", "IllegalInheritance", "UndefinedParent", "InheritanceCycle",
	"MissingEntryClass", "MissingEntryMethod",
	"DuplicateAttribute", "DuplicateMethod", "DuplicateFormal", "IncompatibleOverride",
	"UndefinedType", "IllegalSelfType",
	"UndefinedIdentifier", "IllegalSelfAssignment", "IllegalSelfBinding", "TypeMismatch",
	"IllegalComparison", "UndefinedMethod", "ArityMismatch", "StaticDispatchViolation",
	"DuplicateBranchType",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

// Diagnostic is one reported problem. Program-wide problems have neither a
// file nor a line.
type Diagnostic struct {
	Kind     ErrorKind
	Filename string
	Line     int
	Message  string
}

func (d Diagnostic) HasLocation() bool { return d.Filename != "" || d.Line != 0 }

func (d Diagnostic) Error() string {
	if !d.HasLocation() {
		return d.Message
	}
	return fmt.Sprintf("%s:%d: %s", d.Filename, d.Line, d.Message)
}

// Diagnostics collects problems in discovery order. Nothing is ever removed.
type Diagnostics struct {
	list []Diagnostic
}

func (ds *Diagnostics) Report(d Diagnostic) {
	ds.list = append(ds.list, d)
}

func (ds *Diagnostics) Reportf(kind ErrorKind, filename string, line int, format string, args ...interface{}) {
	ds.Report(Diagnostic{
		Kind:     kind,
		Filename: filename,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (ds *Diagnostics) Count() int      { return len(ds.list) }
func (ds *Diagnostics) HasErrors() bool { return len(ds.list) > 0 }

// All returns a copy of the reported diagnostics.
func (ds *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, len(ds.list))
	copy(out, ds.list)
	return out
}

// Of returns the diagnostics of one kind.
func (ds *Diagnostics) Of(kind ErrorKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range ds.list {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Messages renders every diagnostic as file:line: message.
func (ds *Diagnostics) Messages() []string {
	out := make([]string, len(ds.list))
	for i, d := range ds.list {
		out[i] = d.Error()
	}
	return out
}
