package semant

import (
	"github.com/pkg/errors"

	"cool-semant/ast"
)

// Result is the outcome of one analysis. The program's expressions carry
// their static types; it must not be handed on when HasErrors is true.
type Result struct {
	Program *ast.Program
	Classes *ClassTable
	Methods *MethodTable
	diags   *Diagnostics
}

func (r *Result) HasErrors() bool                { return r.diags.HasErrors() }
func (r *Result) ErrorCount() int                { return r.diags.Count() }
func (r *Result) Diagnostics() []Diagnostic      { return r.diags.All() }
func (r *Result) Errors() []string               { return r.diags.Messages() }
func (r *Result) Of(kind ErrorKind) []Diagnostic { return r.diags.Of(kind) }

// Err is nil for an accepted program.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return errors.Errorf("Compilation halted due to static semantic errors (%d errors).", r.ErrorCount())
}

type SemanticAnalyzer struct {
	cfg  *Config
	last *Result
}

func NewSemanticAnalyzer(opts ...Option) *SemanticAnalyzer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &SemanticAnalyzer{cfg: cfg}
}

// Errors returns the messages of the most recent Analyze call.
func (sa *SemanticAnalyzer) Errors() []string {
	if sa.last == nil {
		return nil
	}
	return sa.last.Errors()
}

// Analyze checks program with fresh tables. Calling it twice on the same
// program gives the same diagnostics and annotations.
func (sa *SemanticAnalyzer) Analyze(program *ast.Program) *Result {
	cfg := sa.cfg
	diags := &Diagnostics{}

	cfg.tracef("\n=== Building Class Hierarchy ===\n")
	classes := NewClassTable(program, cfg, diags)

	cfg.tracef("\n=== Collecting Features ===\n")
	methods := NewMethodTable(classes, cfg, diags)

	sa.validateMainClass(classes, diags)

	check := newChecker(cfg, classes, methods, diags)
	for _, class := range classes.TopDown() {
		if classes.IsBuiltin(class.Name.Value) {
			continue
		}
		cfg.tracef("\nAnalyzing features of class: %s\n", class.Name.Value)
		check.checkClass(class)
	}
	cfg.tracef("\n=== Analysis finished with %d errors ===\n", diags.Count())

	sa.last = &Result{
		Program: program,
		Classes: classes,
		Methods: methods,
		diags:   diags,
	}
	return sa.last
}

// validateMainClass requires the entry class to define a zero-argument entry
// method itself. A missing entry class was already reported by the table.
func (sa *SemanticAnalyzer) validateMainClass(classes *ClassTable, diags *Diagnostics) {
	cfg := sa.cfg
	names := cfg.Names
	cfg.tracef("\n=== Validating %s Class ===\n", names.EntryClass)

	if !classes.IsValid(names.EntryClass) {
		return
	}
	mainClass, _ := classes.Resolve(names.EntryClass)

	var mainMethod *ast.Method
	for _, feature := range mainClass.Features {
		if method, ok := feature.(*ast.Method); ok && method.Name.Value == names.EntryMethod {
			mainMethod = method
			break
		}
	}
	if mainMethod == nil {
		diags.Reportf(MissingEntryMethod, "", 0, "No '%s' method in class %s.",
			names.EntryMethod, names.EntryClass)
		return
	}
	if len(mainMethod.Parameters) != 0 {
		diags.Reportf(MissingEntryMethod, mainClass.Filename, mainMethod.Line(),
			"'%s' method in class %s should have no arguments.", names.EntryMethod, names.EntryClass)
	}
}
