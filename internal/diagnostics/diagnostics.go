// Package diagnostics defines the compiler's error taxonomy. Every
// failure raised anywhere in the pipeline (evaluator, model, generator)
// is a *Diagnostic so a caller can branch on Kind and always gets a
// human-readable message naming the offending entity.
package diagnostics

import "fmt"

// Kind enumerates the compiler's error kinds.
type Kind int

const (
	KindScriptParseError Kind = iota
	KindBuilderMisuse
	KindDefaultTypeMismatch
	KindDuplicateTaskName
	KindDanglingDependency
	KindCycle
	KindUnknownStruct
	KindIOError
)

func (k Kind) String() string {
	switch k {
	case KindScriptParseError:
		return "script parse error"
	case KindBuilderMisuse:
		return "builder misuse"
	case KindDefaultTypeMismatch:
		return "default value type mismatch"
	case KindDuplicateTaskName:
		return "duplicate task name"
	case KindDanglingDependency:
		return "dangling dependency"
	case KindCycle:
		return "cycle"
	case KindUnknownStruct:
		return "unknown struct"
	case KindIOError:
		return "I/O error"
	default:
		return "unknown error"
	}
}

// Diagnostic is a fatal compilation error naming the offending entity
// (a workflow name, task name, field name, or file path) and the cause.
type Diagnostic struct {
	Kind    Kind
	Entity  string
	Message string
	Err     error
}

func (d *Diagnostic) Error() string {
	if d.Entity == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s (%s): %s", d.Kind, d.Entity, d.Message)
}

func (d *Diagnostic) Unwrap() error { return d.Err }

func newDiag(kind Kind, entity, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Entity: entity, Message: fmt.Sprintf(format, args...)}
}

func ScriptParseError(filename string, cause error) *Diagnostic {
	d := newDiag(KindScriptParseError, filename, "%s", cause)
	d.Err = cause
	return d
}

func BuilderMisuse(builder string, format string, args ...any) *Diagnostic {
	return newDiag(KindBuilderMisuse, builder, format, args...)
}

func DefaultTypeMismatch(field, typeName, value string) *Diagnostic {
	return newDiag(KindDefaultTypeMismatch, field,
		"default value %q does not conform to declared type %s", value, typeName)
}

func DuplicateTaskName(workflow, task string) *Diagnostic {
	return newDiag(KindDuplicateTaskName, workflow, "duplicate task name %q", task)
}

func DanglingDependency(task, field string) *Diagnostic {
	return newDiag(KindDanglingDependency, task,
		"depend_on references field %q with no matching input", field)
}

func DanglingTask(task, ref string) *Diagnostic {
	return newDiag(KindDanglingDependency, task,
		"depend_on references task %q, which is not part of the workflow", ref)
}

func Cycle(workflow string, cycleTasks []string) *Diagnostic {
	return newDiag(KindCycle, workflow, "cycle detected among tasks %v", cycleTasks)
}

func UnknownStruct(name string) *Diagnostic {
	return newDiag(KindUnknownStruct, name, "struct %q is not declared in the composer", name)
}

func IOError(path string, cause error) *Diagnostic {
	d := newDiag(KindIOError, path, "%s", cause)
	d.Err = cause
	return d
}
