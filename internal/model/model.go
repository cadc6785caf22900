// Package model holds the in-memory workflow representation: tasks,
// typed inputs, dependencies, operations, and the Composer that
// accumulates everything a single compilation produces. It is pure data
// with constructors that enforce the local invariants; no entity here
// performs I/O.
package model

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ajaykumargdr/flowc/internal/diagnostics"
	"github.com/ajaykumargdr/flowc/internal/rtype"
)

// Input is a single typed argument to a task.
type Input struct {
	Name         string
	InputType    rtype.Type
	DefaultValue *string // textual literal, nil if absent
	IsDepend     bool
}

// Depend states that task TaskName's output field PrevField becomes
// CurField on the owning task's input.
type Depend struct {
	TaskName  string
	CurField  string
	PrevField string
}

// CombineDescriptor is one element of a Combine operation's extraction
// list: either a bare positional index, or a positional index paired
// with a key to pull out of that indexed value.
type CombineDescriptor struct {
	Element string
	Index   int
	Key     string // empty means positional-only extraction
}

// Operation tags how a task consumes its predecessors' outputs.
type Operation struct {
	Kind    OperationKind
	Field   string              // Map(field)
	Combine []CombineDescriptor // Combine descriptor list, may be empty
}

type OperationKind int

const (
	OpNormal OperationKind = iota
	OpConcat
	OpCombine
	OpMap
)

func Normal() Operation { return Operation{Kind: OpNormal} }
func Concat() Operation { return Operation{Kind: OpConcat} }

func Combine(d ...CombineDescriptor) Operation {
	return Operation{Kind: OpCombine, Combine: d}
}

func Map(field string) Operation { return Operation{Kind: OpMap, Field: field} }

// Task is a single unit of work with typed inputs, a back-end kind, an
// operation, and its dependencies on predecessor tasks.
type Task struct {
	Kind           string
	ActionName     string
	InputArguments []Input
	Attributes     map[string]string
	Operation      Operation
	DependOn       []Depend
}

// requiresAttributes reports whether kind mandates non-empty Attributes.
func requiresAttributes(kind string) bool {
	return kind == "openwhisk" || kind == "polkadot"
}

// NewTask validates and constructs a Task, enforcing:
//   - kind in {"openwhisk","polkadot"} requires non-empty attributes;
//   - every Depend.CurField matches an Input.Name, which gets IsDepend=true;
//   - no two Inputs share a Name.
func NewTask(
	kind, actionName string,
	inputArguments []Input,
	attributes map[string]string,
	operation Operation,
	dependOn []Depend,
) (Task, error) {
	if requiresAttributes(kind) && len(attributes) == 0 {
		return Task{}, diagnostics.BuilderMisuse("task",
			"attributes are mandatory for kind %q (task %q)", kind, actionName)
	}
	if attributes == nil {
		attributes = map[string]string{}
	}

	seen := make(map[string]struct{}, len(inputArguments))
	for _, in := range inputArguments {
		if _, ok := seen[in.Name]; ok {
			return Task{}, diagnostics.BuilderMisuse("task",
				"duplicate input field name %q in task %q", in.Name, actionName)
		}
		seen[in.Name] = struct{}{}
	}

	inputs := make([]Input, len(inputArguments))
	copy(inputs, inputArguments)

	for _, dep := range dependOn {
		idx := indexOfInput(inputs, dep.CurField)
		if idx < 0 {
			return Task{}, diagnostics.DanglingDependency(actionName, dep.CurField)
		}
		inputs[idx].IsDepend = true
	}

	return Task{
		Kind:           kind,
		ActionName:     actionName,
		InputArguments: inputs,
		Attributes:     attributes,
		Operation:      operation,
		DependOn:       append([]Depend(nil), dependOn...),
	}, nil
}

func indexOfInput(inputs []Input, name string) int {
	for i, in := range inputs {
		if in.Name == name {
			return i
		}
	}
	return -1
}

// Workflow is a named, versioned collection of tasks keyed by action
// name; task names are unique by construction (NewWorkflow rejects
// duplicates).
type Workflow struct {
	Name    string
	Version string
	Tasks   map[string]Task
	// Order preserves task declaration order (the map above loses it;
	// the generator needs declaration order for ties and emission).
	Order []string
}

// NewWorkflow builds a Workflow from an ordered task list, rejecting
// duplicate action names as a hard error.
func NewWorkflow(name, version string, tasks []Task) (Workflow, error) {
	m := make(map[string]Task, len(tasks))
	order := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := m[t.ActionName]; ok {
			return Workflow{}, diagnostics.DuplicateTaskName(name, t.ActionName)
		}
		m[t.ActionName] = t
		order = append(order, t.ActionName)
	}
	return Workflow{Name: name, Version: version, Tasks: m, Order: order}, nil
}

// OrderedTasks returns the workflow's tasks in declaration order.
func (w Workflow) OrderedTasks() []Task {
	out := make([]Task, 0, len(w.Order))
	for _, name := range w.Order {
		out = append(out, w.Tasks[name])
	}
	return out
}

// Composer is the process-scoped accumulator bound to a single
// compilation: every workflow evaluated, and every custom type
// registered via EchoStruct. It is mutated by exactly one evaluator at
// a time (see internal/eval), so the mutex here only guards against
// accidental concurrent use, not genuine parallelism.
type Composer struct {
	mu          sync.Mutex
	workflows   []Workflow
	customTypes map[string]string // PascalCase name -> rendered struct definition
	customOrder []string          // insertion order, for deterministic iteration fallback
}

// NewComposer returns an empty, ready-to-use Composer.
func NewComposer() *Composer {
	return &Composer{customTypes: make(map[string]string)}
}

// AddWorkflow appends a workflow to the composer in insertion order.
func (c *Composer) AddWorkflow(w Workflow) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workflows = append(c.workflows, w)
}

// Workflows returns the accumulated workflows in insertion order.
func (c *Composer) Workflows() []Workflow {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Workflow, len(c.workflows))
	copy(out, c.workflows)
	return out
}

// AddCustomType registers (or overwrites, last-wins) a rendered struct
// definition under its PascalCase name.
func (c *Composer) AddCustomType(name, rendered string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.customTypes[name]; !exists {
		c.customOrder = append(c.customOrder, name)
	}
	c.customTypes[name] = rendered
}

// CustomType looks up a registered custom type's rendered definition.
func (c *Composer) CustomType(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.customTypes[name]
	return s, ok
}

// CustomTypeNames returns every registered custom-type name, sorted
// alphabetically (the order the generator's prelude requires).
func (c *Composer) CustomTypeNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.customTypes))
	for n := range c.customTypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns an immutable copy safe to hand to the generator once
// evaluation has finished without error.
func (c *Composer) Snapshot() *Composer {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := NewComposer()
	cp.workflows = append(cp.workflows, c.workflows...)
	for _, n := range c.customOrder {
		cp.customTypes[n] = c.customTypes[n]
		cp.customOrder = append(cp.customOrder, n)
	}
	return cp
}

// ValidateWorkflow checks cross-cutting invariants that NewTask/NewWorkflow
// cannot check alone: every RustType::Struct reference must resolve
// against the composer's custom-type table.
func (c *Composer) ValidateWorkflow(w Workflow) error {
	for _, t := range w.OrderedTasks() {
		for _, in := range t.InputArguments {
			if err := c.validateType(in.InputType); err != nil {
				return fmt.Errorf("task %q input %q: %w", t.ActionName, in.Name, err)
			}
		}
	}
	return nil
}

func (c *Composer) validateType(t rtype.Type) error {
	switch t.Kind {
	case rtype.KStruct:
		if _, ok := c.CustomType(t.Name); !ok {
			return diagnostics.UnknownStruct(t.Name)
		}
	case rtype.KList:
		return c.validateType(*t.Elem)
	case rtype.KHashMap:
		if err := c.validateType(*t.Key); err != nil {
			return err
		}
		return c.validateType(*t.Val)
	case rtype.KTuple:
		if err := c.validateType(*t.First); err != nil {
			return err
		}
		return c.validateType(*t.Second)
	}
	return nil
}
