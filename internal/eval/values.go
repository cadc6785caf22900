package eval

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/ajaykumargdr/flowc/internal/model"
	"github.com/ajaykumargdr/flowc/internal/rtype"
)

// The config script language is dynamically typed; every builder
// returns an opaque handle the script may pass to other builders. These
// handles are thin starlark.Value wrappers around the real model types
// in internal/model and internal/rtype. None of them are hashable
// (scripts never use them as dict/set keys), and Freeze is a no-op
// because the wrapped Go values are immutable once constructed.

type typeValue struct{ t rtype.Type }

func (v *typeValue) String() string        { return fmt.Sprintf("RustType(%s)", v.t.Render()) }
func (v *typeValue) Type() string          { return "RustType" }
func (v *typeValue) Freeze()               {}
func (v *typeValue) Truth() starlark.Bool  { return starlark.True }
func (v *typeValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: RustType") }

type inputValue struct{ in model.Input }

func (v *inputValue) String() string        { return fmt.Sprintf("Input(%s)", v.in.Name) }
func (v *inputValue) Type() string          { return "Input" }
func (v *inputValue) Freeze()               {}
func (v *inputValue) Truth() starlark.Bool  { return starlark.True }
func (v *inputValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: Input") }

type dependValue struct{ d model.Depend }

func (v *dependValue) String() string        { return fmt.Sprintf("Depend(%s.%s)", v.d.TaskName, v.d.PrevField) }
func (v *dependValue) Type() string          { return "Depend" }
func (v *dependValue) Freeze()               {}
func (v *dependValue) Truth() starlark.Bool  { return starlark.True }
func (v *dependValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: Depend") }

type operationValue struct{ op model.Operation }

func (v *operationValue) String() string        { return "Operation(...)" }
func (v *operationValue) Type() string          { return "Operation" }
func (v *operationValue) Freeze()               {}
func (v *operationValue) Truth() starlark.Bool  { return starlark.True }
func (v *operationValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: Operation") }

type taskValue struct{ t model.Task }

func (v *taskValue) String() string        { return fmt.Sprintf("Task(%s)", v.t.ActionName) }
func (v *taskValue) Type() string          { return "Task" }
func (v *taskValue) Freeze()               {}
func (v *taskValue) Truth() starlark.Bool  { return starlark.True }
func (v *taskValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: Task") }

type workflowValue struct{ w model.Workflow }

func (v *workflowValue) String() string        { return fmt.Sprintf("Workflow(%s)", v.w.Name) }
func (v *workflowValue) Type() string          { return "Workflow" }
func (v *workflowValue) Freeze()               {}
func (v *workflowValue) Truth() starlark.Bool  { return starlark.True }
func (v *workflowValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: Workflow") }
