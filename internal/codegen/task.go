package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ajaykumargdr/flowc/internal/model"
)

// backendDerive maps a task kind onto the extra derive the generated
// struct carries for its execution back end. The openwhisk and polkadot
// kinds both require attributes and both carry a corresponding derive
// so the runtime can dispatch on it.
func backendDerive(kind string) string {
	switch kind {
	case "openwhisk":
		return "OpenWhisk"
	case "polkadot":
		return "Polkadot"
	default:
		return ""
	}
}

// outputField names the struct field a task's output() accessor reads:
// a Map operation re-runs the task per element and accumulates results
// into mapout, so its public output comes from there instead of output.
func outputField(op model.Operation) string {
	if op.Kind == model.OpMap {
		return "mapout"
	}
	return "output"
}

func renderInputStruct(t model.Task) string {
	name := inputStructName(t.ActionName)
	fields := make([]string, 0, len(t.InputArguments))
	for _, in := range t.InputArguments {
		fields = append(fields, fmt.Sprintf("pub %s: %s", in.Name, in.InputType.Render()))
	}
	return fmt.Sprintf(
		"make_input_struct!(\n    %s,\n    [%s],\n    [Debug, Clone, Default, Serialize, Deserialize]\n);",
		name, strings.Join(fields, ", "),
	)
}

func renderTaskStruct(t model.Task) string {
	name := taskStructName(t.ActionName)
	input := inputStructName(t.ActionName)

	derives := []string{"Debug", "Clone", "Default", "Serialize", "Deserialize"}
	if d := backendDerive(t.Kind); d != "" {
		derives = append(derives, d)
	}

	keys := make([]string, 0, len(t.Attributes))
	for k := range t.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]string, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, fmt.Sprintf("%s:%q", k, t.Attributes[k]))
	}

	return fmt.Sprintf(
		"make_main_struct!(\n    %s,\n    %s,\n    [%s],\n    [%s],\n    %s\n);",
		name, input, strings.Join(derives, ", "), strings.Join(attrs, ", "), outputField(t.Operation),
	)
}

// renderConstructor emits impl_new!: one constructor parameter per input
// that is not fed by a Depend (those are filled in later by the
// operation-specific setter once the predecessor's output is known).
func renderConstructor(t model.Task) string {
	name := taskStructName(t.ActionName)
	input := inputStructName(t.ActionName)

	var params []string
	for _, in := range t.InputArguments {
		if in.IsDepend {
			continue
		}
		params = append(params, fmt.Sprintf("%s: %s", in.Name, in.InputType.Render()))
	}
	if len(params) == 0 {
		return fmt.Sprintf("impl_new!(\n    %s,\n    %s,\n    []\n);", name, input)
	}
	return fmt.Sprintf("impl_new!(\n    %s,\n    %s,\n    [%s]\n);", name, input, strings.Join(params, ", "))
}

// renderSetter emits the operation-appropriate setter macro invocation.
func renderSetter(t model.Task) (string, error) {
	name := taskStructName(t.ActionName)

	switch t.Operation.Kind {
	case model.OpNormal:
		parts := make([]string, 0, len(t.DependOn))
		for _, d := range t.DependOn {
			parts = append(parts, fmt.Sprintf("%s:%q", d.CurField, d.PrevField))
		}
		return fmt.Sprintf("impl_setter!(\n    %s,\n    [%s]\n);", name, strings.Join(parts, ", ")), nil

	case model.OpMap:
		field := t.Operation.Field
		idx := indexOfInputArg(t, field)
		elemType := "String"
		if idx >= 0 {
			elemType = t.InputArguments[idx].InputType.Render()
		}
		key := field
		if len(t.DependOn) > 0 {
			key = t.DependOn[0].PrevField
		}
		return fmt.Sprintf(
			"impl_map_setter!(\n    %s,\n    %s:%q,\n    %s,\n    %q\n);",
			name, field, key, elemType, field,
		), nil

	case model.OpConcat:
		field := ""
		if len(t.DependOn) > 0 {
			field = t.DependOn[0].CurField
		} else if len(t.InputArguments) > 0 {
			field = t.InputArguments[0].Name
		}
		return fmt.Sprintf("impl_concat_setter!(\n    %s,\n    %s\n);", name, field), nil

	case model.OpCombine:
		parts := make([]string, 0, len(t.Operation.Combine))
		for _, d := range t.Operation.Combine {
			if d.Key == "" {
				parts = append(parts, fmt.Sprintf("(v)[%d]%s:\"\"", d.Index, d.Element))
			} else {
				parts = append(parts, fmt.Sprintf("[%d]%s:%q", d.Index, d.Element, d.Key))
			}
		}
		return fmt.Sprintf("impl_combine_setter!(\n    %s,\n    [%s]\n);", name, strings.Join(parts, ", ")), nil

	default:
		return "", fmt.Errorf("codegen: task %q has an unrecognized operation kind", t.ActionName)
	}
}

func indexOfInputArg(t model.Task, name string) int {
	for i, in := range t.InputArguments {
		if in.Name == name {
			return i
		}
	}
	return -1
}

// renderTaskUnit renders the complete emission for one task: its input
// struct, its main struct, its constructor, its setter, and its
// impl_execute_trait! invocation, in that order.
func renderTaskUnit(t model.Task) (string, error) {
	setter, err := renderSetter(t)
	if err != nil {
		return "", err
	}
	pieces := []string{
		renderInputStruct(t),
		renderTaskStruct(t),
		renderConstructor(t),
		setter,
		fmt.Sprintf("impl_execute_trait!(%s);", taskStructName(t.ActionName)),
	}
	return strings.Join(pieces, "\n\n"), nil
}
