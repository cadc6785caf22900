package eval

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/ajaykumargdr/flowc/internal/diagnostics"
	"github.com/ajaykumargdr/flowc/internal/model"
	"github.com/ajaykumargdr/flowc/internal/rtype"
)

// Globals builds the predeclared environment exposed to a config
// script: the fixed builder vocabulary, bound to the given Composer.
// Registration is split into three groups (task builders, data-type
// constructors, operation constructors) merged into one dict, since
// Starlark scripts see a single flat namespace.
func Globals(composer *model.Composer) starlark.StringDict {
	g := starlark.StringDict{}
	for name, val := range taskBuiltins(composer) {
		g[name] = val
	}
	for name, val := range datatypeBuiltins() {
		g[name] = val
	}
	for name, val := range operationBuiltins() {
		g[name] = val
	}
	return g
}

func taskBuiltins(composer *model.Composer) starlark.StringDict {
	return starlark.StringDict{
		"task":       starlark.NewBuiltin("task", builtinTask),
		"workflows":  starlark.NewBuiltin("workflows", builtinWorkflows(composer)),
		"argument":   starlark.NewBuiltin("argument", builtinArgument),
		"depend":     starlark.NewBuiltin("depend", builtinDepend),
		"EchoStruct": starlark.NewBuiltin("EchoStruct", builtinEchoStruct(composer)),
	}
}

func datatypeBuiltins() starlark.StringDict {
	return starlark.StringDict{
		"Tuple":   starlark.NewBuiltin("Tuple", builtinTuple),
		"HashMap": starlark.NewBuiltin("HashMap", builtinHashMap),
		"List":    starlark.NewBuiltin("List", builtinList),
		"String":  &typeValue{t: rtype.String()},
		"Int":     &typeValue{t: rtype.Int()},
		"Uint":    &typeValue{t: rtype.Uint()},
		"Float":   &typeValue{t: rtype.Float()},
		"Boolean": &typeValue{t: rtype.Boolean()},
	}
}

func operationBuiltins() starlark.StringDict {
	return starlark.StringDict{
		"normal":  starlark.NewBuiltin("normal", builtinNormal),
		"concat":  starlark.NewBuiltin("concat", builtinConcat),
		"combine": starlark.NewBuiltin("combine", builtinCombine),
		"map":     starlark.NewBuiltin("map", builtinMap),
	}
}

func builtinTask(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		kind, actionName      string
		inputArguments        starlark.Value
		attributes, operation starlark.Value = starlark.None, starlark.None
		dependOn              starlark.Value = starlark.None
	)
	if err := starlark.UnpackArgs("task", args, kwargs,
		"kind", &kind,
		"action_name", &actionName,
		"input_arguments", &inputArguments,
		"attributes?", &attributes,
		"operation?", &operation,
		"depend_on?", &dependOn,
	); err != nil {
		return nil, diagnostics.BuilderMisuse("task", "%s", err)
	}

	inputs, err := asInputList("task", inputArguments)
	if err != nil {
		return nil, err
	}
	attrs, err := asStringDict("task", "attributes", attributes)
	if err != nil {
		return nil, err
	}
	op := model.Normal()
	if operation != starlark.None {
		ov, ok := operation.(*operationValue)
		if !ok {
			return nil, diagnostics.BuilderMisuse("task", "operation must be an Operation value")
		}
		op = ov.op
	}
	deps, err := asDependList("task", dependOn)
	if err != nil {
		return nil, err
	}

	t, err := model.NewTask(kind, actionName, inputs, attrs, op, deps)
	if err != nil {
		return nil, err
	}
	return &taskValue{t: t}, nil
}

func builtinWorkflows(composer *model.Composer) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name, version string
		var tasks starlark.Value
		if err := starlark.UnpackArgs("workflows", args, kwargs,
			"name", &name,
			"version", &version,
			"tasks", &tasks,
		); err != nil {
			return nil, diagnostics.BuilderMisuse("workflows", "%s", err)
		}
		taskList, err := asTaskList("workflows", tasks)
		if err != nil {
			return nil, err
		}
		wf, err := model.NewWorkflow(name, version, taskList)
		if err != nil {
			return nil, err
		}
		composer.AddWorkflow(wf)
		return &workflowValue{w: wf}, nil
	}
}

func builtinArgument(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var inputType starlark.Value
	var defaultValue starlark.Value = starlark.None
	if err := starlark.UnpackArgs("argument", args, kwargs,
		"name", &name,
		"input_type", &inputType,
		"default_value?", &defaultValue,
	); err != nil {
		return nil, diagnostics.BuilderMisuse("argument", "%s", err)
	}

	ty, err := asType("argument", inputType)
	if err != nil {
		return nil, err
	}

	var def *string
	if defaultValue != starlark.None {
		text, err := jsonOfDefault(defaultValue)
		if err != nil {
			return nil, diagnostics.BuilderMisuse("argument", "%s", err)
		}
		if err := model.ValidateDefaultValue(name, ty, text); err != nil {
			return nil, err
		}
		def = &text
	}

	return &inputValue{in: model.Input{
		Name:         name,
		InputType:    ty,
		DefaultValue: def,
		IsDepend:     false,
	}}, nil
}

func builtinDepend(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var taskName, curField, prevField string
	if err := starlark.UnpackArgs("depend", args, kwargs,
		"task_name", &taskName,
		"cur_field", &curField,
		"prev_field", &prevField,
	); err != nil {
		return nil, diagnostics.BuilderMisuse("depend", "%s", err)
	}
	return &dependValue{d: model.Depend{TaskName: taskName, CurField: curField, PrevField: prevField}}, nil
}

func builtinEchoStruct(composer *model.Composer) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		var fields starlark.Value
		if err := starlark.UnpackArgs("EchoStruct", args, kwargs,
			"name", &name,
			"fields", &fields,
		); err != nil {
			return nil, diagnostics.BuilderMisuse("EchoStruct", "%s", err)
		}
		defs, err := asTypeFields("EchoStruct", fields)
		if err != nil {
			return nil, err
		}
		pascal := toPascalCase(name)
		rendered := renderStructDef(pascal, defs)
		composer.AddCustomType(pascal, rendered)
		return &typeValue{t: rtype.Struct(pascal)}, nil
	}
}

func renderStructDef(pascalName string, fields []fieldDef) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s:%s", f.name, f.typ.Render()))
	}
	return fmt.Sprintf(
		"make_input_struct!(\n%s,\n[%s],\n[Default, Clone, Debug, Deserialize, Serialize]\n);",
		pascalName, strings.Join(parts, ","),
	)
}

func toPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func builtinTuple(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var t1, t2 starlark.Value
	if err := starlark.UnpackArgs("Tuple", args, kwargs, "type_1", &t1, "type_2", &t2); err != nil {
		return nil, diagnostics.BuilderMisuse("Tuple", "%s", err)
	}
	first, err := asType("Tuple", t1)
	if err != nil {
		return nil, err
	}
	second, err := asType("Tuple", t2)
	if err != nil {
		return nil, err
	}
	return &typeValue{t: rtype.Tuple(first, second)}, nil
}

func builtinHashMap(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var t1, t2 starlark.Value
	if err := starlark.UnpackArgs("HashMap", args, kwargs, "type_1", &t1, "type_2", &t2); err != nil {
		return nil, diagnostics.BuilderMisuse("HashMap", "%s", err)
	}
	key, err := asType("HashMap", t1)
	if err != nil {
		return nil, err
	}
	val, err := asType("HashMap", t2)
	if err != nil {
		return nil, err
	}
	return &typeValue{t: rtype.HashMap(key, val)}, nil
}

func builtinList(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var t starlark.Value
	if err := starlark.UnpackArgs("List", args, kwargs, "type_of", &t); err != nil {
		return nil, diagnostics.BuilderMisuse("List", "%s", err)
	}
	elem, err := asType("List", t)
	if err != nil {
		return nil, err
	}
	return &typeValue{t: rtype.List(elem)}, nil
}

func builtinNormal(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return &operationValue{op: model.Normal()}, nil
}

func builtinConcat(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return &operationValue{op: model.Concat()}, nil
}

// builtinCombine accepts an optional list of descriptor dicts
// {"element": str, "index": int, "key": str (optional)}.
func builtinCombine(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var descriptors starlark.Value = starlark.None
	if err := starlark.UnpackArgs("combine", args, kwargs, "descriptors?", &descriptors); err != nil {
		return nil, diagnostics.BuilderMisuse("combine", "%s", err)
	}
	if descriptors == starlark.None {
		return &operationValue{op: model.Combine()}, nil
	}
	list, ok := descriptors.(*starlark.List)
	if !ok {
		return nil, diagnostics.BuilderMisuse("combine", "descriptors must be a list of dicts")
	}
	out := make([]model.CombineDescriptor, 0, list.Len())
	iter := list.Iterate()
	defer iter.Done()
	var item starlark.Value
	for iter.Next(&item) {
		d, ok := item.(*starlark.Dict)
		if !ok {
			return nil, diagnostics.BuilderMisuse("combine", "each descriptor must be a dict")
		}
		desc, err := parseCombineDescriptor(d)
		if err != nil {
			return nil, err
		}
		out = append(out, desc)
	}
	return &operationValue{op: model.Combine(out...)}, nil
}

func parseCombineDescriptor(d *starlark.Dict) (model.CombineDescriptor, error) {
	var desc model.CombineDescriptor
	if v, ok, _ := d.Get(starlark.String("element")); ok {
		s, _ := starlark.AsString(v)
		desc.Element = s
	}
	if v, ok, _ := d.Get(starlark.String("index")); ok {
		if iv, ok := v.(starlark.Int); ok {
			n, _ := iv.Int64()
			desc.Index = int(n)
		}
	}
	if v, ok, _ := d.Get(starlark.String("key")); ok {
		s, _ := starlark.AsString(v)
		desc.Key = s
	}
	if desc.Element == "" {
		return desc, diagnostics.BuilderMisuse("combine", "descriptor missing required \"element\" key")
	}
	return desc, nil
}

func builtinMap(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var field string
	if err := starlark.UnpackArgs("map", args, kwargs, "field", &field); err != nil {
		return nil, diagnostics.BuilderMisuse("map", "%s", err)
	}
	return &operationValue{op: model.Map(field)}, nil
}
