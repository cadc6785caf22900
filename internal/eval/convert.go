package eval

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"

	"github.com/ajaykumargdr/flowc/internal/diagnostics"
	"github.com/ajaykumargdr/flowc/internal/model"
	"github.com/ajaykumargdr/flowc/internal/rtype"
)

func asType(builder string, v starlark.Value) (rtype.Type, error) {
	tv, ok := v.(*typeValue)
	if !ok {
		return rtype.Type{}, diagnostics.BuilderMisuse(builder,
			"expected a RustType value, got %s", v.Type())
	}
	return tv.t, nil
}

func asStringDict(builder, paramName string, v starlark.Value) (map[string]string, error) {
	if v == nil || v == starlark.None {
		return map[string]string{}, nil
	}
	d, ok := v.(*starlark.Dict)
	if !ok {
		return nil, diagnostics.BuilderMisuse(builder, "%s must be a dict of strings", paramName)
	}
	out := make(map[string]string, d.Len())
	for _, item := range d.Items() {
		key, ok := starlark.AsString(item[0])
		if !ok {
			return nil, diagnostics.BuilderMisuse(builder, "%s keys must be strings", paramName)
		}
		val, ok := starlark.AsString(item[1])
		if !ok {
			return nil, diagnostics.BuilderMisuse(builder, "%s values must be strings", paramName)
		}
		out[key] = val
	}
	return out, nil
}

func asInputList(builder string, v starlark.Value) ([]model.Input, error) {
	list, ok := v.(*starlark.List)
	if !ok {
		return nil, diagnostics.BuilderMisuse(builder, "input_arguments must be a list of Input values")
	}
	out := make([]model.Input, 0, list.Len())
	iter := list.Iterate()
	defer iter.Done()
	var item starlark.Value
	for iter.Next(&item) {
		iv, ok := item.(*inputValue)
		if !ok {
			return nil, diagnostics.BuilderMisuse(builder, "input_arguments elements must be Input values, got %s", item.Type())
		}
		out = append(out, iv.in)
	}
	return out, nil
}

func asDependList(builder string, v starlark.Value) ([]model.Depend, error) {
	if v == nil || v == starlark.None {
		return nil, nil
	}
	list, ok := v.(*starlark.List)
	if !ok {
		return nil, diagnostics.BuilderMisuse(builder, "depend_on must be a list of Depend values")
	}
	out := make([]model.Depend, 0, list.Len())
	iter := list.Iterate()
	defer iter.Done()
	var item starlark.Value
	for iter.Next(&item) {
		dv, ok := item.(*dependValue)
		if !ok {
			return nil, diagnostics.BuilderMisuse(builder, "depend_on elements must be Depend values, got %s", item.Type())
		}
		out = append(out, dv.d)
	}
	return out, nil
}

func asTaskList(builder string, v starlark.Value) ([]model.Task, error) {
	list, ok := v.(*starlark.List)
	if !ok {
		return nil, diagnostics.BuilderMisuse(builder, "tasks must be a list of Task values")
	}
	out := make([]model.Task, 0, list.Len())
	iter := list.Iterate()
	defer iter.Done()
	var item starlark.Value
	for iter.Next(&item) {
		tv, ok := item.(*taskValue)
		if !ok {
			return nil, diagnostics.BuilderMisuse(builder, "tasks elements must be Task values, got %s", item.Type())
		}
		out = append(out, tv.t)
	}
	return out, nil
}

// asTypeFields converts a dict of field-name -> RustType (used by
// EchoStruct) into a sorted slice of (name, type) pairs, sorted
// alphabetically so struct rendering is deterministic.
func asTypeFields(builder string, v starlark.Value) ([]fieldDef, error) {
	d, ok := v.(*starlark.Dict)
	if !ok {
		return nil, diagnostics.BuilderMisuse(builder, "fields must be a dict of name -> RustType")
	}
	out := make([]fieldDef, 0, d.Len())
	for _, item := range d.Items() {
		name, ok := starlark.AsString(item[0])
		if !ok {
			return nil, diagnostics.BuilderMisuse(builder, "field names must be strings")
		}
		ty, err := asType(builder, item[1])
		if err != nil {
			return nil, err
		}
		out = append(out, fieldDef{name: name, typ: ty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out, nil
}

type fieldDef struct {
	name string
	typ  rtype.Type
}

// jsonOfDefault re-serializes a Starlark default_value into the JSON
// text stored on the Input.
func jsonOfDefault(v starlark.Value) (string, error) {
	switch x := v.(type) {
	case starlark.String:
		return fmt.Sprintf("%q", string(x)), nil
	case starlark.Bool:
		if bool(x) {
			return "true", nil
		}
		return "false", nil
	case starlark.Int:
		return x.String(), nil
	case starlark.Float:
		return x.String(), nil
	default:
		return v.String(), nil
	}
}
