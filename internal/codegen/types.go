package codegen

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ajaykumargdr/flowc/internal/diagnostics"
	"github.com/ajaykumargdr/flowc/internal/model"
	"github.com/ajaykumargdr/flowc/internal/rtype"
)

// collectStructNames walks a type, recording every Struct reference it
// contains (directly or through List/HashMap/Tuple nesting).
func collectStructNames(t rtype.Type, into map[string]bool) {
	switch t.Kind {
	case rtype.KStruct:
		into[t.Name] = true
	case rtype.KList:
		collectStructNames(*t.Elem, into)
	case rtype.KHashMap:
		collectStructNames(*t.Key, into)
		collectStructNames(*t.Val, into)
	case rtype.KTuple:
		collectStructNames(*t.First, into)
		collectStructNames(*t.Second, into)
	}
}

var identRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// typesPrelude computes the alphabetically ordered, transitively closed
// set of custom-type definitions a workflow's tasks reach: every struct
// named directly in a task input type, plus every struct those
// definitions in turn reference, fixed-point iterated against the
// composer's full registry.
func typesPrelude(composer *model.Composer, w model.Workflow) ([]string, error) {
	wanted := make(map[string]bool)
	for _, t := range w.OrderedTasks() {
		for _, in := range t.InputArguments {
			collectStructNames(in.InputType, wanted)
		}
	}

	allNames := composer.CustomTypeNames()
	allSet := make(map[string]bool, len(allNames))
	for _, n := range allNames {
		allSet[n] = true
	}

	for changed := true; changed; {
		changed = false
		for name := range wanted {
			def, ok := composer.CustomType(name)
			if !ok {
				return nil, diagnostics.UnknownStruct(name)
			}
			for _, ident := range identRe.FindAllString(def, -1) {
				if ident == name || !allSet[ident] || wanted[ident] {
					continue
				}
				wanted[ident] = true
				changed = true
			}
		}
	}

	out := make([]string, 0, len(wanted))
	for n := range wanted {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

// renderTypesUnit renders src/types.rs: the alphabetically ordered
// custom-type prelude, one make_input_struct! invocation per type.
func renderTypesUnit(composer *model.Composer, w model.Workflow) (string, error) {
	names, err := typesPrelude(composer, w)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("use super::*;\n\n")
	for _, name := range names {
		def, _ := composer.CustomType(name)
		b.WriteString(def)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}
