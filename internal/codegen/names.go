package codegen

import "strings"

// pascalCase mirrors the evaluator's EchoStruct naming convention
// (internal/eval/builtins.go toPascalCase) so that task- and
// input-struct names generated from an action_name read the same way a
// custom type name does.
func pascalCase(s string) string {
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

func taskStructName(actionName string) string  { return pascalCase(actionName) }
func inputStructName(actionName string) string { return pascalCase(actionName) + "Input" }
