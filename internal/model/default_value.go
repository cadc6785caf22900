package model

import (
	"strconv"
	"strings"

	"github.com/ajaykumargdr/flowc/internal/diagnostics"
	"github.com/ajaykumargdr/flowc/internal/rtype"
)

// ValidateDefaultValue checks that value (the JSON text re-serialized
// by the evaluator's argument() builder) conforms to typ. Compound
// types are stored verbatim without deeper validation.
func ValidateDefaultValue(field string, typ rtype.Type, value string) error {
	switch typ.Kind {
	case rtype.KString:
		if !strings.Contains(value, `"`) {
			return diagnostics.DefaultTypeMismatch(field, "String", value)
		}
	case rtype.KInt:
		if _, err := strconv.ParseInt(value, 10, 32); err != nil {
			return diagnostics.DefaultTypeMismatch(field, "Int", value)
		}
	case rtype.KUint:
		if _, err := strconv.ParseUint(value, 10, 32); err != nil {
			return diagnostics.DefaultTypeMismatch(field, "Uint", value)
		}
	case rtype.KFloat:
		if _, err := strconv.ParseFloat(value, 32); err != nil {
			return diagnostics.DefaultTypeMismatch(field, "Float", value)
		}
	case rtype.KBoolean:
		if value != "true" && value != "false" {
			return diagnostics.DefaultTypeMismatch(field, "Boolean", value)
		}
	case rtype.KList, rtype.KHashMap, rtype.KTuple, rtype.KStruct:
		// stored verbatim, no deeper validation.
	}
	return nil
}
