package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajaykumargdr/flowc/internal/diagnostics"
	"github.com/ajaykumargdr/flowc/internal/rtype"
)

func TestNewTask(t *testing.T) {
	t.Run("Should require non-empty attributes for openwhisk kind", func(t *testing.T) {
		_, err := NewTask("openwhisk", "a", []Input{{Name: "x", InputType: rtype.Int()}}, nil, Normal(), nil)
		require.Error(t, err)
		var diag *diagnostics.Diagnostic
		require.ErrorAs(t, err, &diag)
		assert.Equal(t, diagnostics.KindBuilderMisuse, diag.Kind)
	})

	t.Run("Should allow empty attributes for non-backend kinds", func(t *testing.T) {
		task, err := NewTask("plain", "a", []Input{{Name: "x", InputType: rtype.Int()}}, nil, Normal(), nil)
		require.NoError(t, err)
		assert.Empty(t, task.Attributes)
	})

	t.Run("Should mark depended-on inputs as IsDepend", func(t *testing.T) {
		task, err := NewTask("plain", "b", []Input{{Name: "y", InputType: rtype.Int()}}, nil, Normal(),
			[]Depend{{TaskName: "a", CurField: "y", PrevField: "out"}})
		require.NoError(t, err)
		require.Len(t, task.InputArguments, 1)
		assert.True(t, task.InputArguments[0].IsDepend)
	})

	t.Run("Should reject a dangling dependency", func(t *testing.T) {
		_, err := NewTask("plain", "b", []Input{{Name: "y", InputType: rtype.Int()}}, nil, Normal(),
			[]Depend{{TaskName: "a", CurField: "z", PrevField: "out"}})
		require.Error(t, err)
		var diag *diagnostics.Diagnostic
		require.ErrorAs(t, err, &diag)
		assert.Equal(t, diagnostics.KindDanglingDependency, diag.Kind)
	})

	t.Run("Should reject duplicate input field names", func(t *testing.T) {
		_, err := NewTask("plain", "b", []Input{
			{Name: "x", InputType: rtype.Int()},
			{Name: "x", InputType: rtype.String()},
		}, nil, Normal(), nil)
		require.Error(t, err)
		var diag *diagnostics.Diagnostic
		require.ErrorAs(t, err, &diag)
		assert.Equal(t, diagnostics.KindBuilderMisuse, diag.Kind)
	})
}

func TestNewWorkflow(t *testing.T) {
	t.Run("Should reject duplicate task names", func(t *testing.T) {
		a, err := NewTask("plain", "a", nil, nil, Normal(), nil)
		require.NoError(t, err)
		b, err := NewTask("plain", "a", nil, nil, Normal(), nil)
		require.NoError(t, err)

		_, err = NewWorkflow("w", "1", []Task{a, b})
		require.Error(t, err)
		var diag *diagnostics.Diagnostic
		require.ErrorAs(t, err, &diag)
		assert.Equal(t, diagnostics.KindDuplicateTaskName, diag.Kind)
	})

	t.Run("Should preserve declaration order", func(t *testing.T) {
		a, _ := NewTask("plain", "a", nil, nil, Normal(), nil)
		b, _ := NewTask("plain", "b", nil, nil, Normal(), nil)
		wf, err := NewWorkflow("w", "1", []Task{b, a})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, wf.Order)
	})
}

func TestComposer(t *testing.T) {
	t.Run("Should overwrite custom types last-wins without duplicating order entries", func(t *testing.T) {
		c := NewComposer()
		c.AddCustomType("MyRec", "def-1")
		c.AddCustomType("MyRec", "def-2")
		got, ok := c.CustomType("MyRec")
		require.True(t, ok)
		assert.Equal(t, "def-2", got)
		assert.Equal(t, []string{"MyRec"}, c.CustomTypeNames())
	})

	t.Run("Should validate struct references against registered custom types", func(t *testing.T) {
		c := NewComposer()
		a, _ := NewTask("plain", "a", []Input{{Name: "r", InputType: rtype.Struct("MyRec")}}, nil, Normal(), nil)
		wf, err := NewWorkflow("w", "1", []Task{a})
		require.NoError(t, err)

		err = c.ValidateWorkflow(wf)
		require.Error(t, err)
		var diag *diagnostics.Diagnostic
		require.ErrorAs(t, err, &diag)
		assert.Equal(t, diagnostics.KindUnknownStruct, diag.Kind)

		c.AddCustomType("MyRec", "make_input_struct!(...)")
		assert.NoError(t, c.ValidateWorkflow(wf))
	})
}

func TestValidateDefaultValue(t *testing.T) {
	t.Run("Should accept a quoted string default", func(t *testing.T) {
		assert.NoError(t, ValidateDefaultValue("x", rtype.String(), `"hello"`))
	})

	t.Run("Should reject an unquoted string default", func(t *testing.T) {
		assert.Error(t, ValidateDefaultValue("x", rtype.String(), "hello"))
	})

	t.Run("Should accept an in-range int default", func(t *testing.T) {
		assert.NoError(t, ValidateDefaultValue("x", rtype.Int(), "42"))
	})

	t.Run("Should reject a non-numeric int default", func(t *testing.T) {
		assert.Error(t, ValidateDefaultValue("x", rtype.Int(), "nope"))
	})

	t.Run("Should accept true/false booleans only", func(t *testing.T) {
		assert.NoError(t, ValidateDefaultValue("x", rtype.Boolean(), "true"))
		assert.NoError(t, ValidateDefaultValue("x", rtype.Boolean(), "false"))
		assert.Error(t, ValidateDefaultValue("x", rtype.Boolean(), "yes"))
	})

	t.Run("Should accept any verbatim value for compound types", func(t *testing.T) {
		assert.NoError(t, ValidateDefaultValue("x", rtype.List(rtype.Int()), "[1,2,3]"))
	})
}
