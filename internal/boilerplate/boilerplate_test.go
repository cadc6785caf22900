package boilerplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerbatimConstantsAreNonEmpty(t *testing.T) {
	t.Run("Should carry complete, non-empty source units", func(t *testing.T) {
		assert.Contains(t, Common, "pub struct WorkflowGraph")
		assert.Contains(t, Lib, "pub fn _start")
		assert.Contains(t, Trait, "pub trait Execute")
		assert.Contains(t, Macros, "macro_rules! make_input_struct")
		assert.Contains(t, Macros, "macro_rules! impl_combine_setter")
	})
}

func TestCargoManifest(t *testing.T) {
	t.Run("Should render the project name and version into the manifest", func(t *testing.T) {
		out, err := CargoManifest("payroll_workflow", "1.2.0")
		require.NoError(t, err)
		assert.Contains(t, out, `name = "payroll_workflow"`)
		assert.Contains(t, out, `version = "1.2.0"`)
		assert.Contains(t, out, `crate-type = ["cdylib"]`)
		assert.Contains(t, out, `opt-level = "z"`)
	})
}
