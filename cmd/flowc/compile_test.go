package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScript = `
a = task(kind="plain", action_name="fetch", input_arguments=[
    argument(name="n", input_type=Int),
])
b = task(kind="plain", action_name="greet", input_arguments=[
    argument(name="value", input_type=Int),
], depend_on=[depend(task_name="fetch", cur_field="value", prev_field="out")])

workflows(name="greeting", version="1.0.0", tasks=[a, b])
`

func writeScript(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "script.star")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompileCmd(t *testing.T) {
	t.Run("Should compile a valid script into a generated project directory", func(t *testing.T) {
		dir := t.TempDir()
		script := writeScript(t, dir, sampleScript)
		outDir := filepath.Join(dir, "out")

		root := newRootCommand()
		var stdout bytes.Buffer
		root.SetOut(&stdout)
		root.SetArgs([]string{"compile", script, "-o", outDir})
		require.NoError(t, root.ExecuteContext(context.Background()))

		_, err := os.Stat(filepath.Join(outDir, "greeting", "Cargo.toml"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(outDir, "greeting", "src", "types.rs"))
		assert.NoError(t, err)
	})

	t.Run("Should refuse to recompile without --overwrite", func(t *testing.T) {
		dir := t.TempDir()
		script := writeScript(t, dir, sampleScript)
		outDir := filepath.Join(dir, "out")

		root := newRootCommand()
		root.SetArgs([]string{"compile", script, "-o", outDir})
		require.NoError(t, root.ExecuteContext(context.Background()))

		root2 := newRootCommand()
		root2.SetArgs([]string{"compile", script, "-o", outDir})
		assert.Error(t, root2.ExecuteContext(context.Background()))
	})

	t.Run("Should reject a script exceeding the configured size limit", func(t *testing.T) {
		dir := t.TempDir()
		script := writeScript(t, dir, sampleScript)
		cfgPath := filepath.Join(dir, "flowc.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("eval:\n  max_script_bytes: 4\n"), 0o644))

		root := newRootCommand()
		root.SetArgs([]string{"--config", cfgPath, "compile", script, "-o", filepath.Join(dir, "out")})
		assert.Error(t, root.ExecuteContext(context.Background()))
	})
}

func TestValidateCmd(t *testing.T) {
	t.Run("Should report each workflow's task count without writing output", func(t *testing.T) {
		dir := t.TempDir()
		script := writeScript(t, dir, sampleScript)

		root := newRootCommand()
		var stdout bytes.Buffer
		root.SetOut(&stdout)
		root.SetArgs([]string{"validate", script})
		require.NoError(t, root.ExecuteContext(context.Background()))
		assert.Contains(t, stdout.String(), "greeting@1.0.0: 2 task(s)")
	})

	t.Run("Should surface a script parse error", func(t *testing.T) {
		dir := t.TempDir()
		script := writeScript(t, dir, "this is not valid starlark (((")

		root := newRootCommand()
		root.SetArgs([]string{"validate", script})
		assert.Error(t, root.ExecuteContext(context.Background()))
	})
}
