package codegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ajaykumargdr/flowc/internal/model"
)

var nonIdentRe = regexp.MustCompile(`[^A-Za-z0-9_]`)

// taskVarName derives the local binding the generated main() uses for a
// task instance from its action name (e.g. action_name "employee_ids"
// binds to a local named employee_ids). Characters outside a Rust
// identifier are folded to underscores so an arbitrary action_name
// still yields valid source.
func taskVarName(actionName string) string {
	v := nonIdentRe.ReplaceAllString(actionName, "_")
	if v == "" || (v[0] >= '0' && v[0] <= '9') {
		v = "_" + v
	}
	return v
}

// collectWorkflowInputFields gathers every Input, across all of a
// workflow's tasks, that is not fed by a Depend. These are exactly the
// fields the workflow's top-level Input struct needs. A name is kept at
// its first occurrence in declaration order when more than one task
// declares it.
func collectWorkflowInputFields(tasks []model.Task) []model.Input {
	seen := make(map[string]bool)
	var out []model.Input
	for _, t := range tasks {
		for _, in := range t.InputArguments {
			if in.IsDepend || seen[in.Name] {
				continue
			}
			seen[in.Name] = true
			out = append(out, in)
		}
	}
	return out
}

// renderWorkflowInputStruct emits the workflow-level Input struct that
// collects every task input not already satisfied by a dependency edge.
func renderWorkflowInputStruct(fields []model.Input) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("pub %s: %s", f.Name, f.InputType.Render()))
	}
	return fmt.Sprintf(
		"make_input_struct!(\n    Input,\n    [%s],\n    [Debug, Clone, Default, Serialize, Deserialize]\n);",
		strings.Join(parts, ", "),
	)
}

// renderTaskConstruction emits one `let <var> = <Task>::new(...);`
// statement: every non-dependency input is read (and cloned) off the
// workflow's parsed Input struct, in input_arguments declaration order,
// matching impl_new!'s parameter order; dependency-fed fields are never
// passed to new, since the setter fills them in once pipe() runs.
func renderTaskConstruction(t model.Task, varName string) string {
	var args []string
	for _, in := range t.InputArguments {
		if in.IsDepend {
			continue
		}
		args = append(args, fmt.Sprintf("input.%s.clone()", in.Name))
	}
	args = append(args, fmt.Sprintf("%q.to_string()", t.ActionName))
	return fmt.Sprintf("let %s = %s::new(%s);", varName, taskStructName(t.ActionName), strings.Join(args, ", "))
}

// renderMainUnit emits the main() entry point: a workflow-level Input
// struct, a WorkflowGraph sized to the task count, one node per task
// added via the Flow-derived add_node (WorkflowGraph keeps its nodes
// and edges fields private; only the derive's own methods may touch
// them), the deduplicated edge list via add_edges, and the
// init()/pipe(...)*/term(None) chain walking the precomputed
// topological order. Predecessor -> successor output wiring is the
// Flow derive's job, not main()'s: pipe() reaches each node through the
// Execute trait's get_task_output/set_output_to_task using the very
// edges just registered, which is why no setter call appears here.
func renderMainUnit(w model.Workflow) (string, error) {
	tasks := w.OrderedTasks()
	edges, err := buildEdges(w)
	if err != nil {
		return "", err
	}
	order, err := topoOrder(w.Name, len(tasks), edges, w.Order)
	if err != nil {
		return "", err
	}

	varNames := make([]string, len(tasks))
	for i, t := range tasks {
		varNames[i] = taskVarName(t.ActionName)
	}

	var b strings.Builder
	b.WriteString(renderWorkflowInputStruct(collectWorkflowInputFields(tasks)))
	b.WriteString("\n\n")

	b.WriteString("#[allow(dead_code, unused)]\n")
	b.WriteString("pub fn main(args: Value) -> Result<Value, String> {\n")
	fmt.Fprintf(&b, "    let mut workflow = WorkflowGraph::new(%d);\n", len(tasks))
	b.WriteString("    let input: Input = serde_json::from_value(args).map_err(|e| e.to_string())?;\n\n")

	for i, t := range tasks {
		v := varNames[i]
		b.WriteString("    ")
		b.WriteString(renderTaskConstruction(t, v))
		b.WriteString("\n")
		fmt.Fprintf(&b, "    let %s_index = workflow.add_node(Box::new(%s));\n", v, v)
	}
	b.WriteString("\n")

	b.WriteString("    workflow.add_edges(&[\n")
	for _, e := range edges {
		fmt.Fprintf(&b, "        (%s_index, %s_index),\n", varNames[e.pred], varNames[e.succ])
	}
	b.WriteString("    ]);\n\n")

	b.WriteString("    let result = workflow\n        .init()?\n")
	for _, idx := range order {
		fmt.Fprintf(&b, "        .pipe(%s_index)?\n", varNames[idx])
	}
	b.WriteString("        .term(None)?;\n\n")
	b.WriteString("    let result = serde_json::to_value(result).unwrap();\n")
	b.WriteString("    Ok(result)\n")
	b.WriteString("}\n")
	return b.String(), nil
}
