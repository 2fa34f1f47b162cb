package report

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/roles"
)

// typeColors styles role nodes per governance category.
var typeColors = map[roles.Type]string{
	roles.BuiltIn:                    "lightblue",
	roles.SCIM:                       "plum",
	roles.RoleManagement:             "khaki",
	roles.Functional:                 "palegreen",
	roles.Access:                     "lightsalmon",
	roles.NotUnderAccountAdmin:       "lightcoral",
	roles.FunctionalNotUnderSysadmin: "lightcoral",
	roles.AccessNotUnderSysadmin:     "lightcoral",
}

// RoleGraphDOT renders the inheritance graph as Graphviz DOT text. Layout
// and rasterization are the dot binary's business, see RenderDOT.
func RoleGraphDOT(m roles.Map) string {
	b := strings.Builder{}
	b.WriteString("digraph role_hierarchy {\n")
	b.WriteString("\trankdir=TB;\n")
	b.WriteString("\tnode [shape=box, style=filled, fillcolor=white];\n")
	for _, name := range m.SortedNames() {
		role := m[name]
		color, ok := typeColors[role.Type]
		if !ok {
			color = "white"
		}
		fmt.Fprintf(&b, "\t%s [fillcolor=%s, label=%s];\n",
			quoteDOT(role.Name), color,
			quoteDOT(role.Name+"\n"+string(role.Type)))
	}
	for _, name := range m.SortedNames() {
		role := m[name]
		for _, child := range role.Children {
			fmt.Fprintf(&b, "\t%s -> %s;\n", quoteDOT(role.Name), quoteDOT(child))
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func quoteDOT(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

// RenderDOT rasterizes DOT text with the external dot binary.
func RenderDOT(ctx context.Context, binary, dot, format, outPath string) error {
	if binary == "" {
		binary = "dot"
	}
	cmd := exec.CommandContext(ctx, binary, "-T"+format, "-o", outPath)
	cmd.Stdin = strings.NewReader(dot)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("dot: %w: %s", err, out)
	}
	return nil
}
