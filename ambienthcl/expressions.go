package ambienthcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/ambient"
)

// EvalExpression parses src as a single HCL expression and evaluates it
// against the parameters visible in scope. The source name in diagnostics is
// "<ambient>" since the expression never comes from a file.
func EvalExpression(scope *ambient.Scope, src string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<ambient>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to parse expression %q: %s", src, diags.Error())
	}
	val, diags := expr.Value(EvalContext(scope))
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to evaluate expression %q: %s", src, diags.Error())
	}
	return val, nil
}
