// Package ambienthcl exposes ambient parameters to HCL expression
// evaluation. The named bindings visible in a scope become variables under
// the "param" object, so an in-memory HCL expression such as param.region
// can read contextual parameters alongside whatever else the host puts in
// its evaluation context. The bridge is read-only and purely in-process: it
// never parses files and never writes back into the scope.
package ambienthcl

import (
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/ambient"
)

// EvalContext builds an HCL evaluation context from the named bindings
// visible in scope at the time of the call. Values convert to cty through
// their implied type. Unnamed bindings have no variable to live under, and
// values with no cty representation cannot cross the bridge; both are
// skipped with a debug log rather than failing the whole context.
func EvalContext(scope *ambient.Scope) *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, b := range scope.Visible() {
		if b.Name == "" {
			slog.Debug("Skipping unnamed ambient binding for HCL context.", "type", b.Type.String())
			continue
		}
		impliedType, err := gocty.ImpliedType(b.Value)
		if err != nil {
			slog.Debug("Skipping ambient binding with no cty representation.", "param", b.Name, "error", err)
			continue
		}
		val, err := gocty.ToCtyValue(b.Value, impliedType)
		if err != nil {
			slog.Debug("Skipping ambient binding that failed cty conversion.", "param", b.Name, "error", err)
			continue
		}
		vars[b.Name] = val
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"param": cty.ObjectVal(vars)},
	}
}
