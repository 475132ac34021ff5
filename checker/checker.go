// Package checker provides a go/analysis based analyzer for detecting an
// ambient scope shared across concurrent call trees.
//
// A *ambient.Scope is the binding stack of exactly one logical call tree.
// Handing it to a concurrently running goroutine lets an override made in
// one tree become visible in another, which the runtime cannot detect. The
// analyzer reports go statements that capture or receive a scope owned by
// the spawning call tree, and stays quiet for scopes produced by Scope.Fork
// before the spawn (ambientgroup does that fork internally).
package checker

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// ambientPkgPath is the import path of the package defining Scope.
const ambientPkgPath = "github.com/vk/ambient"

// Analyzer is the main analyzer for ambientcheck.
var Analyzer = &analysis.Analyzer{
	Name:     "ambientcheck",
	Doc:      "checks that ambient scopes are forked, not shared, when goroutines are spawned",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	// Variables initialized from a Fork call are independent stacks and are
	// safe to hand to a goroutine.
	forked := forkInitializedVars(pass)

	insp.Preorder([]ast.Node{(*ast.GoStmt)(nil)}, func(n ast.Node) {
		goStmt := n.(*ast.GoStmt)
		if lit, ok := goStmt.Call.Fun.(*ast.FuncLit); ok {
			checkCapturedScopes(pass, lit, forked)
			return
		}
		checkScopeArguments(pass, goStmt.Call, forked)
	})

	return nil, nil
}

// checkCapturedScopes reports scope variables referenced inside a goroutine's
// function literal but declared outside it.
func checkCapturedScopes(pass *analysis.Pass, lit *ast.FuncLit, forked map[*types.Var]bool) {
	ast.Inspect(lit.Body, func(n ast.Node) bool {
		ident, ok := n.(*ast.Ident)
		if !ok {
			return true
		}
		obj, ok := pass.TypesInfo.Uses[ident].(*types.Var)
		if !ok || !isScopePointer(obj.Type()) || forked[obj] {
			return true
		}
		if obj.Pos() >= lit.Pos() && obj.Pos() <= lit.End() {
			// Declared inside the literal; the goroutine owns it.
			return true
		}
		pass.Reportf(ident.Pos(), "goroutine captures ambient scope %q owned by the spawning call tree; hand it a Scope.Fork or spawn via ambientgroup", ident.Name)
		return true
	})
}

// checkScopeArguments reports scope values passed as arguments to a spawned
// call, unless the argument is itself a Fork call or a fork-initialized
// variable.
func checkScopeArguments(pass *analysis.Pass, call *ast.CallExpr, forked map[*types.Var]bool) {
	for _, arg := range call.Args {
		tv, ok := pass.TypesInfo.Types[arg]
		if !ok || !isScopePointer(tv.Type) {
			continue
		}
		if isForkCall(arg) {
			continue
		}
		if ident, ok := arg.(*ast.Ident); ok {
			if v, ok := pass.TypesInfo.Uses[ident].(*types.Var); ok && forked[v] {
				continue
			}
		}
		pass.Reportf(arg.Pos(), "goroutine receives the spawning call tree's ambient scope; pass a Scope.Fork instead")
	}
}

// forkInitializedVars collects every variable assigned from a Fork call
// anywhere in the pass. Coarse by design: a linter that misses a pre-forked
// variable would teach users to silence it rather than fix spawns.
func forkInitializedVars(pass *analysis.Pass) map[*types.Var]bool {
	vars := make(map[*types.Var]bool)
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			assign, ok := n.(*ast.AssignStmt)
			if !ok {
				return true
			}
			for i, rhs := range assign.Rhs {
				if i >= len(assign.Lhs) || !isForkCall(rhs) {
					continue
				}
				ident, ok := assign.Lhs[i].(*ast.Ident)
				if !ok {
					continue
				}
				if v, ok := pass.TypesInfo.Defs[ident].(*types.Var); ok {
					vars[v] = true
				} else if v, ok := pass.TypesInfo.Uses[ident].(*types.Var); ok {
					vars[v] = true
				}
			}
			return true
		})
	}
	return vars
}

// isForkCall reports whether expr is a call to a method named Fork.
func isForkCall(expr ast.Expr) bool {
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	return ok && sel.Sel.Name == "Fork"
}

// isScopePointer reports whether t is *ambient.Scope.
func isScopePointer(t types.Type) bool {
	ptr, ok := t.(*types.Pointer)
	if !ok {
		return false
	}
	named, ok := ptr.Elem().(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Name() == "Scope" && obj.Pkg() != nil && obj.Pkg().Path() == ambientPkgPath
}
