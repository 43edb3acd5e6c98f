// Package enumvalidator flags string literals written into the closed
// vocabularies of the reef model (emotions, horsemen, statuses). Those values
// cross the wire and the database, so they must come from declared constants.
package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

var Analyzer = &analysis.Analyzer{
	Name: "enumvalidator",
	Doc:  "checks that enum values are set from defined constants, not string literals",
	Run:  run,
}

var enumTypes = map[string]bool{
	"Emotion":          true,
	"Horseman":         true,
	"ContextKind":      true,
	"ContextStatus":    true,
	"EnrichmentSource": true,
	"InvitationStatus": true,
	"ResolveStatus":    true,
}

func run(pass *analysis.Pass) (any, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.AssignStmt:
				checkAssign(pass, node)
			case *ast.CompositeLit:
				checkCompositeLit(pass, node)
			}
			return true
		})
	}
	return nil, nil
}

func checkAssign(pass *analysis.Pass, assign *ast.AssignStmt) {
	for i, lhs := range assign.Lhs {
		if i >= len(assign.Rhs) {
			continue
		}
		sel, ok := lhs.(*ast.SelectorExpr)
		if !ok {
			continue
		}
		if name, ok := enumName(pass.TypesInfo.TypeOf(sel)); ok && isStringLiteral(assign.Rhs[i]) {
			pass.Reportf(assign.Pos(),
				"enum field %s (%s) assigned string literal; use defined constant instead",
				sel.Sel.Name, name)
		}
	}
}

// checkCompositeLit covers struct literals such as model.SharedContext{Status: "revealed"}.
func checkCompositeLit(pass *analysis.Pass, lit *ast.CompositeLit) {
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok || !isStringLiteral(kv.Value) {
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			continue
		}
		if name, ok := enumName(pass.TypesInfo.TypeOf(kv.Value)); ok {
			pass.Reportf(kv.Pos(),
				"enum field %s (%s) set from string literal; use defined constant instead",
				key.Name, name)
		}
	}
}

// enumName unwraps pointers so *model.Emotion fields are checked too.
func enumName(t types.Type) (string, bool) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return "", false
	}
	name := named.Obj().Name()
	return name, enumTypes[name]
}

func isStringLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}
