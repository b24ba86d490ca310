// Package purity содержит анализатор, запрещающий обращения к часам, случайным числам
// и окружению процесса в пакетах с чистыми функциями.
package purity

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer проверяет, что пакеты из списка -packages не вызывают недетерминированные функции
var Analyzer = &analysis.Analyzer{
	Name: "purity",
	Doc:  "запрещает time.Now, math/rand, os.Getenv и os.Exit в пакетах с чистыми функциями",
	Run:  run,
}

var packages = "internal/view"

// forbidden перечисляет запрещённые функции по пакетам; пустой список запрещает весь пакет
var forbidden = map[string][]string{
	"time":         {"Now", "Since", "Until"},
	"os":           {"Getenv", "LookupEnv", "Exit"},
	"math/rand":    nil,
	"math/rand/v2": nil,
}

func init() {
	Analyzer.Flags.StringVar(&packages, "packages", packages, "список путей пакетов через запятую")
}

func checked(path string) bool {
	for _, p := range strings.Split(packages, ",") {
		p = strings.TrimSpace(p)
		if p != "" && (path == p || strings.HasSuffix(path, "/"+p)) {
			return true
		}
	}
	return false
}

func run(pass *analysis.Pass) (interface{}, error) {
	if !checked(pass.Pkg.Path()) {
		return nil, nil
	}

	for _, file := range pass.Files {
		if strings.HasSuffix(pass.Fset.Position(file.Pos()).Filename, "_test.go") {
			continue
		}
		ast.Inspect(file, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			ident, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}
			pkg, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
			if !ok {
				return true
			}
			path := pkg.Imported().Path()
			names, ok := forbidden[path]
			if !ok {
				return true
			}
			if names == nil {
				pass.Reportf(sel.Pos(), "использование %s в чистом пакете запрещено", path)
				return true
			}
			for _, name := range names {
				if sel.Sel.Name == name {
					pass.Reportf(sel.Pos(), "вызов %s.%s в чистом пакете запрещен", path, name)
				}
			}
			return true
		})
	}

	return nil, nil
}
