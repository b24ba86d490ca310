// Command staticlint проверяет код дашборда набором анализаторов:
// проходами golang.org/x/tools, классом SA staticcheck, errcheck
// и анализатором purity, который следит за чистотой пакета internal/view.
//
//	go run ./cmd/staticlint ./...
//	go run ./cmd/staticlint -purity.packages=internal/view,internal/models ./...
package main

import (
	"github.com/kisielk/errcheck/errcheck"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/tempizhere/shortdash/cmd/staticlint/purity"
)

// extraChecks перечисляет проверки стиля и упрощений, включённые помимо класса SA
var extraChecks = map[string]bool{
	"ST1000": true, // комментарий пакета
	"ST1005": true, // текст ошибок с маленькой буквы
	"S1000":  true,
}

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		copylock.Analyzer,    // мьютексы в хранилищах
		httpresponse.Analyzer, // тело ответа клиента API
		loopclosure.Analyzer,
		lostcancel.Analyzer, // таймауты запросов к API и БД
		nilness.Analyzer,
		printf.Analyzer, // форматы fmt.Errorf
		shadow.Analyzer,
		unusedresult.Analyzer,
		errcheck.Analyzer,
		purity.Analyzer,
	}
	for _, a := range staticcheck.Analyzers {
		list = append(list, a.Analyzer)
	}
	for _, a := range stylecheck.Analyzers {
		if extraChecks[a.Analyzer.Name] {
			list = append(list, a.Analyzer)
		}
	}
	for _, a := range simple.Analyzers {
		if extraChecks[a.Analyzer.Name] {
			list = append(list, a.Analyzer)
		}
	}
	return list
}

func main() {
	multichecker.Main(analyzers()...)
}
