package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/alex28786/the-reef/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
