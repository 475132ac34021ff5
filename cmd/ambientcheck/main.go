// Command ambientcheck is a linter that checks ambient scope isolation
// across goroutine spawns.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/vk/ambient/checker"
)

func main() {
	singlechecker.Main(checker.Analyzer)
}
