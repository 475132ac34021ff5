package checker_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/vk/ambient/checker"
)

func TestScopeShare(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, checker.Analyzer, "scopeshare")
}
