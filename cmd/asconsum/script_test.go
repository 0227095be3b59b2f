package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain registers the asconsum binary as an in-process command so
// testdata/script/*.txtar can exercise the real CLI surface (argument
// parsing, stdin/stdout plumbing, exit codes) without a subprocess build
// step, the same way the go command's own script tests run go as a
// registered command rather than forking it.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"asconsum": run,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
