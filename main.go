// Package main is the entry point for the kforge application.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/devantler-tech/kforge/internal/buildmeta"
	"github.com/devantler-tech/kforge/pkg/cli/cmd"
	"github.com/devantler-tech/kforge/pkg/ui/notify"
)

func main() {
	err := run(os.Args[1:], executeRoot, os.Stderr)
	if err != nil {
		os.Exit(1)
	}
}

// run invokes the executor with panic recovery, so a crash still produces a
// readable error message instead of a bare stack trace.
//
//nolint:nonamedreturns // Named return carries the recovered panic out.
func run(args []string, execute func([]string) error, errWriter io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack()),
				Writer:  errWriter,
			})

			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return execute(args)
}

// executeRoot builds the root command with the build metadata baked in and
// executes it against the given arguments.
func executeRoot(args []string) error {
	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)

	return cmd.Execute(rootCmd)
}
