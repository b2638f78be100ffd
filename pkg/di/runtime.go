// Package di wires kforge's dependencies through a samber/do container. The
// root command owns a Runtime; each command invocation gets a fresh injector
// populated by the registered modules.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency injector handed to modules and handlers.
type Injector = do.Injector

// ModuleFunc registers dependencies on the injector.
type ModuleFunc func(Injector) error

// Runtime owns the base modules shared by all command invocations.
type Runtime struct {
	modules []ModuleFunc
}

// New constructs a Runtime with the given base modules. Nil modules are
// skipped.
func New(modules ...ModuleFunc) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke runs the handler against a fresh injector populated by the base
// modules followed by any extra modules, in registration order. The injector
// is shut down when the handler returns.
func (r *Runtime) Invoke(handler func(Injector) error, extraModules ...ModuleFunc) error {
	injector := do.New()

	defer func() {
		_ = injector.Shutdown()
	}()

	for _, module := range r.modules {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	for _, module := range extraModules {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a dependency-aware handler into a cobra RunE
// function backed by the runtime.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}
