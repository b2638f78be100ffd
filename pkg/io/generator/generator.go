// Package generator defines the generic interface implemented by manifest
// and configuration generators.
package generator

// Generator is implemented by specific output generators (YAML files,
// kustomizations). The Options type parameter allows each implementation to
// define its own options structure.
type Generator[T any, Options any] interface {
	Generate(model T, opts Options) (string, error)
}
