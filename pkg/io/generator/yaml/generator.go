// Package yamlgenerator generates YAML documents from typed models and
// optionally writes them to disk.
package yamlgenerator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	yamlmarshaller "github.com/devantler-tech/kforge/pkg/io/marshaller/yaml"
	"github.com/devantler-tech/kforge/pkg/ui/notify"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Options defines options for the YAML generator.
type Options struct {
	// Output is the file path to write to. Empty means generate in-memory only.
	Output string
	// Force overwrites an existing file instead of skipping it.
	Force bool
	// Writer receives generation notifications. Defaults to os.Stdout when nil.
	Writer io.Writer
}

// Generator marshals models to YAML and writes them to disk honoring the
// force/skip semantics shared by all kforge generators.
type Generator[T any] struct {
	marshaller *yamlmarshaller.Marshaller[T]
}

// NewGenerator creates a new YAML Generator instance.
func NewGenerator[T any]() *Generator[T] {
	return &Generator[T]{
		marshaller: yamlmarshaller.NewMarshaller[T](),
	}
}

// Generate marshals the model to YAML and, if an output path is set, writes
// the result to disk. The generated YAML is returned in all cases so callers
// can print it instead of persisting it.
func (g *Generator[T]) Generate(model T, opts Options) (string, error) {
	modelYAML, err := g.marshaller.Marshal(model)
	if err != nil {
		return "", err
	}

	if opts.Output == "" {
		return modelYAML, nil
	}

	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	_, statErr := os.Stat(opts.Output)
	exists := statErr == nil

	if exists && !opts.Force {
		notify.Activityf(writer, "skipping '%s' as it already exists, use --force to overwrite", opts.Output)

		return modelYAML, nil
	}

	if exists {
		notify.Generatef(writer, "overwriting '%s'", opts.Output)
	} else {
		notify.Generatef(writer, "generating '%s'", opts.Output)
	}

	err = os.MkdirAll(filepath.Dir(opts.Output), dirPerm)
	if err != nil {
		return "", fmt.Errorf("create output directory for %s: %w", opts.Output, err)
	}

	err = os.WriteFile(opts.Output, []byte(modelYAML), filePerm)
	if err != nil {
		return "", fmt.Errorf("write file %s: %w", opts.Output, err)
	}

	return modelYAML, nil
}
