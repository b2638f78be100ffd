// Package io provides utilities for input and output operations related to
// bundle management.
//
// This package contains domain-specific I/O utilities focused on bundle
// configuration loading, manifest generation, validation, and scaffolding.
//
// Subpackages:
//   - configmanager: Bundle configuration loading and flag binding
//   - generator: Manifest and configuration generation
//   - marshaller: Serialization and deserialization
//   - scaffolder: Project scaffolding and file generation
//   - validator: Bundle and manifest validation
package io
