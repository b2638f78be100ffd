// Package yamlmarshaller converts typed models to and from YAML documents.
package yamlmarshaller

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// Marshaller converts models of type T to and from YAML.
type Marshaller[T any] struct{}

// NewMarshaller creates a new YAML Marshaller instance.
func NewMarshaller[T any]() *Marshaller[T] {
	return &Marshaller[T]{}
}

// Marshal converts a model to its YAML representation.
func (m *Marshaller[T]) Marshal(model T) (string, error) {
	data, err := yaml.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("marshal model to YAML: %w", err)
	}

	return string(data), nil
}

// Unmarshal parses YAML bytes into the provided model.
func (m *Marshaller[T]) Unmarshal(data []byte, model *T) error {
	err := yaml.Unmarshal(data, model)
	if err != nil {
		return fmt.Errorf("unmarshal YAML to model: %w", err)
	}

	return nil
}

// UnmarshalString parses a YAML string into the provided model.
func (m *Marshaller[T]) UnmarshalString(content string, model *T) error {
	return m.Unmarshal([]byte(content), model)
}
