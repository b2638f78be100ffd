package yamlmarshaller_test

import (
	"testing"

	yamlmarshaller "github.com/devantler-tech/kforge/pkg/io/marshaller/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample model used for tests.
type sample struct {
	Name   string   `json:"name"           yaml:"name"`
	Count  int      `json:"count"          yaml:"count"`
	Active bool     `json:"active"         yaml:"active"`
	Tags   []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// bad is a type that cannot be marshaled due to the func field.
type bad struct {
	F func()
}

func TestMarshalSuccess(t *testing.T) {
	t.Parallel()

	mar := yamlmarshaller.NewMarshaller[sample]()
	want := sample{
		Name:   "jenkins",
		Count:  2,
		Active: true,
		Tags:   []string{"http", "jnlp"},
	}

	out, err := mar.Marshal(want)

	require.NoError(t, err)
	assert.Contains(t, out, "name: jenkins")
	assert.Contains(t, out, "count: 2")
	assert.Contains(t, out, "- http")

	// Round-trip to ensure content encodes the same data.
	var got sample

	require.NoError(t, mar.UnmarshalString(out, &got))
	assert.Equal(t, want, got)
}

func TestUnmarshalSuccess(t *testing.T) {
	t.Parallel()

	mar := yamlmarshaller.NewMarshaller[sample]()
	data := []byte("" +
		"name: jenkins\n" +
		"count: 2\n" +
		"active: true\n" +
		"tags:\n" +
		"- http\n" +
		"- jnlp\n",
	)
	want := sample{
		Name:   "jenkins",
		Count:  2,
		Active: true,
		Tags:   []string{"http", "jnlp"},
	}

	var got sample

	require.NoError(t, mar.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestMarshalErrorUnsupportedType(t *testing.T) {
	t.Parallel()

	mar := yamlmarshaller.NewMarshaller[bad]()

	_, err := mar.Marshal(bad{F: func() {}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal model to YAML")
}

func TestUnmarshalErrorInvalidYAML(t *testing.T) {
	t.Parallel()

	mar := yamlmarshaller.NewMarshaller[sample]()

	var got sample

	err := mar.Unmarshal([]byte("name: [unterminated"), &got)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal YAML to model")
}
