// Package kustomize wraps the kustomize binary for rendering a kustomization
// directory into a flattened manifest stream.
package kustomize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Client renders kustomization directories with the kustomize binary.
type Client struct {
	loadRestrictions string
}

// NewClient creates a kustomize client. Load restrictions are lifted so the
// bundle can reference manifests outside the kustomization root.
func NewClient() *Client {
	return &Client{loadRestrictions: "LoadRestrictionsNone"}
}

// Build renders the kustomization at dir and returns the flattened manifest
// stream, suitable for piping into schema validation.
func (c *Client) Build(ctx context.Context, dir string) (io.Reader, error) {
	cmd := exec.CommandContext(ctx, "kustomize",
		"build", dir, "--load-restrictor="+c.loadRestrictions,
	) //nolint:gosec // kustomize is a trusted tool

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("kustomize build %s: %w\n%s", dir, err, string(exitErr.Stderr))
		}

		return nil, fmt.Errorf("kustomize build %s: %w", dir, err)
	}

	return bytes.NewReader(output), nil
}
