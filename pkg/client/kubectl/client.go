// Package kubectl wraps the kubectl binary for applying and diffing bundle
// manifests against a cluster.
package kubectl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// diffExitChanges is the kubectl diff exit code signalling differences found.
const diffExitChanges = 1

// Client provides kubectl apply and diff functionality against a configured
// cluster connection.
type Client struct {
	kubeconfig string
	context    string
}

// NewClient creates a new kubectl client. Empty kubeconfig or context fall
// back to kubectl's own defaults.
func NewClient(kubeconfig, kubeContext string) *Client {
	return &Client{
		kubeconfig: kubeconfig,
		context:    kubeContext,
	}
}

// ApplyFile runs kubectl apply on a single manifest file and returns the
// command output.
func (c *Client) ApplyFile(ctx context.Context, path string) (string, error) {
	return c.run(ctx, "apply", "-f", path)
}

// ApplyKustomization runs kubectl apply -k on a kustomization directory and
// returns the command output.
func (c *Client) ApplyKustomization(ctx context.Context, dir string) (string, error) {
	return c.run(ctx, "apply", "-k", dir)
}

// DiffKustomization runs kubectl diff -k on a kustomization directory. It
// returns the diff output and whether the live cluster differs from the
// manifests. A clean diff after an apply means the apply was idempotent.
func (c *Client) DiffKustomization(ctx context.Context, dir string) (string, bool, error) {
	output, err := c.run(ctx, "diff", "-k", dir)
	if err == nil {
		return output, false, nil
	}

	// kubectl diff exits 1 when the cluster differs from the manifests.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == diffExitChanges {
		return output, true, nil
	}

	return output, false, err
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "kubectl", c.buildArgs(args...)...) //nolint:gosec // kubectl is a trusted tool

	var stdout bytes.Buffer

	var stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Preserve the exec error so callers can inspect exit codes.
			return stdout.String(), fmt.Errorf("kubectl %s: %w\n%s", args[0], err, stderr.String())
		}

		return stdout.String(), fmt.Errorf("kubectl %s: %w", args[0], err)
	}

	return stdout.String(), nil
}

func (c *Client) buildArgs(args ...string) []string {
	full := []string{}

	if c.kubeconfig != "" {
		full = append(full, "--kubeconfig", c.kubeconfig)
	}

	if c.context != "" {
		full = append(full, "--context", c.context)
	}

	return append(full, args...)
}
