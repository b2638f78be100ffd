// Package kubeconform wraps the kubeconform binary for schema validation of
// generated bundle manifests.
package kubeconform

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	kforgeio "github.com/devantler-tech/kforge/pkg/io"
)

const (
	dirPerm = 0o755
)

// Client provides kubeconform validation functionality.
type Client struct {
	schemaLocations []string
}

// NewClient creates a new kubeconform client validating against the default
// upstream schemas.
func NewClient() *Client {
	return &Client{}
}

// NewClientWithSchemaLocations creates a new kubeconform client with extra
// schema locations, e.g. a directory of downloaded CRD schemas.
func NewClientWithSchemaLocations(locations ...string) *Client {
	return &Client{
		schemaLocations: locations,
	}
}

// ValidationOptions configures validation behavior.
type ValidationOptions struct {
	// SkipKinds is a list of Kubernetes kinds to skip during validation
	// (e.g. "Secret").
	SkipKinds []string
	// Strict enables strict validation mode.
	Strict bool
	// IgnoreMissingSchemas ignores resources with missing schemas.
	IgnoreMissingSchemas bool
	// Verbose enables verbose output.
	Verbose bool
}

// ValidateFile validates a single Kubernetes manifest file.
func (c *Client) ValidateFile(ctx context.Context, filePath string, opts *ValidationOptions) error {
	if opts == nil {
		opts = &ValidationOptions{}
	}

	args := c.buildArgs(opts)
	args = append(args, filePath)

	cmd := exec.CommandContext(ctx, "kubeconform", args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("validate file %s: %w\n%s", filePath, err, string(output))
	}

	return nil
}

// ValidateManifests validates Kubernetes manifests from a reader, typically
// the output of a kustomize build.
func (c *Client) ValidateManifests(
	ctx context.Context,
	reader io.Reader,
	opts *ValidationOptions,
) error {
	if opts == nil {
		opts = &ValidationOptions{}
	}

	cmd := exec.CommandContext(ctx, "kubeconform", c.buildArgs(opts)...)
	cmd.Stdin = reader

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("validate manifests: %w\n%s", err, string(output))
	}

	return nil
}

// DownloadSchemas downloads a tar.gz of JSON schemas to the given location,
// for validating kinds the upstream catalog does not cover.
func (c *Client) DownloadSchemas(ctx context.Context, url, dest string) error {
	err := os.MkdirAll(dest, dirPerm)
	if err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create HTTP request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download schemas: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download schemas: unexpected status code %d", resp.StatusCode)
	}

	err = extractTarGz(resp.Body, dest)
	if err != nil {
		return fmt.Errorf("extract schemas: %w", err)
	}

	return nil
}

// buildArgs builds kubeconform command arguments from validation options.
func (c *Client) buildArgs(opts *ValidationOptions) []string {
	args := []string{}

	for _, kind := range opts.SkipKinds {
		args = append(args, "-skip", kind)
	}

	if opts.Strict {
		args = append(args, "-strict")
	}

	if opts.IgnoreMissingSchemas {
		args = append(args, "-ignore-missing-schemas")
	}

	if opts.Verbose {
		args = append(args, "-verbose")
	}

	args = append(args, "-schema-location", "default")
	for _, location := range c.schemaLocations {
		args = append(args, "-schema-location", location)
	}

	return args
}

// extractTarGz extracts a tar.gz stream to the specified destination.
func extractTarGz(reader io.Reader, dest string) error {
	gzr, err := gzip.NewReader(reader)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzr.Close()

	tarReader := tar.NewReader(gzr)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		// Sanitize the file path to prevent path traversal
		target := filepath.Join(dest, header.Name)
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("%w: %s", kforgeio.ErrPathOutsideBase, header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			err = os.MkdirAll(target, dirPerm)
			if err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			err = extractFile(tarReader, target, header.Mode)
			if err != nil {
				return fmt.Errorf("extract file %s: %w", target, err)
			}
		}
	}

	return nil
}

// extractFile extracts a single file from a tar archive.
func extractFile(tarReader *tar.Reader, target string, mode int64) (err error) {
	err = os.MkdirAll(filepath.Dir(target), dirPerm)
	if err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(mode)) //nolint:gosec // mode comes from the archive
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close file: %w", cerr)
		}
	}()

	_, err = io.Copy(file, tarReader) //nolint:gosec // archive sources are operator-provided schema bundles
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return
}
