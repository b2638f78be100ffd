// Package client contains clients for the external tools kforge drives:
// kubeconform for schema validation, kustomize for building the flattened
// bundle stream, kubectl for applying and diffing it, and client-go for
// reading cluster status.
package client
