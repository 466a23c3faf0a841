// Package domain holds the lease contract model: tenant data, the field
// schemas and their placeholder tokens, fill results, history records,
// error kinds and resolved settings.
//
// It imports only the standard library; every other package builds on it.
package domain
