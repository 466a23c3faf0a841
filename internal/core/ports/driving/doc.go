// Package driving declares what the CLI, HTTP, MCP and form front ends may
// ask of the core: process or resend a contract, inspect a template, read
// settings and history. internal/core/services implements each interface.
package driving
