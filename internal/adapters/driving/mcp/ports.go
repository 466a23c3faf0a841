package mcp

import (
	"errors"

	"github.com/custodia-labs/leasefill/internal/core/ports/driving"
)

// ErrMissingContractService is returned by NewServer without a contract service.
var ErrMissingContractService = errors.New("mcp: contract service is required")

// Ports aggregates the driving ports the MCP server calls into.
type Ports struct {
	// Contracts runs the fill-and-deliver pipeline.
	Contracts driving.ContractService

	// Inspector lists template placeholders. Optional.
	Inspector driving.TemplateInspector

	// History exposes processed contracts. Optional.
	History driving.HistoryService

	// TemplatePath is inspected when a tool call names no template.
	TemplatePath string
}

// Validate reports a missing required port.
func (p *Ports) Validate() error {
	if p.Contracts == nil {
		return ErrMissingContractService
	}
	return nil
}
