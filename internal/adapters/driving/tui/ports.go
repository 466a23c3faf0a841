// Package tui provides an interactive terminal form that collects a tenant's
// details and runs them through the contract pipeline.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/leasefill/internal/core/ports/driving"
)

// Ports aggregates the driving ports the form needs.
type Ports struct {
	// Contracts validates, generates and delivers the submitted fields.
	// Its Schema decides which fields are shown.
	Contracts driving.ContractService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Contracts == nil {
		return ErrMissingContractService
	}
	return nil
}
