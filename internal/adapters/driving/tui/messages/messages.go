// Package messages defines Bubbletea message types for the tenant form.
package messages

import (
	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// SubmitRequested is sent when the last field is confirmed.
type SubmitRequested struct {
	Request domain.ContractRequest
}

// ContractProcessed carries the pipeline outcome back to the form.
type ContractProcessed struct {
	Result *domain.ContractResult
	Err    error
}
