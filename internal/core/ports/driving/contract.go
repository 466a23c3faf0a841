package driving

import (
	"context"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// ContractService fills the template for a tenant and delivers the result.
type ContractService interface {
	// Process validates the request, generates the contract and, unless
	// DryRun is set, delivers it. The result is non-nil whenever a history
	// record was created; the error classifies any failure (see domain.KindOf).
	Process(ctx context.Context, req domain.ContractRequest) (*domain.ContractResult, error)

	// Resend delivers the retained file of an earlier request again.
	Resend(ctx context.Context, id string) (*domain.ContractResult, error)

	// Schema returns the field schema requests are validated against.
	Schema() domain.FieldSchema
}

// TemplateInspector reports the placeholders present in a template.
type TemplateInspector interface {
	// ListPlaceholders finds every placeholder in the template at path.
	ListPlaceholders(ctx context.Context, path string) (*domain.PlaceholderReport, error)

	// Check looks up each expected token of schema in the template.
	Check(ctx context.Context, path string, schema domain.FieldSchema) ([]domain.TokenCheck, error)
}
