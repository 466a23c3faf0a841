package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// HistoryStore persists contract records.
type HistoryStore interface {
	// Save stores or updates a record.
	Save(ctx context.Context, record *domain.ContractRecord) error

	// Get retrieves a record by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.ContractRecord, error)

	// List returns records newest first. A limit of zero or less returns all.
	List(ctx context.Context, limit int) ([]domain.ContractRecord, error)
}

// HistoryExporter writes contract records as a spreadsheet.
type HistoryExporter interface {
	Export(ctx context.Context, records []domain.ContractRecord, w io.Writer) error
}
