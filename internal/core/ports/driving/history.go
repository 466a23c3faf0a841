package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// HistoryService exposes processed contract records.
type HistoryService interface {
	// List returns records newest first. A limit of zero or less returns all.
	List(ctx context.Context, limit int) ([]domain.ContractRecord, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.ContractRecord, error)

	// Export writes every record as an XLSX workbook to w.
	Export(ctx context.Context, w io.Writer) error
}
