package services

import (
	"context"
	"fmt"
	"io"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
	"github.com/custodia-labs/leasefill/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes processed contract records.
type HistoryService struct {
	store    driven.HistoryStore
	exporter driven.HistoryExporter
}

// NewHistoryService creates a history service. exporter may be nil.
func NewHistoryService(store driven.HistoryStore, exporter driven.HistoryExporter) *HistoryService {
	return &HistoryService{store: store, exporter: exporter}
}

// List returns records newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.ContractRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("history store: %w", domain.ErrNotConfigured)
	}
	return s.store.List(ctx, limit)
}

// Get retrieves a record by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.ContractRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("history store: %w", domain.ErrNotConfigured)
	}
	return s.store.Get(ctx, id)
}

// Export writes every record to w.
func (s *HistoryService) Export(ctx context.Context, w io.Writer) error {
	if s.exporter == nil {
		return fmt.Errorf("history exporter: %w", domain.ErrNotConfigured)
	}
	records, err := s.List(ctx, 0)
	if err != nil {
		return err
	}
	return s.exporter.Export(ctx, records, w)
}
