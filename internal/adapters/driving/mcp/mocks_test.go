package mcp

import (
	"context"
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// mockContracts is a mock implementation of driving.ContractService.
type mockContracts struct {
	result   *domain.ContractResult
	err      error
	requests []domain.ContractRequest
	resent   []string
}

func (m *mockContracts) Process(_ context.Context, req domain.ContractRequest) (*domain.ContractResult, error) {
	m.requests = append(m.requests, req)
	return m.result, m.err
}

func (m *mockContracts) Resend(_ context.Context, id string) (*domain.ContractResult, error) {
	m.resent = append(m.resent, id)
	return m.result, m.err
}

func (m *mockContracts) Schema() domain.FieldSchema { return domain.SchemaBasic() }

// mockInspector is a mock implementation of driving.TemplateInspector.
type mockInspector struct {
	report *domain.PlaceholderReport
	checks []domain.TokenCheck
	err    error
	paths  []string
}

func (m *mockInspector) ListPlaceholders(_ context.Context, path string) (*domain.PlaceholderReport, error) {
	m.paths = append(m.paths, path)
	return m.report, m.err
}

func (m *mockInspector) Check(_ context.Context, _ string, _ domain.FieldSchema) ([]domain.TokenCheck, error) {
	return m.checks, m.err
}

// mockHistory is a mock implementation of driving.HistoryService.
type mockHistory struct {
	records []domain.ContractRecord
	err     error
}

func (m *mockHistory) List(_ context.Context, limit int) ([]domain.ContractRecord, error) {
	if limit > 0 && len(m.records) > limit {
		return m.records[:limit], m.err
	}
	return m.records, m.err
}

func (m *mockHistory) Get(_ context.Context, id string) (*domain.ContractRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistory) Export(_ context.Context, _ io.Writer) error { return m.err }

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
