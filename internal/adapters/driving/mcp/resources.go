package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

const (
	uriScheme = "leasefill://"

	// historyLimit bounds the history resource.
	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.inner.AddResource(&mcp.Resource{
		URI:         uriScheme + "schema",
		Name:        "schema",
		Description: "Fields the contract template expects",
		MIMEType:    "application/json",
	}, s.handleSchemaResource)

	if s.ports.History == nil {
		return
	}

	s.inner.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recently processed contracts, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.inner.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{id}",
		Name:        "contract",
		Description: "One processed contract",
		MIMEType:    "application/json",
	}, s.handleRecordResource)
}

type fieldInfo struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Token    string   `json:"token"`
	Variants []string `json:"variants"`
	Derived  bool     `json:"derived,omitempty"`
}

type recordInfo struct {
	ID         string   `json:"id"`
	Locatee    string   `json:"locatario"`
	Filename   string   `json:"filename,omitempty"`
	Status     string   `json:"status"`
	ErrorKind  string   `json:"kind,omitempty"`
	Message    string   `json:"message,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

func toRecordInfo(r domain.ContractRecord) recordInfo {
	return recordInfo{
		ID:         r.ID,
		Locatee:    r.Locatee,
		Filename:   r.Filename,
		Status:     r.Status.String(),
		ErrorKind:  string(r.ErrorKind),
		Message:    r.Message,
		Unresolved: r.Unresolved,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}

// handleSchemaResource returns the active field schema.
func (s *Server) handleSchemaResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	schema := s.ports.Contracts.Schema()
	fields := make([]fieldInfo, len(schema.Fields))
	for i, f := range schema.Fields {
		fields[i] = fieldInfo{
			Key:      f.Key,
			Label:    f.Label,
			Token:    f.CanonicalToken(),
			Variants: f.Variants(),
			Derived:  f.Derived,
		}
	}
	return jsonResource(req.Params.URI, map[string]any{
		"name":   schema.Name,
		"fields": fields,
	})
}

// handleHistoryResource returns recent history records.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.History.List(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	infos := make([]recordInfo, len(records))
	for i := range records {
		infos[i] = toRecordInfo(records[i])
	}
	return jsonResource(req.Params.URI, infos)
}

// handleRecordResource returns one history record.
func (s *Server) handleRecordResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractRecordID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	record, err := s.ports.History.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting contract: %w", err)
	}
	return jsonResource(req.Params.URI, toRecordInfo(*record))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRecordID extracts the ID from a URI like leasefill://history/{id}.
func extractRecordID(uri string) string {
	const prefix = uriScheme + "history/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
