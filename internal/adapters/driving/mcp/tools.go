package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// GenerateInput is the input schema for the generate_contract tool.
type GenerateInput struct {
	Fields map[string]string `json:"fields" jsonschema:"tenant data keyed by field name, e.g. nome_do_locatario"`
	DryRun bool              `json:"dry_run,omitempty" jsonschema:"generate the file without delivering it"`
}

// ContractOutput is the output schema for contract tools.
type ContractOutput struct {
	Success       bool     `json:"success"`
	ID            string   `json:"id,omitempty"`
	Filename      string   `json:"filename,omitempty"`
	Locatee       string   `json:"locatario,omitempty"`
	Delivered     bool     `json:"delivered"`
	Message       string   `json:"message,omitempty"`
	Unresolved    []string `json:"unresolved,omitempty"`
	Kind          string   `json:"kind,omitempty"`
	Error         string   `json:"error,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// ResendInput is the input schema for the resend_contract tool.
type ResendInput struct {
	ID string `json:"id" jsonschema:"history record ID of a generated or undelivered contract"`
}

// PlaceholdersInput is the input schema for the list_placeholders tool.
type PlaceholdersInput struct {
	Template string `json:"template,omitempty" jsonschema:"DOCX template path (defaults to the configured template)"`
}

// PlaceholdersOutput is the output schema for the list_placeholders tool.
type PlaceholdersOutput struct {
	Template    string             `json:"template"`
	Tokens      []string           `json:"tokens"`
	Occurrences []OccurrenceOutput `json:"occurrences"`
	Checks      []TokenCheckOutput `json:"checks"`
}

// OccurrenceOutput is one paragraph holding placeholders.
type OccurrenceOutput struct {
	Location string   `json:"location"`
	Text     string   `json:"text"`
	Tokens   []string `json:"tokens"`
}

// TokenCheckOutput reports one expected token.
type TokenCheckOutput struct {
	Expected string `json:"expected"`
	Status   string `json:"status"`
	Variant  string `json:"variant,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "generate_contract",
		Description: "Fill the lease contract template for a tenant and deliver it",
	}, s.handleGenerate)

	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "resend_contract",
		Description: "Deliver a previously generated contract again",
	}, s.handleResend)

	if s.ports.Inspector != nil {
		mcp.AddTool(s.inner, &mcp.Tool{
			Name:        "list_placeholders",
			Description: "List the {{ placeholders }} found in the contract template",
		}, s.handleListPlaceholders)
	}
}

// handleGenerate handles the generate_contract tool invocation.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, ContractOutput, error) {
	result, err := s.ports.Contracts.Process(ctx, domain.ContractRequest{
		Fields: input.Fields,
		DryRun: input.DryRun,
	})
	return contractResult(result, err)
}

// handleResend handles the resend_contract tool invocation.
func (s *Server) handleResend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResendInput,
) (*mcp.CallToolResult, ContractOutput, error) {
	if input.ID == "" {
		return nil, ContractOutput{}, errors.New("id is required")
	}
	result, err := s.ports.Contracts.Resend(ctx, input.ID)
	return contractResult(result, err)
}

// contractResult turns a pipeline failure into a tool error carrying the
// failure kind, so callers can tell a missing field from a delivery outage.
func contractResult(result *domain.ContractResult, err error) (*mcp.CallToolResult, ContractOutput, error) {
	var out ContractOutput
	if result != nil {
		out = ContractOutput{
			Success:    result.Success,
			ID:         result.ID,
			Filename:   result.Filename,
			Locatee:    result.Locatee,
			Delivered:  result.Delivered,
			Message:    result.Message,
			Unresolved: result.Unresolved,
		}
	}
	if err == nil {
		return nil, out, nil
	}

	out.Success = false
	out.Kind = string(domain.KindOf(err))
	out.Error = err.Error()
	out.MissingFields = domain.MissingFields(err)

	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{
			Text: fmt.Sprintf("%s error: %s", out.Kind, out.Error),
		}},
	}, out, nil
}

// handleListPlaceholders handles the list_placeholders tool invocation.
func (s *Server) handleListPlaceholders(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlaceholdersInput,
) (*mcp.CallToolResult, PlaceholdersOutput, error) {
	path := input.Template
	if path == "" {
		path = s.ports.TemplatePath
	}
	if path == "" {
		return nil, PlaceholdersOutput{}, errors.New("no template configured")
	}

	report, err := s.ports.Inspector.ListPlaceholders(ctx, path)
	if err != nil {
		return nil, PlaceholdersOutput{}, err
	}
	checks, err := s.ports.Inspector.Check(ctx, path, s.ports.Contracts.Schema())
	if err != nil {
		return nil, PlaceholdersOutput{}, err
	}

	out := PlaceholdersOutput{
		Template:    report.Path,
		Tokens:      report.Tokens,
		Occurrences: make([]OccurrenceOutput, len(report.Occurrences)),
		Checks:      make([]TokenCheckOutput, len(checks)),
	}
	if out.Tokens == nil {
		out.Tokens = []string{}
	}
	for i, occ := range report.Occurrences {
		out.Occurrences[i] = OccurrenceOutput{
			Location: occ.Location.String(),
			Text:     occ.Text,
			Tokens:   occ.Tokens,
		}
	}
	for i, c := range checks {
		out.Checks[i] = TokenCheckOutput{
			Expected: c.Expected,
			Status:   string(c.Status),
			Variant:  c.Variant,
		}
	}
	return nil, out, nil
}
