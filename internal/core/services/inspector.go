package services

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
	"github.com/custodia-labs/leasefill/internal/core/ports/driving"
	"github.com/custodia-labs/leasefill/internal/logger"
)

// Ensure TemplateInspector implements the interface.
var _ driving.TemplateInspector = (*TemplateInspector)(nil)

var placeholderPattern = regexp.MustCompile(`\{\{[^}]+\}\}`)

// TemplateInspector lists the placeholders a template actually contains so
// token spelling can be checked against a field schema.
type TemplateInspector struct {
	loader driven.TemplateLoader
	log    *logger.Logger
}

// NewTemplateInspector creates an inspector reading templates through loader.
func NewTemplateInspector(loader driven.TemplateLoader, log *logger.Logger) *TemplateInspector {
	return &TemplateInspector{loader: loader, log: log}
}

// ListPlaceholders finds every placeholder in body paragraphs and table cells.
func (i *TemplateInspector) ListPlaceholders(ctx context.Context, path string) (*domain.PlaceholderReport, error) {
	doc, err := i.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	report := &domain.PlaceholderReport{Path: path}
	distinct := make(map[string]bool)

	for _, p := range doc.Paragraphs() {
		text := strings.TrimSpace(p.Text())
		if text == "" || !strings.Contains(text, domain.PlaceholderMarker) {
			continue
		}
		tokens := placeholderPattern.FindAllString(text, -1)
		for _, tok := range tokens {
			distinct[tok] = true
		}
		report.Occurrences = append(report.Occurrences, domain.PlaceholderOccurrence{
			Location: p.Location(),
			Text:     text,
			Tokens:   tokens,
		})
	}

	report.Tokens = make([]string, 0, len(distinct))
	for tok := range distinct {
		report.Tokens = append(report.Tokens, tok)
	}
	sort.Strings(report.Tokens)

	i.log.Debug("%s: %d placeholders in %d paragraphs", path, len(report.Tokens), len(report.Occurrences))
	return report, nil
}

// Check looks up the canonical token of every schema field. A token absent
// verbatim is reported as a variant when some found token contains its name.
func (i *TemplateInspector) Check(ctx context.Context, path string, schema domain.FieldSchema) ([]domain.TokenCheck, error) {
	report, err := i.ListPlaceholders(ctx, path)
	if err != nil {
		return nil, err
	}
	return CheckTokens(report.Tokens, schema.ExpectedTokens()), nil
}

// CheckTokens compares expected tokens with the tokens found in a template.
func CheckTokens(found, expected []string) []domain.TokenCheck {
	present := make(map[string]bool, len(found))
	for _, tok := range found {
		present[tok] = true
	}

	checks := make([]domain.TokenCheck, 0, len(expected))
	for _, want := range expected {
		check := domain.TokenCheck{Expected: want, Status: domain.TokenMissing}
		if present[want] {
			check.Status = domain.TokenFound
		} else if similar := similarToken(want, found); similar != "" {
			check.Status = domain.TokenVariant
			check.Variant = similar
		}
		checks = append(checks, check)
	}
	return checks
}

func similarToken(want string, found []string) string {
	name := domain.TokenName(want)
	for _, tok := range found {
		if strings.Contains(domain.TokenName(tok), name) {
			return tok
		}
	}
	return ""
}
