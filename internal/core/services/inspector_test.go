package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/logger"
)

func inspectorDocument() *fakeDocument {
	return &fakeDocument{
		body: []*fakeParagraph{
			para("  {{ nome do locatário }} e {{ qtd_noites }}  "),
			para("nada aqui"),
			para("{{ nome do ", "locatário }}"),
		},
		tables: [][][][]*fakeParagraph{
			{{{para("Valor: {{valor_locacao}} / {{ valor_locacao/2 }}")}}},
		},
	}
}

func TestTemplateInspector_ListPlaceholders(t *testing.T) {
	i := NewTemplateInspector(&fakeLoader{build: inspectorDocument}, logger.Nop())

	report, err := i.ListPlaceholders(context.Background(), "t.docx")
	require.NoError(t, err)

	assert.Equal(t, "t.docx", report.Path)
	assert.Equal(t, []string{
		"{{ nome do locatário }}", "{{ qtd_noites }}", "{{ valor_locacao/2 }}", "{{valor_locacao}}",
	}, report.Tokens)

	require.Len(t, report.Occurrences, 3)
	assert.Equal(t, "{{ nome do locatário }} e {{ qtd_noites }}", report.Occurrences[0].Text)
	assert.True(t, report.Occurrences[0].Location.InBody())
	assert.Equal(t, 2, report.Occurrences[1].Location.Paragraph)
	assert.Equal(t, domain.PlaceholderLocation{Table: 0, Row: 0, Cell: 0, Paragraph: 0}, report.Occurrences[2].Location)
	assert.Equal(t, []string{"{{valor_locacao}}", "{{ valor_locacao/2 }}"}, report.Occurrences[2].Tokens)
}

func TestTemplateInspector_ListPlaceholders_LoadError(t *testing.T) {
	i := NewTemplateInspector(&fakeLoader{err: &domain.NotFoundError{Path: "x"}}, logger.Nop())

	_, err := i.ListPlaceholders(context.Background(), "x")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestTemplateInspector_Check(t *testing.T) {
	i := NewTemplateInspector(&fakeLoader{build: inspectorDocument}, logger.Nop())

	checks, err := i.Check(context.Background(), "t.docx", domain.SchemaExtended())
	require.NoError(t, err)

	byToken := make(map[string]domain.TokenCheck)
	for _, c := range checks {
		byToken[c.Expected] = c
	}

	assert.Equal(t, domain.TokenFound, byToken["{{ nome do locatário }}"].Status)
	assert.Equal(t, domain.TokenFound, byToken["{{ qtd_noites }}"].Status)
	assert.Equal(t, domain.TokenFound, byToken["{{ valor_locacao/2 }}"].Status)
	assert.Equal(t, domain.TokenMissing, byToken["{{ dia_fim }}"].Status)

	variant := byToken["{{ valor_locacao }}"]
	assert.Equal(t, domain.TokenVariant, variant.Status)
	assert.Equal(t, "{{ valor_locacao/2 }}", variant.Variant)
}

func TestCheckTokens(t *testing.T) {
	checks := CheckTokens([]string{"{{email}}"}, []string{"{{ email }}", "{{ endereco }}"})

	assert.Equal(t, []domain.TokenCheck{
		{Expected: "{{ email }}", Status: domain.TokenVariant, Variant: "{{email}}"},
		{Expected: "{{ endereco }}", Status: domain.TokenMissing},
	}, checks)
}
