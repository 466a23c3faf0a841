package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/logger"
)

func newTestFiller(build func() *fakeDocument) (*TemplateFiller, *fakeLoader) {
	loader := &fakeLoader{build: build}
	f := NewTemplateFiller(loader, logger.Nop())
	f.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	return f, loader
}

func TestTemplateFiller_Fill_SingleRun(t *testing.T) {
	doc := &fakeDocument{body: []*fakeParagraph{para("Locatário: {{ nome do locatário }}, inscrito.")}}
	f, _ := newTestFiller(nil)

	ledger := f.Fill(doc, domain.FieldMap{{Token: "{{ nome do locatário }}", Value: "João Silva"}})

	assert.Equal(t, "Locatário: João Silva, inscrito.", doc.body[0].Text())
	assert.True(t, ledger.Has("{{ nome do locatário }}"))
}

func TestTemplateFiller_Fill_TokenSplitAcrossRuns(t *testing.T) {
	doc := &fakeDocument{body: []*fakeParagraph{para("CPF: {{ numero ", "do ", "cpf }}", " fim")}}
	f, _ := newTestFiller(nil)

	ledger := f.Fill(doc, domain.FieldMap{{Token: "{{ numero do cpf }}", Value: "123.456.789-00"}})

	assert.Equal(t, "CPF: 123.456.789-00 fim", doc.body[0].Text())
	assert.NotContains(t, doc.body[0].Text(), "{{ numero do cpf }}")
	assert.Len(t, doc.body[0].runs, 1)
	assert.Empty(t, ledger.Unresolved(domain.FieldMap{{Token: "{{ numero do cpf }}"}}))
}

func TestTemplateFiller_Fill_NoMatchesLeavesRunsAlone(t *testing.T) {
	doc := &fakeDocument{body: []*fakeParagraph{
		para("Plain ", "text"),
		para("Unknown ", "{{ other }}"),
	}}
	fm := domain.FieldMap{{Token: "{{ a }}", Value: "1"}, {Token: "{{a}}", Value: "1"}}
	f, _ := newTestFiller(nil)

	ledger := f.Fill(doc, fm)

	assert.Equal(t, fm.Tokens(), ledger.Unresolved(fm))
	assert.Equal(t, []string{"Plain ", "text"}, doc.body[0].runs)
	assert.Equal(t, []string{"Unknown ", "{{ other }}"}, doc.body[1].runs)
}

func TestTemplateFiller_Fill_ParagraphWithoutMarkerIsSkipped(t *testing.T) {
	doc := &fakeDocument{body: []*fakeParagraph{para("nome: ", "X")}}
	f, _ := newTestFiller(nil)

	ledger := f.Fill(doc, domain.FieldMap{{Token: "X", Value: "Y"}})

	assert.Equal(t, "nome: X", doc.body[0].Text())
	assert.Equal(t, 0, ledger.Len())
}

func TestTemplateFiller_Fill_MultipleTokensAndRepeats(t *testing.T) {
	doc := &fakeDocument{body: []*fakeParagraph{para("{{ a }} e {{b}} e {{ a }}")}}
	fm := domain.FieldMap{{Token: "{{ a }}", Value: "1"}, {Token: "{{ b }}", Value: "2"}, {Token: "{{b}}", Value: "2"}}
	f, _ := newTestFiller(nil)

	ledger := f.Fill(doc, fm)

	assert.Equal(t, "1 e 2 e 1", doc.body[0].Text())
	assert.Equal(t, []string{"{{ a }}", "{{b}}"}, ledger.Matched())
	assert.Equal(t, []string{"{{ b }}"}, ledger.Unresolved(fm))
}

func TestTemplateFiller_Fill_TablesAfterBody(t *testing.T) {
	cell := para("RG: {{ numero do rg }}")
	doc := &fakeDocument{
		body: []*fakeParagraph{para("{{ nacionalidade }}")},
		tables: [][][][]*fakeParagraph{
			{{{para("x")}, {cell}}},
		},
	}
	var buf bytes.Buffer
	f := NewTemplateFiller(&fakeLoader{}, logger.New(&buf, true))

	ledger := f.Fill(doc, domain.FieldMap{
		{Token: "{{ numero do rg }}", Value: "12.345.678-9"},
		{Token: "{{ nacionalidade }}", Value: "Brasileira"},
	})

	assert.Equal(t, "RG: 12.345.678-9", cell.Text())
	assert.Equal(t, "Brasileira", doc.body[0].Text())
	assert.Equal(t, []string{"{{ nacionalidade }}", "{{ numero do rg }}"}, ledger.Matched())
	assert.Contains(t, buf.String(), "table[0] row[0] cell[1] paragraph[0]")
}

func TestTemplateFiller_Generate(t *testing.T) {
	dir := t.TempDir()
	f, loader := newTestFiller(func() *fakeDocument {
		return &fakeDocument{body: []*fakeParagraph{para("Sr(a). {{ nome do locatário }}")}}
	})
	fm := domain.FieldMap{
		{Token: "{{ nome do locatário }}", Value: "João Silva"},
		{Token: "{{nome do locatário}}", Value: "João Silva"},
	}

	gen, err := f.Generate(context.Background(), "template.docx", dir, "João Silva#1", fm)
	require.NoError(t, err)

	assert.Equal(t, []string{"template.docx"}, loader.paths)
	assert.Equal(t, "CONTRATO_João_Silva_1_20240309_140507.docx", gen.Filename)
	assert.Equal(t, filepath.Join(dir, gen.Filename), gen.Path)
	assert.Equal(t, []string{"{{ nome do locatário }}"}, gen.Matched)
	assert.Equal(t, []string{"{{nome do locatário}}"}, gen.Unresolved)

	content, err := os.ReadFile(gen.Path)
	require.NoError(t, err)
	assert.Equal(t, "Sr(a). João Silva", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Regexp(t, regexp.MustCompile(`^CONTRATO_.+_\d{8}_\d{6}\.docx$`), entries[0].Name())
}

func TestTemplateFiller_Generate_NameCollision(t *testing.T) {
	dir := t.TempDir()
	f, _ := newTestFiller(func() *fakeDocument {
		return &fakeDocument{body: []*fakeParagraph{para("x")}}
	})

	first, err := f.Generate(context.Background(), "t.docx", dir, "Ana", nil)
	require.NoError(t, err)
	second, err := f.Generate(context.Background(), "t.docx", dir, "Ana", nil)
	require.NoError(t, err)
	third, err := f.Generate(context.Background(), "t.docx", dir, "Ana", nil)
	require.NoError(t, err)

	assert.Equal(t, "CONTRATO_Ana_20240309_140507.docx", first.Filename)
	assert.Equal(t, "CONTRATO_Ana_20240309_140507_2.docx", second.Filename)
	assert.Equal(t, "CONTRATO_Ana_20240309_140507_3.docx", third.Filename)
}

func TestTemplateFiller_Generate_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	f, _ := newTestFiller(func() *fakeDocument { return &fakeDocument{} })

	gen, err := f.Generate(context.Background(), "t.docx", dir, "Ana", nil)
	require.NoError(t, err)
	assert.FileExists(t, gen.Path)
}

func TestTemplateFiller_Generate_NotFound(t *testing.T) {
	dir := t.TempDir()
	f, loader := newTestFiller(nil)
	loader.err = &domain.NotFoundError{Path: "missing.docx"}

	gen, err := f.Generate(context.Background(), "missing.docx", dir, "Ana", nil)

	assert.Nil(t, gen)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestTemplateFiller_Generate_LoadFailureIsGenerationError(t *testing.T) {
	f, loader := newTestFiller(nil)
	loader.err = errors.New("zip: not a valid zip file")

	_, err := f.Generate(context.Background(), "bad.docx", t.TempDir(), "Ana", nil)

	var gen *domain.GenerationError
	require.True(t, errors.As(err, &gen))
	assert.Equal(t, "load", gen.Op)
}

func TestTemplateFiller_Generate_SaveFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	f, _ := newTestFiller(func() *fakeDocument { return &fakeDocument{saveErr: errDisk} })

	_, err := f.Generate(context.Background(), "t.docx", dir, "Ana", nil)

	assert.Equal(t, domain.KindGeneration, domain.KindOf(err))
	assert.True(t, errors.Is(err, errDisk))
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestTemplateFiller_Generate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f, loader := newTestFiller(nil)

	_, err := f.Generate(ctx, "t.docx", t.TempDir(), "Ana", nil)

	assert.Equal(t, domain.KindGeneration, domain.KindOf(err))
	assert.Empty(t, loader.paths)
}
