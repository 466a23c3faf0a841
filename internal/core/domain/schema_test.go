package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaBasic_Required(t *testing.T) {
	assert.Equal(t, []string{
		"nome_do_locatario", "estado_civil", "nacionalidade", "profissao", "numero_do_rg",
		"numero_do_cpf", "telefone_celular", "email", "endereco",
	}, SchemaBasic().Required())
}

func TestSchemaExtended_Required(t *testing.T) {
	required := SchemaExtended().Required()

	assert.Len(t, required, 13)
	assert.Equal(t, []string{"qtd_noites", "dia_inicio", "dia_fim", "valor_locacao"}, required[9:])
	assert.NotContains(t, required, KeyHalfAmount)
}

func TestSchema_ExpectedTokens(t *testing.T) {
	assert.Equal(t, []string{
		"{{ nome do locatário }}", "{{ estado civil }}", "{{ nacionalidade }}", "{{ profissao }}",
		"{{ numero do rg }}", "{{ numero do cpf }}", "{{ telefone celular }}", "{{ e-mail }}",
		"{{ endereco }}",
	}, SchemaBasic().ExpectedTokens())

	extended := SchemaExtended().ExpectedTokens()
	assert.Equal(t, []string{
		"{{ qtd_noites }}", "{{ dia_inicio }}", "{{ dia_fim }}", "{{ valor_locacao }}", "{{ valor_locacao/2 }}",
	}, extended[9:])
}

func TestFieldSpec_Variants(t *testing.T) {
	spec, ok := SchemaBasic().Field(KeyName)
	require.True(t, ok)

	assert.Equal(t, []string{
		"{{ nome do locatário }}", "{{nome do locatário}}",
		"{{ nome do locatario }}", "{{nome do locatario}}",
		"{{ nome_do_locatario }}", "{{nome_do_locatario}}",
	}, spec.Variants())

	nat, ok := SchemaBasic().Field(KeyNationality)
	require.True(t, ok)
	assert.Equal(t, []string{"{{ nacionalidade }}", "{{nacionalidade}}"}, nat.Variants())
}

func TestSchema_TokensAreUniqueAcrossFields(t *testing.T) {
	owner := make(map[string]string)
	for _, f := range SchemaExtended().Fields {
		for _, tok := range f.Variants() {
			prev, dup := owner[tok]
			assert.False(t, dup, "token %q used by %s and %s", tok, prev, f.Key)
			owner[tok] = f.Key
		}
	}
}

func TestSchema_NoTokenContainsAnotherFieldsToken(t *testing.T) {
	fields := SchemaExtended().Fields
	for _, a := range fields {
		for _, b := range fields {
			if a.Key == b.Key {
				continue
			}
			for _, ta := range a.Variants() {
				for _, tb := range b.Variants() {
					assert.False(t, strings.Contains(tb, ta), "%q contains %q", tb, ta)
				}
			}
		}
	}
}

func TestSchema_EveryTokenHasMarker(t *testing.T) {
	for _, f := range SchemaExtended().Fields {
		for _, tok := range f.Variants() {
			assert.True(t, strings.HasPrefix(tok, PlaceholderMarker), tok)
		}
	}
}

func TestSchemaByName(t *testing.T) {
	s, err := SchemaByName(SchemaNameExtended)
	require.NoError(t, err)
	assert.Equal(t, SchemaNameExtended, s.Name)

	_, err = SchemaByName("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSchema_ReturnsIndependentCopies(t *testing.T) {
	a := SchemaBasic()
	a.Fields[0].Aliases[0] = "mutated"

	b := SchemaBasic()
	assert.Equal(t, "nome do locatario", b.Fields[0].Aliases[0])
}

func TestTokenName(t *testing.T) {
	assert.Equal(t, "nome do locatário", TokenName("{{ nome do locatário }}"))
	assert.Equal(t, "email", TokenName("{{email}}"))
	assert.Equal(t, "x", TokenName("{{  x }}"))
}

func TestSchemaName_Description(t *testing.T) {
	for _, n := range AllSchemaNames() {
		assert.True(t, n.IsValid())
		assert.NotEqual(t, unknownDescription, n.Description())
	}
	assert.False(t, SchemaName("").IsValid())
}
