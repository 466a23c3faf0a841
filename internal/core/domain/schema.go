package domain

import (
	"fmt"
	"strings"
)

// PlaceholderMarker is the opening delimiter of every placeholder token.
// Paragraphs without it are never rewritten.
const PlaceholderMarker = "{{"

// SchemaName identifies a field schema.
type SchemaName string

// Available field schemas.
const (
	// SchemaNameBasic requires the nine personal fields.
	SchemaNameBasic SchemaName = "basic"

	// SchemaNameExtended adds the stay period and rental amount.
	SchemaNameExtended SchemaName = "extended"
)

// IsValid returns true if the schema name is recognised.
func (n SchemaName) IsValid() bool {
	return n == SchemaNameBasic || n == SchemaNameExtended
}

// String returns the string representation.
func (n SchemaName) String() string {
	return string(n)
}

// Description returns a human-readable description of the schema.
func (n SchemaName) Description() string {
	switch n {
	case SchemaNameBasic:
		return "Basic (personal data)"
	case SchemaNameExtended:
		return "Extended (personal data, stay period and rental amount)"
	default:
		return "Unknown"
	}
}

// FieldSpec describes one logical field and the placeholder names it may
// appear under in a template.
type FieldSpec struct {
	// Key is the input key (see TenantData).
	Key string

	// Label is the prompt shown by interactive input.
	Label string

	// Token is the canonical placeholder name, without delimiters.
	Token string

	// Aliases are other spellings seen in template revisions.
	Aliases []string

	// Derived fields are computed, never required from the caller.
	Derived bool
}

// Names returns the canonical token name followed by its aliases.
func (f FieldSpec) Names() []string {
	return append([]string{f.Token}, f.Aliases...)
}

// CanonicalToken returns the spaced form of the canonical token.
func (f FieldSpec) CanonicalToken() string {
	return SpacedToken(f.Token)
}

// Variants returns every token spelling for the field: for each name in
// Names order, the spaced form then the compact form. Duplicates are dropped.
func (f FieldSpec) Variants() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range f.Names() {
		for _, tok := range []string{SpacedToken(name), CompactToken(name)} {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
		}
	}
	return out
}

// SpacedToken wraps name as "{{ name }}".
func SpacedToken(name string) string {
	return "{{ " + name + " }}"
}

// CompactToken wraps name as "{{name}}".
func CompactToken(name string) string {
	return "{{" + name + "}}"
}

// TokenName strips the delimiters and surrounding spaces from a token.
func TokenName(token string) string {
	s := strings.TrimPrefix(token, "{{")
	s = strings.TrimSuffix(s, "}}")
	return strings.TrimSpace(s)
}

// FieldSchema is the set of fields one contract template expects, in the
// order their tokens are emitted into a Field Map.
type FieldSchema struct {
	Name   SchemaName
	Fields []FieldSpec
}

// Required returns the input keys a caller must supply.
func (s FieldSchema) Required() []string {
	var keys []string
	for _, f := range s.Fields {
		if !f.Derived {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// Inputs returns the non-derived field specs.
func (s FieldSchema) Inputs() []FieldSpec {
	var out []FieldSpec
	for _, f := range s.Fields {
		if !f.Derived {
			out = append(out, f)
		}
	}
	return out
}

// ExpectedTokens returns the canonical spaced token of every field.
func (s FieldSchema) ExpectedTokens() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.CanonicalToken())
	}
	return out
}

// Field returns the spec for key.
func (s FieldSchema) Field(key string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// KeyHalfAmount is the key of the derived half rental amount.
const KeyHalfAmount = "metade_valor"

var basicFields = []FieldSpec{
	{Key: KeyName, Label: "Nome completo", Token: "nome do locatário", Aliases: []string{"nome do locatario", "nome_do_locatario"}},
	{Key: KeyMaritalStatus, Label: "Estado civil", Token: "estado civil", Aliases: []string{"estado_civil"}},
	{Key: KeyNationality, Label: "Nacionalidade", Token: "nacionalidade"},
	{Key: KeyOccupation, Label: "Profissão", Token: "profissao", Aliases: []string{"profissão"}},
	{Key: KeyRG, Label: "RG", Token: "numero do rg", Aliases: []string{"número do rg", "numero_do_rg"}},
	{Key: KeyCPF, Label: "CPF", Token: "numero do cpf", Aliases: []string{"número do cpf", "numero_do_cpf"}},
	{Key: KeyPhone, Label: "Telefone celular", Token: "telefone celular", Aliases: []string{"telefone_celular"}},
	{Key: KeyEmail, Label: "E-mail", Token: "e-mail", Aliases: []string{"email"}},
	{Key: KeyAddress, Label: "Endereço completo", Token: "endereco", Aliases: []string{"endereço"}},
}

var extendedFields = []FieldSpec{
	{Key: KeyNights, Label: "Quantidade de noites", Token: "qtd_noites", Aliases: []string{"qtd noites"}},
	{Key: KeyStartDate, Label: "Dia de início", Token: "dia_inicio", Aliases: []string{"dia inicio"}},
	{Key: KeyEndDate, Label: "Dia de fim", Token: "dia_fim", Aliases: []string{"dia fim"}},
	{Key: KeyRentalAmount, Label: "Valor da locação", Token: "valor_locacao", Aliases: []string{"valor locacao"}},
	{Key: KeyHalfAmount, Label: "Metade do valor", Token: "valor_locacao/2", Aliases: []string{"valor_locacao / 2", "metade_valor"}, Derived: true},
}

// SchemaBasic returns the personal-data schema.
func SchemaBasic() FieldSchema {
	return FieldSchema{Name: SchemaNameBasic, Fields: cloneSpecs(basicFields)}
}

// SchemaExtended returns the personal-data schema plus stay period and amount.
func SchemaExtended() FieldSchema {
	fields := cloneSpecs(basicFields)
	fields = append(fields, cloneSpecs(extendedFields)...)
	return FieldSchema{Name: SchemaNameExtended, Fields: fields}
}

// SchemaByName returns the schema registered under name.
func SchemaByName(name SchemaName) (FieldSchema, error) {
	switch name {
	case SchemaNameBasic:
		return SchemaBasic(), nil
	case SchemaNameExtended:
		return SchemaExtended(), nil
	default:
		return FieldSchema{}, fmt.Errorf("%w: unknown schema %q", ErrInvalidInput, name)
	}
}

// AllSchemaNames returns all available schema names.
func AllSchemaNames() []SchemaName {
	return []SchemaName{SchemaNameBasic, SchemaNameExtended}
}

func cloneSpecs(in []FieldSpec) []FieldSpec {
	out := make([]FieldSpec, len(in))
	for i, f := range in {
		f.Aliases = append([]string(nil), f.Aliases...)
		out[i] = f
	}
	return out
}
