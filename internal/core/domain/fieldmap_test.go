package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMap_TokensAndLookup(t *testing.T) {
	m := FieldMap{{Token: "{{ a }}", Value: "1"}, {Token: "{{a}}", Value: "1"}, {Token: "{{ b }}", Value: "2"}}

	assert.Equal(t, []string{"{{ a }}", "{{a}}", "{{ b }}"}, m.Tokens())

	v, ok := m.Lookup("{{ b }}")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = m.Lookup("{{ c }}")
	assert.False(t, ok)
}

func TestLedger(t *testing.T) {
	m := FieldMap{{Token: "{{ a }}", Value: "1"}, {Token: "{{a}}", Value: "1"}, {Token: "{{ b }}", Value: "2"}}
	l := NewLedger()

	assert.Equal(t, []string{"{{ a }}", "{{a}}", "{{ b }}"}, l.Unresolved(m))

	l.Record("{{ b }}", "2")
	l.Record("{{ a }}", "1")
	l.Record("{{ b }}", "2")

	assert.Equal(t, 2, l.Len())
	assert.True(t, l.Has("{{ a }}"))
	assert.Equal(t, []string{"{{ b }}", "{{ a }}"}, l.Matched())
	assert.Equal(t, []string{"{{a}}"}, l.Unresolved(m))
}

func TestLedger_UnresolvedIsNeverNil(t *testing.T) {
	l := NewLedger()
	l.Record("{{ a }}", "1")

	assert.NotNil(t, l.Unresolved(FieldMap{{Token: "{{ a }}", Value: "1"}}))
}
