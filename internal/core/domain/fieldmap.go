package domain

// FieldEntry is one (token, value) pair of a Field Map.
type FieldEntry struct {
	Token string
	Value string
}

// FieldMap is the ordered list of token spellings and their replacement
// values for one fill pass. Tokens match as exact, case-sensitive substrings.
type FieldMap []FieldEntry

// Tokens returns the tokens in map order.
func (m FieldMap) Tokens() []string {
	out := make([]string, len(m))
	for i, e := range m {
		out[i] = e.Token
	}
	return out
}

// Lookup returns the value mapped to token.
func (m FieldMap) Lookup(token string) (string, bool) {
	for _, e := range m {
		if e.Token == token {
			return e.Value, true
		}
	}
	return "", false
}

// Ledger records the tokens substituted during one fill pass.
type Ledger struct {
	values map[string]string
	order  []string
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{values: make(map[string]string)}
}

// Record marks token as substituted with value.
func (l *Ledger) Record(token, value string) {
	if _, ok := l.values[token]; !ok {
		l.order = append(l.order, token)
	}
	l.values[token] = value
}

// Has reports whether token was substituted.
func (l *Ledger) Has(token string) bool {
	_, ok := l.values[token]
	return ok
}

// Matched returns the substituted tokens in first-match order.
func (l *Ledger) Matched() []string {
	return append([]string(nil), l.order...)
}

// Len returns the number of distinct substituted tokens.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Unresolved returns the tokens of m that were never substituted, in map order.
func (l *Ledger) Unresolved(m FieldMap) []string {
	out := []string{}
	for _, e := range m {
		if !l.Has(e.Token) {
			out = append(out, e.Token)
		}
	}
	return out
}
