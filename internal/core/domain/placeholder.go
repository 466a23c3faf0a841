package domain

import "fmt"

// PlaceholderLocation identifies a paragraph in a template.
// Table is -1 for body paragraphs.
type PlaceholderLocation struct {
	Table     int
	Row       int
	Cell      int
	Paragraph int
}

// InBody returns true for body paragraphs.
func (l PlaceholderLocation) InBody() bool {
	return l.Table < 0
}

// String renders the location with one-based indexes.
func (l PlaceholderLocation) String() string {
	if l.InBody() {
		return fmt.Sprintf("paragraph %d", l.Paragraph+1)
	}
	return fmt.Sprintf("table %d, row %d, cell %d, paragraph %d",
		l.Table+1, l.Row+1, l.Cell+1, l.Paragraph+1)
}

// PlaceholderOccurrence is a paragraph containing one or more placeholder tokens.
type PlaceholderOccurrence struct {
	Location PlaceholderLocation
	Text     string
	Tokens   []string
}

// PlaceholderReport lists every placeholder found in a template.
type PlaceholderReport struct {
	Path        string
	Occurrences []PlaceholderOccurrence

	// Tokens is the distinct, sorted set of tokens found.
	Tokens []string
}

// TokenStatus is the result of looking for an expected token.
type TokenStatus string

// Token check results.
const (
	TokenFound   TokenStatus = "found"
	TokenVariant TokenStatus = "variant"
	TokenMissing TokenStatus = "missing"
)

// TokenCheck reports whether an expected token exists in a template.
type TokenCheck struct {
	Expected string
	Status   TokenStatus

	// Variant is the similar token found when Status is TokenVariant.
	Variant string
}
