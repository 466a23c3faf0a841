package driven

import (
	"context"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// TemplateLoader opens template documents.
type TemplateLoader interface {
	// Load reads the template at path. It returns *domain.NotFoundError when
	// the file does not exist and *domain.GenerationError when it cannot be parsed.
	// The file on disk is never modified.
	Load(ctx context.Context, path string) (TemplateDocument, error)
}

// TemplateDocument is an in-memory template being filled.
type TemplateDocument interface {
	// Paragraphs returns every paragraph in fill order: body paragraphs first,
	// then each table row by row, cell by cell, paragraph by paragraph.
	Paragraphs() []Paragraph

	// Save serializes the document to path.
	// Failures are returned as *domain.GenerationError.
	Save(ctx context.Context, path string) error
}

// Paragraph is one block of text made of formatting runs.
type Paragraph interface {
	// Text returns the concatenated text of the paragraph's runs.
	Text() string

	// SetText replaces every run with a single run carrying text.
	// The new run keeps the formatting of the first original run.
	SetText(text string)

	// Location returns where the paragraph sits in the document.
	Location() domain.PlaceholderLocation
}
