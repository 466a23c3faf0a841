package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
	"github.com/custodia-labs/leasefill/internal/logger"
)

// maxNameAttempts bounds the numbered suffixes tried for one output name.
const maxNameAttempts = 1000

// TemplateFiller substitutes Field Map tokens into a template and writes the
// filled copy to a new file.
type TemplateFiller struct {
	loader driven.TemplateLoader
	log    *logger.Logger
	now    func() time.Time
}

// NewTemplateFiller creates a filler reading templates through loader.
func NewTemplateFiller(loader driven.TemplateLoader, log *logger.Logger) *TemplateFiller {
	return &TemplateFiller{
		loader: loader,
		log:    log,
		now:    time.Now,
	}
}

// Fill replaces tokens in doc and returns the ledger of matched tokens.
//
// Only paragraphs containing the placeholder marker are considered. Each
// Field Map entry is tried in order against the paragraph text; a paragraph
// whose text changed is rewritten as a single run. Other paragraphs keep
// their runs untouched.
func (f *TemplateFiller) Fill(doc driven.TemplateDocument, fm domain.FieldMap) *domain.Ledger {
	ledger := domain.NewLedger()

	for _, p := range doc.Paragraphs() {
		original := p.Text()
		if !strings.Contains(original, domain.PlaceholderMarker) {
			continue
		}

		text := original
		for _, e := range fm {
			if !strings.Contains(text, e.Token) {
				continue
			}
			text = strings.ReplaceAll(text, e.Token, e.Value)
			ledger.Record(e.Token, e.Value)
		}

		if text != original {
			p.SetText(text)
			f.log.Debug("filled paragraph %s", p.Location())
		}
	}

	return ledger
}

// Generate loads the template, fills it and saves the result in outputDir
// as CONTRATO_<locatee>_<timestamp>.docx. A taken name gets a numbered suffix.
//
// Errors are *domain.NotFoundError for a missing template and
// *domain.GenerationError for any other failure. No file is left behind on
// failure.
func (f *TemplateFiller) Generate(
	ctx context.Context,
	templatePath, outputDir, locatee string,
	fm domain.FieldMap,
) (*domain.GeneratedContract, error) {
	f.log.Section("Generate")

	if err := ctx.Err(); err != nil {
		return nil, &domain.GenerationError{Op: "load", Path: templatePath, Err: err}
	}

	doc, err := f.loader.Load(ctx, templatePath)
	if err != nil {
		return nil, asGenerationError("load", templatePath, err)
	}

	ledger := f.Fill(doc, fm)
	unresolved := ledger.Unresolved(fm)
	f.log.Info("substituted %d of %d tokens", ledger.Len(), len(fm))
	if len(unresolved) > 0 {
		f.log.Debug("unresolved tokens: %s", strings.Join(unresolved, ", "))
	}

	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, &domain.GenerationError{Op: "prepare", Path: outputDir, Err: err}
	}

	path, err := reserveOutput(outputDir, domain.OutputFilename(locatee, f.now()))
	if err != nil {
		return nil, &domain.GenerationError{Op: "prepare", Path: outputDir, Err: err}
	}

	if err := doc.Save(ctx, path); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			f.log.Warn("could not remove unusable output %s: %v", path, rmErr)
		}
		return nil, asGenerationError("save", path, err)
	}

	f.log.Info("contract generated: %s", path)

	return &domain.GeneratedContract{
		Filename:   filepath.Base(path),
		Path:       path,
		Matched:    ledger.Matched(),
		Unresolved: unresolved,
	}, nil
}

// reserveOutput creates an empty file under dir so concurrent requests with
// the same name and second get distinct paths.
func reserveOutput(dir, name string) (string, error) {
	candidate := name
	for n := 2; n < maxNameAttempts; n++ {
		path := filepath.Join(dir, candidate)
		file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return path, file.Close()
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		candidate = domain.NumberedFilename(name, n)
	}
	return "", fmt.Errorf("no free output name for %s", name)
}

func asGenerationError(op, path string, err error) error {
	var nf *domain.NotFoundError
	var gen *domain.GenerationError
	if errors.As(err, &nf) || errors.As(err, &gen) {
		return err
	}
	return &domain.GenerationError{Op: op, Path: path, Err: err}
}
