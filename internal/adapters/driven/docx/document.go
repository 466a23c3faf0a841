// Package docx reads DOCX templates into an editable paragraph model and
// writes filled copies. Only word/document.xml is rewritten; every other
// archive entry is copied byte for byte.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/natefinch/atomic"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
)

// Ensure Loader and Document implement the interfaces.
var (
	_ driven.TemplateLoader   = (*Loader)(nil)
	_ driven.TemplateDocument = (*Document)(nil)
	_ driven.Paragraph        = (*Paragraph)(nil)
)

const (
	documentPart = "word/document.xml"
	nsWordML     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

var errNoDocumentPart = errors.New("archive has no " + documentPart)

// Loader opens DOCX templates from disk.
type Loader struct{}

// NewLoader creates a DOCX loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the template at path.
func (l *Loader) Load(_ context.Context, path string) (driven.TemplateDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.NotFoundError{Path: path}
		}
		return nil, &domain.GenerationError{Op: "load", Path: path, Err: err}
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, &domain.GenerationError{Op: "load", Path: path, Err: err}
	}
	return doc, nil
}

// Document is a parsed DOCX archive.
type Document struct {
	archive    *zip.Reader
	xml        *etree.Document
	paragraphs []*Paragraph
}

// Parse reads a DOCX archive from memory.
func Parse(data []byte) (*Document, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	part, err := readPart(archive, documentPart)
	if err != nil {
		return nil, err
	}

	xml := etree.NewDocument()
	if err := xml.ReadFromBytes(part); err != nil {
		return nil, fmt.Errorf("parse %s: %w", documentPart, err)
	}

	root := xml.Root()
	if root == nil {
		return nil, fmt.Errorf("parse %s: empty document", documentPart)
	}
	body := firstChild(root, "body")
	if body == nil {
		return nil, fmt.Errorf("parse %s: no body element", documentPart)
	}

	return &Document{
		archive:    archive,
		xml:        xml,
		paragraphs: collectParagraphs(body),
	}, nil
}

// collectParagraphs returns body paragraphs followed by the paragraphs of
// each top-level table, row by row and cell by cell.
func collectParagraphs(body *etree.Element) []*Paragraph {
	var out []*Paragraph

	bodyIdx := 0
	for _, el := range body.ChildElements() {
		if isWord(el, "p") {
			out = append(out, &Paragraph{el: el, loc: domain.PlaceholderLocation{Table: -1, Paragraph: bodyIdx}})
			bodyIdx++
		}
	}

	tableIdx := 0
	for _, tbl := range body.ChildElements() {
		if !isWord(tbl, "tbl") {
			continue
		}
		for rowIdx, tr := range children(tbl, "tr") {
			for cellIdx, tc := range children(tr, "tc") {
				for pIdx, p := range children(tc, "p") {
					out = append(out, &Paragraph{el: p, loc: domain.PlaceholderLocation{
						Table: tableIdx, Row: rowIdx, Cell: cellIdx, Paragraph: pIdx,
					}})
				}
			}
		}
		tableIdx++
	}

	return out
}

// Paragraphs returns every paragraph in fill order.
func (d *Document) Paragraphs() []driven.Paragraph {
	out := make([]driven.Paragraph, len(d.paragraphs))
	for i, p := range d.paragraphs {
		out[i] = p
	}
	return out
}

// Bytes serializes the archive with the current document part.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the archive to path atomically.
func (d *Document) Save(_ context.Context, path string) error {
	data, err := d.Bytes()
	if err != nil {
		return &domain.GenerationError{Op: "save", Path: path, Err: err}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return &domain.GenerationError{Op: "save", Path: path, Err: err}
	}
	return nil
}

func (d *Document) write(w io.Writer) error {
	zw := zip.NewWriter(w)

	for _, f := range d.archive.File {
		if f.Name != documentPart {
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}

		part, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", documentPart, err)
		}
		if _, err := d.xml.WriteTo(part); err != nil {
			return fmt.Errorf("write %s: %w", documentPart, err)
		}
	}

	return zw.Close()
}

func readPart(archive *zip.Reader, name string) ([]byte, error) {
	for _, f := range archive.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, errNoDocumentPart
}

// isWord reports whether el is the WordprocessingML element tag.
// Elements without a resolvable namespace match on the local name alone.
func isWord(el *etree.Element, tag string) bool {
	if el.Tag != tag {
		return false
	}
	ns := el.NamespaceURI()
	return ns == nsWordML || ns == "" || strings.HasPrefix(ns, "http://purl.oclc.org/ooxml/wordprocessingml")
}

func children(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if isWord(c, tag) {
			out = append(out, c)
		}
	}
	return out
}

func firstChild(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if isWord(c, tag) {
			return c
		}
	}
	return nil
}
