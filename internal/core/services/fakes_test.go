package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
)

// fakeParagraph keeps its text as runs so tests can observe run collapsing.
type fakeParagraph struct {
	runs []string
	loc  domain.PlaceholderLocation
}

func (p *fakeParagraph) Text() string { return strings.Join(p.runs, "") }

func (p *fakeParagraph) SetText(text string) { p.runs = []string{text} }

func (p *fakeParagraph) Location() domain.PlaceholderLocation { return p.loc }

// fakeDocument is an in-memory template. Save writes the concatenated
// paragraph text, one per line.
type fakeDocument struct {
	body    []*fakeParagraph
	tables  [][][][]*fakeParagraph
	saveErr error
}

func (d *fakeDocument) Paragraphs() []driven.Paragraph {
	var out []driven.Paragraph
	for i, p := range d.body {
		p.loc = domain.PlaceholderLocation{Table: -1, Paragraph: i}
		out = append(out, p)
	}
	for ti, table := range d.tables {
		for ri, row := range table {
			for ci, cell := range row {
				for pi, p := range cell {
					p.loc = domain.PlaceholderLocation{Table: ti, Row: ri, Cell: ci, Paragraph: pi}
					out = append(out, p)
				}
			}
		}
	}
	return out
}

func (d *fakeDocument) Save(_ context.Context, path string) error {
	if d.saveErr != nil {
		return d.saveErr
	}
	var lines []string
	for _, p := range d.Paragraphs() {
		lines = append(lines, p.Text())
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
}

func para(runs ...string) *fakeParagraph {
	return &fakeParagraph{runs: runs}
}

// fakeLoader returns a fresh document from build for every Load.
type fakeLoader struct {
	build func() *fakeDocument
	err   error
	paths []string
}

func (l *fakeLoader) Load(_ context.Context, path string) (driven.TemplateDocument, error) {
	l.paths = append(l.paths, path)
	if l.err != nil {
		return nil, l.err
	}
	return l.build(), nil
}

// fakeDeliverer records calls and removes the file on success like the
// real client.
type fakeDeliverer struct {
	mu         sync.Mutex
	err        error
	configured bool
	calls      []string
	locatees   []string
}

func newFakeDeliverer() *fakeDeliverer {
	return &fakeDeliverer{configured: true}
}

func (d *fakeDeliverer) Deliver(_ context.Context, path, locatee string) (*driven.DeliveryReceipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, path)
	d.locatees = append(d.locatees, locatee)
	if d.err != nil {
		return nil, d.err
	}
	removed := os.Remove(path) == nil
	return &driven.DeliveryReceipt{StatusCode: 200, Removed: removed}, nil
}

func (d *fakeDeliverer) Configured() bool { return d.configured }

var errDisk = errors.New("disk full")
