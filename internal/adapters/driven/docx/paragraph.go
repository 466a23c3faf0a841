package docx

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

// Paragraph wraps a w:p element.
type Paragraph struct {
	el  *etree.Element
	loc domain.PlaceholderLocation
}

// Location returns where the paragraph sits in the document.
func (p *Paragraph) Location() domain.PlaceholderLocation {
	return p.loc
}

// Text returns the text of every run, including runs inside hyperlinks.
// Tabs and breaks are rendered as "\t" and "\n".
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.runs() {
		b.WriteString(runText(r))
	}
	return b.String()
}

// RunTexts returns the text of each run in order.
func (p *Paragraph) RunTexts() []string {
	runs := p.runs()
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = runText(r)
	}
	return out
}

// SetText replaces the paragraph's text with a single run holding text. The
// run copies the first original run's properties so the paragraph keeps its
// leading style. Paragraph properties stay in place. Bookmarks, content
// controls and runs carrying drawings or embedded objects are moved after
// the new run, minus any text they held.
func (p *Paragraph) SetText(text string) {
	var rPr *etree.Element
	if runs := p.runs(); len(runs) > 0 {
		if props := firstChild(runs[0], "rPr"); props != nil {
			rPr = props.Copy()
		}
	}

	var kept []*etree.Element
	for _, child := range append([]etree.Token(nil), p.el.Child...) {
		el, isElement := child.(*etree.Element)
		if isElement && isWord(el, "pPr") {
			continue
		}
		p.el.RemoveChild(child)
		if isElement {
			kept = append(kept, preserved(el)...)
		}
	}

	run := p.el.CreateElement(p.tag("r"))
	if rPr != nil {
		run.AddChild(rPr)
	}
	writeRunText(run, p.tag, text)

	for _, el := range kept {
		p.el.AddChild(el)
	}
}

// preserved returns the parts of a removed paragraph child that hold no
// rewritable text and must survive a rewrite.
func preserved(el *etree.Element) []*etree.Element {
	switch {
	case isWord(el, "bookmarkStart"), isWord(el, "bookmarkEnd"), isWord(el, "sdt"):
		return []*etree.Element{el}
	case isWord(el, "r"):
		if hasGraphic(el) {
			stripText(el)
			return []*etree.Element{el}
		}
	case isWord(el, "hyperlink"), isWord(el, "fldSimple"), isWord(el, "ins"), isWord(el, "smartTag"):
		var out []*etree.Element
		for _, r := range children(el, "r") {
			out = append(out, preserved(r)...)
		}
		return out
	}
	return nil
}

func hasGraphic(run *etree.Element) bool {
	for _, c := range run.ChildElements() {
		if isWord(c, "drawing") || isWord(c, "pict") || isWord(c, "object") {
			return true
		}
	}
	return false
}

// stripText drops the text-bearing children of run; its text is already
// part of the rewritten paragraph.
func stripText(run *etree.Element) {
	for _, c := range run.ChildElements() {
		if isWord(c, "t") || isWord(c, "tab") || isWord(c, "br") || isWord(c, "cr") {
			run.RemoveChild(c)
		}
	}
}

// runs returns the direct runs and the runs nested in hyperlinks,
// simple fields and tracked insertions.
func (p *Paragraph) runs() []*etree.Element {
	var out []*etree.Element
	for _, c := range p.el.ChildElements() {
		switch {
		case isWord(c, "r"):
			out = append(out, c)
		case isWord(c, "hyperlink"), isWord(c, "fldSimple"), isWord(c, "ins"), isWord(c, "smartTag"):
			out = append(out, children(c, "r")...)
		}
	}
	return out
}

// tag returns name with the paragraph's namespace prefix.
func (p *Paragraph) tag(name string) string {
	if p.el.Space == "" {
		return name
	}
	return p.el.Space + ":" + name
}

func runText(r *etree.Element) string {
	var b strings.Builder
	for _, c := range r.ChildElements() {
		switch {
		case isWord(c, "t"):
			b.WriteString(c.Text())
		case isWord(c, "tab"):
			b.WriteByte('\t')
		case isWord(c, "br"), isWord(c, "cr"):
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// writeRunText appends text to run as w:t elements separated by w:tab and
// w:br for tabs and newlines.
func writeRunText(run *etree.Element, tag func(string) string, text string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			run.CreateElement(tag("br"))
		}
		for j, segment := range strings.Split(line, "\t") {
			if j > 0 {
				run.CreateElement(tag("tab"))
			}
			if segment == "" {
				continue
			}
			t := run.CreateElement(tag("t"))
			t.CreateAttr("xml:space", "preserve")
			t.SetText(segment)
		}
	}
}
