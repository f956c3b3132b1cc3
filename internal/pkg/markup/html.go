package markup

import (
	"html"
	"strconv"
	"strings"
)

type htmlWriter struct {
	b       strings.Builder
	doc     *Document
	state   State
	variant Variant
}

func renderHTML(doc *Document, st State, v Variant) string {
	w := &htmlWriter{doc: doc, state: st, variant: v}
	for _, blk := range doc.Blocks {
		switch blk.Kind {
		case BlockHeading:
			w.heading(blk.Heading)
		case BlockSection:
			w.section(blk.Lines)
		}
	}
	return w.b.String()
}

func (w *htmlWriter) enhanced() bool { return w.variant == VariantEnhanced }

func headingClass(level int) string {
	switch level {
	case 1:
		return "lesson-title"
	case 2:
		return "section-heading"
	}
	return "sub-heading"
}

func (w *htmlWriter) heading(l Line) {
	tag := "h" + strconv.Itoa(l.Level)
	w.b.WriteString("<" + tag)
	if w.enhanced() {
		w.b.WriteString(` class="` + headingClass(l.Level) + `">`)
		w.b.WriteString(`<span class="icon icon-` + string(HeadingIcon(PlainText(l.Parts))) + `"></span>`)
	} else {
		w.b.WriteString(">")
	}
	w.parts(l.Parts)
	w.b.WriteString("</" + tag + ">")
}

func (w *htmlWriter) section(lines []Line) {
	if w.enhanced() {
		w.b.WriteString(`<section class="card">`)
	} else {
		w.b.WriteString(`<div class="section">`)
	}

	inList := false
	for _, l := range lines {
		if l.Kind == LineBullet && !inList {
			w.b.WriteString("<ul>")
			inList = true
		} else if l.Kind != LineBullet && inList {
			w.b.WriteString("</ul>")
			inList = false
		}
		w.line(l)
	}
	if inList {
		w.b.WriteString("</ul>")
	}

	if w.enhanced() {
		w.b.WriteString("</section>")
	} else {
		w.b.WriteString("</div>")
	}
}

func (w *htmlWriter) line(l Line) {
	switch l.Kind {
	case LineHeading:
		w.heading(l)
	case LineBullet:
		w.b.WriteString("<li>")
		w.parts(l.Parts)
		w.b.WriteString("</li>")
	case LineCheckbox:
		key := CheckboxKey(w.doc.LessonID, w.doc.Tab, l.Number)
		w.b.WriteString(`<label class="checkbox"><input type="checkbox" name="` + html.EscapeString(key) + `" data-key="` + html.EscapeString(key) + `"`)
		if w.state.Checked[l.Number] {
			w.b.WriteString(` checked="checked"`)
		}
		w.b.WriteString("> ")
		w.parts(l.Parts)
		w.b.WriteString("</label>")
	case LineRule:
		w.b.WriteString("<hr>")
	case LineEmpty:
		w.b.WriteString("<br>")
	case LineBlankParagraph:
		w.b.WriteString(`<p class="fill-in">`)
		w.parts(l.Parts)
		w.b.WriteString("</p>")
	default:
		w.b.WriteString("<p>")
		w.parts(l.Parts)
		w.b.WriteString("</p>")
	}
}

func (w *htmlWriter) parts(parts []Part) {
	for _, p := range parts {
		switch p.Kind {
		case PartStrong:
			w.b.WriteString("<strong>" + html.EscapeString(p.Text) + "</strong>")
		case PartBlank:
			key := BlankKey(w.doc.LessonID, w.doc.Tab, p.Field)
			class := "blank"
			if w.enhanced() {
				class = "blank blank-styled"
			}
			w.b.WriteString(`<input type="text" class="` + class + `" name="` + html.EscapeString(key) +
				`" data-key="` + html.EscapeString(key) + `" value="` + html.EscapeString(w.state.Blanks[p.Field]) + `">`)
		default:
			w.b.WriteString(html.EscapeString(p.Text))
		}
	}
}

// PlainText concatenates the text of parts; blanks contribute nothing.
func PlainText(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
