package markup

import (
	"strings"
)

// BlankToken marks a fill-in slot inside lesson text.
const BlankToken = "_____"

type LineKind int

const (
	LineEmpty LineKind = iota
	LineParagraph
	LineBlankParagraph
	LineHeading
	LineBullet
	LineCheckbox
	LineRule
)

func (k LineKind) String() string {
	switch k {
	case LineEmpty:
		return "empty"
	case LineParagraph:
		return "paragraph"
	case LineBlankParagraph:
		return "blank_paragraph"
	case LineHeading:
		return "heading"
	case LineBullet:
		return "bullet"
	case LineCheckbox:
		return "checkbox"
	case LineRule:
		return "rule"
	}
	return "unknown"
}

type PartKind int

const (
	PartText PartKind = iota
	PartStrong
	PartBlank
)

// Part is a piece of a classified line. Blank parts carry the document-wide
// blank index in Field.
type Part struct {
	Kind  PartKind
	Text  string
	Field int
}

type Line struct {
	// Number is the 0-based line index within the content blob.
	Number int
	Kind   LineKind
	// Level is 1-3 for headings, 0 otherwise.
	Level int
	Raw   string
	Parts []Part
}

// HasBlanks reports whether the line materialised at least one blank field.
func (l Line) HasBlanks() bool {
	for _, p := range l.Parts {
		if p.Kind == PartBlank {
			return true
		}
	}
	return false
}

// Classify splits content into lines and classifies each one. Blank fields
// are numbered by a single counter in top-to-bottom, left-to-right order.
func Classify(content string) []Line {
	rows := strings.Split(content, "\n")
	lines := make([]Line, 0, len(rows))
	next := 0
	for n, raw := range rows {
		raw = strings.TrimSuffix(raw, "\r")
		kind, level, body := classifyLine(raw)

		line := Line{Number: n, Kind: kind, Level: level, Raw: raw}
		switch kind {
		case LineHeading:
			line.Parts = inlineParts(body)
		case LineEmpty, LineRule:
		default:
			line.Parts, next = splitBlanks(body, next)
			if kind == LineParagraph && line.HasBlanks() {
				line.Kind = LineBlankParagraph
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func classifyLine(raw string) (LineKind, int, string) {
	t := strings.TrimLeft(raw, " \t")

	if label, ok := checkboxLabel(t); ok {
		return LineCheckbox, 0, label
	}

	switch {
	case strings.HasPrefix(t, "###"):
		return LineHeading, 3, strings.TrimSpace(t[3:])
	case strings.HasPrefix(t, "##"):
		return LineHeading, 2, strings.TrimSpace(t[2:])
	case strings.HasPrefix(t, "#"):
		return LineHeading, 1, strings.TrimSpace(t[1:])
	}

	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(t, marker) {
			return LineBullet, 0, strings.TrimSpace(t[len(marker):])
		}
	}

	trimmed := strings.TrimSpace(t)
	if trimmed == "---" {
		return LineRule, 0, ""
	}
	if trimmed == "" {
		return LineEmpty, 0, ""
	}
	return LineParagraph, 0, trimmed
}

// checkboxLabel recognises "[ ]", "- [ ]" and "* [ ]" (x/X accepted inside the brackets).
func checkboxLabel(t string) (string, bool) {
	s := t
	if strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ") {
		s = s[2:]
	}
	if len(s) < 3 || s[0] != '[' || s[2] != ']' {
		return "", false
	}
	switch s[1] {
	case ' ', 'x', 'X':
		return strings.TrimSpace(s[3:]), true
	}
	return "", false
}

func splitBlanks(text string, next int) ([]Part, int) {
	var parts []Part
	for i, frag := range strings.Split(text, BlankToken) {
		if i > 0 {
			parts = append(parts, Part{Kind: PartBlank, Field: next})
			next++
		}
		parts = append(parts, inlineParts(frag)...)
	}
	return parts, next
}

func inlineParts(text string) []Part {
	spans := FormatInline(text)
	parts := make([]Part, 0, len(spans))
	for _, s := range spans {
		kind := PartText
		if s.Strong {
			kind = PartStrong
		}
		parts = append(parts, Part{Kind: kind, Text: s.Text})
	}
	return parts
}

type Icon string

const (
	IconPart       Icon = "book-open"
	IconDrill      Icon = "dumbbell"
	IconAssessment Icon = "clipboard-check"
	IconDefault    Icon = "sparkles"
)

var headingIcons = []struct {
	keyword string
	icon    Icon
}{
	{"Part", IconPart},
	{"Drill", IconDrill},
	{"Assessment", IconAssessment},
}

// HeadingIcon picks the enhanced-variant icon for a heading. Matching is a
// case-sensitive substring test; the first keyword in vocabulary order wins.
func HeadingIcon(text string) Icon {
	for _, hi := range headingIcons {
		if strings.Contains(text, hi.keyword) {
			return hi.icon
		}
	}
	return IconDefault
}
