package markup

import "strings"

const emphasisMarker = "**"

// Span is one run of inline text.
type Span struct {
	Text   string
	Strong bool
}

// FormatInline splits text into literal and strong runs delimited by "**".
// Spans do not nest; an opening marker without a closing one is literal.
func FormatInline(text string) []Span {
	var spans []Span
	rest := text
	for rest != "" {
		open := strings.Index(rest, emphasisMarker)
		if open < 0 {
			break
		}
		end := strings.Index(rest[open+len(emphasisMarker):], emphasisMarker)
		if end < 0 {
			break
		}
		if open > 0 {
			spans = append(spans, Span{Text: rest[:open]})
		}
		body := rest[open+len(emphasisMarker) : open+len(emphasisMarker)+end]
		if body != "" {
			spans = append(spans, Span{Text: body, Strong: true})
		}
		rest = rest[open+2*len(emphasisMarker)+end:]
	}
	if rest != "" {
		spans = append(spans, Span{Text: rest})
	}
	return spans
}

// StripEmphasis returns text with every paired emphasis marker removed.
func StripEmphasis(text string) string {
	var b strings.Builder
	for _, s := range FormatInline(text) {
		b.WriteString(s.Text)
	}
	return b.String()
}
