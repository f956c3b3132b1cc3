package markup

import "fmt"

type BlockKind int

const (
	BlockSection BlockKind = iota
	BlockHeading
)

// Block is one top-level render unit: either a title/section heading or a
// group of consecutive body lines.
type Block struct {
	Kind    BlockKind
	Heading Line
	Lines   []Line
}

// Assemble groups classified lines into sections. Level 1 and 2 headings close
// the current section before being emitted; sections holding nothing but
// empty lines are dropped.
func Assemble(lines []Line) []Block {
	var (
		blocks  []Block
		current []Line
	)
	flush := func() {
		if hasContent(current) {
			blocks = append(blocks, Block{Kind: BlockSection, Lines: current})
		}
		current = nil
	}

	for _, l := range lines {
		if l.Kind == LineHeading && l.Level <= 2 {
			flush()
			blocks = append(blocks, Block{Kind: BlockHeading, Heading: l})
			continue
		}
		current = append(current, l)
	}
	flush()
	return blocks
}

func hasContent(lines []Line) bool {
	for _, l := range lines {
		if l.Kind != LineEmpty {
			return true
		}
	}
	return false
}

func BlankKey(lessonID, tab string, n int) string {
	return fmt.Sprintf("lesson-%s-%s-field-%d", lessonID, tab, n)
}

func CheckboxKey(lessonID, tab string, line int) string {
	return fmt.Sprintf("lesson-%s-%s-checkbox-%d", lessonID, tab, line)
}

type BlankField struct {
	Index int
	Key   string
}

type CheckboxField struct {
	Line  int
	Key   string
	Label []Part
}

// Document is the parsed form of one lesson tab.
type Document struct {
	LessonID string
	Tab      string
	Blocks   []Block

	blanks     []BlankField
	checkboxes []CheckboxField
}

// Parse classifies and assembles content. The result depends only on its
// inputs, so field identities are stable across re-renders.
func Parse(lessonID, tab, content string) *Document {
	lines := Classify(content)
	doc := &Document{
		LessonID: lessonID,
		Tab:      tab,
		Blocks:   Assemble(lines),
	}
	for _, l := range lines {
		if l.Kind == LineCheckbox {
			doc.checkboxes = append(doc.checkboxes, CheckboxField{
				Line:  l.Number,
				Key:   CheckboxKey(lessonID, tab, l.Number),
				Label: l.Parts,
			})
		}
		for _, p := range l.Parts {
			if p.Kind == PartBlank {
				doc.blanks = append(doc.blanks, BlankField{Index: p.Field, Key: BlankKey(lessonID, tab, p.Field)})
			}
		}
	}
	return doc
}

func (d *Document) Blanks() []BlankField { return d.blanks }

func (d *Document) Checkboxes() []CheckboxField { return d.checkboxes }

func (d *Document) HasBlank(n int) bool {
	return n >= 0 && n < len(d.blanks)
}

func (d *Document) HasCheckbox(line int) bool {
	for _, c := range d.checkboxes {
		if c.Line == line {
			return true
		}
	}
	return false
}
