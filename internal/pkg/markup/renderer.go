package markup

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/evandrarf/lessonhub/internal/pkg/storage"
)

type Variant string

const (
	VariantMinimal  Variant = "minimal"
	VariantEnhanced Variant = "enhanced"
)

// ParseVariant maps a config or query value onto a Variant, defaulting to enhanced.
func ParseVariant(s string) Variant {
	if Variant(s) == VariantMinimal {
		return VariantMinimal
	}
	return VariantEnhanced
}

// State is the persisted input state attached to a Document.
type State struct {
	Blanks  map[int]string `json:"blanks"`
	Checked map[int]bool   `json:"checked"`
}

type Renderer struct {
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataAttributes()
	policy.AllowElements("input", "section", "label")
	policy.AllowAttrs("type").Matching(regexp.MustCompile(`^(text|checkbox)$`)).OnElements("input")
	policy.AllowAttrs("name", "value", "checked").OnElements("input")
	policy.AllowAttrs("class").Globally()
	return &Renderer{policy: policy}
}

// Bind reads the persisted blank values (default "") and checkbox states
// (default false) for doc.
func (r *Renderer) Bind(ctx context.Context, store storage.Store, doc *Document) (State, error) {
	st := State{
		Blanks:  make(map[int]string, len(doc.blanks)),
		Checked: make(map[int]bool, len(doc.checkboxes)),
	}
	for _, b := range doc.blanks {
		v, err := storage.GetOr(ctx, store, b.Key, "")
		if err != nil {
			return st, fmt.Errorf("load blank %d: %w", b.Index, err)
		}
		st.Blanks[b.Index] = v
	}
	for _, c := range doc.checkboxes {
		v, err := storage.GetOr(ctx, store, c.Key, "false")
		if err != nil {
			return st, fmt.Errorf("load checkbox %d: %w", c.Line, err)
		}
		st.Checked[c.Line] = v == "true"
	}
	return st, nil
}

func (r *Renderer) SetBlank(ctx context.Context, store storage.Store, lessonID, tab string, n int, value string) error {
	return store.Set(ctx, BlankKey(lessonID, tab, n), value)
}

func (r *Renderer) SetCheckbox(ctx context.Context, store storage.Store, lessonID, tab string, line int, checked bool) error {
	return store.Set(ctx, CheckboxKey(lessonID, tab, line), strconv.FormatBool(checked))
}

// HTML binds doc to store and renders it in the given variant.
func (r *Renderer) HTML(ctx context.Context, store storage.Store, doc *Document, v Variant) (string, State, error) {
	st, err := r.Bind(ctx, store, doc)
	if err != nil {
		return "", st, err
	}
	return r.policy.Sanitize(renderHTML(doc, st, v)), st, nil
}
