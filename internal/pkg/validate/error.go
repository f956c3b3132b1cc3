package validate

import (
	"sort"
	"strings"
)

type FieldsError struct {
	Fields map[string]string
}

func NewFieldsError(fields map[string]string) *FieldsError {
	return &FieldsError{
		Fields: fields,
	}
}

// Error lists the failing fields in a stable order, e.g. "email: email must be a valid email address".
func (f *FieldsError) Error() string {
	if len(f.Fields) == 0 {
		return "Fields error"
	}
	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, name+": "+f.Fields[name])
	}
	return strings.Join(msgs, "; ")
}
