package validate

import (
	"errors"
	"strings"
	"testing"
)

type signupForm struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type cliArgs struct {
	Role string `flag:"role" validate:"oneof=student admin"`
}

func TestStruct(t *testing.T) {
	v := NewValidator()

	if err := v.Struct(signupForm{Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	err := v.Struct(signupForm{Email: "nope"})
	var fields *FieldsError
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldsError, got %v", err)
	}
	if _, ok := fields.Fields["name"]; !ok {
		t.Fatalf("missing json field name: %v", fields.Fields)
	}
	if _, ok := fields.Fields["email"]; !ok {
		t.Fatalf("missing email: %v", fields.Fields)
	}
	if !strings.HasPrefix(err.Error(), "email: ") {
		t.Fatalf("error not sorted by field: %q", err.Error())
	}
}

func TestStruct_FlagTagNames(t *testing.T) {
	err := NewValidator().Struct(cliArgs{Role: "root"})
	var fields *FieldsError
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldsError, got %v", err)
	}
	if _, ok := fields.Fields["role"]; !ok {
		t.Fatalf("flag tag not used as field name: %v", fields.Fields)
	}
}
