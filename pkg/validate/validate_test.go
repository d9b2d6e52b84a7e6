package validate_test

import (
	"testing"

	"github.com/mcreations/storefront/pkg/validate"
)

type checkoutInput struct {
	Name    string `json:"name"    validate:"required,min=2,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"required,min=7,max=15"`
	Address string `json:"address" validate:"required,min=5"`
	Note    string `json:"note"    validate:"nullable,max=500"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(checkoutInput{
		Name:    "John Doe",
		Email:   "john@example.com",
		Phone:   "0123456789",
		Address: "1 Main Street, Springfield",
		Note:    "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(checkoutInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	for _, field := range []string{"name", "email", "phone", "address"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
	if _, ok := errs["note"]; ok {
		t.Error("expected nullable note to be skipped")
	}
}

func TestCollectsEveryFailingRule(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,alpha_dash,min=4"`
	}
	errs := validate.Struct(in{Name: "a!"})
	if len(errs["name"]) != 2 {
		t.Errorf("expected 2 messages for name (alpha_dash + min), got: %v", errs["name"])
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Qty int `json:"qty" validate:"required,min=1,max=999"`
	}
	if errs := validate.Struct(in{Qty: -3}); !validate.HasErrors(errs) {
		t.Error("expected qty < 1 to fail")
	}
	if errs := validate.Struct(in{Qty: 5}); validate.HasErrors(errs) {
		t.Errorf("expected qty 5 to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=user,staff"`
	}
	if errs := validate.Struct(in{Role: "superadmin"}); !validate.HasErrors(errs) {
		t.Error("expected invalid role to fail")
	}
	if errs := validate.Struct(in{Role: "staff"}); validate.HasErrors(errs) {
		t.Errorf("expected staff to pass: %v", errs)
	}
}

func TestInRuleFollowedByAnotherRule(t *testing.T) {
	// The in= value list must survive splitting when more rules follow it.
	type in struct {
		Role string `json:"role" validate:"required,in=user,staff,max=50"`
	}
	if errs := validate.Struct(in{Role: "staff"}); validate.HasErrors(errs) {
		t.Errorf("expected staff to pass: %v", errs)
	}
	if errs := validate.Struct(in{Role: "superadmin"}); len(errs["role"]) != 1 {
		t.Errorf("expected exactly the in-rule message for superadmin, got: %v", errs["role"])
	}
}

func TestConfirmedRule(t *testing.T) {
	type in struct {
		Password             string `json:"password"              validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "wrong"}); !validate.HasErrors(errs) {
		t.Error("expected confirmation mismatch to fail")
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "secret123"}); validate.HasErrors(errs) {
		t.Errorf("expected matching confirmation to pass: %v", errs)
	}
}

func TestRegistrationShapedInputPasses(t *testing.T) {
	// The full registration form with a matching confirmation must
	// produce no errors at all.
	type in struct {
		Name                 string `json:"name"                  validate:"required,min=2,max=255"`
		Email                string `json:"email"                 validate:"required,email"`
		Phone                string `json:"phone"                 validate:"required,numeric,min=7,max=15"`
		Password             string `json:"password"              validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	}
	errs := validate.Struct(in{
		Name:                 "Jane Shopper",
		Email:                "jane@example.com",
		Phone:                "5551234567",
		Password:             "hunter2hunter2",
		PasswordConfirmation: "hunter2hunter2",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid registration to pass, got: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"nullable,numeric"`
	}
	// Empty string — nullable, remaining rules are skipped.
	if errs := validate.Struct(in{Phone: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Phone: "abc"}); !validate.HasErrors(errs) {
		t.Error("expected non-numeric phone to fail")
	}
}

func TestIntegerRule(t *testing.T) {
	type in struct {
		Qty string `json:"qty" validate:"required,integer"`
	}
	if errs := validate.Struct(in{Qty: "3"}); validate.HasErrors(errs) {
		t.Errorf("expected integer string to pass: %v", errs)
	}
	if errs := validate.Struct(in{Qty: "3.5"}); !validate.HasErrors(errs) {
		t.Error("expected fractional value to fail integer rule")
	}
}

func TestAlphaDashRule(t *testing.T) {
	type in struct {
		Slug string `json:"slug" validate:"required,alpha_dash"`
	}
	if errs := validate.Struct(in{Slug: "summer-sale_2024"}); validate.HasErrors(errs) {
		t.Errorf("expected alpha_dash to pass: %v", errs)
	}
	if errs := validate.Struct(in{Slug: "hello world!"}); !validate.HasErrors(errs) {
		t.Error("expected alpha_dash to fail for spaces/punctuation")
	}
}
