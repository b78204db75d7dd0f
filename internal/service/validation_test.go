package service

import (
	"errors"
	"reflect"
	"testing"
)

func TestRequireFields(t *testing.T) {
	cases := []struct {
		name        string
		payload     map[string]any
		wantMissing []string
		wantInvalid bool
	}{
		{"all present", map[string]any{"email": "a@b.c", "full_name": "A", "role": "admin", "plant": "P", "password": "x", "extra": 1}, nil, false},
		{"empty payload", map[string]any{}, CustomerRequiredFields, false},
		{"blank and null count as missing", map[string]any{"email": "a@b.c", "full_name": " ", "role": nil, "plant": "P", "password": "x"}, []string{"full_name", "role"}, false},
		{"wrong type", map[string]any{"email": 42, "full_name": "A", "role": "r", "plant": "P", "password": "x"}, nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RequireFields(tc.payload, CustomerRequiredFields)
			if tc.wantInvalid {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if tc.wantMissing == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(got) != len(CustomerRequiredFields) {
					t.Fatalf("expected %d values, got %v", len(CustomerRequiredFields), got)
				}
				return
			}
			var mf *MissingFieldsError
			if !errors.As(err, &mf) {
				t.Fatalf("expected MissingFieldsError, got %v", err)
			}
			if !reflect.DeepEqual(mf.Fields, tc.wantMissing) {
				t.Fatalf("missing = %v, want %v", mf.Fields, tc.wantMissing)
			}
		})
	}
}

func TestCustomerInputFrom(t *testing.T) {
	in, err := CustomerInputFrom(map[string]any{
		"email": " Ann@Gage.IO ", "full_name": "Ann", "role": "Operator", "plant": "P-01", "password": "pw",
	})
	if err != nil {
		t.Fatalf("CustomerInputFrom: %v", err)
	}
	want := CustomerInput{Email: "ann@gage.io", FullName: "Ann", Role: "operator", Plant: "P-01", Password: "pw"}
	if in != want {
		t.Fatalf("got %+v, want %+v", in, want)
	}

	_, err = CustomerInputFrom(map[string]any{
		"email": "not-an-email", "full_name": "Ann", "role": "r", "plant": "P", "password": "pw",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMissingFieldsError_Message(t *testing.T) {
	err := &MissingFieldsError{Fields: []string{"email", "plant"}}
	if got, want := err.Error(), "missing required field(s): email, plant"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
