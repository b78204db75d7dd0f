package service

import (
	"fmt"
	"strings"
)

// CustomerRequiredFields must all be present on customer create, in this order.
var CustomerRequiredFields = []string{"email", "full_name", "role", "plant", "password"}

// RequireFields checks that every name in required is a non-empty string in
// payload. All missing names are reported at once, in required order.
// A present field of the wrong type fails with ErrInvalidInput.
func RequireFields(payload map[string]any, required []string) (map[string]string, error) {
	out := make(map[string]string, len(required))
	var missing []string
	for _, name := range required {
		raw, ok := payload[name]
		if !ok || raw == nil {
			missing = append(missing, name)
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q must be a string", ErrInvalidInput, name)
		}
		if strings.TrimSpace(s) == "" {
			missing = append(missing, name)
			continue
		}
		out[name] = strings.TrimSpace(s)
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	return out, nil
}

// CustomerInputFrom validates payload and builds a CustomerInput.
func CustomerInputFrom(payload map[string]any) (CustomerInput, error) {
	f, err := RequireFields(payload, CustomerRequiredFields)
	if err != nil {
		return CustomerInput{}, err
	}
	if !strings.Contains(f["email"], "@") {
		return CustomerInput{}, fmt.Errorf("%w: email %q is not an address", ErrInvalidInput, f["email"])
	}
	return CustomerInput{
		Email:    strings.ToLower(f["email"]),
		FullName: f["full_name"],
		Role:     strings.ToLower(f["role"]),
		Plant:    f["plant"],
		Password: f["password"],
	}, nil
}
