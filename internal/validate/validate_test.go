package validate

import (
	"errors"
	"testing"
)

func TestShift(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"morning", true},
		{"evening", true},
		{"night", true},
		{"afternoon", false},
		{"Morning", false},
		{"", false},
	}

	for _, tt := range cases {
		err := Shift(tt.value)
		if tt.valid && err != nil {
			t.Fatalf("Shift(%q) unexpected error: %v", tt.value, err)
		}
		if !tt.valid && err == nil {
			t.Fatalf("Shift(%q) expected error", tt.value)
		}
	}
}

func TestRole(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"admin", true},
		{"employee", true},
		{"manager", false},
		{"Admin", false},
		{"", false},
	}

	for _, tt := range cases {
		err := Role(tt.value)
		if tt.valid && err != nil {
			t.Fatalf("Role(%q) unexpected error: %v", tt.value, err)
		}
		if !tt.valid && err == nil {
			t.Fatalf("Role(%q) expected error", tt.value)
		}
	}
}

func TestPaymentMethod(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"cash", true},
		{"card", true},
		{"transfer", true},
		{"crypto", false},
		{"CASH", false},
		{"", false},
	}

	for _, tt := range cases {
		err := PaymentMethod(tt.value)
		if tt.valid && err != nil {
			t.Fatalf("PaymentMethod(%q) unexpected error: %v", tt.value, err)
		}
		if !tt.valid && err == nil {
			t.Fatalf("PaymentMethod(%q) expected error", tt.value)
		}
	}
}

func TestSessionStart(t *testing.T) {
	if err := SessionStart("sedan", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name        string
		vehicleType string
		platform    int
		field       string
	}{
		{"missing vehicle type", "", 1, "vehicleType"},
		{"blank vehicle type", "   ", 1, "vehicleType"},
		{"zero platform", "sedan", 0, "platform"},
		{"negative platform", "sedan", -2, "platform"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := SessionStart(tt.vehicleType, tt.platform)
			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, vErr.Field)
			}
		})
	}
}

func TestSessionCompletion(t *testing.T) {
	if err := SessionCompletion(10.5, 45, 5.25, "cash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := SessionCompletion(10.5, 45, 0, "card"); err != nil {
		t.Fatalf("zero amount should be accepted: %v", err)
	}

	cases := []struct {
		name     string
		kwh      float64
		duration int
		amount   float64
		method   string
		field    string
	}{
		{"zero kwh", 0, 45, 5, "cash", "kwh"},
		{"negative kwh", -1, 45, 5, "cash", "kwh"},
		{"zero duration", 10, 0, 5, "cash", "durationMinutes"},
		{"negative amount", 10, 45, -0.01, "cash", "amount"},
		{"bad payment method", 10, 45, 5, "cheque", "paymentMethod"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := SessionCompletion(tt.kwh, tt.duration, tt.amount, tt.method)
			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, vErr.Field)
			}
		})
	}
}

func TestEmployeeCreate(t *testing.T) {
	if err := EmployeeCreate("A", "Tech", "morning"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name     string
		empName  string
		position string
		shift    string
		field    string
	}{
		{"missing name", "", "Tech", "morning", "name"},
		{"blank name", "  ", "Tech", "morning", "name"},
		{"missing position", "A", "", "morning", "position"},
		{"invalid shift", "A", "Tech", "afternoon", "shift"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := EmployeeCreate(tt.empName, tt.position, tt.shift)
			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, vErr.Field)
			}
		})
	}
}
