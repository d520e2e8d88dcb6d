package validate

import (
	"fmt"
	"strings"

	"chargeops/internal/models"
)

// Error describes a rejected field. Handlers surface it as a 400.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validate: %s %s", e.Field, e.Reason)
}

func fail(field, reason string) error {
	return &Error{Field: field, Reason: reason}
}

var shifts = map[string]struct{}{
	models.ShiftMorning: {},
	models.ShiftEvening: {},
	models.ShiftNight:   {},
}

var roles = map[string]struct{}{
	models.RoleAdmin:    {},
	models.RoleEmployee: {},
}

var paymentMethods = map[string]struct{}{
	models.PaymentMethodCash:     {},
	models.PaymentMethodCard:     {},
	models.PaymentMethodTransfer: {},
}

// Shift accepts exactly the three shift labels.
func Shift(value string) error {
	if _, ok := shifts[value]; !ok {
		return fail("shift", "must be one of morning, evening, night")
	}
	return nil
}

// Role accepts admin or employee.
func Role(value string) error {
	if _, ok := roles[value]; !ok {
		return fail("role", "must be admin or employee")
	}
	return nil
}

// PaymentMethod accepts cash, card or transfer.
func PaymentMethod(value string) error {
	if _, ok := paymentMethods[value]; !ok {
		return fail("paymentMethod", "must be one of cash, card, transfer")
	}
	return nil
}

// SessionStart checks the fields required to open a session. Callers trim
// string fields before calling.
func SessionStart(vehicleType string, platform int) error {
	if strings.TrimSpace(vehicleType) == "" {
		return fail("vehicleType", "is required")
	}
	if platform < 1 {
		return fail("platform", "must be a positive integer")
	}
	return nil
}

// SessionCompletion checks the fields required to finalize a session.
func SessionCompletion(kwh float64, durationMinutes int, amount float64, paymentMethod string) error {
	if kwh <= 0 {
		return fail("kwh", "must be greater than zero")
	}
	if durationMinutes < 1 {
		return fail("durationMinutes", "must be at least 1")
	}
	if amount < 0 {
		return fail("amount", "must not be negative")
	}
	return PaymentMethod(paymentMethod)
}

// EmployeeCreate checks a new employee record. Role is validated separately
// because it defaults when absent.
func EmployeeCreate(name, position, shift string) error {
	if strings.TrimSpace(name) == "" {
		return fail("name", "is required")
	}
	if strings.TrimSpace(position) == "" {
		return fail("position", "is required")
	}
	return Shift(shift)
}
