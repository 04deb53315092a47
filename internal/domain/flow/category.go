package flow

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the fixed alarm families that segment compilation.
type Category string

const (
	// NurseCalls holds nurse-call alarms.
	NurseCalls Category = "NurseCalls"
	// Clinicals holds clinical (patient monitoring) alarms.
	Clinicals Category = "Clinicals"
	// Orders holds order notifications.
	Orders Category = "Orders"
)

// ErrUnknownCategory is returned when a category name cannot be parsed.
var ErrUnknownCategory = errors.New("unknown category")

// Categories returns every category in output order.
func Categories() []Category {
	return []Category{NurseCalls, Clinicals, Orders}
}

// ParseCategory converts a free-form category name into a Category.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch normalized {
	case "nursecalls", "nursecall", "nurse_call", "nurse_calls":
		return NurseCalls, nil
	case "clinicals", "clinical", "patientmonitoring":
		return Clinicals, nil
	case "orders", "order":
		return Orders, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// DefaultPrefix returns the flow-name prefix used when none is configured.
func (c Category) DefaultPrefix() string {
	switch c {
	case NurseCalls:
		return "SEND NURSECALL"
	case Clinicals:
		return "SEND CLINICAL"
	case Orders:
		return "SEND ORDER"
	default:
		return "SEND " + strings.ToUpper(string(c))
	}
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
