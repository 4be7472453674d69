package handover

import "fmt"

// Purity and pressure acceptance ranges, inclusive.
const (
	PurityMin   = 0
	PurityMax   = 99
	PressureMin = 0
	PressureMax = 2000
)

// Violation is one human-readable validation failure. Field names the
// offending input for callers that want to highlight it; Message is the
// text surfaced to the user.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) Error() string {
	return v.Message
}

// Quantities captures the raw page-1 inputs after numeric parsing.
type Quantities struct {
	Facility string
	Qty2M    int
	Qty4M    int
	Qty7M    int
}

// ValidatePage1 applies the quantity-page rules: facility required,
// quantities non-negative, and at least one quantity greater than zero.
// All violations found are returned; an empty slice means the page passes.
func ValidatePage1(q Quantities) []Violation {
	var violations []Violation

	if q.Facility == "" {
		violations = append(violations, Violation{
			Field:   "facility",
			Message: "Facility is required.",
		})
	}
	if q.Qty2M < 0 || q.Qty4M < 0 || q.Qty7M < 0 {
		violations = append(violations, Violation{
			Field:   "quantities",
			Message: "Cylinder quantities cannot be negative.",
		})
	}
	if q.Qty2M == 0 && q.Qty4M == 0 && q.Qty7M == 0 {
		violations = append(violations, Violation{
			Field:   "quantities",
			Message: "At least one cylinder quantity must be greater than 0.",
		})
	}

	return violations
}

// ValidateChecks applies the pre-submit rules to one size's check list:
// purity present and within [0,99], pressure present and within [0,2000].
// One violation is reported per violated field per slot, naming the slot
// as "<size label> cylinder <n>".
func ValidateChecks(checks []Check, size Size) []Violation {
	var violations []Violation
	label := size.Label()

	for i, check := range checks {
		slot := fmt.Sprintf("%s[%d]", size, i)
		if check.Purity == nil {
			violations = append(violations, Violation{
				Field:   slot + ".purity",
				Message: fmt.Sprintf("Purity is required for %s cylinder %d.", label, i+1),
			})
		} else if p := *check.Purity; !(p >= PurityMin && p <= PurityMax) {
			// NaN compares false against both bounds, so it fails here too.
			violations = append(violations, Violation{
				Field:   slot + ".purity",
				Message: fmt.Sprintf("Purity for %s cylinder %d must be between %d and %d.", label, i+1, PurityMin, PurityMax),
			})
		}
		if check.Pressure == nil {
			violations = append(violations, Violation{
				Field:   slot + ".pressure",
				Message: fmt.Sprintf("Pressure is required for %s cylinder %d.", label, i+1),
			})
		} else if *check.Pressure < PressureMin || *check.Pressure > PressureMax {
			violations = append(violations, Violation{
				Field:   slot + ".pressure",
				Message: fmt.Sprintf("Pressure for %s cylinder %d must be between %d and %d.", label, i+1, PressureMin, PressureMax),
			})
		}
	}

	return violations
}

// ValidateSubmission applies the pre-submit rules across all three sizes
// of an entry, accumulating every violation found. A non-empty result
// means the submission must be aborted with no store write.
func ValidateSubmission(e *Entry) []Violation {
	var violations []Violation
	for _, size := range Sizes {
		violations = append(violations, ValidateChecks(e.Checks(size), size)...)
	}
	return violations
}
