// Package handover provides the domain model and form logic for gas-cylinder
// handover records: check-slot derivation, list reconciliation, and the
// validation rules applied before a record may be persisted.
// This package has no UI or store dependencies and can be used by any frontend.
package handover

// Size identifies one of the tracked cylinder sizes in cubic meters.
type Size string

const (
	Size2M Size = "2m"
	Size4M Size = "4m"
	Size7M Size = "7m"
)

// Sizes lists the tracked cylinder sizes in display order.
var Sizes = []Size{Size2M, Size4M, Size7M}

// Label returns the display label for a size, e.g. "2m³".
func (s Size) Label() string {
	return string(s) + "³"
}

// Check is the quality record for one physical cylinder. A freshly added
// slot has all fields nil; purity and pressure must be populated and in
// range before the enclosing entry may be submitted.
type Check struct {
	CylinderID *string  `json:"cylinder_id"`
	Purity     *float64 `json:"purity"`
	Pressure   *int     `json:"pressure"`
}

// BlankCheck returns an empty placeholder slot.
func BlankCheck() Check {
	return Check{}
}

// Entry is one submitted handover record. Entries are immutable after
// submission aside from full-record deletion.
type Entry struct {
	ID                  string  `json:"id"`
	Facility            string  `json:"facility"`
	BMTInCharge         string  `json:"bmt_in_charge"`
	ReceivingPersonnel  *string `json:"receiving_personnel"`
	Qty2M               int     `json:"qty_2m"`
	Qty4M               int     `json:"qty_4m"`
	Qty7M               int     `json:"qty_7m"`
	Checks2M            []Check `json:"cylinder_checks_2m"`
	Checks4M            []Check `json:"cylinder_checks_4m"`
	Checks7M            []Check `json:"cylinder_checks_7m"`
	SubmittedBy         string  `json:"submitted_by"`
	SubmissionTimestamp string  `json:"submission_timestamp"`
}

// Qty returns the entered quantity for a size.
func (e *Entry) Qty(s Size) int {
	switch s {
	case Size2M:
		return e.Qty2M
	case Size4M:
		return e.Qty4M
	default:
		return e.Qty7M
	}
}

// Checks returns the check list for a size.
func (e *Entry) Checks(s Size) []Check {
	switch s {
	case Size2M:
		return e.Checks2M
	case Size4M:
		return e.Checks4M
	default:
		return e.Checks7M
	}
}

// TotalQty returns the sum of all three quantities.
func (e *Entry) TotalQty() int {
	return e.Qty2M + e.Qty4M + e.Qty7M
}
