package handover

// MaxSlotsPerSize caps how many per-cylinder check forms are rendered for a
// single size, regardless of the entered quantity.
const MaxSlotsPerSize = 5

// SlotsFor returns the number of check slots derived from a quantity:
// min(qty, MaxSlotsPerSize), never negative.
func SlotsFor(qty int) int {
	if qty < 0 {
		return 0
	}
	if qty > MaxSlotsPerSize {
		return MaxSlotsPerSize
	}
	return qty
}

// Reconcile resizes a check list to the target count, preserving previously
// entered values at indices that remain in range. Growth appends blank
// slots; shrinkage drops the tail. The input slice is never mutated.
//
// This is the only code path permitted to resize check lists: it runs once
// per size every time the quantity page is (re)confirmed, so a user revising
// quantities after filling in checks keeps the data at retained indices.
func Reconcile(existing []Check, targetCount int) []Check {
	if targetCount < 0 {
		targetCount = 0
	}

	out := make([]Check, targetCount)
	n := copy(out, existing)
	for i := n; i < targetCount; i++ {
		out[i] = BlankCheck()
	}
	return out
}
