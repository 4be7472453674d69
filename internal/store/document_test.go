package store

import (
	"testing"

	"cylinderlog/internal/handover"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEntryDocument_Defaults(t *testing.T) {
	// A bare document, as decoded from a legacy record with missing fields.
	doc := entryDocument{ID: primitive.NewObjectID()}

	e := doc.toEntry()
	if e.SubmittedBy != "Unknown" {
		t.Errorf("SubmittedBy = %q, want %q", e.SubmittedBy, "Unknown")
	}
	if e.ReceivingPersonnel != nil {
		t.Errorf("ReceivingPersonnel = %v, want nil", e.ReceivingPersonnel)
	}
	if e.Qty2M != 0 || e.Qty4M != 0 || e.Qty7M != 0 {
		t.Errorf("quantities = %d/%d/%d, want 0/0/0", e.Qty2M, e.Qty4M, e.Qty7M)
	}
	if len(e.Checks2M) != 0 || len(e.Checks4M) != 0 || len(e.Checks7M) != 0 {
		t.Error("check lists not empty")
	}
	if e.ID == "" {
		t.Error("ID not mapped to hex string")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	id := "CYL-042"
	purity := 97.5
	pressure := 1850
	personnel := "Nurse Adeyemi"

	in := &handover.Entry{
		Facility:           "Harvey Road General Hospital",
		BMTInCharge:        "Mr. okafor",
		ReceivingPersonnel: &personnel,
		Qty2M:              7,
		Qty7M:              2,
		Checks2M: []handover.Check{
			{CylinderID: &id, Purity: &purity, Pressure: &pressure},
		},
		SubmittedBy:         "okafor",
		SubmissionTimestamp: "2026-08-30T10:15:00Z",
	}

	out := toDocument(in).toEntry()
	if out.Facility != in.Facility {
		t.Errorf("Facility = %q, want %q", out.Facility, in.Facility)
	}
	if out.Qty2M != 7 || out.Qty7M != 2 {
		t.Errorf("quantities = %d/%d, want 7/2", out.Qty2M, out.Qty7M)
	}
	if len(out.Checks2M) != 1 {
		t.Fatalf("len(Checks2M) = %d, want 1", len(out.Checks2M))
	}
	got := out.Checks2M[0]
	if got.CylinderID == nil || *got.CylinderID != id {
		t.Errorf("CylinderID = %v, want %q", got.CylinderID, id)
	}
	if got.Purity == nil || *got.Purity != purity {
		t.Errorf("Purity = %v, want %v", got.Purity, purity)
	}
	if got.Pressure == nil || *got.Pressure != pressure {
		t.Errorf("Pressure = %v, want %v", got.Pressure, pressure)
	}
	if out.SubmissionTimestamp != in.SubmissionTimestamp {
		t.Errorf("SubmissionTimestamp = %q, want %q", out.SubmissionTimestamp, in.SubmissionTimestamp)
	}
}
