package store

import (
	"cylinderlog/internal/handover"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// checkDocument is the stored shape of one per-cylinder quality check.
type checkDocument struct {
	CylinderID *string  `bson:"cylinder_id"`
	Purity     *float64 `bson:"purity"`
	Pressure   *int     `bson:"pressure"`
}

// entryDocument is the stored shape of one handover record. Field names
// match the collection's historical documents, so older records decode
// with missing fields left at their zero values.
type entryDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Facility            string             `bson:"facility"`
	BMTInCharge         string             `bson:"bmt_in_charge"`
	ReceivingPersonnel  *string            `bson:"receiving_personnel"`
	Qty2M               int                `bson:"qty_2m"`
	Qty4M               int                `bson:"qty_4m"`
	Qty7M               int                `bson:"qty_7m"`
	Checks2M            []checkDocument    `bson:"cylinder_checks_2m"`
	Checks4M            []checkDocument    `bson:"cylinder_checks_4m"`
	Checks7M            []checkDocument    `bson:"cylinder_checks_7m"`
	SubmittedBy         string             `bson:"submitted_by"`
	SubmissionTimestamp string             `bson:"submission_timestamp"`
}

func toCheckDocuments(checks []handover.Check) []checkDocument {
	out := make([]checkDocument, len(checks))
	for i, c := range checks {
		out[i] = checkDocument{CylinderID: c.CylinderID, Purity: c.Purity, Pressure: c.Pressure}
	}
	return out
}

func fromCheckDocuments(docs []checkDocument) []handover.Check {
	out := make([]handover.Check, len(docs))
	for i, d := range docs {
		out[i] = handover.Check{CylinderID: d.CylinderID, Purity: d.Purity, Pressure: d.Pressure}
	}
	return out
}

// toDocument converts an entry for insertion. The store generates the id.
func toDocument(e *handover.Entry) entryDocument {
	return entryDocument{
		Facility:            e.Facility,
		BMTInCharge:         e.BMTInCharge,
		ReceivingPersonnel:  e.ReceivingPersonnel,
		Qty2M:               e.Qty2M,
		Qty4M:               e.Qty4M,
		Qty7M:               e.Qty7M,
		Checks2M:            toCheckDocuments(e.Checks2M),
		Checks4M:            toCheckDocuments(e.Checks4M),
		Checks7M:            toCheckDocuments(e.Checks7M),
		SubmittedBy:         e.SubmittedBy,
		SubmissionTimestamp: e.SubmissionTimestamp,
	}
}

// toEntry converts a stored document, applying the defaults the list view
// relies on: quantities 0, check lists empty, submitted_by "Unknown".
func (d entryDocument) toEntry() handover.Entry {
	submittedBy := d.SubmittedBy
	if submittedBy == "" {
		submittedBy = "Unknown"
	}
	return handover.Entry{
		ID:                  d.ID.Hex(),
		Facility:            d.Facility,
		BMTInCharge:         d.BMTInCharge,
		ReceivingPersonnel:  d.ReceivingPersonnel,
		Qty2M:               d.Qty2M,
		Qty4M:               d.Qty4M,
		Qty7M:               d.Qty7M,
		Checks2M:            fromCheckDocuments(d.Checks2M),
		Checks4M:            fromCheckDocuments(d.Checks4M),
		Checks7M:            fromCheckDocuments(d.Checks7M),
		SubmittedBy:         submittedBy,
		SubmissionTimestamp: d.SubmissionTimestamp,
	}
}
