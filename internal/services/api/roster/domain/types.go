// Package domain holds roster core types independent of transport or storage
package domain

// Student is one roster entry. AdmissionNumber is the primary key; the
// register number is optional and unique when present, so either
// identifier resolves to the same row
type Student struct {
	RegisterNumber  string `json:"register_number,omitempty" example:"RA2112704010021"`
	Name            string `json:"name" example:"Asha Nair"`
	AdmissionNumber string `json:"admission_number" example:"40731066"`
	Department      string `json:"department" example:"CSE"`
}

// ImportResult summarizes one roster upload
type ImportResult struct {
	BatchID  string `json:"batch_id" example:"3e7c9a54-4f1b-4c2d-9a0e-8b1f2d3c4e5f"`
	Inserted int    `json:"inserted" example:"42"`
	Updated  int    `json:"updated" example:"3"`
	Skipped  int    `json:"skipped" example:"1"`
}
