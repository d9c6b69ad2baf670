// Package domain holds gate core types independent of transport or storage
package domain

import "time"

// Purpose is the closed set of reasons a student enters the library
type Purpose string

const (
	// PurposeReading is an in-hall reading visit
	PurposeReading Purpose = "Reading"

	// PurposeLending is a circulation desk visit
	PurposeLending Purpose = "Lending"

	// PurposeBookBank is a book bank counter visit
	PurposeBookBank Purpose = "Book Bank"
)

// Valid reports whether p is one of the accepted purposes
func (p Purpose) Valid() bool {
	switch p {
	case PurposeReading, PurposeLending, PurposeBookBank:
		return true
	}
	return false
}

// Status is the student's presence state at the gate
type Status string

const (
	// StatusIn means an open visit exists
	StatusIn Status = "IN"

	// StatusOut means no open visit exists
	StatusOut Status = "OUT"
)

// Visit is one gate session. PunchOutTime stays nil while the student is inside
type Visit struct {
	ID              int64      `json:"id" example:"1024"`
	RegisterNumber  string     `json:"register_number,omitempty" example:"RA2112704010021"`
	AdmissionNumber string     `json:"admission_number" example:"40731066"`
	Purpose         Purpose    `json:"purpose" example:"Reading"`
	PunchInTime     time.Time  `json:"punch_in_time" example:"2024-03-05T09:30:00Z"`
	PunchOutTime    *time.Time `json:"punch_out_time,omitempty" example:"2024-03-05T11:05:00Z"`
}

// Open reports whether the visit is still in progress
func (v Visit) Open() bool { return v.PunchOutTime == nil }
