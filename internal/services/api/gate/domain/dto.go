// Package domain holds DTOs for gate http and service contracts
package domain

// StatusInput asks for the presence state of one identifier
type StatusInput struct {
	Identifier string `json:"identifier" validate:"required,min=1,max=64" example:"RA2112704010021"`
}

// StatusRow reports presence plus the open visit when inside
type StatusRow struct {
	Status          Status `json:"status" example:"IN"`
	AdmissionNumber string `json:"admission_number" example:"40731066"`
	Name            string `json:"name" example:"Asha Nair"`
	OpenVisit       *Visit `json:"open_visit,omitempty"`
}

// PunchInInput opens a visit for an identifier with a stated purpose
type PunchInInput struct {
	Identifier string  `json:"identifier" validate:"required,min=1,max=64" example:"40731066"`
	Purpose    Purpose `json:"purpose" validate:"required,oneof='Reading' 'Lending' 'Book Bank'" example:"Reading"`
}

// PunchOutInput closes the open visit for an identifier
type PunchOutInput struct {
	Identifier string `json:"identifier" validate:"required,min=1,max=64" example:"40731066"`
}
