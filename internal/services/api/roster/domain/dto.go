// Package domain holds DTOs for roster http and service contracts
package domain

// ResolveInput asks the service to map a typed or scanned identifier to a student
type ResolveInput struct {
	Identifier string `json:"identifier" validate:"required,min=1,max=64" example:"RA2112704010021"`
}
