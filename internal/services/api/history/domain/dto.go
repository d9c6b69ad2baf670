// Package domain holds DTOs for history http and service contracts
package domain

// Filter is the sparse visit query. Zero values disable a predicate;
// active predicates are all ANDed. Year, month, and day are independent
// date-part equalities on the punch-in time; the date bounds are inclusive
type Filter struct {
	Year    int    `json:"year,omitempty"    validate:"omitempty,min=2000,max=2100" example:"2024"`
	Month   int    `json:"month,omitempty"   validate:"omitempty,min=1,max=12" example:"3"`
	Day     int    `json:"day,omitempty"     validate:"omitempty,min=1,max=31" example:"5"`
	Purpose string `json:"purpose,omitempty" validate:"omitempty,oneof='Reading' 'Lending' 'Book Bank'" example:"Reading"`
	From    string `json:"from,omitempty"    validate:"omitempty,datetime=2006-01-02" example:"2024-03-01"`
	To      string `json:"to,omitempty"      validate:"omitempty,datetime=2006-01-02" example:"2024-03-31"`
}

// Empty reports whether no predicate is active, meaning return everything
func (f Filter) Empty() bool {
	return f.Year == 0 && f.Month == 0 && f.Day == 0 && f.Purpose == "" && f.From == "" && f.To == ""
}
