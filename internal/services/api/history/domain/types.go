// Package domain holds history core types independent of transport or storage
package domain

import (
	"time"

	gatedom "libgate/internal/services/api/gate/domain"
)

// Row is one visit joined to its roster entry. Name and Department come
// back blank when the roster row is gone; DurationMinutes stays nil
// while the visit is open
type Row struct {
	VisitID         int64           `json:"visit_id" example:"1024"`
	Name            string          `json:"name,omitempty" example:"Asha Nair"`
	RegisterNumber  string          `json:"register_number,omitempty" example:"RA2112704010021"`
	AdmissionNumber string          `json:"admission_number" example:"40731066"`
	Department      string          `json:"department,omitempty" example:"CSE"`
	Purpose         gatedom.Purpose `json:"purpose" example:"Reading"`
	PunchInTime     time.Time       `json:"punch_in_time" example:"2024-03-05T09:30:00Z"`
	PunchOutTime    *time.Time      `json:"punch_out_time,omitempty" example:"2024-03-05T11:05:00Z"`
	DurationMinutes *int64          `json:"duration_minutes,omitempty" example:"95"`
}
