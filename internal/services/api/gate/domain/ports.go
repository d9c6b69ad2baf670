package domain

import "context"

// ServicePort is the interface implemented by the gate service
type ServicePort interface {
	Status(ctx context.Context, in StatusInput) (StatusRow, error)
	PunchIn(ctx context.Context, in PunchInInput) (Visit, error)
	PunchOut(ctx context.Context, in PunchOutInput) (Visit, error)
}
