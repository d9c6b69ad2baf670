package domain

import (
	"context"
	"io"
)

// ServicePort is the interface implemented by the roster service
type ServicePort interface {
	Resolve(ctx context.Context, in ResolveInput) (Student, error)
	List(ctx context.Context, department string) ([]Student, error)
	Get(ctx context.Context, admission string) (Student, error)
	Import(ctx context.Context, workbook io.Reader) (ImportResult, error)
	Export(ctx context.Context) ([]byte, error)
}

// ResolverPort is the slice of the service other modules consume.
// Gate punches resolve identity through this before touching visits
type ResolverPort interface {
	Resolve(ctx context.Context, in ResolveInput) (Student, error)
}
