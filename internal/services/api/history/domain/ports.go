package domain

import "context"

// ServicePort is the interface implemented by the history service
type ServicePort interface {
	Query(ctx context.Context, f Filter) ([]Row, error)
	Export(ctx context.Context, f Filter) (filename string, workbook []byte, err error)
}
