package repository

import "context"

// TxManager runs a unit of work inside one store transaction. Repositories
// called with the context handed to fn take part in that transaction; a
// non-nil error from fn rolls every write back.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
